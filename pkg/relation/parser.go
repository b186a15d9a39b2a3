// Package relation compiles the boolean trigger expressions of composite
// achievements (e.g. "score and (time or date)") into relation trees.
package relation

import (
	"fmt"
	"strings"

	"github.com/achievekit/achievement-engine/pkg/domain"
	"github.com/achievekit/achievement-engine/pkg/errors"
)

type tokenType int

const (
	tokenAnd tokenType = iota
	tokenOr
	tokenLParen
	tokenRParen
	tokenIdent
)

type token struct {
	typ  tokenType
	text string
}

// Parser compiles relation expressions into domain relation trees.
type Parser struct {
	validator *Validator
}

// NewParser creates a Parser with a default syntax validator.
func NewParser() *Parser {
	return &Parser{validator: NewValidator()}
}

// Parse compiles a relation expression against the triggers already
// extracted for the enclosing composite achievement.
//
// The expression is lower-cased before tokenizing; tokens are the operators
// "and" and "or", parentheses, and achievement kind tags. Each group carries
// exactly one operator: mixing AND and OR at the same nesting level without
// parentheses is a MALFORMED_RELATION error. An unknown kind tag is an
// UNKNOWN_ACHIEVEMENT_KIND error. A kind tag with no matching triggers among
// the achievement's triggers is skipped without adding a leaf.
func (p *Parser) Parse(expression string, triggers []domain.Trigger) (*domain.RelationGroup, error) {
	if err := p.validator.Validate(expression); err != nil {
		return nil, err
	}

	tokens, err := tokenize(strings.ToLower(expression))
	if err != nil {
		return nil, err
	}

	group, rest, err := parseGroup(tokens, triggers)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		// Validate has already balanced parentheses, so a leftover token
		// here can only be a stray closing parenthesis.
		return nil, errors.ErrMalformedRelation("unmatched closing parenthesis")
	}
	return group, nil
}

func tokenize(expression string) ([]token, error) {
	var tokens []token
	rest := expression
	for len(rest) > 0 {
		switch {
		case rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r':
			rest = rest[1:]
		case rest[0] == '(':
			tokens = append(tokens, token{typ: tokenLParen})
			rest = rest[1:]
		case rest[0] == ')':
			tokens = append(tokens, token{typ: tokenRParen})
			rest = rest[1:]
		default:
			end := 0
			for end < len(rest) && isWordChar(rest[end]) {
				end++
			}
			if end == 0 {
				return nil, errors.ErrMalformedRelation(fmt.Sprintf("unexpected character %q", rest[0]))
			}
			word := rest[:end]
			switch word {
			case "and":
				tokens = append(tokens, token{typ: tokenAnd})
			case "or":
				tokens = append(tokens, token{typ: tokenOr})
			default:
				tokens = append(tokens, token{typ: tokenIdent, text: word})
			}
			rest = rest[end:]
		}
	}
	return tokens, nil
}

func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

// parseGroup parses one parenthesis level: operand (operator operand)*.
// It stops at a closing parenthesis (left for the caller to consume) or at
// the end of input, and returns the unconsumed tokens.
func parseGroup(tokens []token, triggers []domain.Trigger) (*domain.RelationGroup, []token, error) {
	group := &domain.RelationGroup{}

	rest, err := parseOperand(group, tokens, triggers)
	if err != nil {
		return nil, nil, err
	}

	for len(rest) > 0 && rest[0].typ != tokenRParen {
		var operator domain.RelationOperator
		switch rest[0].typ {
		case tokenAnd:
			operator = domain.OperatorAnd
		case tokenOr:
			operator = domain.OperatorOr
		default:
			return nil, nil, errors.ErrMalformedRelation("expected operator between operands")
		}
		if group.Operator != "" && group.Operator != operator {
			return nil, nil, errors.ErrMalformedRelation("a group cannot mix 'and' with 'or'")
		}
		group.Operator = operator

		rest, err = parseOperand(group, rest[1:], triggers)
		if err != nil {
			return nil, nil, err
		}
	}

	return group, rest, nil
}

// parseOperand consumes one operand (a parenthesized group or a kind tag)
// and appends the resulting child to the group. A kind tag whose kind has no
// matching triggers consumes the token without appending a child.
func parseOperand(group *domain.RelationGroup, tokens []token, triggers []domain.Trigger) ([]token, error) {
	if len(tokens) == 0 {
		return nil, errors.ErrMalformedRelation("expression ends with a dangling operator")
	}

	switch tokens[0].typ {
	case tokenLParen:
		child, rest, err := parseGroup(tokens[1:], triggers)
		if err != nil {
			return nil, err
		}
		if len(rest) == 0 || rest[0].typ != tokenRParen {
			return nil, errors.ErrMalformedRelation("unterminated group")
		}
		group.AddChild(child)
		return rest[1:], nil
	case tokenIdent:
		kind, ok := domain.ParseKind(tokens[0].text)
		if !ok {
			return nil, errors.ErrUnknownKind(tokens[0].text)
		}
		if leaf := leafOf(kind, triggers); leaf != nil {
			group.AddChild(leaf)
		}
		return tokens[1:], nil
	default:
		return nil, errors.ErrMalformedRelation("expected an achievement kind or an open parenthesis")
	}
}

// leafOf collects the triggers of one kind into a leaf, or nil when the
// achievement holds no triggers of that kind.
func leafOf(kind domain.AchievementKind, triggers []domain.Trigger) *domain.RelationLeaf {
	var matched []domain.Trigger
	for _, trigger := range triggers {
		if trigger.Kind() == kind {
			matched = append(matched, trigger)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	return &domain.RelationLeaf{TriggerKind: kind, Triggers: matched}
}
