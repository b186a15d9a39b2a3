package relation

import (
	"strings"

	"github.com/achievekit/achievement-engine/pkg/errors"
)

// Validator performs syntax pre-validation of relation expressions before
// they are scanned. It rejects structurally invalid expressions early so the
// parser only has to deal with token-level problems.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate rejects empty expressions and unbalanced parentheses.
// Returns a MALFORMED_RELATION error describing the first problem found.
func (v *Validator) Validate(expression string) error {
	if strings.TrimSpace(expression) == "" {
		return errors.ErrMalformedRelation("expression must be present")
	}

	depth := 0
	for _, r := range expression {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return errors.ErrMalformedRelation("unmatched closing parenthesis")
			}
		}
	}
	if depth != 0 {
		return errors.ErrMalformedRelation("unterminated group")
	}

	return nil
}
