package domain

// RelationOperator combines the results of a relation group's children.
type RelationOperator string

const (
	OperatorAnd RelationOperator = "and"
	OperatorOr  RelationOperator = "or"
)

// RelationNode is a node of a composite achievement's relation tree:
// either a RelationGroup or a RelationLeaf.
type RelationNode interface {
	// Evaluate answers whether the subtree is satisfied by the current
	// score, date and time-of-day state. Evaluation is pure.
	Evaluate(score int64, date MonthDay, timeOfDay ClockTime) bool
}

// RelationGroup combines child nodes with a single boolean operator.
// A group never mixes AND and OR; that is enforced at parse time.
// Children keep their insertion order.
type RelationGroup struct {
	Operator RelationOperator
	Children []RelationNode
}

// AddChild appends a node, preserving insertion order.
func (g *RelationGroup) AddChild(node RelationNode) {
	g.Children = append(g.Children, node)
}

// Evaluate applies the group operator across all children.
// An AND group with no children is vacuously true; an OR group with no
// children is false. A group whose operator was never set (single operand
// expressions) behaves as AND.
func (g *RelationGroup) Evaluate(score int64, date MonthDay, timeOfDay ClockTime) bool {
	if g.Operator == OperatorOr {
		for _, child := range g.Children {
			if child.Evaluate(score, date, timeOfDay) {
				return true
			}
		}
		return false
	}
	for _, child := range g.Children {
		if !child.Evaluate(score, date, timeOfDay) {
			return false
		}
	}
	return true
}

// RelationLeaf wraps the triggers of one achievement kind belonging to the
// enclosing composite achievement.
type RelationLeaf struct {
	TriggerKind AchievementKind
	Triggers    []Trigger
}

// Evaluate is true if any trigger in the leaf fires. A leaf is a disjunction
// over its own triggers even under an enclosing AND group.
func (l *RelationLeaf) Evaluate(score int64, date MonthDay, timeOfDay ClockTime) bool {
	for _, trigger := range l.Triggers {
		if trigger.Matches(score, date, timeOfDay) {
			return true
		}
	}
	return false
}
