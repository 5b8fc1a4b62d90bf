package nodes

// LiteralNode wraps a raw Go value (string, int, float, bool, time.Time,
// nil). The dialect decides how the value is spelled.
type LiteralNode struct {
	Predications
	Arithmetics
	Combinable
	Value any
}

func (n *LiteralNode) Accept(v Visitor) string { return v.VisitLiteral(n) }

// StarNode represents a SQL star (*) or qualified star (alias.*).
type StarNode struct {
	Table *Table // nil for unqualified *
}

func (n *StarNode) Accept(v Visitor) string { return v.VisitStar(n) }

// Star returns an unqualified StarNode representing SQL *.
func Star() *StarNode {
	return &StarNode{}
}

// ConstantNode is a value whose SQL text has already been produced by the
// caller. Strings must arrive quoted; the text is emitted verbatim.
//
// SECURITY: Text is never escaped. Do not build it from user input.
type ConstantNode struct {
	Predications
	Arithmetics
	Combinable
	Text string
}

// Constant creates a ConstantNode from pre-rendered SQL text.
func Constant(text string) *ConstantNode {
	n := &ConstantNode{Text: text}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *ConstantNode) Accept(v Visitor) string { return v.VisitConstant(n) }
