package nodes

// Connective joins one link of a ChainNode to the previous one.
type Connective int

const (
	ConnAnd Connective = iota
	ConnOr
)

// Op returns the binary operator a dialect spells for this connective.
func (c Connective) Op() BinaryOp {
	if c == ConnOr {
		return OpOr
	}
	return OpAnd
}

// ChainLink is one (connective, predicate) pair of a ChainNode.
type ChainLink struct {
	Connective Connective
	Expr       Node
}

// ChainNode is an ordered sequence of predicates joined by AND/OR. It is
// rendered in declaration order with no grouping; the first link's
// connective is ignored.
type ChainNode struct {
	Combinable
	Links []ChainLink
}

func (n *ChainNode) Accept(v Visitor) string { return v.VisitChain(n) }

// NewChain starts a chain with a single predicate.
func NewChain(first Node) *ChainNode {
	n := &ChainNode{Links: []ChainLink{{Connective: ConnAnd, Expr: first}}}
	n.self = n
	return n
}

// Append returns a new chain with an extra link. The receiver is not modified.
// A nil receiver starts a new chain.
func (n *ChainNode) Append(c Connective, expr Node) *ChainNode {
	if n == nil || len(n.Links) == 0 {
		return NewChain(expr)
	}
	links := make([]ChainLink, len(n.Links), len(n.Links)+1)
	copy(links, n.Links)
	out := &ChainNode{Links: append(links, ChainLink{Connective: c, Expr: expr})}
	out.self = out
	return out
}

// Len returns the number of links, treating nil as empty.
func (n *ChainNode) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Links)
}

// NotNode represents a logical NOT of an expression.
type NotNode struct {
	Combinable
	Expr Node
}

func (n *NotNode) Accept(v Visitor) string { return v.VisitNot(n) }

// Not creates NOT expr.
func Not(expr Node) *NotNode {
	n := &NotNode{Expr: expr}
	n.self = n
	return n
}

// GroupingNode wraps an expression in parentheses. It is the only way
// parentheses appear around an expression; the printer never adds them.
type GroupingNode struct {
	Predications
	Arithmetics
	Combinable
	Expr Node
}

func (n *GroupingNode) Accept(v Visitor) string { return v.VisitGrouping(n) }

// Group wraps expr in an explicit GroupingNode.
func Group(expr Node) *GroupingNode {
	g := &GroupingNode{Expr: expr}
	g.Predications.self = g
	g.Arithmetics.self = g
	g.Combinable.self = g
	return g
}
