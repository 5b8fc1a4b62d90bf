package nodes

// InNode represents an IN or NOT IN predicate over a value list or a
// subquery. When Subquery is set, Vals is ignored.
type InNode struct {
	Combinable
	Expr     Node
	Vals     []Node
	Subquery *SelectCore
	Negate   bool
}

func (n *InNode) Accept(v Visitor) string { return v.VisitIn(n) }

// NewIn creates expr IN (vals...), or NOT IN when negate is set.
func NewIn(expr Node, vals []Node, negate bool) *InNode {
	n := &InNode{Expr: expr, Vals: vals, Negate: negate}
	n.self = n
	return n
}

// NewInSubquery creates expr IN (<query>), or NOT IN when negate is set.
func NewInSubquery(expr Node, query *SelectCore, negate bool) *InNode {
	n := &InNode{Expr: expr, Subquery: query, Negate: negate}
	n.self = n
	return n
}

// BetweenNode represents a BETWEEN or NOT BETWEEN range predicate.
type BetweenNode struct {
	Combinable
	Expr   Node
	Low    Node
	High   Node
	Negate bool
}

func (n *BetweenNode) Accept(v Visitor) string { return v.VisitBetween(n) }

// NewBetween creates expr BETWEEN low AND high, or NOT BETWEEN when negate is set.
func NewBetween(expr, low, high Node, negate bool) *BetweenNode {
	n := &BetweenNode{Expr: expr, Low: low, High: high, Negate: negate}
	n.self = n
	return n
}
