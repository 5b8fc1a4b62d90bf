package nodes

// OrderDirection represents ASC or DESC ordering.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

// OrderingNode represents an ORDER BY expression with a direction.
type OrderingNode struct {
	Expr      Node
	Direction OrderDirection
}

func (n *OrderingNode) Accept(v Visitor) string { return v.VisitOrdering(n) }

// NewOrdering creates an ORDER BY item.
func NewOrdering(expr Node, dir OrderDirection) *OrderingNode {
	return &OrderingNode{Expr: expr, Direction: dir}
}
