package nodes

// AggregateFunc identifies the aggregate function.
type AggregateFunc int

const (
	AggCount AggregateFunc = iota
	AggSum
	AggAvg
	AggMin
	AggMax
)

// AggregateNode represents an aggregate function call (COUNT, SUM, AVG, MIN, MAX).
type AggregateNode struct {
	Predications
	Arithmetics
	Combinable
	Func     AggregateFunc
	Expr     Node // argument (nil for COUNT(*))
	Distinct bool // COUNT(DISTINCT ...)
}

func (n *AggregateNode) Accept(v Visitor) string { return v.VisitAggregate(n) }

// NewAggregateNode creates an AggregateNode with properly initialised embedded structs.
func NewAggregateNode(fn AggregateFunc, expr Node) *AggregateNode {
	n := &AggregateNode{Func: fn, Expr: expr}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// Count creates a COUNT aggregate. Pass nil for COUNT(*).
func Count(expr Node) *AggregateNode {
	return NewAggregateNode(AggCount, expr)
}

// Sum creates a SUM aggregate.
func Sum(expr Node) *AggregateNode {
	return NewAggregateNode(AggSum, expr)
}

// Avg creates an AVG aggregate.
func Avg(expr Node) *AggregateNode {
	return NewAggregateNode(AggAvg, expr)
}

// Min creates a MIN aggregate.
func Min(expr Node) *AggregateNode {
	return NewAggregateNode(AggMin, expr)
}

// Max creates a MAX aggregate.
func Max(expr Node) *AggregateNode {
	return NewAggregateNode(AggMax, expr)
}

// CountDistinct creates a COUNT(DISTINCT expr) aggregate.
func CountDistinct(expr Node) *AggregateNode {
	n := NewAggregateNode(AggCount, expr)
	n.Distinct = true
	return n
}

// Over attaches a window specification to the aggregate.
func (n *AggregateNode) Over(def *WindowDefinition) *OverNode {
	return NewOverNode(n, def)
}
