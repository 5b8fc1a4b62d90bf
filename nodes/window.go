package nodes

// WindowFunc identifies a ranking/offset window function.
type WindowFunc int

const (
	WinRowNumber WindowFunc = iota
	WinRank
	WinDenseRank
	WinNtile
	WinLag
	WinLead
)

// WindowFuncNode represents a window function call (e.g. ROW_NUMBER()).
// It only makes sense wrapped by an OverNode.
type WindowFuncNode struct {
	Func WindowFunc
	Args []Node
}

func (n *WindowFuncNode) Accept(v Visitor) string { return v.VisitWindowFunction(n) }

// Over attaches a window specification to the window function.
func (n *WindowFuncNode) Over(def *WindowDefinition) *OverNode {
	return NewOverNode(n, def)
}

// RowNumber creates a ROW_NUMBER() window function node.
func RowNumber() *WindowFuncNode {
	return &WindowFuncNode{Func: WinRowNumber}
}

// Rank creates a RANK() window function node.
func Rank() *WindowFuncNode {
	return &WindowFuncNode{Func: WinRank}
}

// DenseRank creates a DENSE_RANK() window function node.
func DenseRank() *WindowFuncNode {
	return &WindowFuncNode{Func: WinDenseRank}
}

// Ntile creates an NTILE(n) window function node.
func Ntile(n Node) *WindowFuncNode {
	return &WindowFuncNode{Func: WinNtile, Args: []Node{n}}
}

// Lag creates a LAG(expr [, offset [, default]]) window function node.
func Lag(args ...Node) *WindowFuncNode {
	return &WindowFuncNode{Func: WinLag, Args: args}
}

// Lead creates a LEAD(expr [, offset [, default]]) window function node.
func Lead(args ...Node) *WindowFuncNode {
	return &WindowFuncNode{Func: WinLead, Args: args}
}

// WindowDefinition is the body of an OVER (...) clause. Both parts are
// optional; empty parts are omitted from the output.
type WindowDefinition struct {
	PartitionBy []Node
	OrderBy     []*OrderingNode
}

// NewWindowDef creates an empty window definition.
func NewWindowDef() *WindowDefinition {
	return &WindowDefinition{}
}

// Partition returns a copy of w with the PARTITION BY expressions set.
func (w *WindowDefinition) Partition(cols ...Node) *WindowDefinition {
	out := *w
	out.PartitionBy = cols
	return &out
}

// Order returns a copy of w with the ORDER BY terms set.
func (w *WindowDefinition) Order(orderings ...*OrderingNode) *WindowDefinition {
	out := *w
	out.OrderBy = orderings
	return &out
}

// OverNode attaches a window specification to a projected expression.
type OverNode struct {
	Predications
	Arithmetics
	Combinable
	Expr   Node // WindowFuncNode or AggregateNode
	Window *WindowDefinition
}

func (n *OverNode) Accept(v Visitor) string { return v.VisitOver(n) }

// NewOverNode creates an OverNode with properly initialised embedded structs.
func NewOverNode(expr Node, def *WindowDefinition) *OverNode {
	o := &OverNode{Expr: expr, Window: def}
	o.Predications.self = o
	o.Arithmetics.self = o
	o.Combinable.self = o
	return o
}
