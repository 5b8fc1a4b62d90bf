package nodes

// SelectCore represents a SELECT statement.
// The fluent API for building queries lives in the managers package.
type SelectCore struct {
	Distinct    bool
	Projections []Node
	From        *Table
	Joins       []*JoinNode
	Where       *ChainNode
	Groups      []Node // GROUP BY expressions
	Having      *ChainNode
	Orders      []*OrderingNode
	Limit       Node // nil or LiteralNode
	Offset      Node // nil or LiteralNode
}

func (n *SelectCore) Accept(v Visitor) string { return v.VisitSelectCore(n) }

// Scope returns the table references a SELECT brings into scope: the FROM
// table followed by every joined table, in order.
func (n *SelectCore) Scope() []*Table {
	var refs []*Table
	if n.From != nil {
		refs = append(refs, n.From)
	}
	for _, j := range n.Joins {
		if j.Right != nil {
			refs = append(refs, j.Right)
		}
	}
	return refs
}
