package nodes

// Walk traverses the tree rooted at n in depth-first order, calling fn for
// each node. If fn returns false the node's children are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Children returns the direct child nodes of n in rendering order.
// Nil children are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c != nil && !isNilNode(c) {
				out = append(out, c)
			}
		}
	}
	switch t := n.(type) {
	case *Attribute:
		add(t.Relation)
	case *StarNode:
		if t.Table != nil {
			add(t.Table)
		}
	case *BinaryNode:
		add(t.Left, t.Right)
	case *ChainNode:
		for _, l := range t.Links {
			add(l.Expr)
		}
	case *UnaryNode:
		add(t.Expr)
	case *NotNode:
		add(t.Expr)
	case *InNode:
		add(t.Expr)
		if t.Subquery != nil {
			add(t.Subquery)
		} else {
			add(t.Vals...)
		}
	case *BetweenNode:
		add(t.Expr, t.Low, t.High)
	case *GroupingNode:
		add(t.Expr)
	case *ExistsNode:
		if t.Subquery != nil {
			add(t.Subquery)
		}
	case *SubqueryNode:
		if t.Query != nil {
			add(t.Query)
		}
	case *AliasNode:
		add(t.Expr)
	case *OrderingNode:
		add(t.Expr)
	case *AggregateNode:
		add(t.Expr)
	case *WindowFuncNode:
		add(t.Args...)
	case *OverNode:
		add(t.Expr)
		if t.Window != nil {
			add(t.Window.PartitionBy...)
			for _, o := range t.Window.OrderBy {
				add(o)
			}
		}
	case *NamedFunctionNode:
		add(t.Args...)
	case *JoinNode:
		if t.Right != nil {
			add(t.Right)
		}
		add(t.On)
	case *SelectCore:
		add(t.Projections...)
		if t.From != nil {
			add(t.From)
		}
		for _, j := range t.Joins {
			add(j)
		}
		if t.Where != nil {
			add(t.Where)
		}
		add(t.Groups...)
		if t.Having != nil {
			add(t.Having)
		}
		for _, o := range t.Orders {
			add(o)
		}
		add(t.Limit, t.Offset)
	case *CTENode:
		if t.Ref != nil {
			add(t.Ref)
		}
		if t.Query != nil {
			add(t.Query)
		}
	case *WithNode:
		for _, c := range t.CTEs {
			add(c)
		}
		add(t.Query)
	case *InsertStatement:
		if t.Into != nil {
			add(t.Into)
		}
		for _, row := range t.Values {
			add(row...)
		}
	case *UpdateStatement:
		if t.Table != nil {
			add(t.Table)
		}
		for _, a := range t.Assignments {
			add(a)
		}
		if t.Where != nil {
			add(t.Where)
		}
	case *AssignmentNode:
		add(t.Value)
	case *DeleteStatement:
		if t.From != nil {
			add(t.From)
		}
		if t.Where != nil {
			add(t.Where)
		}
	}
	return out
}

// Relations returns the table references a statement reads from or writes
// to: FROM and JOIN tables of every SELECT (subqueries included) and the
// targets of INSERT, UPDATE and DELETE. Column-only references are not
// included. Each reference appears once, in first-seen order.
func Relations(n Node) []*Table {
	var refs []*Table
	seen := make(map[*Table]bool)
	add := func(t *Table) {
		if t != nil && !seen[t] {
			seen[t] = true
			refs = append(refs, t)
		}
	}
	Walk(n, func(c Node) bool {
		switch t := c.(type) {
		case *SelectCore:
			for _, ref := range t.Scope() {
				add(ref)
			}
		case *InsertStatement:
			add(t.Into)
		case *UpdateStatement:
			add(t.Table)
		case *DeleteStatement:
			add(t.From)
		case *CTENode:
			// The CTE's own name is a definition, not a use; only its body counts.
			if t.Query != nil {
				for _, ref := range Relations(t.Query) {
					add(ref)
				}
			}
			return false
		}
		return true
	})
	return refs
}

// isNilNode reports whether n is an interface holding a typed nil pointer.
func isNilNode(n Node) bool {
	switch t := n.(type) {
	case *Table:
		return t == nil
	case *SelectCore:
		return t == nil
	case *ChainNode:
		return t == nil
	case *OrderingNode:
		return t == nil
	}
	return false
}
