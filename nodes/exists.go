package nodes

// ExistsNode represents an EXISTS or NOT EXISTS subquery expression.
type ExistsNode struct {
	Combinable
	Subquery *SelectCore
	Negated  bool
}

func (n *ExistsNode) Accept(v Visitor) string { return v.VisitExists(n) }

// Exists creates an EXISTS(subquery) node.
func Exists(subquery *SelectCore) *ExistsNode {
	n := &ExistsNode{Subquery: subquery}
	n.self = n
	return n
}

// NotExists creates a NOT EXISTS(subquery) node.
func NotExists(subquery *SelectCore) *ExistsNode {
	n := &ExistsNode{Subquery: subquery, Negated: true}
	n.self = n
	return n
}

// SubqueryNode places a SELECT in an expression position, where it is
// rendered inline in parentheses: (<select>).
type SubqueryNode struct {
	Predications
	Arithmetics
	Combinable
	Query *SelectCore
}

func (n *SubqueryNode) Accept(v Visitor) string { return v.VisitSubquery(n) }

// Subquery wraps a SELECT for use as a scalar expression.
func Subquery(query *SelectCore) *SubqueryNode {
	n := &SubqueryNode{Query: query}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}
