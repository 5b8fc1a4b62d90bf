// Package nodes defines the AST node types used to represent SQL query elements.
//
// Nodes are plain data. They are built once (by hand, by the managers
// package or by a query document) and rendered by a visitor; nothing in
// this package rewrites a tree after it has been constructed.
package nodes

// Node is the interface that all AST nodes implement.
type Node interface {
	Accept(visitor Visitor) string
}

// Visitor defines the interface for walking the AST and producing output.
// The node set is closed: adding a node kind means adding a method here,
// which every visitor must then implement.
type Visitor interface {
	VisitTable(node *Table) string
	VisitAttribute(node *Attribute) string
	VisitStar(node *StarNode) string
	VisitLiteral(node *LiteralNode) string
	VisitConstant(node *ConstantNode) string
	VisitBinary(node *BinaryNode) string
	VisitChain(node *ChainNode) string
	VisitUnary(node *UnaryNode) string
	VisitNot(node *NotNode) string
	VisitIn(node *InNode) string
	VisitBetween(node *BetweenNode) string
	VisitGrouping(node *GroupingNode) string
	VisitExists(node *ExistsNode) string
	VisitSubquery(node *SubqueryNode) string
	VisitAlias(node *AliasNode) string
	VisitOrdering(node *OrderingNode) string
	VisitAggregate(node *AggregateNode) string
	VisitWindowFunction(node *WindowFuncNode) string
	VisitOver(node *OverNode) string
	VisitNamedFunction(node *NamedFunctionNode) string
	VisitJoin(node *JoinNode) string
	VisitSelectCore(node *SelectCore) string
	VisitCTE(node *CTENode) string
	VisitWith(node *WithNode) string
	VisitInsertStatement(node *InsertStatement) string
	VisitUpdateStatement(node *UpdateStatement) string
	VisitAssignment(node *AssignmentNode) string
	VisitDeleteStatement(node *DeleteStatement) string
}

// Literal wraps a raw Go value into a LiteralNode. If val already
// implements Node, it is returned as-is.
func Literal(val any) Node {
	if n, ok := val.(Node); ok {
		return n
	}
	lit := &LiteralNode{Value: val}
	lit.Predications.self = lit
	lit.Arithmetics.self = lit
	lit.Combinable.self = lit
	return lit
}
