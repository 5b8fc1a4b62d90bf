// Package testutil provides shared test helpers for the sqlgen project.
package testutil

import "github.com/bawdo/sqlgen/nodes"

// StubVisitor implements nodes.Visitor with minimal return values for testing.
// Each method returns the node kind so tests can check Accept dispatch.
type StubVisitor struct{}

var _ nodes.Visitor = StubVisitor{}

func (sv StubVisitor) VisitTable(n *nodes.Table) string         { return n.Name }
func (sv StubVisitor) VisitAttribute(n *nodes.Attribute) string { return "attr" }
func (sv StubVisitor) VisitStar(n *nodes.StarNode) string       { return "*" }
func (sv StubVisitor) VisitLiteral(n *nodes.LiteralNode) string { return "lit" }
func (sv StubVisitor) VisitConstant(n *nodes.ConstantNode) string {
	return n.Text
}
func (sv StubVisitor) VisitBinary(n *nodes.BinaryNode) string {
	return n.Left.Accept(sv) + " " + n.Op.String() + " " + n.Right.Accept(sv)
}
func (sv StubVisitor) VisitChain(n *nodes.ChainNode) string                 { return "chain" }
func (sv StubVisitor) VisitUnary(n *nodes.UnaryNode) string                 { return "unary" }
func (sv StubVisitor) VisitNot(n *nodes.NotNode) string                     { return "not" }
func (sv StubVisitor) VisitIn(n *nodes.InNode) string                       { return "in" }
func (sv StubVisitor) VisitBetween(n *nodes.BetweenNode) string             { return "between" }
func (sv StubVisitor) VisitGrouping(n *nodes.GroupingNode) string           { return "grouping" }
func (sv StubVisitor) VisitExists(n *nodes.ExistsNode) string               { return "exists" }
func (sv StubVisitor) VisitSubquery(n *nodes.SubqueryNode) string           { return "subquery" }
func (sv StubVisitor) VisitAlias(n *nodes.AliasNode) string                 { return "alias" }
func (sv StubVisitor) VisitOrdering(n *nodes.OrderingNode) string           { return "ordering" }
func (sv StubVisitor) VisitAggregate(n *nodes.AggregateNode) string         { return "aggregate" }
func (sv StubVisitor) VisitWindowFunction(n *nodes.WindowFuncNode) string   { return "window_func" }
func (sv StubVisitor) VisitOver(n *nodes.OverNode) string                   { return "over" }
func (sv StubVisitor) VisitNamedFunction(n *nodes.NamedFunctionNode) string { return "named_func" }
func (sv StubVisitor) VisitJoin(n *nodes.JoinNode) string                   { return "join" }
func (sv StubVisitor) VisitSelectCore(n *nodes.SelectCore) string           { return "select_core" }
func (sv StubVisitor) VisitCTE(n *nodes.CTENode) string                     { return "cte" }
func (sv StubVisitor) VisitWith(n *nodes.WithNode) string                   { return "with" }
func (sv StubVisitor) VisitInsertStatement(n *nodes.InsertStatement) string { return "insert" }
func (sv StubVisitor) VisitUpdateStatement(n *nodes.UpdateStatement) string { return "update" }
func (sv StubVisitor) VisitAssignment(n *nodes.AssignmentNode) string       { return "assign" }
func (sv StubVisitor) VisitDeleteStatement(n *nodes.DeleteStatement) string { return "delete" }
