package visitors

import (
	"fmt"
	"strings"

	"github.com/bawdo/sqlgen/nodes"
)

// Color constants for DOT node categories.
const (
	colorTable      = "#6CA6CD" // blue: tables, statements
	colorAttribute  = "#B0D4E8" // light blue: attributes, stars, aliases
	colorComparison = "#FFB347" // orange: comparisons, predicates
	colorLogical    = "#FFEB80" // yellow: AND, OR, NOT, grouping, DISTINCT
	colorLiteral    = "#D3D3D3" // grey: literals, constants
	colorJoin       = "#77DD77" // green: joins
	colorOrdering   = "#CDA0E0" // purple: ordering
	colorAssignment = "#FF6961" // red: assignments, DML
	colorArithmetic = "#98FB98" // mint green: arithmetic
	colorFunction   = "#87CEEB" // sky blue: aggregates, functions, windows
)

// dotNode represents a single node in the DOT graph.
type dotNode struct {
	id    string
	label string
	color string
}

// dotEdge represents a directed edge between two nodes in the DOT graph.
type dotEdge struct {
	from  string
	to    string
	label string
}

// dotCluster groups the nodes of one CTE into a DOT subgraph.
type dotCluster struct {
	name    string
	nodeIDs []string
}

// DotVisitor walks the AST and produces Graphviz DOT output.
// It implements nodes.Visitor.
type DotVisitor struct {
	nextID    int
	nodes     []dotNode
	edges     []dotEdge
	clusters  []dotCluster
	parentID  string
	edgeLabel string
}

var _ nodes.Visitor = (*DotVisitor)(nil)

// NewDotVisitor creates a new DotVisitor ready to walk an AST.
func NewDotVisitor() *DotVisitor {
	return &DotVisitor{}
}

// Dot returns the Graphviz graph of the tree rooted at n.
func Dot(n nodes.Node) string {
	dv := NewDotVisitor()
	n.Accept(dv)
	return dv.ToDot()
}

// addNode creates a new DOT node with the given label and color, returning its ID.
func (dv *DotVisitor) addNode(label, color string) string {
	id := fmt.Sprintf("n%d", dv.nextID)
	dv.nextID++
	dv.nodes = append(dv.nodes, dotNode{id: id, label: label, color: color})
	return id
}

func (dv *DotVisitor) addEdge(from, to, label string) {
	dv.edges = append(dv.edges, dotEdge{from: from, to: to, label: label})
}

// visitChild saves and restores the parent context, sets the edge label,
// and calls child.Accept to recursively visit the child node.
func (dv *DotVisitor) visitChild(parentID, label string, child nodes.Node) string {
	if child == nil {
		return ""
	}
	savedParent := dv.parentID
	savedLabel := dv.edgeLabel
	dv.parentID = parentID
	dv.edgeLabel = label
	result := child.Accept(dv)
	dv.parentID = savedParent
	dv.edgeLabel = savedLabel
	return result
}

// connectToParent adds an edge from the current parentID to nodeID if a parent exists.
func (dv *DotVisitor) connectToParent(nodeID string) {
	if dv.parentID != "" {
		dv.addEdge(dv.parentID, nodeID, dv.edgeLabel)
	}
}

// NodeCount returns the number of nodes accumulated so far.
func (dv *DotVisitor) NodeCount() int {
	return len(dv.nodes)
}

// nodeIDsSince returns the IDs of nodes added since (and including) start.
func (dv *DotVisitor) nodeIDsSince(start int) []string {
	if start >= len(dv.nodes) {
		return nil
	}
	ids := make([]string, len(dv.nodes)-start)
	for i := start; i < len(dv.nodes); i++ {
		ids[i-start] = dv.nodes[i].id
	}
	return ids
}

// ToDot generates the complete DOT graph text.
func (dv *DotVisitor) ToDot() string {
	var sb strings.Builder

	sb.WriteString("digraph AST {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")

	clustered := make(map[string]bool)
	for _, c := range dv.clusters {
		for _, id := range c.nodeIDs {
			clustered[id] = true
		}
	}
	byID := make(map[string]dotNode, len(dv.nodes))
	for _, n := range dv.nodes {
		byID[n.id] = n
		if !clustered[n.id] {
			fmt.Fprintf(&sb, "  %s [label=\"%s\", fillcolor=\"%s\"];\n",
				n.id, escapeLabel(n.label), n.color)
		}
	}

	for i, c := range dv.clusters {
		fmt.Fprintf(&sb, "  subgraph cluster_%d_%s {\n", i, c.name)
		fmt.Fprintf(&sb, "    label=\"%s\";\n", escapeLabel(c.name))
		sb.WriteString("    style=dashed;\n")
		sb.WriteString("    fontname=\"Helvetica\";\n")
		for _, id := range c.nodeIDs {
			n := byID[id]
			fmt.Fprintf(&sb, "    %s [label=\"%s\", fillcolor=\"%s\"];\n",
				n.id, escapeLabel(n.label), n.color)
		}
		sb.WriteString("  }\n")
	}

	for _, e := range dv.edges {
		if e.label != "" {
			fmt.Fprintf(&sb, "  %s -> %s [label=\"%s\"];\n", e.from, e.to, e.label)
		} else {
			fmt.Fprintf(&sb, "  %s -> %s;\n", e.from, e.to)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// escapeLabel escapes double quotes in DOT labels.
// Backslash sequences like \n are intentional DOT line breaks and are preserved.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}

func tableLabel(t *nodes.Table) string {
	if t == nil {
		return "?"
	}
	if t.Alias == "" {
		return t.Name
	}
	return t.Name + " " + t.Alias
}

func (dv *DotVisitor) VisitTable(n *nodes.Table) string {
	id := dv.addNode("Table\\n"+tableLabel(n), colorTable)
	dv.connectToParent(id)
	return id
}

func (dv *DotVisitor) VisitAttribute(n *nodes.Attribute) string {
	label := "Attribute\\n"
	if n.Relation != nil {
		label += n.Relation.Alias + "."
	}
	label += n.Name
	id := dv.addNode(label, colorAttribute)
	dv.connectToParent(id)
	return id
}

func (dv *DotVisitor) VisitStar(n *nodes.StarNode) string {
	label := "Star\\n*"
	if n.Table != nil {
		label = "Star\\n" + n.Table.Alias + ".*"
	}
	id := dv.addNode(label, colorAttribute)
	dv.connectToParent(id)
	return id
}

func (dv *DotVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	id := dv.addNode(fmt.Sprintf("Literal\\n%v", n.Value), colorLiteral)
	dv.connectToParent(id)
	return id
}

func (dv *DotVisitor) VisitConstant(n *nodes.ConstantNode) string {
	id := dv.addNode("Constant\\n"+n.Text, colorLiteral)
	dv.connectToParent(id)
	return id
}

func (dv *DotVisitor) VisitBinary(n *nodes.BinaryNode) string {
	color := colorComparison
	switch {
	case n.Op.IsLogical():
		color = colorLogical
	case n.Op >= nodes.OpPlus:
		color = colorArithmetic
	}
	id := dv.addNode("Binary\\n"+n.Op.String(), color)
	dv.connectToParent(id)
	dv.visitChild(id, "LEFT", n.Left)
	dv.visitChild(id, "RIGHT", n.Right)
	return id
}

func (dv *DotVisitor) VisitChain(n *nodes.ChainNode) string {
	id := dv.addNode("Chain", colorLogical)
	dv.connectToParent(id)
	for i, l := range n.Links {
		label := fmt.Sprintf("%d", i)
		if i > 0 {
			label = fmt.Sprintf("%s[%d]", l.Connective.Op(), i)
		}
		dv.visitChild(id, label, l.Expr)
	}
	return id
}

func (dv *DotVisitor) VisitUnary(n *nodes.UnaryNode) string {
	label := "Unary"
	switch n.Op {
	case nodes.OpIsNull:
		label = "Unary\\nIS NULL"
	case nodes.OpIsNotNull:
		label = "Unary\\nIS NOT NULL"
	}
	id := dv.addNode(label, colorComparison)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitNot(n *nodes.NotNode) string {
	id := dv.addNode("NOT", colorLogical)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitIn(n *nodes.InNode) string {
	label := "IN"
	if n.Negate {
		label = "NOT IN"
	}
	id := dv.addNode(label, colorComparison)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	if n.Subquery != nil {
		dv.visitChild(id, "SUBQUERY", n.Subquery)
	}
	for i, v := range n.Vals {
		dv.visitChild(id, fmt.Sprintf("VAL[%d]", i), v)
	}
	return id
}

func (dv *DotVisitor) VisitBetween(n *nodes.BetweenNode) string {
	label := "BETWEEN"
	if n.Negate {
		label = "NOT BETWEEN"
	}
	id := dv.addNode(label, colorComparison)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	dv.visitChild(id, "LOW", n.Low)
	dv.visitChild(id, "HIGH", n.High)
	return id
}

func (dv *DotVisitor) VisitGrouping(n *nodes.GroupingNode) string {
	id := dv.addNode("Grouping\\n( )", colorLogical)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitExists(n *nodes.ExistsNode) string {
	label := "EXISTS"
	if n.Negated {
		label = "NOT EXISTS"
	}
	id := dv.addNode(label, colorComparison)
	dv.connectToParent(id)
	if n.Subquery != nil {
		dv.visitChild(id, "SUBQUERY", n.Subquery)
	}
	return id
}

func (dv *DotVisitor) VisitSubquery(n *nodes.SubqueryNode) string {
	id := dv.addNode("Subquery\\n( )", colorLogical)
	dv.connectToParent(id)
	if n.Query != nil {
		dv.visitChild(id, "QUERY", n.Query)
	}
	return id
}

func (dv *DotVisitor) VisitAlias(n *nodes.AliasNode) string {
	id := dv.addNode("Alias\\n"+n.Name, colorAttribute)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	dir := "ASC"
	if n.Direction == nodes.Desc {
		dir = "DESC"
	}
	id := dv.addNode("Order\\n"+dir, colorOrdering)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	return id
}

func (dv *DotVisitor) VisitAggregate(n *nodes.AggregateNode) string {
	label, ok := aggregateName(n.Func)
	if !ok {
		label = "Aggregate(?)"
	}
	if n.Distinct {
		label += "\\nDISTINCT"
	}
	id := dv.addNode(label, colorFunction)
	dv.connectToParent(id)
	if n.Expr != nil {
		dv.visitChild(id, "EXPR", n.Expr)
	} else {
		starID := dv.addNode("*", colorAttribute)
		dv.addEdge(id, starID, "EXPR")
	}
	return id
}

func (dv *DotVisitor) VisitWindowFunction(n *nodes.WindowFuncNode) string {
	label, ok := windowName(n.Func)
	if !ok {
		label = "Window(?)"
	}
	id := dv.addNode(label, colorFunction)
	dv.connectToParent(id)
	for i, arg := range n.Args {
		dv.visitChild(id, fmt.Sprintf("ARG[%d]", i), arg)
	}
	return id
}

func (dv *DotVisitor) VisitOver(n *nodes.OverNode) string {
	id := dv.addNode("OVER", colorFunction)
	dv.connectToParent(id)
	dv.visitChild(id, "EXPR", n.Expr)
	if n.Window != nil {
		for i, p := range n.Window.PartitionBy {
			dv.visitChild(id, fmt.Sprintf("PARTITION[%d]", i), p)
		}
		for i, o := range n.Window.OrderBy {
			dv.visitChild(id, fmt.Sprintf("ORDER[%d]", i), o)
		}
	}
	return id
}

func (dv *DotVisitor) VisitNamedFunction(n *nodes.NamedFunctionNode) string {
	label := n.Name
	if n.Distinct {
		label += "\\nDISTINCT"
	}
	id := dv.addNode(label, colorFunction)
	dv.connectToParent(id)
	for i, arg := range n.Args {
		dv.visitChild(id, fmt.Sprintf("ARG[%d]", i), arg)
	}
	return id
}

func (dv *DotVisitor) VisitJoin(n *nodes.JoinNode) string {
	id := dv.addNode("Join\\n"+n.Type.String(), colorJoin)
	dv.connectToParent(id)
	if n.Right != nil {
		dv.visitChild(id, "RIGHT", n.Right)
	}
	dv.visitChild(id, "ON", n.On)
	return id
}

func (dv *DotVisitor) VisitSelectCore(n *nodes.SelectCore) string {
	id := dv.addNode("SelectCore", colorTable)
	dv.connectToParent(id)
	if n == nil {
		return id
	}

	if n.Distinct {
		distinctID := dv.addNode("DISTINCT", colorLogical)
		dv.addEdge(id, distinctID, "DISTINCT")
	}
	if n.From != nil {
		dv.visitChild(id, "FROM", n.From)
	}
	dv.visitChildList(id, "SELECT", n.Projections)
	for i, j := range n.Joins {
		dv.visitChild(id, fmt.Sprintf("JOIN[%d]", i), j)
	}
	if n.Where != nil {
		dv.visitChild(id, "WHERE", n.Where)
	}
	dv.visitChildList(id, "GROUP", n.Groups)
	if n.Having != nil {
		dv.visitChild(id, "HAVING", n.Having)
	}
	for i, o := range n.Orders {
		dv.visitChild(id, fmt.Sprintf("ORDER[%d]", i), o)
	}
	dv.visitChild(id, "LIMIT", n.Limit)
	dv.visitChild(id, "OFFSET", n.Offset)
	return id
}

// visitChildList visits a slice of nodes as indexed children (e.g. "SELECT[0]", "SELECT[1]").
func (dv *DotVisitor) visitChildList(parentID, prefix string, items []nodes.Node) {
	for i, item := range items {
		dv.visitChild(parentID, fmt.Sprintf("%s[%d]", prefix, i), item)
	}
}

// VisitCTE renders the CTE and its body inside a dashed cluster named after it.
func (dv *DotVisitor) VisitCTE(n *nodes.CTENode) string {
	start := dv.NodeCount()
	name := "?"
	if n.Ref != nil {
		name = n.Ref.Name
	}
	id := dv.addNode("CTE\\n"+tableLabel(n.Ref), colorTable)
	dv.connectToParent(id)
	if n.Query != nil {
		dv.visitChild(id, "QUERY", n.Query)
	}
	dv.clusters = append(dv.clusters, dotCluster{name: name, nodeIDs: dv.nodeIDsSince(start)})
	return id
}

func (dv *DotVisitor) VisitWith(n *nodes.WithNode) string {
	id := dv.addNode("With", colorTable)
	dv.connectToParent(id)
	for i, c := range n.CTEs {
		dv.visitChild(id, fmt.Sprintf("CTE[%d]", i), c)
	}
	dv.visitChild(id, "QUERY", n.Query)
	return id
}

func (dv *DotVisitor) VisitInsertStatement(n *nodes.InsertStatement) string {
	label := "InsertStatement"
	if n.AllColumns {
		label += "\\nALL COLUMNS"
	}
	id := dv.addNode(label, colorAssignment)
	dv.connectToParent(id)
	if n.Into != nil {
		dv.visitChild(id, "INTO", n.Into)
	}
	for i, c := range n.Columns {
		colID := dv.addNode("Column\\n"+c, colorAttribute)
		dv.addEdge(id, colID, fmt.Sprintf("COLUMN[%d]", i))
	}
	for i, row := range n.Values {
		for j, v := range row {
			dv.visitChild(id, fmt.Sprintf("VALUES[%d][%d]", i, j), v)
		}
	}
	return id
}

func (dv *DotVisitor) VisitUpdateStatement(n *nodes.UpdateStatement) string {
	id := dv.addNode("UpdateStatement", colorAssignment)
	dv.connectToParent(id)
	if n.Table != nil {
		dv.visitChild(id, "TABLE", n.Table)
	}
	for i, a := range n.Assignments {
		dv.visitChild(id, fmt.Sprintf("SET[%d]", i), a)
	}
	if n.Where != nil {
		dv.visitChild(id, "WHERE", n.Where)
	}
	return id
}

func (dv *DotVisitor) VisitAssignment(n *nodes.AssignmentNode) string {
	id := dv.addNode("Assignment\\n"+n.Column+" =", colorAssignment)
	dv.connectToParent(id)
	dv.visitChild(id, "VALUE", n.Value)
	return id
}

func (dv *DotVisitor) VisitDeleteStatement(n *nodes.DeleteStatement) string {
	id := dv.addNode("DeleteStatement", colorAssignment)
	dv.connectToParent(id)
	if n.From != nil {
		dv.visitChild(id, "FROM", n.From)
	}
	if n.Where != nil {
		dv.visitChild(id, "WHERE", n.Where)
	}
	return id
}
