// Package visitors renders statement trees as SQL text.
//
// Generate walks a tree with a single printer that implements nodes.Visitor.
// The printer owns the traversal order and clause layout; everything lexical
// (identifier quoting, literal formatting, operator and join keywords) is
// delegated to a dialects.Dialect. Nothing is reordered and no parentheses
// are added that are not GroupingNode or subquery nodes in the tree.
package visitors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/nodes"
)

// Aggregate function SQL names.
var aggregateFuncSQL = [...]string{
	nodes.AggCount: "COUNT",
	nodes.AggSum:   "SUM",
	nodes.AggAvg:   "AVG",
	nodes.AggMin:   "MIN",
	nodes.AggMax:   "MAX",
}

// Window function SQL names.
var windowFuncSQL = [...]string{
	nodes.WinRowNumber: "ROW_NUMBER",
	nodes.WinRank:      "RANK",
	nodes.WinDenseRank: "DENSE_RANK",
	nodes.WinNtile:     "NTILE",
	nodes.WinLag:       "LAG",
	nodes.WinLead:      "LEAD",
}

func aggregateName(f nodes.AggregateFunc) (string, bool) {
	if f < 0 || int(f) >= len(aggregateFuncSQL) {
		return "", false
	}
	return aggregateFuncSQL[f], true
}

func windowName(f nodes.WindowFunc) (string, bool) {
	if f < 0 || int(f) >= len(windowFuncSQL) {
		return "", false
	}
	return windowFuncSQL[f], true
}

// Option configures a single Generate call.
type Option func(*printer)

// WithIndent lays the outermost statement out over several lines: every
// clause starts a new line, list items continue with a leading comma and
// chained predicates continue on an indented line. Subqueries and CTE
// bodies stay on one line. Only whitespace differs from the compact form.
func WithIndent() Option {
	return func(p *printer) {
		p.indent = true
	}
}

// Generate renders stmt under dialect d. It is deterministic and keeps no
// state between calls. On failure it returns an empty string and the first
// error encountered; no partial SQL is ever returned.
func Generate(d dialects.Dialect, stmt nodes.Node, opts ...Option) (string, error) {
	if d == nil {
		return "", errors.New("visitors: nil dialect")
	}
	if stmt == nil {
		return "", fmt.Errorf("%w: nothing to render", nodes.ErrEmptyStatement)
	}
	p := &printer{d: d}
	for _, o := range opts {
		o(p)
	}
	sql := stmt.Accept(p)
	if p.err != nil {
		return "", p.err
	}
	return sql, nil
}

// scope is the set of table references a statement makes visible to its
// column references.
type scope struct {
	refs []*nodes.Table
	// byName qualifies columns with the table name rather than the alias.
	// UPDATE and INSERT targets are written without an alias.
	byName bool
}

type printer struct {
	d      dialects.Dialect
	indent bool
	depth  int // statement nesting; 1 is the outermost statement
	scopes []scope
	err    error
}

var _ nodes.Visitor = (*printer)(nil)

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) enter(s scope) {
	p.scopes = append(p.scopes, s)
	p.depth++
}

func (p *printer) leave() {
	p.scopes = p.scopes[:len(p.scopes)-1]
	p.depth--
}

// visit renders a child node, failing on a missing operand.
func (p *printer) visit(n nodes.Node) string {
	if n == nil {
		p.fail(fmt.Errorf("%w: missing operand", nodes.ErrUnsupportedNode))
		return ""
	}
	return n.Accept(p)
}

func (p *printer) indented() bool {
	return p.indent && p.depth <= 1
}

// clauseSep precedes FROM, WHERE, GROUP BY and the other clause keywords.
func (p *printer) clauseSep() string {
	if p.indented() {
		return "\n"
	}
	return " "
}

func (p *printer) listSep() string {
	if p.indented() {
		return "\n\t,"
	}
	return ", "
}

// qualifier returns the prefix used for columns of rel, searching the
// innermost scope first so correlated subqueries see enclosing tables. A
// match in an enclosing scope fails if a nested scope has bound the same
// prefix to a different reference, since the text would bind to the inner
// table.
func (p *printer) qualifier(rel *nodes.Table, column string) (string, error) {
	if rel == nil {
		return "", unresolved(rel, column)
	}
	for i := len(p.scopes) - 1; i >= 0; i-- {
		for _, ref := range p.scopes[i].refs {
			if !nodes.SameRef(ref, rel) {
				continue
			}
			q := p.scopes[i].prefix(ref)
			for _, inner := range p.scopes[i+1:] {
				for _, other := range inner.refs {
					if !nodes.SameRef(other, rel) && inner.prefix(other) == q {
						return "", fmt.Errorf("%w: %s.%s refers to %s, but %q is rebound to %s in a nested query",
							nodes.ErrAliasCollision, q, column, rel.Name, q, other.Name)
					}
				}
			}
			return q, nil
		}
	}
	return "", unresolved(rel, column)
}

// prefix is the text columns of ref are qualified with inside s.
func (s scope) prefix(ref *nodes.Table) string {
	if s.byName || ref.Alias == "" {
		return ref.Name
	}
	return ref.Alias
}

// relation renders a table as it appears in FROM and JOIN: name then alias.
func (p *printer) relation(t *nodes.Table) string {
	if t.Alias == "" {
		return t.Name
	}
	return t.Name + " " + t.Alias
}

func (p *printer) VisitTable(n *nodes.Table) string {
	return p.relation(n)
}

func (p *printer) VisitAttribute(n *nodes.Attribute) string {
	q, err := p.qualifier(n.Relation, n.Name)
	if err != nil {
		p.fail(err)
		return ""
	}
	return q + "." + p.d.QuoteIdentifier(n.Name)
}

func (p *printer) VisitStar(n *nodes.StarNode) string {
	if n.Table == nil {
		return "*"
	}
	q, err := p.qualifier(n.Table, "*")
	if err != nil {
		p.fail(err)
		return ""
	}
	return q + ".*"
}

func unresolved(rel *nodes.Table, column string) error {
	if rel == nil {
		return fmt.Errorf("%w: column %s has no table", nodes.ErrUnresolvedColumn, column)
	}
	return fmt.Errorf("%w: %s.%s refers to %s %s, which is not in scope",
		nodes.ErrUnresolvedColumn, rel.Alias, column, rel.Name, rel.Alias)
}

func (p *printer) VisitLiteral(n *nodes.LiteralNode) string {
	s, err := p.d.FormatLiteral(n.Value)
	if err != nil {
		p.fail(err)
		return ""
	}
	return s
}

func (p *printer) VisitConstant(n *nodes.ConstantNode) string {
	return n.Text
}

func (p *printer) VisitBinary(n *nodes.BinaryNode) string {
	left := p.visit(n.Left)
	right := p.visit(n.Right)
	return left + " " + p.operator(n.Op) + " " + right
}

func (p *printer) operator(op nodes.BinaryOp) string {
	s := p.d.SpellOperator(op)
	if s == "" {
		p.fail(fmt.Errorf("%w: operator %d has no spelling", nodes.ErrUnsupportedNode, op))
	}
	return s
}

func (p *printer) VisitChain(n *nodes.ChainNode) string {
	return p.chain(n, " ")
}

// chain renders links in declaration order; brk precedes each connective.
func (p *printer) chain(n *nodes.ChainNode, brk string) string {
	var sb strings.Builder
	for i, l := range n.Links {
		if i > 0 {
			sb.WriteString(brk)
			sb.WriteString(p.operator(l.Connective.Op()))
			sb.WriteString(" ")
		}
		sb.WriteString(p.visit(l.Expr))
	}
	return sb.String()
}

func (p *printer) VisitUnary(n *nodes.UnaryNode) string {
	expr := p.visit(n.Expr)
	switch n.Op {
	case nodes.OpIsNull:
		return expr + " IS NULL"
	case nodes.OpIsNotNull:
		return expr + " IS NOT NULL"
	default:
		p.fail(fmt.Errorf("%w: unary operator %d", nodes.ErrUnsupportedNode, n.Op))
		return ""
	}
}

func (p *printer) VisitNot(n *nodes.NotNode) string {
	return "NOT " + p.visit(n.Expr)
}

func (p *printer) VisitIn(n *nodes.InNode) string {
	expr := p.visit(n.Expr)
	keyword := " IN ("
	if n.Negate {
		keyword = " NOT IN ("
	}
	if n.Subquery != nil {
		return expr + keyword + p.visit(n.Subquery) + ")"
	}
	if len(n.Vals) == 0 {
		p.fail(fmt.Errorf("%w: IN list is empty", nodes.ErrEmptyStatement))
		return ""
	}
	vals := make([]string, len(n.Vals))
	for i, v := range n.Vals {
		vals[i] = p.visit(v)
	}
	return expr + keyword + strings.Join(vals, ", ") + ")"
}

func (p *printer) VisitBetween(n *nodes.BetweenNode) string {
	keyword := " BETWEEN "
	if n.Negate {
		keyword = " NOT BETWEEN "
	}
	return p.visit(n.Expr) + keyword + p.visit(n.Low) + " AND " + p.visit(n.High)
}

func (p *printer) VisitGrouping(n *nodes.GroupingNode) string {
	return "(" + p.visit(n.Expr) + ")"
}

func (p *printer) VisitExists(n *nodes.ExistsNode) string {
	prefix := "EXISTS ("
	if n.Negated {
		prefix = "NOT EXISTS ("
	}
	return prefix + p.visit(n.Subquery) + ")"
}

func (p *printer) VisitSubquery(n *nodes.SubqueryNode) string {
	return "(" + p.visit(n.Query) + ")"
}

func (p *printer) VisitAlias(n *nodes.AliasNode) string {
	return p.visit(n.Expr) + " AS " + p.d.QuoteIdentifier(n.Name)
}

func (p *printer) VisitOrdering(n *nodes.OrderingNode) string {
	if n.Direction == nodes.Desc {
		return p.visit(n.Expr) + " DESC"
	}
	return p.visit(n.Expr) + " ASC"
}

func (p *printer) VisitAggregate(n *nodes.AggregateNode) string {
	name, ok := aggregateName(n.Func)
	if !ok {
		p.fail(fmt.Errorf("%w: aggregate function %d", nodes.ErrUnsupportedNode, n.Func))
		return ""
	}
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString("(")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	if n.Expr == nil {
		sb.WriteString("*")
	} else {
		sb.WriteString(p.visit(n.Expr))
	}
	sb.WriteString(")")
	return sb.String()
}

func (p *printer) VisitWindowFunction(n *nodes.WindowFuncNode) string {
	name, ok := windowName(n.Func)
	if !ok {
		p.fail(fmt.Errorf("%w: window function %d", nodes.ErrUnsupportedNode, n.Func))
		return ""
	}
	return name + "(" + p.args(n.Args) + ")"
}

func (p *printer) args(args []nodes.Node) string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = p.visit(a)
	}
	return strings.Join(out, ", ")
}

func (p *printer) VisitOver(n *nodes.OverNode) string {
	return p.visit(n.Expr) + " OVER " + p.window(n.Window)
}

// window renders (PARTITION BY ... ORDER BY ...), each part only when set.
func (p *printer) window(w *nodes.WindowDefinition) string {
	if w == nil {
		return "()"
	}
	var parts []string
	if len(w.PartitionBy) > 0 {
		parts = append(parts, "PARTITION BY "+p.args(w.PartitionBy))
	}
	if len(w.OrderBy) > 0 {
		orders := make([]string, len(w.OrderBy))
		for i, o := range w.OrderBy {
			orders[i] = p.visit(o)
		}
		parts = append(parts, "ORDER BY "+strings.Join(orders, ", "))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (p *printer) VisitNamedFunction(n *nodes.NamedFunctionNode) string {
	if err := validateFunctionName(n.Name); err != nil {
		p.fail(err)
		return ""
	}
	prefix := n.Name + "("
	if n.Distinct {
		prefix += "DISTINCT "
	}
	return prefix + p.args(n.Args) + ")"
}

// validateFunctionName rejects names with characters outside letters,
// digits and underscores, since function names are emitted unquoted.
func validateFunctionName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: function has no name", nodes.ErrUnsupportedNode)
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != '_' {
			return fmt.Errorf("%w: invalid character %q in function name %q",
				nodes.ErrUnsupportedNode, string(c), name)
		}
	}
	return nil
}

func (p *printer) VisitJoin(n *nodes.JoinNode) string {
	if n.Right == nil {
		p.fail(fmt.Errorf("%w: join has no table", nodes.ErrEmptyStatement))
		return ""
	}
	s := p.d.SpellJoin(n.Type) + " " + p.relation(n.Right)
	if n.On != nil {
		s += " ON " + p.visit(n.On)
	}
	return s
}

func (p *printer) VisitSelectCore(n *nodes.SelectCore) string {
	if n == nil || len(n.Projections) == 0 {
		p.fail(fmt.Errorf("%w: SELECT has no projections", nodes.ErrEmptyStatement))
		return ""
	}
	refs, err := selectScope(n)
	if err != nil {
		p.fail(err)
		return ""
	}
	p.enter(scope{refs: refs})
	defer p.leave()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	p.writeList(&sb, n.Projections)
	if n.From != nil {
		sb.WriteString(p.clauseSep())
		sb.WriteString("FROM ")
		sb.WriteString(p.relation(n.From))
	}
	for _, j := range n.Joins {
		sb.WriteString(p.clauseSep())
		sb.WriteString(p.visit(j))
	}
	p.writeChain(&sb, "WHERE ", n.Where)
	p.writeClause(&sb, "GROUP BY ", n.Groups)
	p.writeChain(&sb, "HAVING ", n.Having)
	if len(n.Orders) > 0 {
		orders := make([]nodes.Node, len(n.Orders))
		for i, o := range n.Orders {
			orders[i] = o
		}
		p.writeClause(&sb, "ORDER BY ", orders)
	}
	p.writeNodeClause(&sb, "LIMIT ", n.Limit)
	p.writeNodeClause(&sb, "OFFSET ", n.Offset)
	return sb.String()
}

// selectScope returns the references a SELECT makes visible. Aliases must
// be unique and every join must hang off a table joined before it.
func selectScope(n *nodes.SelectCore) ([]*nodes.Table, error) {
	if n.From == nil && len(n.Joins) > 0 {
		return nil, fmt.Errorf("%w: SELECT has joins but no FROM table", nodes.ErrEmptyStatement)
	}
	refs := n.Scope()
	seen := make(map[string]*nodes.Table, len(refs))
	for _, ref := range refs {
		if prev, dup := seen[ref.Alias]; dup {
			return nil, fmt.Errorf("%w: %q names both %s and %s in one FROM clause",
				nodes.ErrAliasCollision, ref.Alias, prev.Name, ref.Name)
		}
		seen[ref.Alias] = ref
	}
	for i, j := range n.Joins {
		if j.Right == nil {
			return nil, fmt.Errorf("%w: join #%d has no table", nodes.ErrEmptyStatement, i+1)
		}
		if j.Left != nil && !containsRef(refs[:i+1], j.Left) {
			return nil, fmt.Errorf("%w: join to %s hangs off %s %s, which is not joined before it",
				nodes.ErrUnresolvedColumn, j.Right.Alias, j.Left.Name, j.Left.Alias)
		}
	}
	return refs, nil
}

func containsRef(refs []*nodes.Table, t *nodes.Table) bool {
	for _, r := range refs {
		if nodes.SameRef(r, t) {
			return true
		}
	}
	return false
}

func (p *printer) writeList(sb *strings.Builder, items []nodes.Node) {
	for i, item := range items {
		if i > 0 {
			sb.WriteString(p.listSep())
		}
		sb.WriteString(p.visit(item))
	}
}

// writeClause writes "keyword item1, item2, ..." if items is non-empty.
func (p *printer) writeClause(sb *strings.Builder, keyword string, items []nodes.Node) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(p.clauseSep())
	sb.WriteString(keyword)
	p.writeList(sb, items)
}

// writeNodeClause writes "keyword node" if node is non-nil.
func (p *printer) writeNodeClause(sb *strings.Builder, keyword string, n nodes.Node) {
	if n == nil {
		return
	}
	sb.WriteString(p.clauseSep())
	sb.WriteString(keyword)
	sb.WriteString(p.visit(n))
}

func (p *printer) writeChain(sb *strings.Builder, keyword string, c *nodes.ChainNode) {
	if c.Len() == 0 {
		return
	}
	brk := " "
	if p.indented() {
		brk = "\n\t"
	}
	sb.WriteString(p.clauseSep())
	sb.WriteString(keyword)
	sb.WriteString(p.chain(c, brk))
}

func (p *printer) VisitCTE(n *nodes.CTENode) string {
	if n.Ref == nil || n.Query == nil {
		p.fail(fmt.Errorf("%w: CTE has no name or body", nodes.ErrEmptyStatement))
		return ""
	}
	// CTE bodies are independent statements and see no enclosing tables.
	outer := p.scopes
	p.scopes = nil
	body := p.visit(n.Query)
	p.scopes = outer
	return n.Ref.Name + " AS (" + body + ")"
}

func (p *printer) VisitWith(n *nodes.WithNode) string {
	if n == nil || n.Query == nil {
		p.fail(fmt.Errorf("%w: WITH has no main statement", nodes.ErrEmptyStatement))
		return ""
	}
	if err := nodes.ValidateCTEs(n.CTEs); err != nil {
		p.fail(err)
		return ""
	}
	var sb strings.Builder
	if len(n.CTEs) > 0 {
		sb.WriteString("WITH ")
		p.depth++
		for i, c := range n.CTEs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.visit(c))
		}
		p.depth--
		sb.WriteString(p.clauseSep())
	}
	sb.WriteString(p.visit(n.Query))
	return sb.String()
}

func (p *printer) VisitInsertStatement(n *nodes.InsertStatement) string {
	if n == nil || n.Into == nil {
		p.fail(fmt.Errorf("%w: INSERT has no target table", nodes.ErrEmptyStatement))
		return ""
	}
	if len(n.Columns) == 0 || len(n.Values) == 0 {
		p.fail(fmt.Errorf("%w: INSERT INTO %s needs columns and at least one row",
			nodes.ErrEmptyStatement, n.Into.Name))
		return ""
	}
	for i, row := range n.Values {
		if len(row) != len(n.Columns) {
			p.fail(fmt.Errorf("%w: INSERT INTO %s row %d has %d values for %d columns",
				nodes.ErrColumnArity, n.Into.Name, i+1, len(row), len(n.Columns)))
			return ""
		}
	}
	cols, rows := n.Columns, n.Values
	if n.AllColumns {
		cols, rows = sortColumns(cols, rows)
	}

	p.enter(scope{refs: []*nodes.Table{n.Into}, byName: true})
	defer p.leave()

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(n.Into.Name)
	sb.WriteString(" (")
	for i, c := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.d.QuoteIdentifier(c))
	}
	sb.WriteString(")")
	sb.WriteString(p.clauseSep())
	sb.WriteString("VALUES ")
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		sb.WriteString(p.args(row))
		sb.WriteString(")")
	}
	return sb.String()
}

// sortColumns orders columns lexicographically and permutes every row to
// match. The inputs are not modified.
func sortColumns(cols []string, rows [][]nodes.Node) ([]string, [][]nodes.Node) {
	idx := make([]int, len(cols))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return cols[idx[a]] < cols[idx[b]] })

	sorted := make([]string, len(cols))
	for i, j := range idx {
		sorted[i] = cols[j]
	}
	permuted := make([][]nodes.Node, len(rows))
	for r, row := range rows {
		out := make([]nodes.Node, len(row))
		for i, j := range idx {
			out[i] = row[j]
		}
		permuted[r] = out
	}
	return sorted, permuted
}

func (p *printer) VisitUpdateStatement(n *nodes.UpdateStatement) string {
	if n == nil || n.Table == nil {
		p.fail(fmt.Errorf("%w: UPDATE has no target table", nodes.ErrEmptyStatement))
		return ""
	}
	if len(n.Assignments) == 0 {
		p.fail(fmt.Errorf("%w: UPDATE %s has no assignments", nodes.ErrEmptyStatement, n.Table.Name))
		return ""
	}

	p.enter(scope{refs: []*nodes.Table{n.Table}, byName: true})
	defer p.leave()

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(n.Table.Name)
	sb.WriteString(p.clauseSep())
	sb.WriteString("SET ")
	for i, a := range n.Assignments {
		if i > 0 {
			sb.WriteString(p.listSep())
		}
		sb.WriteString(p.visit(a))
	}
	p.writeChain(&sb, "WHERE ", n.Where)
	return sb.String()
}

func (p *printer) VisitAssignment(n *nodes.AssignmentNode) string {
	if n.Column == "" || n.Value == nil {
		p.fail(fmt.Errorf("%w: assignment needs a column and a value", nodes.ErrEmptyStatement))
		return ""
	}
	return p.d.QuoteIdentifier(n.Column) + " = " + p.visit(n.Value)
}

func (p *printer) VisitDeleteStatement(n *nodes.DeleteStatement) string {
	if n == nil || n.From == nil {
		p.fail(fmt.Errorf("%w: DELETE has no target table", nodes.ErrEmptyStatement))
		return ""
	}

	p.enter(scope{refs: []*nodes.Table{n.From}})
	defer p.leave()

	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(p.relation(n.From))
	p.writeChain(&sb, "WHERE ", n.Where)
	return sb.String()
}
