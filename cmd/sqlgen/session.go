package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ergochat/readline"

	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/internal/querydoc"
	"github.com/bawdo/sqlgen/managers"
	"github.com/bawdo/sqlgen/nodes"
	"github.com/bawdo/sqlgen/visitors"
)

var errNoQuery = errors.New("no query defined (use 'from <alias>' first)")

// cteEntry is a query pushed with 'with', rendered ahead of the current
// statement.
type cteEntry struct {
	ref   *nodes.Table
	query *managers.SelectManager
}

// dmlMode tracks which kind of statement the REPL is currently building.
type dmlMode int

const (
	modeSelect dmlMode = iota
	modeInsert
	modeUpdate
	modeDelete
	modeDocument
)

// Session holds the REPL state: registered tables, the statement being
// built, the dialect and engine, and the database connection.
type Session struct {
	reg         *nodes.Registry
	parser      *querydoc.Parser
	dialect     dialects.Dialect
	engine      string
	indent      bool
	commands    []commandEntry // sorted by prefix length desc
	conn        *dbConn        // nil when disconnected
	lastDSN     string
	rl          *readline.Instance
	ctes        []cteEntry
	mode        dmlMode
	query       *managers.SelectManager
	insertQuery *managers.InsertManager
	updateQuery *managers.UpdateManager
	deleteQuery *managers.DeleteManager
	document    nodes.Node
	out         io.Writer
}

// NewSession creates a session rendering with d. rl may be nil, in which
// case interactive prompts take their defaults.
func NewSession(d dialects.Dialect, engine string, rl *readline.Instance) *Session {
	s := &Session{
		dialect: d,
		engine:  engine,
		rl:      rl,
		out:     os.Stdout,
	}
	s.resetTables()
	s.initCommands()
	return s
}

func (s *Session) resetTables() {
	s.reg = nodes.NewRegistry()
	s.parser = querydoc.NewParser(s.reg)
}

func (s *Session) lookup(alias string) (*nodes.Table, error) {
	t, ok := s.reg.Lookup(alias)
	if !ok {
		return nil, fmt.Errorf("%w: no table is registered as %q (use 'table <name> [alias]')",
			nodes.ErrUnresolvedColumn, alias)
	}
	return t, nil
}

func (s *Session) setMode(m dmlMode) {
	s.mode = m
	s.query = nil
	s.insertQuery = nil
	s.updateQuery = nil
	s.deleteQuery = nil
	s.document = nil
}

// Execute runs one REPL command line.
func (s *Session) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	lower := strings.ToLower(line)

	for _, cmd := range s.commands {
		if strings.HasSuffix(cmd.prefix, " ") {
			if strings.HasPrefix(lower, cmd.prefix) {
				return cmd.handler(strings.TrimSpace(line[len(cmd.prefix):]))
			}
		} else if lower == cmd.prefix {
			return cmd.handler("")
		}
	}

	word := strings.Fields(line)[0]
	return fmt.Errorf("unknown command: %s (type 'help' for commands)", word)
}

// current returns the statement being built.
func (s *Session) current() (nodes.Node, error) {
	switch s.mode {
	case modeInsert:
		if s.insertQuery == nil {
			return nil, errors.New("no INSERT query defined")
		}
		if err := s.insertQuery.Err(); err != nil {
			return nil, err
		}
		return s.insertQuery, nil
	case modeUpdate:
		if s.updateQuery == nil {
			return nil, errors.New("no UPDATE query defined")
		}
		return s.updateQuery, nil
	case modeDelete:
		if s.deleteQuery == nil {
			return nil, errors.New("no DELETE query defined")
		}
		return s.deleteQuery, nil
	case modeDocument:
		return s.document, nil
	default:
		if s.query == nil {
			return nil, errNoQuery
		}
		return s.query, nil
	}
}

// statement returns the current statement wrapped in its pushed CTEs.
func (s *Session) statement() (nodes.Node, error) {
	n, err := s.current()
	if err != nil || len(s.ctes) == 0 || s.mode == modeDocument {
		return n, err
	}
	w := managers.With(s.ctes[0].ref, s.ctes[0].query)
	for _, c := range s.ctes[1:] {
		w.And(c.ref, c.query)
	}
	with, err := w.Node(n)
	if err != nil {
		return nil, err
	}
	return with, nil
}

// GenerateSQL renders the current statement.
func (s *Session) GenerateSQL() (string, error) {
	n, err := s.statement()
	if err != nil {
		return "", err
	}
	var opts []visitors.Option
	if s.indent {
		opts = append(opts, visitors.WithIndent())
	}
	return visitors.Generate(s.dialect, n, opts...)
}

// --- lists and expressions ---

// splitList splits on commas outside parentheses and quoted strings.
func splitList(s string) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	quoted := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\'':
			quoted = !quoted
		case quoted:
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		case ch == ',' && depth == 0:
			if p := strings.TrimSpace(cur.String()); p != "" {
				parts = append(parts, p)
			}
			cur.Reset()
			continue
		}
		cur.WriteByte(ch)
	}
	if p := strings.TrimSpace(cur.String()); p != "" {
		parts = append(parts, p)
	}
	return parts
}

var aggregateCall = regexp.MustCompile(`(?i)^(count|sum|avg|min|max)\(\s*(distinct\s+)?(.*?)\s*\)$`)

var aggregateByName = map[string]nodes.AggregateFunc{
	"count": nodes.AggCount,
	"sum":   nodes.AggSum,
	"avg":   nodes.AggAvg,
	"min":   nodes.AggMin,
	"max":   nodes.AggMax,
}

// item parses a list item: an expression or aggregate call, optionally
// followed by "AS name".
func (s *Session) item(text string) (nodes.Node, error) {
	var alias string
	if fields := strings.Fields(text); len(fields) >= 3 && strings.EqualFold(fields[len(fields)-2], "as") {
		alias = fields[len(fields)-1]
		text = strings.TrimSpace(text[:strings.LastIndex(strings.ToLower(text), " as ")])
	}

	var n nodes.Node
	if m := aggregateCall.FindStringSubmatch(text); m != nil {
		var arg nodes.Node
		if m[3] != "*" {
			e, err := s.parser.Expr(m[3])
			if err != nil {
				return nil, err
			}
			arg = e
		}
		agg := nodes.NewAggregateNode(aggregateByName[strings.ToLower(m[1])], arg)
		agg.Distinct = m[2] != ""
		n = agg
	} else {
		e, err := s.parser.Expr(text)
		if err != nil {
			return nil, err
		}
		n = e
	}
	if alias != "" {
		n = nodes.NewAliasNode(n, alias)
	}
	return n, nil
}

func (s *Session) items(args string) ([]nodes.Node, error) {
	parts := splitList(args)
	if len(parts) == 0 {
		return nil, errors.New("expected at least one item")
	}
	out := make([]nodes.Node, 0, len(parts))
	for _, p := range parts {
		n, err := s.item(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// --- Command handlers ---

func (s *Session) cmdTable(args string) error {
	parts := strings.Fields(args)
	if len(parts) == 0 || len(parts) > 2 {
		return errors.New("usage: table <name> [alias]")
	}
	ref, err := s.reg.Register(parts[0], parts[1:]...)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "  Registered %s as %s\n", ref.Name, ref.Alias)
	return nil
}

func (s *Session) cmdFrom(args string) error {
	from, err := s.lookup(args)
	if err != nil {
		return err
	}
	s.setMode(modeSelect)
	s.query = managers.NewSelectManager(from)
	fmt.Fprintf(s.out, "  Query FROM %s %s\n", from.Name, from.Alias)
	return nil
}

func (s *Session) cmdSelect(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	projs, err := s.items(args)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	s.query.Select(projs...)
	fmt.Fprintf(s.out, "  Projections set (%d columns)\n", len(projs))
	return nil
}

func (s *Session) cmdDistinct() error {
	if s.query == nil {
		return errNoQuery
	}
	s.query.Distinct()
	fmt.Fprintln(s.out, "  DISTINCT enabled")
	return nil
}

func (s *Session) cmdWhere(args string, or bool) error {
	cond, err := s.parser.Expr(args)
	if err != nil {
		return fmt.Errorf("where: %w", err)
	}
	switch s.mode {
	case modeUpdate:
		if s.updateQuery == nil {
			return errors.New("no UPDATE query defined")
		}
		if or {
			s.updateQuery.OrWhere(cond)
		} else {
			s.updateQuery.Where(cond)
		}
	case modeDelete:
		if s.deleteQuery == nil {
			return errors.New("no DELETE query defined")
		}
		if or {
			s.deleteQuery.OrWhere(cond)
		} else {
			s.deleteQuery.Where(cond)
		}
	case modeSelect:
		if s.query == nil {
			return errNoQuery
		}
		if or {
			s.query.OrWhere(cond)
		} else {
			s.query.Where(cond)
		}
	default:
		return errors.New("where applies to select, update and delete")
	}
	if or {
		fmt.Fprintln(s.out, "  OR condition added")
	} else {
		fmt.Fprintln(s.out, "  WHERE condition added")
	}
	return nil
}

func (s *Session) cmdGroup(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	cols, err := s.items(args)
	if err != nil {
		return fmt.Errorf("group: %w", err)
	}
	s.query.Group(cols...)
	fmt.Fprintf(s.out, "  GROUP BY set (%d columns)\n", len(cols))
	return nil
}

func (s *Session) cmdHaving(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	left, op, right, ok := cutComparison(args)
	var cond nodes.Node
	if ok {
		// The left side may be an aggregate call, which Expr does not read.
		l, err := s.item(left)
		if err != nil {
			return fmt.Errorf("having: %w", err)
		}
		r, err := s.parser.Expr(right)
		if err != nil {
			return fmt.Errorf("having: %w", err)
		}
		cond = nodes.NewBinaryNode(l, op, r)
	} else {
		c, err := s.parser.Expr(args)
		if err != nil {
			return fmt.Errorf("having: %w", err)
		}
		cond = c
	}
	s.query.Having(cond)
	fmt.Fprintln(s.out, "  HAVING condition added")
	return nil
}

var comparisons = []struct {
	token string
	op    nodes.BinaryOp
}{
	{" >= ", nodes.OpGtEq}, {" <= ", nodes.OpLtEq}, {" != ", nodes.OpNotEq}, {" <> ", nodes.OpNotEq},
	{" = ", nodes.OpEq}, {" > ", nodes.OpGt}, {" < ", nodes.OpLt},
}

// cutComparison splits "left <op> right" at the first comparison operator.
func cutComparison(s string) (string, nodes.BinaryOp, string, bool) {
	for _, c := range comparisons {
		if l, r, ok := strings.Cut(s, c.token); ok {
			return strings.TrimSpace(l), c.op, strings.TrimSpace(r), true
		}
	}
	return "", 0, "", false
}

func (s *Session) cmdOrder(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	var orders []*nodes.OrderingNode
	for _, p := range splitList(args) {
		o, err := s.parser.Ordering(p)
		if err != nil {
			return fmt.Errorf("order: %w", err)
		}
		orders = append(orders, o)
	}
	s.query.Order(orders...)
	fmt.Fprintf(s.out, "  ORDER BY added (%d items)\n", len(orders))
	return nil
}

func parseCount(what, args string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("usage: %s <non-negative integer>", what)
	}
	return n, nil
}

func (s *Session) cmdLimit(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	n, err := parseCount("limit", args)
	if err != nil {
		return err
	}
	s.query.Limit(n)
	fmt.Fprintf(s.out, "  LIMIT %d\n", n)
	return nil
}

func (s *Session) cmdOffset(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	n, err := parseCount("offset", args)
	if err != nil {
		return err
	}
	s.query.Offset(n)
	fmt.Fprintf(s.out, "  OFFSET %d\n", n)
	return nil
}

func (s *Session) cmdJoin(args string, joinType nodes.JoinType) error {
	if s.query == nil {
		return errNoQuery
	}
	alias, cond, ok := strings.Cut(args, " ")
	rest := strings.TrimSpace(cond)
	if !ok || !strings.HasPrefix(strings.ToLower(rest), "on ") {
		return errors.New("usage: join <alias> on <condition>")
	}
	right, err := s.lookup(alias)
	if err != nil {
		return err
	}
	on, err := s.parser.Expr(rest[len("on "):])
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}
	s.query.Join(right, joinType).On(on)
	fmt.Fprintf(s.out, "  %s %s %s added\n", joinType, right.Name, right.Alias)
	return nil
}

func (s *Session) cmdCrossJoin(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	right, err := s.lookup(args)
	if err != nil {
		return err
	}
	s.query.CrossJoin(right)
	fmt.Fprintf(s.out, "  CROSS JOIN %s %s added\n", right.Name, right.Alias)
	return nil
}

// cmdWith pushes the current SELECT as a CTE named by args and registers
// its reference so later queries can select from it.
func (s *Session) cmdWith(args string) error {
	if s.mode != modeSelect || s.query == nil {
		return errors.New("with: build a select first, then name it with 'with <name> [alias]'")
	}
	parts := strings.Fields(args)
	if len(parts) == 0 || len(parts) > 2 {
		return errors.New("usage: with <name> [alias]")
	}
	ref, err := s.reg.Register(parts[0], parts[1:]...)
	if err != nil {
		return err
	}
	s.ctes = append(s.ctes, cteEntry{ref: ref, query: s.query})
	s.query = nil
	fmt.Fprintf(s.out, "  CTE %s pushed (select from %s next)\n", ref.Name, ref.Alias)
	return nil
}

func (s *Session) cmdInsertInto(args string) error {
	into, err := s.lookup(args)
	if err != nil {
		return err
	}
	s.setMode(modeInsert)
	s.insertQuery = managers.NewInsertManager(into)
	fmt.Fprintf(s.out, "  INSERT INTO %s\n", into.Name)
	return nil
}

func (s *Session) cmdColumns(args string) error {
	if s.mode != modeInsert || s.insertQuery == nil {
		return errors.New("columns: use 'insert into <alias>' first")
	}
	cols := splitList(args)
	s.insertQuery.Columns(cols...)
	fmt.Fprintf(s.out, "  Columns set (%d)\n", len(cols))
	return nil
}

func (s *Session) cmdValues(args string) error {
	if s.mode != modeInsert || s.insertQuery == nil {
		return errors.New("values: use 'insert into <alias>' first")
	}
	var row []any
	for _, p := range splitList(args) {
		v, err := s.parser.Expr(p)
		if err != nil {
			return fmt.Errorf("values: %w", err)
		}
		row = append(row, v)
	}
	s.insertQuery.Values(row...)
	fmt.Fprintf(s.out, "  Row added (%d values)\n", len(row))
	return nil
}

func (s *Session) cmdUpdate(args string) error {
	table, err := s.lookup(args)
	if err != nil {
		return err
	}
	s.setMode(modeUpdate)
	s.updateQuery = managers.NewUpdateManager(table)
	fmt.Fprintf(s.out, "  UPDATE %s\n", table.Name)
	return nil
}

func (s *Session) cmdSet(args string) error {
	if s.mode != modeUpdate || s.updateQuery == nil {
		return errors.New("set: use 'update <alias>' first")
	}
	col, expr, ok := strings.Cut(args, "=")
	col = strings.TrimSpace(col)
	if !ok || col == "" {
		return errors.New("usage: set <column> = <expression>")
	}
	v, err := s.parser.Expr(strings.TrimSpace(expr))
	if err != nil {
		return fmt.Errorf("set: %w", err)
	}
	s.updateQuery.SetExpr(col, v)
	fmt.Fprintf(s.out, "  SET %s added\n", col)
	return nil
}

func (s *Session) cmdDeleteFrom(args string) error {
	from, err := s.lookup(args)
	if err != nil {
		return err
	}
	s.setMode(modeDelete)
	s.deleteQuery = managers.NewDeleteManager(from)
	fmt.Fprintf(s.out, "  DELETE FROM %s\n", from.Name)
	return nil
}

// cmdLoad replaces the current statement with a query document.
func (s *Session) cmdLoad(args string) error {
	data, err := os.ReadFile(args)
	if err != nil {
		return err
	}
	doc, err := querydoc.Parse(data)
	if err != nil {
		return err
	}
	stmt, err := doc.Build()
	if err != nil {
		return err
	}
	s.setMode(modeDocument)
	s.ctes = nil
	s.document = stmt
	if doc.Dialect != "" {
		if err := s.cmdDialect(doc.Dialect); err != nil {
			return err
		}
	}
	fmt.Fprintf(s.out, "  Loaded %s\n", args)
	return nil
}

func (s *Session) cmdSQL() error {
	sql, err := s.GenerateSQL()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "  %s;\n", sql)
	return nil
}

// cmdDot prints the statement tree as a Graphviz graph, or writes it to
// the file named by args.
func (s *Session) cmdDot(args string) error {
	n, err := s.statement()
	if err != nil {
		return err
	}
	dot := visitors.Dot(n)
	if args == "" {
		fmt.Fprint(s.out, dot)
		return nil
	}
	if err := os.WriteFile(args, []byte(dot), 0o600); err != nil {
		return fmt.Errorf("failed to write DOT file: %w", err)
	}
	fmt.Fprintf(s.out, "  Wrote DOT to %s\n", args)
	return nil
}

func (s *Session) cmdDialect(args string) error {
	d, err := dialects.ByName(args)
	if err != nil {
		return err
	}
	s.dialect = d
	fmt.Fprintf(s.out, "  Dialect: %s\n", d)
	return nil
}

func (s *Session) cmdEngine(args string) error {
	engine := strings.ToLower(args)
	d, ok := engineDialect[engine]
	if !ok {
		return fmt.Errorf("unknown engine %q (known: %s)", args, strings.Join(engineNames, ", "))
	}
	s.engine = engine
	s.dialect = d
	fmt.Fprintf(s.out, "  Engine: %s (dialect %s)\n", engine, d)
	return nil
}

func (s *Session) cmdIndent() error {
	s.indent = !s.indent
	state := "off"
	if s.indent {
		state = "on"
	}
	fmt.Fprintf(s.out, "  Indented output %s\n", state)
	return nil
}

func (s *Session) cmdConnect(args string) error {
	if s.conn != nil {
		return fmt.Errorf("already connected to %s (use 'disconnect' first)", sanitizeDSN(s.conn.dsn))
	}
	if args != "" {
		return s.connectWithDSN(args)
	}
	if s.lastDSN != "" {
		choice := prompt(s.rl, fmt.Sprintf("Reconnect to %s? (y/n/setup)", sanitizeDSN(s.lastDSN)), "y")
		switch strings.ToLower(choice) {
		case "y", "yes":
			return s.connectWithDSN(s.lastDSN)
		case "s", "setup":
		default:
			fmt.Fprintln(s.out, "  Connect cancelled")
			return nil
		}
	}
	return s.connectViaWizard()
}

func (s *Session) connectWithDSN(dsn string) error {
	ctx := context.Background()
	conn, err := connect(ctx, s.engine, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := conn.loadSchema(ctx); err != nil {
		// Completion only; the connection is still usable.
		fmt.Fprintf(s.out, "  Note: schema introspection failed: %v\n", err)
	}
	s.conn = conn
	s.lastDSN = dsn
	fmt.Fprintf(s.out, "  Connected to %s (%s)\n", sanitizeDSN(dsn), s.engine)
	return nil
}

func (s *Session) connectViaWizard() error {
	var dsn string
	switch s.engine {
	case "sqlite":
		dsn = buildSQLiteDSN(s.rl)
	case "mysql":
		dsn = buildMySQLDSN(s.rl)
	case "postgres":
		dsn = buildPostgresDSN(s.rl)
	default:
		return fmt.Errorf("engine %s has no connection", s.engine)
	}
	if dsn == "" {
		fmt.Fprintln(s.out, "  No connection configured")
		return nil
	}
	fmt.Fprintf(s.out, "  DSN: %s\n", sanitizeDSN(dsn))
	return s.connectWithDSN(dsn)
}

func (s *Session) cmdDisconnect() error {
	if s.conn == nil {
		return errors.New("not connected")
	}
	dsn := sanitizeDSN(s.conn.dsn)
	if err := s.conn.close(); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	s.conn = nil
	fmt.Fprintf(s.out, "  Disconnected from %s\n", dsn)
	return nil
}

// cmdExec runs the current statement on the connected database.
func (s *Session) cmdExec() error {
	if s.conn == nil {
		return errors.New("not connected (use 'connect <dsn>' first)")
	}
	if s.conn.engine != s.engine {
		fmt.Fprintf(s.out, "  Warning: connected to %s but engine is set to %s\n", s.conn.engine, s.engine)
	}
	sql, err := s.GenerateSQL()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "  %s;\n", sql)
	result, err := s.conn.execQuery(context.Background(), sql)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, result)
	return nil
}

// cmdCheck has the engine prepare the current statement without running it.
func (s *Session) cmdCheck() error {
	sql, err := s.GenerateSQL()
	if err != nil {
		return err
	}
	if s.engine == "clickhouse" {
		err = checkClickHouse(sql)
	} else {
		if s.conn == nil {
			return errors.New("not connected (use 'connect <dsn>' first)")
		}
		err = s.conn.prepare(context.Background(), sql)
	}
	if err != nil {
		return fmt.Errorf("%s rejected the statement: %w", s.engine, err)
	}
	fmt.Fprintf(s.out, "  %s accepts the statement\n", s.engine)
	return nil
}

// cmdSchema runs a SQL script on the connection, e.g. to create tables.
func (s *Session) cmdSchema(args string) error {
	if s.conn == nil {
		return errors.New("not connected (use 'connect <dsn>' first)")
	}
	script, err := os.ReadFile(args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := s.conn.execScript(ctx, string(script)); err != nil {
		return err
	}
	if err := s.conn.loadSchema(ctx); err != nil {
		fmt.Fprintf(s.out, "  Note: schema introspection failed: %v\n", err)
	}
	fmt.Fprintf(s.out, "  Applied %s\n", args)
	return nil
}

func (s *Session) cmdReset() error {
	s.setMode(modeSelect)
	s.ctes = nil
	s.resetTables()
	fmt.Fprintln(s.out, "  Query and tables cleared")
	return nil
}

func (s *Session) cmdTables() error {
	tables := s.reg.Tables()
	if len(tables) == 0 {
		fmt.Fprintln(s.out, "  No tables registered")
		return nil
	}
	for _, t := range tables {
		fmt.Fprintf(s.out, "  %s %s\n", t.Name, t.Alias)
	}
	return nil
}

func (s *Session) cmdHelp() {
	fmt.Fprint(s.out, `  Tables:
    table <name> [alias]          register a table reference (alias defaults to <name>Ref)
    tables                        list registered references
  Select:
    from <alias>                  start a select
    select <item>, ...            set projections (alias.Col, alias.*, count(*), ... AS name)
    distinct                      SELECT DISTINCT
    where <expr>                  add an AND condition
    or <expr>                     add an OR condition
    [left|right|full] join <alias> on <expr>
    cross join <alias>
    group <item>, ...             GROUP BY
    having <expr>                 add a HAVING condition
    order <expr> [asc|desc], ...  ORDER BY
    limit <n> / offset <n>
    with <name> [alias]           push the current select as a CTE
  DML:
    insert into <alias>, columns <c>, ..., values <v>, ...
    update <alias>, set <col> = <expr>, where <expr>
    delete from <alias>, where <expr>
  Output:
    sql                           print the SQL
    dot [file]                    print or write the Graphviz graph
    load <file>                   load a query document
    dialect <name> / engine <name> / indent
  Database:
    connect [dsn] / disconnect / schema <file> / exec / check
  reset, help, exit
`)
}
