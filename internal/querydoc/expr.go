package querydoc

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/bawdo/sqlgen/nodes"
)

// builder turns document fragments into nodes. Every builder resolves
// aliases through its registry; nested queries with their own tables get
// a child scope.
type builder struct {
	reg *nodes.Registry
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}

func (b *builder) register(defs []TableDef) error {
	for _, def := range defs {
		if def.Name == "" {
			return invalid("table without a name")
		}
		if _, err := b.reg.Register(def.Name, def.Alias); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) table(alias string) (*nodes.Table, error) {
	t, ok := b.reg.Lookup(alias)
	if !ok {
		return nil, fmt.Errorf("%w: no table is registered as %q", nodes.ErrUnresolvedColumn, alias)
	}
	return t, nil
}

// expr builds an expression. Strings use the operand syntax, so string
// constants must be single-quoted.
func (b *builder) expr(v any) (nodes.Node, error) {
	switch x := v.(type) {
	case string:
		return b.parse(x)
	case map[string]any:
		return b.mapExpr(x)
	case json.Number, bool, nil:
		return value(x), nil
	default:
		return nil, invalid("unexpected %T in expression", v)
	}
}

// value builds a data value: scalars become literals as they are, maps
// are expressions.
func (b *builder) value(v any) (nodes.Node, error) {
	switch x := v.(type) {
	case map[string]any:
		return b.mapExpr(x)
	case []any:
		return nil, invalid("a list is not a value")
	default:
		return value(x), nil
	}
}

func value(v any) nodes.Node {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return nodes.Literal(i)
		}
		f, _ := n.Float64()
		return nodes.Literal(f)
	}
	return nodes.Literal(v)
}

func (b *builder) exprs(list []any) ([]nodes.Node, error) {
	out := make([]nodes.Node, 0, len(list))
	for _, item := range list {
		n, err := b.expr(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// chain builds a WHERE or HAVING chain. A single predicate becomes a
// one-link chain.
func (b *builder) chain(v any) (*nodes.ChainNode, error) {
	if v == nil {
		return nil, nil
	}
	n, err := b.expr(v)
	if err != nil {
		return nil, err
	}
	if c, ok := n.(*nodes.ChainNode); ok {
		return c, nil
	}
	return nodes.NewChain(n), nil
}

var binaryOps = map[string]nodes.BinaryOp{
	"=":    nodes.OpEq,
	"!=":   nodes.OpNotEq,
	"<>":   nodes.OpNotEq,
	">":    nodes.OpGt,
	">=":   nodes.OpGtEq,
	"<":    nodes.OpLt,
	"<=":   nodes.OpLtEq,
	"LIKE": nodes.OpLike,
	"AND":  nodes.OpAnd,
	"OR":   nodes.OpOr,
	"+":    nodes.OpPlus,
	"-":    nodes.OpMinus,
	"*":    nodes.OpMultiply,
	"/":    nodes.OpDivide,
	"%":    nodes.OpModulo,
	"||":   nodes.OpConcat,
}

// parse reads "<operand> (<op> <operand>)* [IS [NOT] NULL]". Operators
// nest to the left in the order written and print back the same way.
func (b *builder) parse(s string) (nodes.Node, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, invalid("empty expression")
	}
	upper := func(i int) string { return strings.ToUpper(toks[i]) }

	postfix := -1
	n := len(toks)
	switch {
	case n >= 4 && upper(n-3) == "IS" && upper(n-2) == "NOT" && upper(n-1) == "NULL":
		postfix, toks = int(nodes.OpIsNotNull), toks[:n-3]
	case n >= 3 && upper(n-2) == "IS" && upper(n-1) == "NULL":
		postfix, toks = int(nodes.OpIsNull), toks[:n-2]
	}

	left, err := b.operand(toks[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(toks); {
		op, width, ok := operator(toks[i:])
		if !ok {
			return nil, invalid("unknown operator %q in %q", toks[i], s)
		}
		i += width
		if i >= len(toks) {
			return nil, invalid("missing operand after %q in %q", toks[i-1], s)
		}
		right, err := b.operand(toks[i])
		if err != nil {
			return nil, err
		}
		i++
		left = nodes.NewBinaryNode(left, op, right)
	}
	if postfix >= 0 {
		return nodes.NewUnaryNode(left, nodes.UnaryOp(postfix)), nil
	}
	return left, nil
}

func operator(toks []string) (nodes.BinaryOp, int, bool) {
	if len(toks) >= 2 && strings.EqualFold(toks[0], "NOT") && strings.EqualFold(toks[1], "LIKE") {
		return nodes.OpNotLike, 2, true
	}
	op, ok := binaryOps[strings.ToUpper(toks[0])]
	return op, 1, ok
}

func (b *builder) operand(tok string) (nodes.Node, error) {
	switch {
	case tok == "*":
		return nodes.Star(), nil
	case strings.HasPrefix(tok, "'"):
		if len(tok) < 2 || !strings.HasSuffix(tok, "'") {
			return nil, invalid("unterminated string %s", tok)
		}
		return nodes.Literal(strings.ReplaceAll(tok[1:len(tok)-1], "''", "'")), nil
	case strings.EqualFold(tok, "true"):
		return nodes.Literal(true), nil
	case strings.EqualFold(tok, "false"):
		return nodes.Literal(false), nil
	case strings.EqualFold(tok, "null"):
		return nodes.Literal(nil), nil
	}
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return nodes.Literal(i), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return nodes.Literal(f), nil
	}
	alias, col, ok := strings.Cut(tok, ".")
	if !ok || alias == "" || col == "" {
		return nil, invalid("operand %q is not alias.Column, a number, a quoted string or a keyword", tok)
	}
	t, err := b.table(alias)
	if err != nil {
		return nil, err
	}
	if col == "*" {
		return t.Star(), nil
	}
	return t.Col(col), nil
}

// tokenize splits on whitespace, keeping single-quoted strings (with ”
// escapes) whole.
func tokenize(s string) ([]string, error) {
	var toks []string
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '\'':
			j := i + 1
			for {
				if j >= len(s) {
					return nil, invalid("unterminated string in %q", s)
				}
				if s[j] == '\'' {
					if j+1 < len(s) && s[j+1] == '\'' {
						j += 2
						continue
					}
					break
				}
				j++
			}
			toks = append(toks, s[i:j+1])
			i = j + 1
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t\n\r", rune(s[j])) {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks, nil
}

// ordering reads "<expr> [ASC|DESC]".
func (b *builder) ordering(s string) (*nodes.OrderingNode, error) {
	trimmed := strings.TrimSpace(s)
	upper := strings.ToUpper(trimmed)
	dir := nodes.Asc
	switch {
	case strings.HasSuffix(upper, " DESC"):
		dir, trimmed = nodes.Desc, trimmed[:len(trimmed)-len(" DESC")]
	case strings.HasSuffix(upper, " ASC"):
		trimmed = trimmed[:len(trimmed)-len(" ASC")]
	}
	e, err := b.parse(trimmed)
	if err != nil {
		return nil, err
	}
	return nodes.NewOrdering(e, dir), nil
}

// Map expression keys, checked in this order. Exactly one must be present.
var primaries = []string{
	"and", "or", "chain", "group", "not",
	"count", "sum", "avg", "min", "max",
	"in", "exists", "sub", "raw", "over", "fn", "between",
}

var modifiers = map[string][]string{
	"count":   {"distinct"},
	"sum":     {"distinct"},
	"avg":     {"distinct"},
	"min":     {"distinct"},
	"max":     {"distinct"},
	"in":      {"values", "select", "negate"},
	"exists":  {"negate"},
	"over":    {"partition", "order"},
	"fn":      {"args", "distinct"},
	"between": {"low", "high", "negate"},
}

var aggregates = map[string]nodes.AggregateFunc{
	"count": nodes.AggCount,
	"sum":   nodes.AggSum,
	"avg":   nodes.AggAvg,
	"min":   nodes.AggMin,
	"max":   nodes.AggMax,
}

func (b *builder) mapExpr(m map[string]any) (nodes.Node, error) {
	primary := ""
	for _, k := range primaries {
		if _, ok := m[k]; !ok {
			continue
		}
		if primary != "" {
			return nil, invalid("expression has both %q and %q", primary, k)
		}
		primary = k
	}
	keys := slices.Sorted(maps.Keys(m))
	if primary == "" {
		return nil, invalid("no expression key among %v", keys)
	}
	for _, k := range keys {
		if k != primary && k != "as" && !slices.Contains(modifiers[primary], k) {
			return nil, invalid("key %q does not apply to %q", k, primary)
		}
	}

	n, err := b.primary(primary, m)
	if err != nil {
		return nil, err
	}
	if as, ok := m["as"]; ok {
		name, ok := as.(string)
		if !ok || name == "" {
			return nil, invalid("as must be a name")
		}
		n = nodes.NewAliasNode(n, name)
	}
	return n, nil
}

func (b *builder) primary(key string, m map[string]any) (nodes.Node, error) {
	v := m[key]
	switch key {
	case "and", "or":
		list, ok := v.([]any)
		if !ok || len(list) == 0 {
			return nil, invalid("%s needs a non-empty list", key)
		}
		conn := nodes.ConnAnd
		if key == "or" {
			conn = nodes.ConnOr
		}
		var c *nodes.ChainNode
		for _, item := range list {
			e, err := b.expr(item)
			if err != nil {
				return nil, err
			}
			c = c.Append(conn, e)
		}
		return c, nil
	case "chain":
		return b.mixedChain(v)
	case "group":
		e, err := b.expr(v)
		if err != nil {
			return nil, err
		}
		return nodes.Group(e), nil
	case "not":
		e, err := b.expr(v)
		if err != nil {
			return nil, err
		}
		return nodes.Not(e), nil
	case "count", "sum", "avg", "min", "max":
		return b.aggregate(key, m)
	case "in":
		return b.in(m)
	case "exists":
		q, err := b.subselect(v)
		if err != nil {
			return nil, err
		}
		if flag(m, "negate") {
			return nodes.NotExists(q), nil
		}
		return nodes.Exists(q), nil
	case "sub":
		q, err := b.subselect(v)
		if err != nil {
			return nil, err
		}
		return nodes.Subquery(q), nil
	case "raw":
		text, ok := v.(string)
		if !ok {
			return nil, invalid("raw must be a string")
		}
		return nodes.Constant(text), nil
	case "over":
		return b.over(m)
	case "fn":
		return b.function(m)
	case "between":
		return b.between(m)
	}
	return nil, invalid("unknown expression %q", key)
}

func flag(m map[string]any, key string) bool {
	on, _ := m[key].(bool)
	return on
}

// mixedChain reads a list whose first item is a predicate and whose later
// items are {and: expr}, {or: expr} or a bare predicate (joined with AND).
func (b *builder) mixedChain(v any) (nodes.Node, error) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, invalid("chain needs a non-empty list")
	}
	var c *nodes.ChainNode
	for _, item := range list {
		conn := nodes.ConnAnd
		if link, ok := item.(map[string]any); ok && len(link) == 1 {
			for k, inner := range link {
				if _, isList := inner.([]any); isList {
					break
				}
				switch k {
				case "and":
					item = inner
				case "or":
					conn, item = nodes.ConnOr, inner
				}
			}
		}
		e, err := b.expr(item)
		if err != nil {
			return nil, err
		}
		c = c.Append(conn, e)
	}
	return c, nil
}

func (b *builder) aggregate(key string, m map[string]any) (nodes.Node, error) {
	var arg nodes.Node
	if s, ok := m[key].(string); !ok || s != "*" {
		e, err := b.expr(m[key])
		if err != nil {
			return nil, err
		}
		arg = e
	} else if key != "count" {
		return nil, invalid("%s(*) is not an aggregate", strings.ToUpper(key))
	}
	n := nodes.NewAggregateNode(aggregates[key], arg)
	n.Distinct = flag(m, "distinct")
	return n, nil
}

func (b *builder) in(m map[string]any) (nodes.Node, error) {
	e, err := b.expr(m["in"])
	if err != nil {
		return nil, err
	}
	negate := flag(m, "negate")
	if q, ok := m["select"]; ok {
		sel, err := b.subselect(q)
		if err != nil {
			return nil, err
		}
		return nodes.NewInSubquery(e, sel, negate), nil
	}
	list, ok := m["values"].([]any)
	if !ok {
		return nil, invalid("in needs values or select")
	}
	vals, err := b.exprs(list)
	if err != nil {
		return nil, err
	}
	return nodes.NewIn(e, vals, negate), nil
}

func (b *builder) between(m map[string]any) (nodes.Node, error) {
	parts := make([]nodes.Node, 3)
	for i, k := range []string{"between", "low", "high"} {
		v, ok := m[k]
		if !ok {
			return nil, invalid("between needs %s", k)
		}
		e, err := b.expr(v)
		if err != nil {
			return nil, err
		}
		parts[i] = e
	}
	return nodes.NewBetween(parts[0], parts[1], parts[2], flag(m, "negate")), nil
}

func (b *builder) function(m map[string]any) (nodes.Node, error) {
	name, ok := m["fn"].(string)
	if !ok {
		return nil, invalid("fn must be a function name")
	}
	var args []nodes.Node
	if list, ok := m["args"].([]any); ok {
		var err error
		if args, err = b.exprs(list); err != nil {
			return nil, err
		}
	}
	fn := nodes.NewNamedFunction(strings.ToUpper(name), args...)
	fn.Distinct = flag(m, "distinct")
	return fn, nil
}

var windowFuncs = map[string]func() *nodes.WindowFuncNode{
	"row_number": nodes.RowNumber,
	"rank":       nodes.Rank,
	"dense_rank": nodes.DenseRank,
}

func (b *builder) over(m map[string]any) (nodes.Node, error) {
	var fn nodes.Node
	if name, ok := m["over"].(string); ok && windowFuncs[strings.ToLower(name)] != nil {
		fn = windowFuncs[strings.ToLower(name)]()
	} else {
		e, err := b.expr(m["over"])
		if err != nil {
			return nil, err
		}
		fn = e
	}

	def := nodes.NewWindowDef()
	if list, ok := m["partition"].([]any); ok {
		cols, err := b.exprs(list)
		if err != nil {
			return nil, err
		}
		def = def.Partition(cols...)
	}
	if list, ok := m["order"].([]any); ok {
		orders := make([]*nodes.OrderingNode, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, invalid("window order items are strings")
			}
			o, err := b.ordering(s)
			if err != nil {
				return nil, err
			}
			orders = append(orders, o)
		}
		def = def.Order(orders...)
	}
	return nodes.NewOverNode(fn, def), nil
}

// subselect decodes a nested select definition.
func (b *builder) subselect(v any) (*nodes.SelectCore, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, invalid("%v", err)
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	var def SelectDef
	if err := dec.Decode(&def); err != nil {
		return nil, invalid("subquery: %v", err)
	}
	return b.selectCore(&def)
}

// Parser reads single expressions in document syntax against a registry.
type Parser struct {
	b builder
}

// NewParser returns a Parser resolving aliases through reg.
func NewParser(reg *nodes.Registry) *Parser {
	return &Parser{b: builder{reg: reg}}
}

// Expr parses "<operand> (<op> <operand>)* [IS [NOT] NULL]".
func (p *Parser) Expr(s string) (nodes.Node, error) {
	return p.b.parse(s)
}

// Ordering parses "<expr> [ASC|DESC]".
func (p *Parser) Ordering(s string) (*nodes.OrderingNode, error) {
	return p.b.ordering(s)
}
