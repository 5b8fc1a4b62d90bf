// Package dialects provides the lexical rules SQL is rendered under.
//
// A Dialect only decides how things are spelled: identifier quoting,
// literal formatting, and operator and join keywords. It never changes the
// shape of a statement or the order in which its parts are emitted, so a
// new SQL flavour is added by implementing the interface and nothing else.
package dialects

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bawdo/sqlgen/internal/quoting"
	"github.com/bawdo/sqlgen/nodes"
)

// Dialect is the lexical strategy used by the SQL printer.
type Dialect interface {
	// QuoteIdentifier quotes a column identifier.
	QuoteIdentifier(name string) string
	// FormatLiteral renders a Go value as a SQL literal.
	FormatLiteral(value any) (string, error)
	// SpellOperator returns the symbol or keyword for a binary operator.
	SpellOperator(op nodes.BinaryOp) string
	// SpellJoin returns the keyword sequence for a join kind.
	SpellJoin(kind nodes.JoinType) string
}

// Operator spellings shared by every dialect unless overridden.
var standardOperators = [...]string{
	nodes.OpEq:       "=",
	nodes.OpNotEq:    "!=",
	nodes.OpGt:       ">",
	nodes.OpGtEq:     ">=",
	nodes.OpLt:       "<",
	nodes.OpLtEq:     "<=",
	nodes.OpLike:     "LIKE",
	nodes.OpNotLike:  "NOT LIKE",
	nodes.OpAnd:      "AND",
	nodes.OpOr:       "OR",
	nodes.OpPlus:     "+",
	nodes.OpMinus:    "-",
	nodes.OpMultiply: "*",
	nodes.OpDivide:   "/",
	nodes.OpModulo:   "%",
	nodes.OpConcat:   "||",
}

// Join keywords shared by every dialect unless overridden.
var standardJoins = [...]string{
	nodes.InnerJoin:      "INNER JOIN",
	nodes.LeftOuterJoin:  "LEFT OUTER JOIN",
	nodes.RightOuterJoin: "RIGHT OUTER JOIN",
	nodes.FullOuterJoin:  "FULL OUTER JOIN",
	nodes.CrossJoin:      "CROSS JOIN",
}

// lexicon implements Dialect from a handful of tables. Concrete dialects
// embed it and override individual spellings.
type lexicon struct {
	name       string
	quoteIdent func(string) string
	escapeStr  func(string) string
	operators  map[nodes.BinaryOp]string // overrides of standardOperators
	timeLayout string
}

func (l *lexicon) String() string { return l.name }

func (l *lexicon) QuoteIdentifier(name string) string {
	return l.quoteIdent(name)
}

func (l *lexicon) SpellOperator(op nodes.BinaryOp) string {
	if s, ok := l.operators[op]; ok {
		return s
	}
	if op >= 0 && int(op) < len(standardOperators) {
		return standardOperators[op]
	}
	return ""
}

func (l *lexicon) SpellJoin(kind nodes.JoinType) string {
	if kind >= 0 && int(kind) < len(standardJoins) {
		return standardJoins[kind]
	}
	return "JOIN"
}

func (l *lexicon) FormatLiteral(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case string:
		return quoting.SingleQuote(l.escapeStr(v)), nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case time.Time:
		return quoting.SingleQuote(v.Format(l.timeLayout)), nil
	case []byte:
		return "X" + quoting.SingleQuote(strings.ToUpper(fmt.Sprintf("%x", v))), nil
	}

	// Named numeric and string types (type Age int) land here.
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", fmt.Errorf("%w: %s has no literal for %v", nodes.ErrUnsupportedLiteral, l.name, f)
		}
		return strconv.FormatFloat(f, 'g', -1, rv.Type().Bits()), nil
	case reflect.String:
		return quoting.SingleQuote(l.escapeStr(rv.String())), nil
	case reflect.Bool:
		return l.FormatLiteral(rv.Bool())
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL", nil
		}
		return l.FormatLiteral(rv.Elem().Interface())
	}
	return "", fmt.Errorf("%w: %s cannot format %T", nodes.ErrUnsupportedLiteral, l.name, value)
}

var registry = map[string]Dialect{}

func register(d *lexicon, aliases ...string) {
	registry[d.name] = d
	for _, a := range aliases {
		registry[a] = d
	}
}

// ByName returns the dialect registered under name (case-insensitive).
func ByName(name string) (Dialect, error) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names returns the canonical dialect names, sorted.
func Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, d := range registry {
		n := d.(fmt.Stringer).String()
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
