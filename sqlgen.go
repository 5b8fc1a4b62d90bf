// Package sqlgen builds SQL statements as typed trees and prints them for
// a chosen dialect.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/bawdo/sqlgen/managers (query builders)
//   - github.com/bawdo/sqlgen/nodes (AST nodes)
//   - github.com/bawdo/sqlgen/visitors (SQL and DOT generation)
//   - github.com/bawdo/sqlgen/dialects (lexical rules per engine)
package sqlgen

import (
	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/managers"
	"github.com/bawdo/sqlgen/nodes"
	"github.com/bawdo/sqlgen/visitors"
)

// --- Manager Types ---

// SelectManager provides a fluent API for building SELECT queries.
type SelectManager = managers.SelectManager

// InsertManager provides a fluent API for building INSERT queries.
type InsertManager = managers.InsertManager

// UpdateManager provides a fluent API for building UPDATE queries.
type UpdateManager = managers.UpdateManager

// DeleteManager provides a fluent API for building DELETE queries.
type DeleteManager = managers.DeleteManager

// WithManager collects CTEs for a WITH clause.
type WithManager = managers.WithManager

// --- Manager Constructors ---

// NewSelect creates a new SelectManager with the given table as FROM.
func NewSelect(from *nodes.Table) *managers.SelectManager {
	return managers.NewSelectManager(from)
}

// NewInsert creates a new InsertManager for inserting into the given table.
func NewInsert(into *nodes.Table) *managers.InsertManager {
	return managers.NewInsertManager(into)
}

// NewUpdate creates a new UpdateManager for updating the given table.
func NewUpdate(table *nodes.Table) *managers.UpdateManager {
	return managers.NewUpdateManager(table)
}

// NewDelete creates a new DeleteManager for deleting from the given table.
func NewDelete(from *nodes.Table) *managers.DeleteManager {
	return managers.NewDeleteManager(from)
}

// With starts a WITH clause with one CTE.
func With(ref *nodes.Table, query *managers.SelectManager) *managers.WithManager {
	return managers.With(ref, query)
}

// --- Core Node Types ---

// Table is one aliased occurrence of a table or CTE.
type Table = nodes.Table

// Attribute represents a column reference (alias.column).
type Attribute = nodes.Attribute

// Node is the base interface all AST nodes implement.
type Node = nodes.Node

// --- Common Node Constructors ---

// NewTable creates a table reference with the default alias.
func NewTable(name string) *nodes.Table {
	return nodes.NewTable(name)
}

// NewTableAs creates a table reference with an explicit alias.
func NewTableAs(name, alias string) *nodes.Table {
	return nodes.NewTableAs(name, alias)
}

// Literal creates a SQL literal node (e.g., numbers, strings).
func Literal(value any) nodes.Node {
	return nodes.Literal(value)
}

// Star creates an unqualified star (*) for SELECT *.
func Star() *nodes.StarNode {
	return nodes.Star()
}

// Group wraps an expression in explicit parentheses.
func Group(expr nodes.Node) *nodes.GroupingNode {
	return nodes.Group(expr)
}

// --- Aggregate Functions ---

// Count creates a COUNT(expr) aggregate; nil counts rows.
func Count(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Count(expr)
}

// Sum creates a SUM(expr) aggregate.
func Sum(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Sum(expr)
}

// Avg creates an AVG(expr) aggregate.
func Avg(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Avg(expr)
}

// Min creates a MIN(expr) aggregate.
func Min(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Min(expr)
}

// Max creates a MAX(expr) aggregate.
func Max(expr nodes.Node) *nodes.AggregateNode {
	return nodes.Max(expr)
}

// CountDistinct creates a COUNT(DISTINCT expr) aggregate.
func CountDistinct(expr nodes.Node) *nodes.AggregateNode {
	return nodes.CountDistinct(expr)
}

// --- Dialects ---

// Dialect decides identifier quoting, literal formatting and keywords.
type Dialect = dialects.Dialect

// Built-in dialects.
var (
	ANSI       = dialects.ANSI
	SQLite     = dialects.SQLite
	Postgres   = dialects.Postgres
	MySQL      = dialects.MySQL
	ClickHouse = dialects.ClickHouse
)

// DialectByName looks a dialect up by name or alias (e.g. "pg", "sqlite3").
func DialectByName(name string) (dialects.Dialect, error) {
	return dialects.ByName(name)
}

// --- Generation ---

// Generate renders stmt under dialect d.
func Generate(d dialects.Dialect, stmt nodes.Node, opts ...visitors.Option) (string, error) {
	return visitors.Generate(d, stmt, opts...)
}

// WithIndent lays the outermost statement out over several lines.
func WithIndent() visitors.Option {
	return visitors.WithIndent()
}

// Dot returns the Graphviz graph of a tree.
func Dot(n nodes.Node) string {
	return visitors.Dot(n)
}
