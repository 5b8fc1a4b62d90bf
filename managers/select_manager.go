// Package managers provides high-level fluent APIs for building SQL ASTs.
//
// Managers are mutable builders. Node returns a snapshot that later calls
// on the manager do not affect, so one manager can emit several statements.
package managers

import (
	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/nodes"
	"github.com/bawdo/sqlgen/visitors"
)

// SelectManager provides a fluent API for building SELECT queries.
type SelectManager struct {
	treeManager
	Core *nodes.SelectCore
}

// NewSelectManager creates a new SelectManager with the given table as FROM.
// If from is nil, the FROM clause is left unset.
func NewSelectManager(from *nodes.Table) *SelectManager {
	return &SelectManager{
		Core: &nodes.SelectCore{From: from},
	}
}

// Select sets the projection list, replacing any existing projections.
// Pass column attributes, stars, literals, or any Node.
func (m *SelectManager) Select(projections ...nodes.Node) *SelectManager {
	m.Core.Projections = projections
	return m
}

// Project is an alias for Select.
func (m *SelectManager) Project(projections ...nodes.Node) *SelectManager {
	return m.Select(projections...)
}

// Distinct enables or disables the DISTINCT modifier on the SELECT clause.
func (m *SelectManager) Distinct(on ...bool) *SelectManager {
	m.Core.Distinct = len(on) == 0 || on[0]
	return m
}

// From sets or changes the FROM table.
func (m *SelectManager) From(table *nodes.Table) *SelectManager {
	m.Core.From = table
	return m
}

// Where appends conditions to the WHERE chain, each joined with AND.
func (m *SelectManager) Where(conditions ...nodes.Node) *SelectManager {
	m.Core.Where = extend(m.Core.Where, nodes.ConnAnd, conditions)
	return m
}

// OrWhere appends conditions to the WHERE chain, each joined with OR.
// Nothing is grouped: a OR b AND c is emitted exactly in that order.
func (m *SelectManager) OrWhere(conditions ...nodes.Node) *SelectManager {
	m.Core.Where = extend(m.Core.Where, nodes.ConnOr, conditions)
	return m
}

// Join adds a join to the query and returns a JoinContext for specifying
// the ON condition. The default join type is InnerJoin and the join hangs
// off the FROM table.
func (m *SelectManager) Join(table *nodes.Table, joinTypes ...nodes.JoinType) *JoinContext {
	jt := nodes.InnerJoin
	if len(joinTypes) > 0 {
		jt = joinTypes[0]
	}
	join := &nodes.JoinNode{
		Left:  m.Core.From,
		Right: table,
		Type:  jt,
	}
	m.Core.Joins = append(m.Core.Joins, join)
	return &JoinContext{manager: m, join: join}
}

// OuterJoin is a convenience for Join with LeftOuterJoin type.
func (m *SelectManager) OuterJoin(table *nodes.Table) *JoinContext {
	return m.Join(table, nodes.LeftOuterJoin)
}

// CrossJoin adds a cross join (no ON clause).
func (m *SelectManager) CrossJoin(table *nodes.Table) *SelectManager {
	m.Core.Joins = append(m.Core.Joins, &nodes.JoinNode{
		Left:  m.Core.From,
		Right: table,
		Type:  nodes.CrossJoin,
	})
	return m
}

// Group appends one or more expressions to the GROUP BY clause.
func (m *SelectManager) Group(columns ...nodes.Node) *SelectManager {
	m.Core.Groups = append(m.Core.Groups, columns...)
	return m
}

// Having appends conditions to the HAVING chain, each joined with AND.
func (m *SelectManager) Having(conditions ...nodes.Node) *SelectManager {
	m.Core.Having = extend(m.Core.Having, nodes.ConnAnd, conditions)
	return m
}

// OrHaving appends conditions to the HAVING chain, each joined with OR.
func (m *SelectManager) OrHaving(conditions ...nodes.Node) *SelectManager {
	m.Core.Having = extend(m.Core.Having, nodes.ConnOr, conditions)
	return m
}

// Order appends to the ORDER BY clause
// (e.g., table.Col("Name").Asc()).
func (m *SelectManager) Order(orderings ...*nodes.OrderingNode) *SelectManager {
	m.Core.Orders = append(m.Core.Orders, orderings...)
	return m
}

// Limit sets the LIMIT value.
func (m *SelectManager) Limit(n int) *SelectManager {
	m.Core.Limit = nodes.Literal(n)
	return m
}

// Offset sets the OFFSET value.
func (m *SelectManager) Offset(n int) *SelectManager {
	m.Core.Offset = nodes.Literal(n)
	return m
}

// Take is an alias for Limit.
func (m *SelectManager) Take(n int) *SelectManager {
	return m.Limit(n)
}

// Indent renders the statement over several lines.
func (m *SelectManager) Indent() *SelectManager {
	m.addOption(visitors.WithIndent())
	return m
}

// Node returns a snapshot of the query.
func (m *SelectManager) Node() *nodes.SelectCore {
	return m.CloneCore()
}

func (m *SelectManager) statement() nodes.Node { return m.Node() }

// Subquery wraps a snapshot of the query for use as a scalar expression.
func (m *SelectManager) Subquery() *nodes.SubqueryNode {
	return nodes.Subquery(m.Node())
}

// ToSQL renders the query under dialect d.
func (m *SelectManager) ToSQL(d dialects.Dialect) (string, error) {
	return m.render(d, m.Node())
}

// Accept implements the Node interface so that a SelectManager can be
// passed wherever a statement is expected. It delegates to a snapshot.
func (m *SelectManager) Accept(v nodes.Visitor) string {
	return m.Node().Accept(v)
}

// CloneCore returns a shallow copy of the SelectCore. Chains are
// immutable, so sharing them is safe.
func (m *SelectManager) CloneCore() *nodes.SelectCore {
	projections := make([]nodes.Node, len(m.Core.Projections))
	copy(projections, m.Core.Projections)

	joins := make([]*nodes.JoinNode, len(m.Core.Joins))
	for i, j := range m.Core.Joins {
		cp := *j
		joins[i] = &cp
	}

	groups := make([]nodes.Node, len(m.Core.Groups))
	copy(groups, m.Core.Groups)

	orders := make([]*nodes.OrderingNode, len(m.Core.Orders))
	copy(orders, m.Core.Orders)

	return &nodes.SelectCore{
		Distinct:    m.Core.Distinct,
		Projections: projections,
		From:        m.Core.From,
		Joins:       joins,
		Where:       m.Core.Where,
		Groups:      groups,
		Having:      m.Core.Having,
		Orders:      orders,
		Limit:       m.Core.Limit,
		Offset:      m.Core.Offset,
	}
}
