package managers

import (
	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/nodes"
	"github.com/bawdo/sqlgen/visitors"
)

// UpdateManager provides a fluent API for building UPDATE statements.
type UpdateManager struct {
	treeManager
	Statement *nodes.UpdateStatement
}

// NewUpdateManager creates a new UpdateManager targeting the given table.
func NewUpdateManager(table *nodes.Table) *UpdateManager {
	return &UpdateManager{
		Statement: &nodes.UpdateStatement{Table: table},
	}
}

// Set adds a column assignment to the SET clause.
// val can be a raw Go value or a Node.
func (m *UpdateManager) Set(col string, val any) *UpdateManager {
	return m.SetExpr(col, nodes.Literal(val))
}

// SetExpr assigns an expression, such as arithmetic on the current value
// or a scalar subquery.
func (m *UpdateManager) SetExpr(col string, expr nodes.Node) *UpdateManager {
	m.Statement.Assignments = append(m.Statement.Assignments, &nodes.AssignmentNode{
		Column: col,
		Value:  expr,
	})
	return m
}

// Where appends conditions to the WHERE chain, each joined with AND.
func (m *UpdateManager) Where(conditions ...nodes.Node) *UpdateManager {
	m.Statement.Where = extend(m.Statement.Where, nodes.ConnAnd, conditions)
	return m
}

// OrWhere appends conditions to the WHERE chain, each joined with OR.
func (m *UpdateManager) OrWhere(conditions ...nodes.Node) *UpdateManager {
	m.Statement.Where = extend(m.Statement.Where, nodes.ConnOr, conditions)
	return m
}

// Indent renders the statement over several lines.
func (m *UpdateManager) Indent() *UpdateManager {
	m.addOption(visitors.WithIndent())
	return m
}

// Node returns a snapshot of the statement.
func (m *UpdateManager) Node() *nodes.UpdateStatement {
	return m.cloneStatement()
}

func (m *UpdateManager) statement() nodes.Node { return m.Node() }

// Accept implements the Node interface by delegating to a snapshot.
func (m *UpdateManager) Accept(v nodes.Visitor) string {
	return m.Node().Accept(v)
}

// ToSQL renders the statement under dialect d.
func (m *UpdateManager) ToSQL(d dialects.Dialect) (string, error) {
	return m.render(d, m.Node())
}

func (m *UpdateManager) cloneStatement() *nodes.UpdateStatement {
	assignments := make([]*nodes.AssignmentNode, len(m.Statement.Assignments))
	copy(assignments, m.Statement.Assignments)

	return &nodes.UpdateStatement{
		Table:       m.Statement.Table,
		Assignments: assignments,
		Where:       m.Statement.Where,
	}
}
