package managers

import (
	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/nodes"
	"github.com/bawdo/sqlgen/visitors"
)

// DeleteManager provides a fluent API for building DELETE statements.
type DeleteManager struct {
	treeManager
	Statement *nodes.DeleteStatement
}

// NewDeleteManager creates a new DeleteManager targeting the given table.
func NewDeleteManager(from *nodes.Table) *DeleteManager {
	return &DeleteManager{
		Statement: &nodes.DeleteStatement{From: from},
	}
}

// Where appends conditions to the WHERE chain, each joined with AND.
func (m *DeleteManager) Where(conditions ...nodes.Node) *DeleteManager {
	m.Statement.Where = extend(m.Statement.Where, nodes.ConnAnd, conditions)
	return m
}

// OrWhere appends conditions to the WHERE chain, each joined with OR.
func (m *DeleteManager) OrWhere(conditions ...nodes.Node) *DeleteManager {
	m.Statement.Where = extend(m.Statement.Where, nodes.ConnOr, conditions)
	return m
}

// Indent renders the statement over several lines.
func (m *DeleteManager) Indent() *DeleteManager {
	m.addOption(visitors.WithIndent())
	return m
}

// Node returns a snapshot of the statement.
func (m *DeleteManager) Node() *nodes.DeleteStatement {
	return &nodes.DeleteStatement{From: m.Statement.From, Where: m.Statement.Where}
}

func (m *DeleteManager) statement() nodes.Node { return m.Node() }

// Accept implements the Node interface by delegating to a snapshot.
func (m *DeleteManager) Accept(v nodes.Visitor) string {
	return m.Node().Accept(v)
}

// ToSQL renders the statement under dialect d.
func (m *DeleteManager) ToSQL(d dialects.Dialect) (string, error) {
	return m.render(d, m.Node())
}
