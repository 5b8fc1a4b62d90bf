package managers

import (
	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/nodes"
	"github.com/bawdo/sqlgen/visitors"
)

// WithManager collects CTE definitions in declaration order.
type WithManager struct {
	treeManager
	ctes []*nodes.CTENode
}

// With starts a WITH clause whose first CTE is named ref.Name. Main
// queries select from the CTE through ref (or another reference with the
// same name and its own alias).
func With(ref *nodes.Table, query *SelectManager) *WithManager {
	return (&WithManager{}).And(ref, query)
}

// And defines another CTE. Its body may read CTEs defined before it.
func (m *WithManager) And(ref *nodes.Table, query *SelectManager) *WithManager {
	var body *nodes.SelectCore
	if query != nil {
		body = query.Node()
	}
	m.ctes = append(m.ctes, nodes.NewCTE(ref, body))
	return m
}

// Indent renders the statement over several lines.
func (m *WithManager) Indent() *WithManager {
	m.addOption(visitors.WithIndent())
	return m
}

// Node attaches the CTEs to main, which may be a statement node or any
// manager, and validates their ordering.
func (m *WithManager) Node(main nodes.Node) (*nodes.WithNode, error) {
	if b, ok := main.(builder); ok {
		main = b.statement()
	}
	return nodes.NewWith(main, m.ctes...)
}

// ToSQL renders WITH ... main under dialect d.
func (m *WithManager) ToSQL(d dialects.Dialect, main nodes.Node) (string, error) {
	if im, ok := main.(*InsertManager); ok && im.Err() != nil {
		return "", im.Err()
	}
	w, err := m.Node(main)
	if err != nil {
		return "", err
	}
	return m.render(d, w)
}
