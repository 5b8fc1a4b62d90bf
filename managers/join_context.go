package managers

import "github.com/bawdo/sqlgen/nodes"

// JoinContext is returned by SelectManager.Join() and enforces that
// a join condition is provided via On() before continuing to build
// the query.
type JoinContext struct {
	manager *SelectManager
	join    *nodes.JoinNode
}

// From makes the join hang off left instead of the FROM table. left must
// be the FROM table or a table joined earlier.
func (jc *JoinContext) From(left *nodes.Table) *JoinContext {
	jc.join.Left = left
	return jc
}

// On sets the join condition and returns the SelectManager for
// continued method chaining.
func (jc *JoinContext) On(condition nodes.Node) *SelectManager {
	jc.join.On = condition
	return jc.manager
}
