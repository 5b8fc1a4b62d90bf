package managers

import (
	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/nodes"
	"github.com/bawdo/sqlgen/visitors"
)

// treeManager is the shared base for all manager types. It holds the
// render options common to Select, Insert, Update and Delete managers.
type treeManager struct {
	opts []visitors.Option
}

// addOption appends a render option used by every ToSQL call.
func (tm *treeManager) addOption(o visitors.Option) {
	tm.opts = append(tm.opts, o)
}

func (tm *treeManager) render(d dialects.Dialect, n nodes.Node) (string, error) {
	return visitors.Generate(d, n, tm.opts...)
}

// builder is implemented by every manager; it returns a snapshot of the
// statement being built.
type builder interface {
	statement() nodes.Node
}

// extend appends every condition to chain with the given connective.
func extend(chain *nodes.ChainNode, c nodes.Connective, conds []nodes.Node) *nodes.ChainNode {
	for _, cond := range conds {
		chain = chain.Append(c, cond)
	}
	return chain
}
