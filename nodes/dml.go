package nodes

// AssignmentNode represents a column = value pair in SET clauses. Value
// may be a literal, any expression, or a SubqueryNode.
type AssignmentNode struct {
	Column string
	Value  Node
}

func (n *AssignmentNode) Accept(v Visitor) string { return v.VisitAssignment(n) }

// InsertStatement represents INSERT INTO ... VALUES.
//
// When AllColumns is set the printer emits Columns sorted lexicographically
// and reorders every row to match, so the output does not depend on the
// order in which the record's fields were declared.
type InsertStatement struct {
	Into       *Table
	Columns    []string
	Values     [][]Node // rows of values (multi-row)
	AllColumns bool
}

func (n *InsertStatement) Accept(v Visitor) string { return v.VisitInsertStatement(n) }

// UpdateStatement represents UPDATE ... SET ... WHERE.
type UpdateStatement struct {
	Table       *Table
	Assignments []*AssignmentNode
	Where       *ChainNode
}

func (n *UpdateStatement) Accept(v Visitor) string { return v.VisitUpdateStatement(n) }

// DeleteStatement represents DELETE FROM ... WHERE.
type DeleteStatement struct {
	From  *Table
	Where *ChainNode
}

func (n *DeleteStatement) Accept(v Visitor) string { return v.VisitDeleteStatement(n) }
