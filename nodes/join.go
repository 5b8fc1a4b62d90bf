package nodes

// JoinType represents the type of SQL JOIN.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	CrossJoin
)

// String returns the display name for this join type.
func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "INNER JOIN"
	case LeftOuterJoin:
		return "LEFT OUTER JOIN"
	case RightOuterJoin:
		return "RIGHT OUTER JOIN"
	case FullOuterJoin:
		return "FULL OUTER JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return "JOIN"
	}
}

// JoinNode represents one join in a FROM graph. Joins are rendered left
// to right in the order they appear on the SelectCore.
type JoinNode struct {
	Left  *Table   // table the join hangs off
	Right *Table   // joined table
	Type  JoinType // join type
	On    Node     // join condition (nil for CROSS JOIN)
}

func (n *JoinNode) Accept(v Visitor) string { return v.VisitJoin(n) }
