package nodes

// BinaryOp identifies the operator of a BinaryNode. Dialects spell it.
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNotEq
	OpGt
	OpGtEq
	OpLt
	OpLtEq
	OpLike
	OpNotLike
	OpAnd
	OpOr
	OpPlus
	OpMinus
	OpMultiply
	OpDivide
	OpModulo
	OpConcat
)

var binaryOpNames = [...]string{
	OpEq:       "Eq",
	OpNotEq:    "NotEq",
	OpGt:       "Gt",
	OpGtEq:     "GtEq",
	OpLt:       "Lt",
	OpLtEq:     "LtEq",
	OpLike:     "Like",
	OpNotLike:  "NotLike",
	OpAnd:      "And",
	OpOr:       "Or",
	OpPlus:     "Plus",
	OpMinus:    "Minus",
	OpMultiply: "Multiply",
	OpDivide:   "Divide",
	OpModulo:   "Modulo",
	OpConcat:   "Concat",
}

// String returns the Go-side name of the operator (not its SQL spelling).
func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "BinaryOp(?)"
}

// IsLogical reports whether op is AND or OR.
func (op BinaryOp) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// BinaryNode represents Left Op Right. Nesting is rendered exactly as
// built; the tree carries no notion of precedence.
type BinaryNode struct {
	Predications
	Arithmetics
	Combinable
	Left  Node
	Right Node
	Op    BinaryOp
}

func (n *BinaryNode) Accept(v Visitor) string { return v.VisitBinary(n) }

// NewBinaryNode creates a BinaryNode with properly initialised embedded structs.
func NewBinaryNode(left Node, op BinaryOp, right Node) *BinaryNode {
	n := &BinaryNode{Left: left, Right: right, Op: op}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// UnaryOp identifies a postfix predicate operator.
type UnaryOp int

const (
	OpIsNull UnaryOp = iota
	OpIsNotNull
)

// UnaryNode represents a postfix predicate such as IS NULL.
type UnaryNode struct {
	Combinable
	Expr Node
	Op   UnaryOp
}

func (n *UnaryNode) Accept(v Visitor) string { return v.VisitUnary(n) }

// NewUnaryNode creates a postfix predicate over expr.
func NewUnaryNode(expr Node, op UnaryOp) *UnaryNode {
	n := &UnaryNode{Expr: expr, Op: op}
	n.self = n
	return n
}
