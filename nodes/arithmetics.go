package nodes

// Arithmetics provides math and concatenation methods to types that embed it.
// The self field must be set to the embedding node.
type Arithmetics struct {
	self Node
}

// Plus creates self + val.
func (a Arithmetics) Plus(val any) *BinaryNode {
	return NewBinaryNode(a.self, OpPlus, Literal(val))
}

// Minus creates self - val.
func (a Arithmetics) Minus(val any) *BinaryNode {
	return NewBinaryNode(a.self, OpMinus, Literal(val))
}

// Multiply creates self * val.
func (a Arithmetics) Multiply(val any) *BinaryNode {
	return NewBinaryNode(a.self, OpMultiply, Literal(val))
}

// Divide creates self / val.
func (a Arithmetics) Divide(val any) *BinaryNode {
	return NewBinaryNode(a.self, OpDivide, Literal(val))
}

// Modulo creates self % val.
func (a Arithmetics) Modulo(val any) *BinaryNode {
	return NewBinaryNode(a.self, OpModulo, Literal(val))
}

// Concat creates self || val.
func (a Arithmetics) Concat(val any) *BinaryNode {
	return NewBinaryNode(a.self, OpConcat, Literal(val))
}
