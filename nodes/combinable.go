package nodes

// Combinable provides logical chaining methods to types that embed it.
// The self field must be set to the embedding node.
type Combinable struct {
	self Node
}

// And creates self AND other.
func (c Combinable) And(other Node) *BinaryNode {
	return NewBinaryNode(c.self, OpAnd, other)
}

// Or creates self OR other. No grouping is added; wrap the result with
// Group when the surrounding expression needs parentheses.
func (c Combinable) Or(other Node) *BinaryNode {
	return NewBinaryNode(c.self, OpOr, other)
}

// Not creates a NotNode negating self.
func (c Combinable) Not() *NotNode {
	return Not(c.self)
}
