package nodes

// Predications provides comparison methods to types that embed it.
// The self field must be set to the embedding node so that comparisons
// reference the correct left-hand side.
type Predications struct {
	self Node
}

// Eq creates an equality comparison: self = val.
func (p Predications) Eq(val any) *BinaryNode {
	return NewBinaryNode(p.self, OpEq, Literal(val))
}

// NotEq creates an inequality comparison: self != val.
func (p Predications) NotEq(val any) *BinaryNode {
	return NewBinaryNode(p.self, OpNotEq, Literal(val))
}

// Gt creates a greater-than comparison: self > val.
func (p Predications) Gt(val any) *BinaryNode {
	return NewBinaryNode(p.self, OpGt, Literal(val))
}

// GtEq creates a greater-than-or-equal comparison: self >= val.
func (p Predications) GtEq(val any) *BinaryNode {
	return NewBinaryNode(p.self, OpGtEq, Literal(val))
}

// Lt creates a less-than comparison: self < val.
func (p Predications) Lt(val any) *BinaryNode {
	return NewBinaryNode(p.self, OpLt, Literal(val))
}

// LtEq creates a less-than-or-equal comparison: self <= val.
func (p Predications) LtEq(val any) *BinaryNode {
	return NewBinaryNode(p.self, OpLtEq, Literal(val))
}

// Like creates a LIKE comparison: self LIKE val.
func (p Predications) Like(val any) *BinaryNode {
	return NewBinaryNode(p.self, OpLike, Literal(val))
}

// NotLike creates a NOT LIKE comparison: self NOT LIKE val.
func (p Predications) NotLike(val any) *BinaryNode {
	return NewBinaryNode(p.self, OpNotLike, Literal(val))
}

// In creates an IN predicate: self IN (vals...).
func (p Predications) In(vals ...any) *InNode {
	return p.in(vals, false)
}

// NotIn creates a NOT IN predicate: self NOT IN (vals...).
func (p Predications) NotIn(vals ...any) *InNode {
	return p.in(vals, true)
}

func (p Predications) in(vals []any, negate bool) *InNode {
	wrapped := make([]Node, len(vals))
	for i, v := range vals {
		wrapped[i] = Literal(v)
	}
	return NewIn(p.self, wrapped, negate)
}

// InSubquery creates self IN (<select>).
func (p Predications) InSubquery(query *SelectCore) *InNode {
	return NewInSubquery(p.self, query, false)
}

// NotInSubquery creates self NOT IN (<select>).
func (p Predications) NotInSubquery(query *SelectCore) *InNode {
	return NewInSubquery(p.self, query, true)
}

// Between creates a BETWEEN predicate: self BETWEEN low AND high.
func (p Predications) Between(low, high any) *BetweenNode {
	return NewBetween(p.self, Literal(low), Literal(high), false)
}

// NotBetween creates a NOT BETWEEN predicate: self NOT BETWEEN low AND high.
func (p Predications) NotBetween(low, high any) *BetweenNode {
	return NewBetween(p.self, Literal(low), Literal(high), true)
}

// IsNull creates an IS NULL predicate.
func (p Predications) IsNull() *UnaryNode {
	return NewUnaryNode(p.self, OpIsNull)
}

// IsNotNull creates an IS NOT NULL predicate.
func (p Predications) IsNotNull() *UnaryNode {
	return NewUnaryNode(p.self, OpIsNotNull)
}

// As creates an AliasNode wrapping self with the given alias name.
func (p Predications) As(name string) *AliasNode {
	return NewAliasNode(p.self, name)
}

// Asc creates an ascending ordering node.
func (p Predications) Asc() *OrderingNode {
	return NewOrdering(p.self, Asc)
}

// Desc creates a descending ordering node.
func (p Predications) Desc() *OrderingNode {
	return NewOrdering(p.self, Desc)
}
