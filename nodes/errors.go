package nodes

import "errors"

// Errors raised while assembling or rendering a statement. They describe
// mistakes in how a tree was put together, so callers are expected to
// fix the tree rather than retry. Use errors.Is to match them; the
// returned errors carry the offending names as context.
var (
	// ErrAliasCollision is returned when two different table references
	// share an alias within one scope.
	ErrAliasCollision = errors.New("alias collision")

	// ErrUnresolvedColumn is returned when a column's table is not part of
	// the statement's FROM/JOIN/CTE scope.
	ErrUnresolvedColumn = errors.New("unresolved column reference")

	// ErrColumnArity is returned when INSERT rows disagree in length with
	// each other or with the column list.
	ErrColumnArity = errors.New("column arity mismatch")

	// ErrEmptyStatement is returned when a statement has no projection or
	// no target table.
	ErrEmptyStatement = errors.New("empty statement")

	// ErrInvalidCTEOrdering is returned when a CTE references a CTE that is
	// defined later in the WITH list, itself, or when CTE names repeat.
	ErrInvalidCTEOrdering = errors.New("invalid CTE ordering")

	// ErrUnsupportedLiteral is returned when a dialect cannot format a
	// literal value.
	ErrUnsupportedLiteral = errors.New("unsupported literal")

	// ErrUnsupportedNode is returned when a node appears in a position the
	// printer cannot render (for example a statement used as a column).
	ErrUnsupportedNode = errors.New("unsupported node")
)
