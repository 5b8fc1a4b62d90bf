package nodes

import "fmt"

// CTENode represents one named Common Table Expression. Ref carries the
// CTE's name (Ref.Name) and the alias main queries use when they select
// from it (Ref.Alias).
type CTENode struct {
	Ref   *Table
	Query *SelectCore
}

func (n *CTENode) Accept(v Visitor) string { return v.VisitCTE(n) }

// NewCTE defines a CTE named ref.Name with the given body.
func NewCTE(ref *Table, query *SelectCore) *CTENode {
	return &CTENode{Ref: ref, Query: query}
}

// WithNode prefixes a statement with an ordered list of CTEs.
type WithNode struct {
	CTEs  []*CTENode
	Query Node // SelectCore, InsertStatement, UpdateStatement or DeleteStatement
}

func (n *WithNode) Accept(v Visitor) string { return v.VisitWith(n) }

// NewWith builds a WithNode after checking that CTE names and aliases are
// unique and that every CTE body only reads from CTEs defined before it.
func NewWith(query Node, ctes ...*CTENode) (*WithNode, error) {
	if err := ValidateCTEs(ctes); err != nil {
		return nil, err
	}
	list := make([]*CTENode, len(ctes))
	copy(list, ctes)
	return &WithNode{CTEs: list, Query: query}, nil
}

// ValidateCTEs checks an ordered CTE list for duplicate names, duplicate
// aliases and references to CTEs that are not yet defined.
func ValidateCTEs(ctes []*CTENode) error {
	position := make(map[string]int, len(ctes))
	aliases := make(map[string]string, len(ctes))
	for i, c := range ctes {
		if c == nil || c.Ref == nil || c.Query == nil {
			return fmt.Errorf("%w: CTE #%d has no name or body", ErrEmptyStatement, i+1)
		}
		if _, dup := position[c.Ref.Name]; dup {
			return fmt.Errorf("%w: CTE %q is defined twice", ErrInvalidCTEOrdering, c.Ref.Name)
		}
		if owner, dup := aliases[c.Ref.Alias]; dup {
			return fmt.Errorf("%w: %q is already used by CTE %s, cannot reuse it for %s",
				ErrAliasCollision, c.Ref.Alias, owner, c.Ref.Name)
		}
		position[c.Ref.Name] = i
		aliases[c.Ref.Alias] = c.Ref.Name
	}
	for i, c := range ctes {
		for _, ref := range Relations(c.Query) {
			j, isCTE := position[ref.Name]
			if !isCTE || j < i {
				continue
			}
			if j == i {
				return fmt.Errorf("%w: CTE %q references itself", ErrInvalidCTEOrdering, c.Ref.Name)
			}
			return fmt.Errorf("%w: CTE %q references %q, which is defined after it",
				ErrInvalidCTEOrdering, c.Ref.Name, ref.Name)
		}
	}
	return nil
}
