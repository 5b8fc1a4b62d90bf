package nodes

// DefaultAliasSuffix is appended to a table name to form its default alias.
const DefaultAliasSuffix = "Ref"

// Table represents one occurrence of a table or CTE in a query: the logical
// name plus the alias the occurrence is known by.
type Table struct {
	Name  string
	Alias string
}

// NewTable creates a table reference with the default alias (Name + "Ref").
func NewTable(name string) *Table {
	return &Table{Name: name, Alias: DefaultAlias(name)}
}

// NewTableAs creates a table reference with an explicit alias. An empty
// alias falls back to the default.
func NewTableAs(name, alias string) *Table {
	if alias == "" {
		alias = DefaultAlias(name)
	}
	return &Table{Name: name, Alias: alias}
}

// DefaultAlias returns the alias a table gets when none is supplied.
func DefaultAlias(name string) string {
	return name + DefaultAliasSuffix
}

func (t *Table) Accept(v Visitor) string { return v.VisitTable(t) }

// Col creates an Attribute (column reference) bound to this table.
func (t *Table) Col(name string) *Attribute {
	return NewAttribute(t, name)
}

// Star creates a qualified star (alias.*) for this table.
func (t *Table) Star() *StarNode {
	return &StarNode{Table: t}
}

// SameRef reports whether a and b denote the same logical reference:
// the same pointer, or the same name under the same alias.
func SameRef(a, b *Table) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || (a.Name == b.Name && a.Alias == b.Alias)
}
