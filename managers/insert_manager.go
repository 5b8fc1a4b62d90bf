package managers

import (
	"fmt"
	"reflect"

	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/nodes"
	"github.com/bawdo/sqlgen/visitors"
)

// InsertManager provides a fluent API for building INSERT statements.
type InsertManager struct {
	treeManager
	Statement *nodes.InsertStatement
	err       error
}

// NewInsertManager creates a new InsertManager targeting the given table.
func NewInsertManager(into *nodes.Table) *InsertManager {
	return &InsertManager{
		Statement: &nodes.InsertStatement{Into: into},
	}
}

// Columns sets the column list for the INSERT statement.
func (m *InsertManager) Columns(cols ...string) *InsertManager {
	m.Statement.Columns = cols
	return m
}

// Values appends a row of values to the INSERT statement.
// Each call to Values adds one row. Pass raw Go values; they are
// wrapped with nodes.Literal automatically.
func (m *InsertManager) Values(vals ...any) *InsertManager {
	row := make([]nodes.Node, len(vals))
	for i, v := range vals {
		row[i] = nodes.Literal(v)
	}
	m.Statement.Values = append(m.Statement.Values, row)
	return m
}

// AllColumns appends one row per record, taking the column list from the
// record's exported fields. A `sql:"name"` tag renames a column and
// `sql:"-"` skips the field. Records must be structs (or pointers to
// structs) of one type. The columns are emitted sorted, so the declaration
// order of the fields does not matter.
//
// Reflection errors are reported by ToSQL and Err.
func (m *InsertManager) AllColumns(records ...any) *InsertManager {
	if m.err != nil {
		return m
	}
	var typ reflect.Type
	for i, rec := range records {
		v := reflect.ValueOf(rec)
		for v.Kind() == reflect.Pointer && !v.IsNil() {
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			m.err = fmt.Errorf("%w: record #%d is %T, not a struct", nodes.ErrUnsupportedNode, i+1, rec)
			return m
		}
		if typ == nil {
			typ = v.Type()
			m.Statement.Columns = nil
			for _, f := range recordFields(typ) {
				m.Statement.Columns = append(m.Statement.Columns, f.column)
			}
		} else if v.Type() != typ {
			m.err = fmt.Errorf("%w: record #%d is %s, expected %s", nodes.ErrColumnArity, i+1, v.Type(), typ)
			return m
		}
		fields := recordFields(typ)
		row := make([]nodes.Node, len(fields))
		for j, f := range fields {
			row[j] = nodes.Literal(v.FieldByIndex(f.index).Interface())
		}
		m.Statement.Values = append(m.Statement.Values, row)
	}
	m.Statement.AllColumns = true
	return m
}

type recordField struct {
	column string
	index  []int
}

// recordFields lists the insertable fields of a struct type in declaration
// order. Untagged exported embedded structs are flattened.
func recordFields(t reflect.Type) []recordField {
	var out []recordField
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get("sql")
		if tag == "-" || !f.IsExported() {
			continue
		}
		if f.Anonymous && tag == "" && f.Type.Kind() == reflect.Struct {
			for _, inner := range recordFields(f.Type) {
				out = append(out, recordField{column: inner.column, index: append([]int{i}, inner.index...)})
			}
			continue
		}
		name := f.Name
		if tag != "" {
			name = tag
		}
		out = append(out, recordField{column: name, index: f.Index})
	}
	return out
}

// Err returns the first error recorded by AllColumns.
func (m *InsertManager) Err() error {
	return m.err
}

// Indent renders the statement over several lines.
func (m *InsertManager) Indent() *InsertManager {
	m.addOption(visitors.WithIndent())
	return m
}

// Node returns a snapshot of the statement.
func (m *InsertManager) Node() *nodes.InsertStatement {
	return m.cloneStatement()
}

func (m *InsertManager) statement() nodes.Node { return m.Node() }

// Accept implements the Node interface by delegating to a snapshot.
func (m *InsertManager) Accept(v nodes.Visitor) string {
	return m.Node().Accept(v)
}

// ToSQL renders the statement under dialect d.
func (m *InsertManager) ToSQL(d dialects.Dialect) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.render(d, m.Node())
}

func (m *InsertManager) cloneStatement() *nodes.InsertStatement {
	columns := make([]string, len(m.Statement.Columns))
	copy(columns, m.Statement.Columns)

	values := make([][]nodes.Node, len(m.Statement.Values))
	for i, row := range m.Statement.Values {
		r := make([]nodes.Node, len(row))
		copy(r, row)
		values[i] = r
	}

	return &nodes.InsertStatement{
		Into:       m.Statement.Into,
		Columns:    columns,
		Values:     values,
		AllColumns: m.Statement.AllColumns,
	}
}
