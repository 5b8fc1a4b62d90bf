// Package querydoc reads declarative query documents (YAML or JSON) and
// builds the statement tree they describe.
//
// A document declares the table references it uses, optional CTEs and
// exactly one statement:
//
//	tables:
//	  - name: Person
//	  - {name: Person, alias: parent}
//	select:
//	  columns: [PersonRef.Name, parent.Name]
//	  from: PersonRef
//	  joins:
//	    - {table: parent, on: "PersonRef.ParentId = parent.Id"}
//	  where: "PersonRef.Age > 42"
//
// Aliases are resolved through a nodes.Registry, so a duplicate alias
// fails with nodes.ErrAliasCollision and an unknown one with
// nodes.ErrUnresolvedColumn.
package querydoc

import (
	"encoding/json"
	"errors"
	"fmt"

	"sigs.k8s.io/yaml"
)

// ErrInvalidDocument is returned for documents that cannot describe a
// statement: bad syntax, unknown keys, or not exactly one statement.
var ErrInvalidDocument = errors.New("invalid query document")

// Document is the decoded form of a query document.
type Document struct {
	// Dialect optionally names the dialect the document is meant for.
	Dialect string     `json:"dialect,omitempty"`
	Tables  []TableDef `json:"tables,omitempty"`
	CTEs    []CTEDef   `json:"ctes,omitempty"`
	Select  *SelectDef `json:"select,omitempty"`
	Insert  *InsertDef `json:"insert,omitempty"`
	Update  *UpdateDef `json:"update,omitempty"`
	Delete  *DeleteDef `json:"delete,omitempty"`
}

// TableDef declares one table reference. Alias defaults to Name + "Ref".
type TableDef struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// CTEDef declares a CTE. Its reference is registered like a table, so
// later CTEs and the main statement can select from it.
type CTEDef struct {
	Name   string    `json:"name"`
	Alias  string    `json:"alias,omitempty"`
	Select SelectDef `json:"select"`
}

// SelectDef describes a SELECT. Tables declared here are only visible to
// this query and the subqueries inside it.
type SelectDef struct {
	Tables   []TableDef `json:"tables,omitempty"`
	Distinct bool       `json:"distinct,omitempty"`
	Columns  []any      `json:"columns"`
	From     string     `json:"from,omitempty"`
	Joins    []JoinDef  `json:"joins,omitempty"`
	Where    any        `json:"where,omitempty"`
	Group    []any      `json:"group,omitempty"`
	Having   any        `json:"having,omitempty"`
	Order    []string   `json:"order,omitempty"`
	Limit    *int       `json:"limit,omitempty"`
	Offset   *int       `json:"offset,omitempty"`
}

// JoinDef describes one join. Type is inner (default), left, right, full
// or cross. Left defaults to the FROM table.
type JoinDef struct {
	Type  string `json:"type,omitempty"`
	Table string `json:"table"`
	Left  string `json:"left,omitempty"`
	On    any    `json:"on,omitempty"`
}

// InsertDef describes an INSERT. Rows come either from Columns + Values
// or from Records, whose keys become the (sorted) column list.
type InsertDef struct {
	Into       string           `json:"into"`
	Columns    []string         `json:"columns,omitempty"`
	Values     [][]any          `json:"values,omitempty"`
	Records    []map[string]any `json:"records,omitempty"`
	AllColumns bool             `json:"allColumns,omitempty"`
}

// UpdateDef describes an UPDATE.
type UpdateDef struct {
	Table string      `json:"table"`
	Set   []AssignDef `json:"set"`
	Where any         `json:"where,omitempty"`
}

// AssignDef is one SET item. Value is plain data; Expr is an expression.
type AssignDef struct {
	Column string `json:"column"`
	Value  any    `json:"value,omitempty"`
	Expr   any    `json:"expr,omitempty"`
}

// DeleteDef describes a DELETE.
type DeleteDef struct {
	From  string `json:"from"`
	Where any    `json:"where,omitempty"`
}

// Parse decodes a YAML or JSON document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc, useNumber); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if n := doc.statements(); n != 1 {
		return nil, fmt.Errorf("%w: expected exactly one of select, insert, update or delete, found %d",
			ErrInvalidDocument, n)
	}
	return &doc, nil
}

func useNumber(d *json.Decoder) *json.Decoder {
	d.UseNumber()
	return d
}

func (d *Document) statements() int {
	n := 0
	if d.Select != nil {
		n++
	}
	if d.Insert != nil {
		n++
	}
	if d.Update != nil {
		n++
	}
	if d.Delete != nil {
		n++
	}
	return n
}
