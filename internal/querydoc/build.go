package querydoc

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bawdo/sqlgen/nodes"
)

var joinTypes = map[string]nodes.JoinType{
	"":      nodes.InnerJoin,
	"inner": nodes.InnerJoin,
	"left":  nodes.LeftOuterJoin,
	"right": nodes.RightOuterJoin,
	"full":  nodes.FullOuterJoin,
	"cross": nodes.CrossJoin,
}

// Build constructs the statement the document describes. With CTEs the
// result is a *nodes.WithNode wrapping the statement.
func (d *Document) Build() (nodes.Node, error) {
	b := &builder{reg: nodes.NewRegistry()}
	if err := b.register(d.Tables); err != nil {
		return nil, err
	}

	// Every CTE reference is registered before any body is built so an
	// out-of-order reference reaches NewWith and is reported there.
	refs := make([]*nodes.Table, len(d.CTEs))
	for i, c := range d.CTEs {
		if c.Name == "" {
			return nil, invalid("cte without a name")
		}
		ref, err := b.reg.Register(c.Name, c.Alias)
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}
	ctes := make([]*nodes.CTENode, len(d.CTEs))
	for i := range d.CTEs {
		body, err := b.selectCore(&d.CTEs[i].Select)
		if err != nil {
			return nil, fmt.Errorf("cte %s: %w", refs[i].Name, err)
		}
		ctes[i] = nodes.NewCTE(refs[i], body)
	}

	var stmt nodes.Node
	var err error
	switch {
	case d.Select != nil:
		stmt, err = b.selectCore(d.Select)
	case d.Insert != nil:
		stmt, err = b.insert(d.Insert)
	case d.Update != nil:
		stmt, err = b.update(d.Update)
	case d.Delete != nil:
		stmt, err = b.delete(d.Delete)
	default:
		err = invalid("no statement")
	}
	if err != nil {
		return nil, err
	}
	if len(ctes) == 0 {
		return stmt, nil
	}
	w, err := nodes.NewWith(stmt, ctes...)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (b *builder) selectCore(def *SelectDef) (*nodes.SelectCore, error) {
	if len(def.Tables) > 0 {
		b = &builder{reg: b.reg.Scope()}
		if err := b.register(def.Tables); err != nil {
			return nil, err
		}
	}

	sel := &nodes.SelectCore{Distinct: def.Distinct}
	if def.From != "" {
		from, err := b.table(def.From)
		if err != nil {
			return nil, err
		}
		sel.From = from
	}

	cols, err := b.exprs(def.Columns)
	if err != nil {
		return nil, err
	}
	sel.Projections = cols

	for _, j := range def.Joins {
		join, err := b.join(sel.From, j)
		if err != nil {
			return nil, err
		}
		sel.Joins = append(sel.Joins, join)
	}

	if sel.Where, err = b.chain(def.Where); err != nil {
		return nil, err
	}
	if sel.Groups, err = b.exprs(def.Group); err != nil {
		return nil, err
	}
	if sel.Having, err = b.chain(def.Having); err != nil {
		return nil, err
	}
	for _, o := range def.Order {
		ord, err := b.ordering(o)
		if err != nil {
			return nil, err
		}
		sel.Orders = append(sel.Orders, ord)
	}
	if def.Limit != nil {
		sel.Limit = nodes.Literal(*def.Limit)
	}
	if def.Offset != nil {
		sel.Offset = nodes.Literal(*def.Offset)
	}
	return sel, nil
}

func (b *builder) join(from *nodes.Table, def JoinDef) (*nodes.JoinNode, error) {
	kind, ok := joinTypes[strings.ToLower(def.Type)]
	if !ok {
		return nil, invalid("unknown join type %q", def.Type)
	}
	right, err := b.table(def.Table)
	if err != nil {
		return nil, err
	}
	left := from
	if def.Left != "" {
		if left, err = b.table(def.Left); err != nil {
			return nil, err
		}
	}
	join := &nodes.JoinNode{Left: left, Right: right, Type: kind}
	if def.On != nil {
		if join.On, err = b.expr(def.On); err != nil {
			return nil, err
		}
	}
	return join, nil
}

func (b *builder) insert(def *InsertDef) (*nodes.InsertStatement, error) {
	into, err := b.table(def.Into)
	if err != nil {
		return nil, err
	}
	stmt := &nodes.InsertStatement{Into: into, Columns: def.Columns, AllColumns: def.AllColumns}

	if len(def.Records) > 0 {
		if len(def.Columns) > 0 || len(def.Values) > 0 {
			return nil, invalid("insert takes records or columns and values, not both")
		}
		stmt.Columns = slices.Sorted(maps.Keys(def.Records[0]))
		stmt.AllColumns = true
		for i, rec := range def.Records {
			if len(rec) != len(stmt.Columns) {
				return nil, fmt.Errorf("%w: record %d has %d fields, expected %d",
					nodes.ErrColumnArity, i, len(rec), len(stmt.Columns))
			}
			row := make([]nodes.Node, len(stmt.Columns))
			for j, col := range stmt.Columns {
				v, ok := rec[col]
				if !ok {
					return nil, fmt.Errorf("%w: record %d has no %s", nodes.ErrColumnArity, i, col)
				}
				if row[j], err = b.value(v); err != nil {
					return nil, err
				}
			}
			stmt.Values = append(stmt.Values, row)
		}
		return stmt, nil
	}

	for _, vals := range def.Values {
		row := make([]nodes.Node, len(vals))
		for j, v := range vals {
			if row[j], err = b.value(v); err != nil {
				return nil, err
			}
		}
		stmt.Values = append(stmt.Values, row)
	}
	return stmt, nil
}

func (b *builder) update(def *UpdateDef) (*nodes.UpdateStatement, error) {
	table, err := b.table(def.Table)
	if err != nil {
		return nil, err
	}
	stmt := &nodes.UpdateStatement{Table: table}
	for _, a := range def.Set {
		if a.Column == "" {
			return nil, invalid("set item without a column")
		}
		var v nodes.Node
		if a.Expr != nil {
			v, err = b.expr(a.Expr)
		} else {
			v, err = b.value(a.Value)
		}
		if err != nil {
			return nil, err
		}
		stmt.Assignments = append(stmt.Assignments, &nodes.AssignmentNode{Column: a.Column, Value: v})
	}
	if stmt.Where, err = b.chain(def.Where); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (b *builder) delete(def *DeleteDef) (*nodes.DeleteStatement, error) {
	from, err := b.table(def.From)
	if err != nil {
		return nil, err
	}
	where, err := b.chain(def.Where)
	if err != nil {
		return nil, err
	}
	return &nodes.DeleteStatement{From: from, Where: where}, nil
}
