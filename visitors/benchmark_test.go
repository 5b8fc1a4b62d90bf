package visitors_test

import (
	"testing"

	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/managers"
	"github.com/bawdo/sqlgen/nodes"
	"github.com/bawdo/sqlgen/visitors"
)

// BenchmarkSimpleSelect benchmarks a basic single-table SELECT query.
func BenchmarkSimpleSelect(b *testing.B) {
	p := nodes.NewTable("Person")
	sel := managers.NewSelectManager(p).
		Select(p.Col("Id"), p.Col("Name"), p.Col("Age")).
		Where(p.Col("Age").Gt(18)).
		Order(p.Col("Name").Asc()).
		Limit(10).
		Node()

	b.ResetTimer()
	for b.Loop() {
		_, _ = visitors.Generate(dialects.Postgres, sel)
	}
}

// BenchmarkComplexJoinQuery benchmarks a multi-join query with subqueries.
func BenchmarkComplexJoinQuery(b *testing.B) {
	child := nodes.NewTableAs("Person", "child")
	parent := nodes.NewTableAs("Person", "parent")
	home := nodes.NewTable("House")

	cities := managers.NewSelectManager(home).Select(home.Col("Id")).Where(home.Col("City").In("Oslo", "Bergen"))
	m := managers.NewSelectManager(child).
		Select(child.Col("Name"), nodes.Count(parent.Col("Id")).As("parents")).
		Join(parent).On(child.Col("ParentId").Eq(parent.Col("Id"))).
		OuterJoin(home).From(parent).On(parent.Col("LivesAtHouseId").Eq(home.Col("Id"))).
		Where(child.Col("Age").Gt(18)).
		OrWhere(child.Col("LivesAtHouseId").InSubquery(cities.Node())).
		Group(child.Col("Name")).
		Having(nodes.Count(parent.Col("Id")).Gt(1)).
		Order(child.Col("Name").Asc()).
		Limit(20).
		Offset(10)
	sel := m.Node()

	b.ResetTimer()
	for b.Loop() {
		_, _ = visitors.Generate(dialects.MySQL, sel)
	}
}

// BenchmarkMultiRowInsert benchmarks AllColumns sorting over many rows.
func BenchmarkMultiRowInsert(b *testing.B) {
	type person struct {
		Name string
		Id   int
		Age  int
	}
	records := make([]any, 100)
	for i := range records {
		records[i] = person{Name: "p", Id: i, Age: i % 90}
	}
	ins := managers.NewInsertManager(nodes.NewTable("Person")).AllColumns(records...).Node()

	b.ResetTimer()
	for b.Loop() {
		_, _ = visitors.Generate(dialects.SQLite, ins)
	}
}

// BenchmarkCloneCore benchmarks the cost of snapshotting a SelectCore.
func BenchmarkCloneCore(b *testing.B) {
	p := nodes.NewTable("Person")
	h := nodes.NewTable("House")
	m := managers.NewSelectManager(p).
		Select(p.Col("Id"), p.Col("Name"), p.Col("Age")).
		Join(h).On(p.Col("LivesAtHouseId").Eq(h.Col("Id"))).
		Where(p.Col("Age").Gt(18)).
		Group(p.Col("Name")).
		Order(p.Col("Name").Asc())

	b.ResetTimer()
	for b.Loop() {
		_ = m.CloneCore()
	}
}

// BenchmarkIndented benchmarks the multi-line layout.
func BenchmarkIndented(b *testing.B) {
	p := nodes.NewTable("Person")
	sel := managers.NewSelectManager(p).
		Select(p.Col("Id"), p.Col("Name")).
		Where(p.Col("Age").Gt(18), p.Col("Age").Lt(65)).
		Node()

	b.ResetTimer()
	for b.Loop() {
		_, _ = visitors.Generate(dialects.ANSI, sel, visitors.WithIndent())
	}
}

// BenchmarkDot benchmarks Graphviz output.
func BenchmarkDot(b *testing.B) {
	p := nodes.NewTable("Person")
	sel := managers.NewSelectManager(p).
		Select(p.Col("Id"), p.Col("Name")).
		Where(p.Col("Age").Gt(18)).
		Node()

	b.ResetTimer()
	for b.Loop() {
		_ = visitors.Dot(sel)
	}
}
