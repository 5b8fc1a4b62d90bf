package visitors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/internal/testutil"
	"github.com/bawdo/sqlgen/nodes"
)

func ansi(n nodes.Node) (string, error)   { return Generate(dialects.ANSI, n) }
func sqlite(n nodes.Node) (string, error) { return Generate(dialects.SQLite, n) }
func mysql(n nodes.Node) (string, error)  { return Generate(dialects.MySQL, n) }

func indented(n nodes.Node) (string, error) {
	return Generate(dialects.ANSI, n, WithIndent())
}

func selectFrom(from *nodes.Table, cols ...nodes.Node) *nodes.SelectCore {
	return &nodes.SelectCore{Projections: cols, From: from}
}

// where renders "expr" inside SELECT PersonRef.* FROM Person PersonRef WHERE.
func where(p *nodes.Table, expr nodes.Node) *nodes.SelectCore {
	sel := selectFrom(p, p.Star())
	sel.Where = nodes.NewChain(expr)
	return sel
}

const personStar = "SELECT PersonRef.* FROM Person PersonRef"

// --- End-to-end scenarios ---

func TestSelectStar(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	testutil.AssertSQL(t, ansi, selectFrom(p, p.Star()), "SELECT PersonRef.* FROM Person PersonRef")
}

func TestSelectColumnsWhere(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	sel := selectFrom(p, p.Col("Name"), p.Col("Age"))
	sel.Where = nodes.NewChain(p.Col("Age").Gt(42))
	testutil.AssertSQL(t, ansi, sel,
		"SELECT PersonRef.Name, PersonRef.Age FROM Person PersonRef WHERE PersonRef.Age > 42")
}

func TestSelfJoin(t *testing.T) {
	t.Parallel()
	child := nodes.NewTableAs("Person", "child")
	parent := nodes.NewTableAs("Person", "parent")
	sel := selectFrom(child, child.Col("Name"), parent.Col("Name"))
	sel.Joins = []*nodes.JoinNode{{
		Left:  child,
		Right: parent,
		Type:  nodes.InnerJoin,
		On:    child.Col("ParentId").Eq(parent.Col("Id")),
	}}
	testutil.AssertSQL(t, ansi, sel,
		"SELECT child.Name, parent.Name FROM Person child INNER JOIN Person parent ON child.ParentId = parent.Id")
}

func TestSQLiteQuotesColumns(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	sel := selectFrom(p, p.Col("Name"), p.Col("Age"), p.Col("Id"))
	testutil.AssertSQL(t, sqlite, sel,
		`SELECT PersonRef."Name", PersonRef."Age", PersonRef."Id" FROM Person PersonRef`)
}

func TestCommonTableExpression(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	lite := nodes.NewTable("PersonLite")

	body := selectFrom(p, p.Col("Name"), p.Col("Age"))
	body.Where = nodes.NewChain(p.Col("Age").Gt(15))
	main := selectFrom(lite, lite.Col("Name"))
	main.Where = nodes.NewChain(lite.Col("Age").Eq(42))

	with, err := nodes.NewWith(main, nodes.NewCTE(lite, body))
	require.NoError(t, err)
	testutil.AssertSQL(t, ansi, with,
		"WITH PersonLite AS (SELECT PersonRef.Name, PersonRef.Age FROM Person PersonRef WHERE PersonRef.Age > 15) "+
			"SELECT PersonLiteRef.Name FROM PersonLite PersonLiteRef WHERE PersonLiteRef.Age = 42")
}

func TestMultiRowInsertAllColumns(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	ins := &nodes.InsertStatement{
		Into:       p,
		Columns:    []string{"Name", "Id", "Age", "ParentId", "LivesAtHouseId"},
		AllColumns: true,
		Values: [][]nodes.Node{
			{nodes.Literal("Ann"), nodes.Literal(1), nodes.Literal(42), nodes.Literal(nil), nodes.Literal(7)},
			{nodes.Literal("Bob"), nodes.Literal(2), nodes.Literal(17), nodes.Literal(1), nodes.Literal(7)},
		},
	}
	testutil.AssertSQL(t, ansi, ins,
		"INSERT INTO Person (Age, Id, LivesAtHouseId, Name, ParentId) VALUES (42, 1, 7, 'Ann', NULL), (17, 2, 7, 'Bob', 1)")
}

// --- Properties ---

func TestAllColumnsOrderIgnoresDeclarationOrder(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	orders := [][]string{
		{"Age", "Id", "LivesAtHouseId", "Name", "ParentId"},
		{"ParentId", "Name", "LivesAtHouseId", "Id", "Age"},
		{"Id", "ParentId", "Age", "Name", "LivesAtHouseId"},
	}
	for _, cols := range orders {
		row := make([]nodes.Node, len(cols))
		for i, c := range cols {
			row[i] = nodes.Constant(c)
		}
		ins := &nodes.InsertStatement{Into: p, Columns: cols, Values: [][]nodes.Node{row}, AllColumns: true}
		testutil.AssertSQL(t, ansi, ins,
			"INSERT INTO Person (Age, Id, LivesAtHouseId, Name, ParentId) VALUES (Age, Id, LivesAtHouseId, Name, ParentId)")
	}
}

func TestAllColumnsDoesNotModifyStatement(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	cols := []string{"Name", "Age"}
	ins := &nodes.InsertStatement{
		Into:       p,
		Columns:    cols,
		Values:     [][]nodes.Node{{nodes.Literal("Ann"), nodes.Literal(42)}},
		AllColumns: true,
	}
	_, err := ansi(ins)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Age"}, ins.Columns)
	assert.Equal(t, "Ann", ins.Values[0][0].(*nodes.LiteralNode).Value)
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	h := nodes.NewTable("House")
	sel := selectFrom(p, p.Col("Name"), nodes.Count(nil))
	sel.Joins = []*nodes.JoinNode{{Left: p, Right: h, On: p.Col("LivesAtHouseId").Eq(h.Col("Id"))}}
	sel.Where = nodes.NewChain(p.Col("Age").Gt(18)).Append(nodes.ConnOr, h.Col("City").Eq("Oslo"))
	sel.Groups = []nodes.Node{p.Col("Name")}

	first, err := ansi(sel)
	require.NoError(t, err)
	for range 10 {
		again, err := ansi(sel)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestChainKeepsDeclarationOrderWithoutParens(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	sel := selectFrom(p, p.Star())
	sel.Where = nodes.NewChain(p.Col("Age").Gt(18)).
		Append(nodes.ConnOr, p.Col("Name").Eq("Ann")).
		Append(nodes.ConnAnd, p.Col("Id").Eq(1))

	got, err := ansi(sel)
	require.NoError(t, err)
	assert.Equal(t, personStar+" WHERE PersonRef.Age > 18 OR PersonRef.Name = 'Ann' AND PersonRef.Id = 1", got)
	assert.NotContains(t, got, "(")
}

func TestExplicitGroupingIsRendered(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	sel := selectFrom(p, p.Star())
	sel.Where = nodes.NewChain(nodes.Group(p.Col("Age").Gt(18).Or(p.Col("Name").Eq("Ann")))).
		Append(nodes.ConnAnd, p.Col("Id").Eq(1))
	testutil.AssertSQL(t, ansi, sel,
		personStar+" WHERE (PersonRef.Age > 18 OR PersonRef.Name = 'Ann') AND PersonRef.Id = 1")
}

func TestNestedBinaryIsTranscribedLiterally(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	testutil.AssertSQL(t, ansi, where(p, p.Col("Age").Plus(1).Multiply(2).Gt(40)),
		personStar+" WHERE PersonRef.Age + 1 * 2 > 40")
	testutil.AssertSQL(t, ansi, where(p, nodes.Group(p.Col("Age").Plus(1)).Multiply(2).Gt(40)),
		personStar+" WHERE (PersonRef.Age + 1) * 2 > 40")
}

func TestOrOfAndsHasNoParens(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	a := p.Col("Age").Gt(1).And(p.Col("Age").Lt(5))
	b := p.Col("Age").Gt(10).And(p.Col("Age").Lt(50))
	testutil.AssertSQL(t, ansi, where(p, a.Or(b)),
		personStar+" WHERE PersonRef.Age > 1 AND PersonRef.Age < 5 OR PersonRef.Age > 10 AND PersonRef.Age < 50")
}

// --- Expressions ---

func TestPredicates(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	tests := []struct {
		name string
		expr nodes.Node
		want string
	}{
		{"eq string", p.Col("Name").Eq("Ann"), "PersonRef.Name = 'Ann'"},
		{"not eq", p.Col("Age").NotEq(3), "PersonRef.Age <> 3"},
		{"gt eq", p.Col("Age").GtEq(3), "PersonRef.Age >= 3"},
		{"lt eq", p.Col("Age").LtEq(3), "PersonRef.Age <= 3"},
		{"like", p.Col("Name").Like("A%"), "PersonRef.Name LIKE 'A%'"},
		{"not like", p.Col("Name").NotLike("A%"), "PersonRef.Name NOT LIKE 'A%'"},
		{"in", p.Col("Id").In(1, 2, 3), "PersonRef.Id IN (1, 2, 3)"},
		{"not in", p.Col("Id").NotIn(4), "PersonRef.Id NOT IN (4)"},
		{"between", p.Col("Age").Between(18, 65), "PersonRef.Age BETWEEN 18 AND 65"},
		{"not between", p.Col("Age").NotBetween(18, 65), "PersonRef.Age NOT BETWEEN 18 AND 65"},
		{"is null", p.Col("ParentId").IsNull(), "PersonRef.ParentId IS NULL"},
		{"is not null", p.Col("ParentId").IsNotNull(), "PersonRef.ParentId IS NOT NULL"},
		{"not", p.Col("Age").Eq(1).Not(), "NOT PersonRef.Age = 1"},
		{"not grouped", nodes.Group(p.Col("Age").Eq(1)).Not(), "NOT (PersonRef.Age = 1)"},
		{"bool", p.Col("Active").Eq(true), "PersonRef.Active = TRUE"},
		{"null", p.Col("ParentId").Eq(nil), "PersonRef.ParentId = NULL"},
		{"column to column", p.Col("Id").Eq(p.Col("ParentId")), "PersonRef.Id = PersonRef.ParentId"},
		{"constant", p.Col("Born").Gt(nodes.Constant("DATE '2000-01-01'")), "PersonRef.Born > DATE '2000-01-01'"},
		{"concat", p.Col("Name").Concat("!").Eq("Ann!"), "PersonRef.Name || '!' = 'Ann!'"},
		{"modulo", p.Col("Age").Modulo(2).Eq(0), "PersonRef.Age % 2 = 0"},
		{"minus divide", p.Col("Age").Minus(1).Divide(2).Lt(9), "PersonRef.Age - 1 / 2 < 9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertSQL(t, ansi, where(p, tt.expr), personStar+" WHERE "+tt.want)
		})
	}
}

func TestDialectSpellsNotEq(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	testutil.AssertSQL(t, sqlite, where(p, p.Col("Age").NotEq(3)),
		personStar+` WHERE PersonRef."Age" != 3`)
}

func TestMySQLEscapesBackslashes(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	testutil.AssertSQL(t, mysql, where(p, p.Col("Name").Eq(`O'Br\ien`)),
		personStar+" WHERE PersonRef.`Name` = 'O''Br\\\\ien'")
}

func TestUnqualifiedStar(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	testutil.AssertSQL(t, ansi, selectFrom(p, nodes.Star()), "SELECT * FROM Person PersonRef")
}

func TestAliasAndFunctions(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	sel := selectFrom(p,
		p.Col("Name").As("n"),
		nodes.Coalesce(p.Col("Name"), nodes.Literal("?")),
		nodes.Lower(p.Col("Name")),
	)
	testutil.AssertSQL(t, ansi, sel,
		"SELECT PersonRef.Name AS n, COALESCE(PersonRef.Name, '?'), LOWER(PersonRef.Name) FROM Person PersonRef")
	testutil.AssertSQL(t, sqlite, selectFrom(p, p.Col("Name").As("n")),
		`SELECT PersonRef."Name" AS "n" FROM Person PersonRef`)
}

func TestDistinctFunctionArgument(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	fn := nodes.NewNamedFunction("GROUP_CONCAT", p.Col("Name"))
	fn.Distinct = true
	testutil.AssertSQL(t, ansi, selectFrom(p, fn),
		"SELECT GROUP_CONCAT(DISTINCT PersonRef.Name) FROM Person PersonRef")
}

// --- Aggregates and windows ---

func TestAggregates(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	sel := selectFrom(p,
		nodes.Count(nil),
		nodes.Count(p.Col("Id")),
		nodes.CountDistinct(p.Col("Name")),
		nodes.Sum(p.Col("Age")),
		nodes.Avg(p.Col("Age")),
		nodes.Min(p.Col("Age")),
		nodes.Max(p.Col("Age")),
	)
	testutil.AssertSQL(t, ansi, sel,
		"SELECT COUNT(*), COUNT(PersonRef.Id), COUNT(DISTINCT PersonRef.Name), SUM(PersonRef.Age), "+
			"AVG(PersonRef.Age), MIN(PersonRef.Age), MAX(PersonRef.Age) FROM Person PersonRef")
}

func TestGroupByHaving(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	sel := selectFrom(p, p.Col("ParentId"), nodes.Count(nil))
	sel.Groups = []nodes.Node{p.Col("ParentId")}
	sel.Having = nodes.NewChain(nodes.Count(nil).Gt(1)).Append(nodes.ConnOr, nodes.Max(p.Col("Age")).Lt(10))
	testutil.AssertSQL(t, ansi, sel,
		"SELECT PersonRef.ParentId, COUNT(*) FROM Person PersonRef GROUP BY PersonRef.ParentId "+
			"HAVING COUNT(*) > 1 OR MAX(PersonRef.Age) < 10")
}

func TestOrderLimitOffset(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	sel := selectFrom(p, p.Col("Name"))
	sel.Distinct = true
	sel.Orders = []*nodes.OrderingNode{p.Col("Age").Desc(), p.Col("Name").Asc()}
	sel.Limit = nodes.Literal(10)
	sel.Offset = nodes.Literal(5)
	testutil.AssertSQL(t, ansi, sel,
		"SELECT DISTINCT PersonRef.Name FROM Person PersonRef ORDER BY PersonRef.Age DESC, PersonRef.Name ASC LIMIT 10 OFFSET 5")
}

func TestWindowFunctions(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	full := nodes.NewWindowDef().Partition(p.Col("ParentId")).Order(p.Col("Age").Desc(), p.Col("Name").Asc())
	tests := []struct {
		name string
		expr nodes.Node
		want string
	}{
		{"partition and order", nodes.RowNumber().Over(full),
			"ROW_NUMBER() OVER (PARTITION BY PersonRef.ParentId ORDER BY PersonRef.Age DESC, PersonRef.Name ASC)"},
		{"order only", nodes.Rank().Over(nodes.NewWindowDef().Order(p.Col("Age").Asc())),
			"RANK() OVER (ORDER BY PersonRef.Age ASC)"},
		{"partition only", nodes.Sum(p.Col("Age")).Over(nodes.NewWindowDef().Partition(p.Col("ParentId"))),
			"SUM(PersonRef.Age) OVER (PARTITION BY PersonRef.ParentId)"},
		{"empty", nodes.DenseRank().Over(nodes.NewWindowDef()), "DENSE_RANK() OVER ()"},
		{"nil window", nodes.Count(nil).Over(nil), "COUNT(*) OVER ()"},
		{"lag", nodes.Lag(p.Col("Age"), nodes.Literal(1)).Over(nodes.NewWindowDef().Order(p.Col("Id").Asc())),
			"LAG(PersonRef.Age, 1) OVER (ORDER BY PersonRef.Id ASC)"},
		{"ntile alias", nodes.Ntile(nodes.Literal(4)).Over(nodes.NewWindowDef()).As("quartile"),
			"NTILE(4) OVER () AS quartile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertSQL(t, ansi, selectFrom(p, tt.expr), "SELECT "+tt.want+" FROM Person PersonRef")
		})
	}
}

// --- Joins and subqueries ---

func TestJoinKinds(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	h := nodes.NewTable("House")
	on := p.Col("LivesAtHouseId").Eq(h.Col("Id"))
	tests := []struct {
		kind nodes.JoinType
		want string
	}{
		{nodes.InnerJoin, "INNER JOIN House HouseRef ON PersonRef.LivesAtHouseId = HouseRef.Id"},
		{nodes.LeftOuterJoin, "LEFT OUTER JOIN House HouseRef ON PersonRef.LivesAtHouseId = HouseRef.Id"},
		{nodes.RightOuterJoin, "RIGHT OUTER JOIN House HouseRef ON PersonRef.LivesAtHouseId = HouseRef.Id"},
		{nodes.FullOuterJoin, "FULL OUTER JOIN House HouseRef ON PersonRef.LivesAtHouseId = HouseRef.Id"},
	}
	for _, tt := range tests {
		sel := selectFrom(p, p.Col("Name"), h.Col("City"))
		sel.Joins = []*nodes.JoinNode{{Left: p, Right: h, Type: tt.kind, On: on}}
		testutil.AssertSQL(t, ansi, sel,
			"SELECT PersonRef.Name, HouseRef.City FROM Person PersonRef "+tt.want)
	}

	cross := selectFrom(p, p.Col("Name"), h.Col("City"))
	cross.Joins = []*nodes.JoinNode{{Left: p, Right: h, Type: nodes.CrossJoin}}
	testutil.AssertSQL(t, ansi, cross,
		"SELECT PersonRef.Name, HouseRef.City FROM Person PersonRef CROSS JOIN House HouseRef")
}

func TestJoinChainLeftToRight(t *testing.T) {
	t.Parallel()
	child := nodes.NewTableAs("Person", "child")
	parent := nodes.NewTableAs("Person", "parent")
	home := nodes.NewTableAs("House", "home")
	sel := selectFrom(child, child.Col("Name"), home.Col("City"))
	sel.Joins = []*nodes.JoinNode{
		{Left: child, Right: parent, On: child.Col("ParentId").Eq(parent.Col("Id"))},
		{Left: parent, Right: home, Type: nodes.LeftOuterJoin, On: parent.Col("LivesAtHouseId").Eq(home.Col("Id"))},
	}
	testutil.AssertSQL(t, ansi, sel,
		"SELECT child.Name, home.City FROM Person child INNER JOIN Person parent ON child.ParentId = parent.Id "+
			"LEFT OUTER JOIN House home ON parent.LivesAtHouseId = home.Id")
}

func TestInSubquery(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	h := nodes.NewTable("House")
	sub := selectFrom(h, h.Col("Id"))
	sub.Where = nodes.NewChain(h.Col("City").Eq("Oslo"))
	testutil.AssertSQL(t, ansi, where(p, p.Col("LivesAtHouseId").InSubquery(sub)),
		personStar+" WHERE PersonRef.LivesAtHouseId IN (SELECT HouseRef.Id FROM House HouseRef WHERE HouseRef.City = 'Oslo')")
	testutil.AssertSQL(t, ansi, where(p, p.Col("LivesAtHouseId").NotInSubquery(sub)),
		personStar+" WHERE PersonRef.LivesAtHouseId NOT IN (SELECT HouseRef.Id FROM House HouseRef WHERE HouseRef.City = 'Oslo')")
}

func TestScalarSubqueryInProjection(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	h := nodes.NewTable("House")
	sub := selectFrom(h, nodes.Count(nil))
	sel := selectFrom(p, p.Col("Name"), nodes.Subquery(sub).As("houses"))
	testutil.AssertSQL(t, ansi, sel,
		"SELECT PersonRef.Name, (SELECT COUNT(*) FROM House HouseRef) AS houses FROM Person PersonRef")
}

func TestCorrelatedExists(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	h := nodes.NewTable("House")
	sub := selectFrom(h, h.Star())
	sub.Where = nodes.NewChain(h.Col("Id").Eq(p.Col("LivesAtHouseId")))
	testutil.AssertSQL(t, ansi, where(p, nodes.Exists(sub)),
		personStar+" WHERE EXISTS (SELECT HouseRef.* FROM House HouseRef WHERE HouseRef.Id = PersonRef.LivesAtHouseId)")
	testutil.AssertSQL(t, ansi, where(p, nodes.NotExists(sub)),
		personStar+" WHERE NOT EXISTS (SELECT HouseRef.* FROM House HouseRef WHERE HouseRef.Id = PersonRef.LivesAtHouseId)")
}

func TestSubqueryScopeDoesNotLeak(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	h := nodes.NewTable("House")
	sel := selectFrom(p, p.Col("Name"), nodes.Subquery(selectFrom(h, nodes.Count(nil))))
	sel.Where = nodes.NewChain(h.Col("City").Eq("Oslo"))
	testutil.AssertRenderError(t, ansi, sel, nodes.ErrUnresolvedColumn)
}

func TestOuterColumnShadowedByInnerAliasFails(t *testing.T) {
	t.Parallel()
	person := nodes.NewTableAs("Person", "p")
	house := nodes.NewTableAs("House", "p")
	sub := selectFrom(house, house.Col("Id"))
	sub.Where = nodes.NewChain(house.Col("Id").Eq(person.Col("LivesAtHouseId")))
	sel := selectFrom(person, person.Col("Name"))
	sel.Where = nodes.NewChain(nodes.Exists(sub))

	testutil.AssertRenderError(t, ansi, sel, nodes.ErrAliasCollision)
}

func TestInnerAliasReuseWithoutOuterColumnsRenders(t *testing.T) {
	t.Parallel()
	person := nodes.NewTableAs("Person", "p")
	house := nodes.NewTableAs("House", "p")
	sel := selectFrom(person, person.Col("Name"))
	sel.Where = nodes.NewChain(nodes.Exists(selectFrom(house, house.Col("Id"))))

	testutil.AssertSQL(t, ansi, sel,
		"SELECT p.Name FROM Person p WHERE EXISTS (SELECT p.Id FROM House p)")
}

func TestOutOfRangeEnumsFail(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	tests := []struct {
		name string
		expr nodes.Node
	}{
		{"aggregate", &nodes.AggregateNode{Func: nodes.AggregateFunc(9)}},
		{"window", (&nodes.WindowFuncNode{Func: nodes.WindowFunc(42)}).Over(nil)},
		{"unary", nodes.NewUnaryNode(p.Col("Name"), nodes.UnaryOp(7))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertRenderError(t, ansi, selectFrom(p, tt.expr), nodes.ErrUnsupportedNode)
		})
	}
}

// --- CTEs ---

func TestCTEInstancesJoinedUnderDistinctAliases(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	def := nodes.NewTable("PersonLite")
	child := nodes.NewTableAs("PersonLite", "child")
	parent := nodes.NewTableAs("PersonLite", "parent")

	main := selectFrom(child, child.Col("Name"), parent.Col("Name"))
	main.Joins = []*nodes.JoinNode{{Left: child, Right: parent, On: child.Col("ParentId").Eq(parent.Col("Id"))}}
	with, err := nodes.NewWith(main, nodes.NewCTE(def, selectFrom(p, p.Col("Name"), p.Col("ParentId"), p.Col("Id"))))
	require.NoError(t, err)

	testutil.AssertSQL(t, ansi, with,
		"WITH PersonLite AS (SELECT PersonRef.Name, PersonRef.ParentId, PersonRef.Id FROM Person PersonRef) "+
			"SELECT child.Name, parent.Name FROM PersonLite child INNER JOIN PersonLite parent ON child.ParentId = parent.Id")
}

func TestCTEsRenderInDeclarationOrder(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	adults := nodes.NewTable("Adults")
	names := nodes.NewTable("Names")

	adultsBody := selectFrom(p, p.Col("Name"), p.Col("Age"))
	adultsBody.Where = nodes.NewChain(p.Col("Age").GtEq(18))
	with, err := nodes.NewWith(selectFrom(names, names.Star()),
		nodes.NewCTE(adults, adultsBody),
		nodes.NewCTE(names, selectFrom(adults, adults.Col("Name"))),
	)
	require.NoError(t, err)
	testutil.AssertSQL(t, ansi, with,
		"WITH Adults AS (SELECT PersonRef.Name, PersonRef.Age FROM Person PersonRef WHERE PersonRef.Age >= 18), "+
			"Names AS (SELECT AdultsRef.Name FROM Adults AdultsRef) SELECT NamesRef.* FROM Names NamesRef")
}

func TestWithWrapsDML(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	old := nodes.NewTable("Old")
	oldBody := selectFrom(p, p.Col("Id"))
	oldBody.Where = nodes.NewChain(p.Col("Age").Gt(99))
	del := &nodes.DeleteStatement{From: p, Where: nodes.NewChain(p.Col("Id").InSubquery(selectFrom(old, old.Col("Id"))))}

	with, err := nodes.NewWith(del, nodes.NewCTE(old, oldBody))
	require.NoError(t, err)
	testutil.AssertSQL(t, ansi, with,
		"WITH Old AS (SELECT PersonRef.Id FROM Person PersonRef WHERE PersonRef.Age > 99) "+
			"DELETE FROM Person PersonRef WHERE PersonRef.Id IN (SELECT OldRef.Id FROM Old OldRef)")
}

// --- DML ---

func TestInsertKeepsDeclaredOrder(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	ins := &nodes.InsertStatement{
		Into:    p,
		Columns: []string{"Name", "Age"},
		Values:  [][]nodes.Node{{nodes.Literal("Ann"), nodes.Literal(42)}},
	}
	testutil.AssertSQL(t, sqlite, ins, `INSERT INTO Person ("Name", "Age") VALUES ('Ann', 42)`)
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	upd := &nodes.UpdateStatement{
		Table: p,
		Assignments: []*nodes.AssignmentNode{
			{Column: "Name", Value: nodes.Literal("Ann")},
			{Column: "Age", Value: nodes.Literal(43)},
		},
		Where: nodes.NewChain(p.Col("Id").Eq(1)),
	}
	testutil.AssertSQL(t, ansi, upd, "UPDATE Person SET Name = 'Ann', Age = 43 WHERE Person.Id = 1")
}

func TestUpdateWithExpressionAndSubquery(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	o := nodes.NewTableAs("Person", "o")
	sub := selectFrom(o, nodes.Max(o.Col("Age")))
	sub.Where = nodes.NewChain(o.Col("ParentId").Eq(p.Col("Id")))
	upd := &nodes.UpdateStatement{
		Table: p,
		Assignments: []*nodes.AssignmentNode{
			{Column: "Age", Value: p.Col("Age").Plus(1)},
			{Column: "OldestChild", Value: nodes.Subquery(sub)},
		},
	}
	testutil.AssertSQL(t, ansi, upd,
		"UPDATE Person SET Age = Person.Age + 1, OldestChild = (SELECT MAX(o.Age) FROM Person o WHERE o.ParentId = Person.Id)")
	testutil.AssertSQL(t, sqlite, &nodes.UpdateStatement{Table: p, Assignments: upd.Assignments[:1]},
		`UPDATE Person SET "Age" = Person."Age" + 1`)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	testutil.AssertSQL(t, ansi, &nodes.DeleteStatement{From: p}, "DELETE FROM Person PersonRef")
	testutil.AssertSQL(t, ansi,
		&nodes.DeleteStatement{From: p, Where: nodes.NewChain(p.Col("Age").Lt(18)).Append(nodes.ConnOr, p.Col("Name").IsNull())},
		"DELETE FROM Person PersonRef WHERE PersonRef.Age < 18 OR PersonRef.Name IS NULL")
}

// --- Indented layout ---

func TestIndentedSelect(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	sel := selectFrom(p, p.Col("Name"), p.Col("Age"))
	sel.Where = nodes.NewChain(p.Col("Age").Gt(42)).Append(nodes.ConnOr, p.Col("Age").Lt(10))
	sel.Orders = []*nodes.OrderingNode{p.Col("Name").Asc()}
	testutil.AssertSQL(t, indented, sel, strings.Join([]string{
		"SELECT PersonRef.Name",
		"\t,PersonRef.Age",
		"FROM Person PersonRef",
		"WHERE PersonRef.Age > 42",
		"\tOR PersonRef.Age < 10",
		"ORDER BY PersonRef.Name ASC",
	}, "\n"))
}

func TestIndentedKeepsSubqueriesOnOneLine(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	lite := nodes.NewTable("PersonLite")
	body := selectFrom(p, p.Col("Name"), p.Col("Age"))
	body.Where = nodes.NewChain(p.Col("Age").Gt(15))
	main := selectFrom(lite, lite.Col("Name"))
	main.Where = nodes.NewChain(lite.Col("Age").Eq(42))
	with, err := nodes.NewWith(main, nodes.NewCTE(lite, body))
	require.NoError(t, err)

	testutil.AssertSQL(t, indented, with, strings.Join([]string{
		"WITH PersonLite AS (SELECT PersonRef.Name, PersonRef.Age FROM Person PersonRef WHERE PersonRef.Age > 15)",
		"SELECT PersonLiteRef.Name",
		"FROM PersonLite PersonLiteRef",
		"WHERE PersonLiteRef.Age = 42",
	}, "\n"))
}

func TestIndentedUpdate(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	upd := &nodes.UpdateStatement{
		Table: p,
		Assignments: []*nodes.AssignmentNode{
			{Column: "Name", Value: nodes.Literal("Ann")},
			{Column: "Age", Value: nodes.Literal(43)},
		},
		Where: nodes.NewChain(p.Col("Id").Eq(1)),
	}
	testutil.AssertSQL(t, indented, upd, "UPDATE Person\nSET Name = 'Ann'\n\t,Age = 43\nWHERE Person.Id = 1")
}

// --- Failures ---

func TestUnresolvedColumn(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	h := nodes.NewTable("House")
	testutil.AssertRenderError(t, ansi, selectFrom(p, h.Col("City")), nodes.ErrUnresolvedColumn)
	testutil.AssertRenderError(t, ansi, selectFrom(p, h.Star()), nodes.ErrUnresolvedColumn)
	testutil.AssertRenderError(t, ansi, selectFrom(p, nodes.NewAttribute(nil, "Name")), nodes.ErrUnresolvedColumn)
	// Same table, different alias: a different reference.
	testutil.AssertRenderError(t, ansi, selectFrom(p, nodes.NewTableAs("Person", "other").Col("Name")),
		nodes.ErrUnresolvedColumn)
}

func TestJoinMustHangOffEarlierTable(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	h := nodes.NewTable("House")
	s := nodes.NewTable("Street")
	sel := selectFrom(p, p.Col("Name"))
	sel.Joins = []*nodes.JoinNode{{Left: s, Right: h, On: s.Col("Id").Eq(h.Col("StreetId"))}}
	testutil.AssertRenderError(t, ansi, sel, nodes.ErrUnresolvedColumn)
}

func TestAliasCollisionInFromClause(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	again := nodes.NewTable("Person")
	sel := selectFrom(p, p.Col("Name"))
	sel.Joins = []*nodes.JoinNode{{Left: p, Right: again, On: p.Col("ParentId").Eq(again.Col("Id"))}}
	testutil.AssertRenderError(t, ansi, sel, nodes.ErrAliasCollision)

	h := nodes.NewTableAs("House", "x")
	q := nodes.NewTableAs("Person", "x")
	sel = selectFrom(q, q.Col("Name"))
	sel.Joins = []*nodes.JoinNode{{Left: q, Right: h, Type: nodes.CrossJoin}}
	testutil.AssertRenderError(t, ansi, sel, nodes.ErrAliasCollision)
}

func TestEmptyStatements(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	tests := []struct {
		name string
		node nodes.Node
	}{
		{"select without projections", selectFrom(p)},
		{"nil select", (*nodes.SelectCore)(nil)},
		{"joins without from", &nodes.SelectCore{Projections: []nodes.Node{nodes.Literal(1)}, Joins: []*nodes.JoinNode{{Right: p}}}},
		{"insert without table", &nodes.InsertStatement{Columns: []string{"Name"}}},
		{"insert without columns", &nodes.InsertStatement{Into: p, Values: [][]nodes.Node{{nodes.Literal(1)}}}},
		{"insert without rows", &nodes.InsertStatement{Into: p, Columns: []string{"Name"}}},
		{"update without table", &nodes.UpdateStatement{}},
		{"update without assignments", &nodes.UpdateStatement{Table: p}},
		{"assignment without value", &nodes.UpdateStatement{Table: p, Assignments: []*nodes.AssignmentNode{{Column: "Age"}}}},
		{"delete without table", &nodes.DeleteStatement{}},
		{"with without main", &nodes.WithNode{}},
		{"empty in list", where(p, &nodes.InNode{Expr: p.Col("Id")})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertRenderError(t, ansi, tt.node, nodes.ErrEmptyStatement)
		})
	}
}

func TestNilStatementAndDialect(t *testing.T) {
	t.Parallel()
	_, err := Generate(dialects.ANSI, nil)
	require.ErrorIs(t, err, nodes.ErrEmptyStatement)

	p := nodes.NewTable("Person")
	_, err = Generate(nil, selectFrom(p, p.Star()))
	require.Error(t, err)
}

func TestColumnArityMismatch(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	ins := &nodes.InsertStatement{
		Into:    p,
		Columns: []string{"Name", "Age"},
		Values: [][]nodes.Node{
			{nodes.Literal("Ann"), nodes.Literal(42)},
			{nodes.Literal("Bob")},
		},
	}
	testutil.AssertRenderError(t, ansi, ins, nodes.ErrColumnArity)
	ins.AllColumns = true
	testutil.AssertRenderError(t, ansi, ins, nodes.ErrColumnArity)
}

func TestInvalidCTEOrderingAtGeneration(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	first := nodes.NewTable("First")
	second := nodes.NewTable("Second")
	with := &nodes.WithNode{
		CTEs: []*nodes.CTENode{
			nodes.NewCTE(first, selectFrom(second, second.Star())),
			nodes.NewCTE(second, selectFrom(p, p.Star())),
		},
		Query: selectFrom(first, first.Star()),
	}
	testutil.AssertRenderError(t, ansi, with, nodes.ErrInvalidCTEOrdering)
}

func TestCTEBodyCannotSeeMainQuery(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	lite := nodes.NewTable("Lite")
	h := nodes.NewTable("House")
	main := selectFrom(h, h.Star())
	with := &nodes.WithNode{
		CTEs:  []*nodes.CTENode{nodes.NewCTE(lite, selectFrom(p, h.Col("City")))},
		Query: main,
	}
	testutil.AssertRenderError(t, ansi, with, nodes.ErrUnresolvedColumn)
}

func TestUnsupportedLiteral(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	testutil.AssertRenderError(t, ansi, where(p, p.Col("Tags").Eq([]string{"a"})), nodes.ErrUnsupportedLiteral)
}

func TestInvalidFunctionName(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	testutil.AssertRenderError(t, ansi, selectFrom(p, nodes.NewNamedFunction("LOWER(x); DROP TABLE Person; --")),
		nodes.ErrUnsupportedNode)
}

func TestMissingOperand(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	testutil.AssertRenderError(t, ansi, where(p, nodes.NewBinaryNode(p.Col("Age"), nodes.OpGt, nil)),
		nodes.ErrUnsupportedNode)
}

func TestFirstErrorWins(t *testing.T) {
	t.Parallel()
	p := nodes.NewTable("Person")
	h := nodes.NewTable("House")
	sel := selectFrom(p, h.Col("City"), p.Col("Tags").Eq(struct{}{}))
	_, err := ansi(sel)
	require.ErrorIs(t, err, nodes.ErrUnresolvedColumn)
	assert.NotErrorIs(t, err, nodes.ErrUnsupportedLiteral)
}
