package dialects

import (
	"time"

	"github.com/bawdo/sqlgen/internal/quoting"
	"github.com/bawdo/sqlgen/nodes"
)

// ANSI renders identifiers unchanged and uses the standard <> for
// inequality. It is the reference dialect for the examples in the docs.
var ANSI Dialect = &lexicon{
	name:       "ansi",
	quoteIdent: quoting.Verbatim,
	escapeStr:  quoting.EscapeString,
	operators:  map[nodes.BinaryOp]string{nodes.OpNotEq: "<>"},
	timeLayout: time.RFC3339Nano,
}

// SQLite wraps column identifiers in double quotes: PersonRef."Name".
var SQLite Dialect = &lexicon{
	name:       "sqlite",
	quoteIdent: quoting.DoubleQuote,
	escapeStr:  quoting.EscapeString,
	timeLayout: "2006-01-02 15:04:05.999999999",
}

// Postgres wraps column identifiers in double quotes.
var Postgres Dialect = &lexicon{
	name:       "postgres",
	quoteIdent: quoting.DoubleQuote,
	escapeStr:  quoting.EscapeString,
	operators:  map[nodes.BinaryOp]string{nodes.OpNotEq: "<>"},
	timeLayout: time.RFC3339Nano,
}

// MySQL wraps column identifiers in backticks and escapes backslashes in
// string literals.
var MySQL Dialect = &lexicon{
	name:       "mysql",
	quoteIdent: quoting.Backtick,
	escapeStr:  quoting.EscapeBackslashString,
	timeLayout: "2006-01-02 15:04:05.999999",
}

// ClickHouse wraps column identifiers in backticks and escapes backslashes
// in string literals.
var ClickHouse Dialect = &lexicon{
	name:       "clickhouse",
	quoteIdent: quoting.Backtick,
	escapeStr:  quoting.EscapeBackslashString,
	timeLayout: "2006-01-02 15:04:05",
}

func init() {
	register(ANSI.(*lexicon))
	register(SQLite.(*lexicon), "sqlite3")
	register(Postgres.(*lexicon), "postgresql", "pgx", "pg")
	register(MySQL.(*lexicon), "mariadb")
	register(ClickHouse.(*lexicon), "ch")
}
