// Package quoting provides shared identifier and string quoting utilities.
package quoting

import "strings"

// DoubleQuote quotes a SQL identifier using double quotes (PostgreSQL, SQLite, ANSI SQL).
// Internal double quotes are escaped by doubling them.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes a SQL identifier using backticks (MySQL, ClickHouse).
// Internal backticks are escaped by doubling them.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// Verbatim returns the identifier unchanged.
func Verbatim(s string) string {
	return s
}

// EscapeString escapes a string literal for standard SQL by doubling
// single quotes. Backslashes have no special meaning in standard SQL.
func EscapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// EscapeBackslashString escapes a string literal for engines that treat
// backslash as an escape character inside string literals (MySQL,
// ClickHouse): backslashes are doubled, then single quotes.
func EscapeBackslashString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}

// SingleQuote wraps an already escaped string in single quotes.
func SingleQuote(escaped string) string {
	return "'" + escaped + "'"
}
