package main

import (
	"sort"
	"strings"

	"github.com/bawdo/sqlgen/dialects"
)

// completionContext describes what kind of completion is appropriate.
type completionContext int

const (
	contextCommand     completionContext = iota // start of line or partial command
	contextTableName                            // after from/join/etc
	contextColumnRef                            // after select/where/having/group
	contextEngine                               // after engine
	contextDialect                              // after dialect
	contextOrderDir                             // after a column ref in order context
	contextOperator                             // after a column ref in condition context
	contextKeyword                              // after the alias of a join
	contextSchemaTable                          // after table, database table names
)

var orderDirs = []string{"asc", "desc"}
var operators = []string{
	"!=", "%", "*", "+", "-", "/", "<", "<=", "<>", "=", ">", ">=", "||",
	"and", "is not null", "is null", "like", "not like", "or",
}

var functionNames = []string{"AVG(", "COUNT(", "COUNT(DISTINCT ", "MAX(", "MIN(", "SUM("}

// replCompleter implements readline's AutoCompleter interface.
type replCompleter struct {
	sess *Session
}

// Do returns completion candidates for the current line/cursor position.
// length is the number of chars from end of line[:pos] that form the prefix being completed.
// newLine contains the suffixes to append for each candidate.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	lineStr := string(line[:pos])
	ctx, prefix := c.parseContext(lineStr)

	var candidates []string
	switch ctx {
	case contextCommand:
		candidates = filterPrefix(c.sess.commandNames(), prefix)
	case contextTableName:
		candidates = c.completeTableNames(prefix)
	case contextColumnRef:
		candidates = c.completeColumnRef(prefix)
	case contextEngine:
		candidates = filterPrefix(engineNames, prefix)
	case contextDialect:
		candidates = filterPrefix(dialects.Names(), prefix)
	case contextOrderDir:
		candidates = filterPrefix(orderDirs, prefix)
	case contextOperator:
		candidates = filterPrefix(operators, prefix)
	case contextKeyword:
		candidates = []string{"on"}
	case contextSchemaTable:
		if c.sess.conn != nil {
			candidates = filterPrefix(c.sess.conn.schemaTables(), prefix)
		}
	}

	for _, cand := range candidates {
		suffix := cand[len(prefix):]
		newLine = append(newLine, []rune(suffix+" "))
	}
	length = len([]rune(prefix))
	return
}

// parseContext examines the line up to cursor and determines what kind of
// completion is needed and the current prefix being typed.
func (c *replCompleter) parseContext(line string) (completionContext, string) {
	lower := strings.ToLower(line)

	for _, cmd := range c.sess.commands {
		if !strings.HasSuffix(cmd.prefix, " ") {
			continue // exact-match commands have no arg completion
		}
		if strings.HasPrefix(lower, cmd.prefix) && cmd.completer != nil {
			return cmd.completer(line[len(cmd.prefix):])
		}
	}
	return contextCommand, strings.TrimSpace(line)
}

// completeTableNames returns registered aliases matching prefix.
func (c *replCompleter) completeTableNames(prefix string) []string {
	var names []string
	for _, t := range c.sess.reg.Tables() {
		names = append(names, t.Alias)
	}
	names = dedup(names)
	sort.Strings(names)
	return filterPrefix(names, prefix)
}

// completeColumnRef handles both alias and alias.column completion. Column
// names come from the connected database's schema.
func (c *replCompleter) completeColumnRef(prefix string) []string {
	alias, colPrefix, ok := strings.Cut(prefix, ".")
	if !ok {
		candidates := c.completeTableNames(prefix)
		return append(candidates, filterPrefix(functionNames, prefix)...)
	}

	candidates := []string{alias + ".*"}
	if t, found := c.sess.reg.Lookup(alias); found && c.sess.conn != nil {
		for _, col := range c.sess.conn.schemaColumns(t.Name) {
			candidates = append(candidates, alias+"."+col)
		}
	}
	if colPrefix == "*" {
		return candidates[:1]
	}
	return filterPrefix(candidates, prefix)
}

// filterPrefix returns items that start with prefix (case-insensitive).
func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		result := make([]string, len(items))
		copy(result, items)
		return result
	}
	lowerPrefix := strings.ToLower(prefix)
	var result []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lowerPrefix) {
			result = append(result, item)
		}
	}
	return result
}

// dedup removes duplicate strings.
func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	var result []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

// lastToken returns the last whitespace- or comma-separated token.
func lastToken(s string) string {
	if i := strings.LastIndexAny(s, " ,\t"); i >= 0 {
		return s[i+1:]
	}
	return s
}
