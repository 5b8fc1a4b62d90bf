package main

import (
	"sort"
	"strings"

	"github.com/bawdo/sqlgen/nodes"
)

// commandEntry maps a REPL prefix to its handler and optional tab-completer.
type commandEntry struct {
	prefix    string
	handler   func(args string) error
	completer func(args string) (completionContext, string) // nil = no arg completion
	hidden    bool                                          // excluded from commandNames()
}

// initCommands builds the command registry and sorts by prefix length descending.
func (s *Session) initCommands() {
	s.commands = []commandEntry{
		// --- output ---
		{prefix: "sql", handler: func(_ string) error { return s.cmdSQL() }},
		{prefix: "tosql", handler: func(_ string) error { return s.cmdSQL() }, hidden: true},
		{prefix: "dot ", handler: func(a string) error { return s.cmdDot(a) }},
		{prefix: "dot", handler: func(_ string) error { return s.cmdDot("") }},
		{prefix: "load ", handler: func(a string) error { return s.cmdLoad(a) }},
		{prefix: "reset", handler: func(_ string) error { return s.cmdReset() }},
		{prefix: "tables", handler: func(_ string) error { return s.cmdTables() }},
		{prefix: "help", handler: func(_ string) error { s.cmdHelp(); return nil }},

		// --- settings ---
		{prefix: "dialect ", handler: func(a string) error { return s.cmdDialect(a) }, completer: completeDialectArgs},
		{prefix: "engine ", handler: func(a string) error { return s.cmdEngine(a) }, completer: completeEngineArgs},
		{prefix: "indent", handler: func(_ string) error { return s.cmdIndent() }},

		// --- table registration ---
		{prefix: "table ", handler: func(a string) error { return s.cmdTable(a) }, completer: completeSchemaTableArgs},
		{prefix: "t ", handler: func(a string) error { return s.cmdTable(a) }, hidden: true},

		// --- query building ---
		{prefix: "distinct", handler: func(_ string) error { return s.cmdDistinct() }},
		{prefix: "from ", handler: func(a string) error { return s.cmdFrom(a) }, completer: completeTableArgs},
		{prefix: "select ", handler: func(a string) error { return s.cmdSelect(a) }, completer: completeColumnArgs},
		{prefix: "project ", handler: func(a string) error { return s.cmdSelect(a) }, completer: completeColumnArgs, hidden: true},
		{prefix: "group ", handler: func(a string) error { return s.cmdGroup(a) }, completer: completeColumnArgs},
		{prefix: "having ", handler: func(a string) error { return s.cmdHaving(a) }, completer: completeColumnArgs},
		{prefix: "order ", handler: func(a string) error { return s.cmdOrder(a) }, completer: completeOrderArgs},
		{prefix: "limit ", handler: func(a string) error { return s.cmdLimit(a) }},
		{prefix: "take ", handler: func(a string) error { return s.cmdLimit(a) }, hidden: true},
		{prefix: "offset ", handler: func(a string) error { return s.cmdOffset(a) }},
		{prefix: "where ", handler: func(a string) error { return s.cmdWhere(a, false) }, completer: completeColumnArgs},
		{prefix: "or ", handler: func(a string) error { return s.cmdWhere(a, true) }, completer: completeColumnArgs},

		// --- joins (multi-word prefixes) ---
		{prefix: "outer join ", handler: func(a string) error { return s.cmdJoin(a, nodes.LeftOuterJoin) }, completer: completeJoinArgs, hidden: true},
		{prefix: "right join ", handler: func(a string) error { return s.cmdJoin(a, nodes.RightOuterJoin) }, completer: completeJoinArgs},
		{prefix: "cross join ", handler: func(a string) error { return s.cmdCrossJoin(a) }, completer: completeJoinArgs},
		{prefix: "left join ", handler: func(a string) error { return s.cmdJoin(a, nodes.LeftOuterJoin) }, completer: completeJoinArgs},
		{prefix: "full join ", handler: func(a string) error { return s.cmdJoin(a, nodes.FullOuterJoin) }, completer: completeJoinArgs},
		{prefix: "join ", handler: func(a string) error { return s.cmdJoin(a, nodes.InnerJoin) }, completer: completeJoinArgs},

		// --- CTEs ---
		{prefix: "with ", handler: func(a string) error { return s.cmdWith(a) }},

		// --- DML builders ---
		{prefix: "insert into ", handler: func(a string) error { return s.cmdInsertInto(a) }, completer: completeTableArgs},
		{prefix: "delete from ", handler: func(a string) error { return s.cmdDeleteFrom(a) }, completer: completeTableArgs},
		{prefix: "columns ", handler: func(a string) error { return s.cmdColumns(a) }},
		{prefix: "values ", handler: func(a string) error { return s.cmdValues(a) }},
		{prefix: "update ", handler: func(a string) error { return s.cmdUpdate(a) }, completer: completeTableArgs},
		{prefix: "set ", handler: func(a string) error { return s.cmdSet(a) }, completer: completeColumnArgs},

		// --- database connectivity ---
		{prefix: "connect ", handler: func(a string) error { return s.cmdConnect(a) }},
		{prefix: "connect", handler: func(_ string) error { return s.cmdConnect("") }},
		{prefix: "disconnect", handler: func(_ string) error { return s.cmdDisconnect() }},
		{prefix: "schema ", handler: func(a string) error { return s.cmdSchema(a) }},
		{prefix: "exec", handler: func(_ string) error { return s.cmdExec() }},
		{prefix: "run", handler: func(_ string) error { return s.cmdExec() }, hidden: true},
		{prefix: "check", handler: func(_ string) error { return s.cmdCheck() }},
	}

	// Sort by prefix length descending so longest prefixes match first.
	sort.SliceStable(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

// commandNames derives the command name list from the registry for tab completion.
func (s *Session) commandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range s.commands {
		if cmd.hidden {
			continue
		}
		name := strings.TrimRight(cmd.prefix, " ")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	// exit/quit are handled by the REPL loop, not Execute().
	names = append(names, "exit", "quit")
	sort.Strings(names)
	return names
}

// --- Shared completion helpers ---

// completeJoinArgs handles completion for join prefixes:
// alias → ON clause → column ref → operator.
func completeJoinArgs(args string) (completionContext, string) {
	words := strings.Fields(args)
	if len(words) == 0 {
		return contextTableName, ""
	}
	if strings.Contains(args, " ") {
		if strings.HasSuffix(args, " ") {
			if len(words) == 1 {
				return contextKeyword, ""
			}
			return contextOperator, ""
		}
		return contextColumnRef, words[len(words)-1]
	}
	return contextTableName, args
}

// completeTableArgs handles completion for single-alias commands
// (from, insert into, update, delete from).
func completeTableArgs(args string) (completionContext, string) {
	arg := strings.TrimSpace(args)
	if strings.Contains(arg, " ") {
		return contextCommand, ""
	}
	return contextTableName, arg
}

// completeColumnArgs handles completion for column-ref commands
// (select, where, or, having, group, set).
func completeColumnArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") {
		prev := strings.Fields(args)
		if len(prev) > 0 && strings.Contains(prev[len(prev)-1], ".") {
			return contextOperator, ""
		}
		return contextColumnRef, ""
	}
	return contextColumnRef, lastToken(args)
}

// completeOrderArgs completes column refs, then a direction after a column.
func completeOrderArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") {
		parts := strings.Fields(args)
		if len(parts) > 0 && strings.Contains(parts[len(parts)-1], ".") {
			return contextOrderDir, ""
		}
		return contextColumnRef, ""
	}
	last := lastToken(args)
	switch strings.ToLower(last) {
	case "a", "as", "d", "de", "des":
		return contextOrderDir, last
	}
	return contextColumnRef, last
}

// completeSchemaTableArgs completes the table name of the table command
// from the connected database.
func completeSchemaTableArgs(args string) (completionContext, string) {
	arg := strings.TrimSpace(args)
	if strings.Contains(arg, " ") {
		return contextCommand, ""
	}
	return contextSchemaTable, arg
}

func completeEngineArgs(args string) (completionContext, string) {
	return contextEngine, strings.TrimSpace(args)
}

func completeDialectArgs(args string) (completionContext, string) {
	return contextDialect, strings.TrimSpace(args)
}
