// Command sqlgen renders query documents to SQL.
//
// Commands:
//   - render: print the SQL for a query document
//   - dot: print the document's statement tree as a Graphviz graph
//   - check: render, then have a database engine prepare (or parse) the SQL
//   - repl: build statements interactively
//   - config show: print the effective configuration
//
// Settings come from sqlgen.yaml (working directory or
// $HOME/.config/sqlgen), SQLGEN_* environment variables, DATABASE_URL and
// flags, in increasing order of precedence.
//
// Usage:
//
//	sqlgen render query.yaml --dialect postgres
//	sqlgen check query.yaml --engine sqlite --schema schema.sql
package main

import (
	"io"
	"os"

	"github.com/bawdo/sqlgen/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCmd(in, out, errOut)
	root.SetArgs(args)
	return config.Report(errOut, root.Execute())
}
