package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bawdo/sqlgen/internal/config"
	"github.com/bawdo/sqlgen/visitors"
)

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render [file]",
		Short: "Print the SQL for a query document",
		Long:  `Print the SQL for a query document read from file, or from stdin when no file (or "-") is given.`,
		Example: `  # Render with the configured dialect
  sqlgen render query.yaml

  # Render for MySQL, one clause per line
  sqlgen render query.yaml --dialect mysql --indent`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, stmt, err := a.loadDocument(args)
			if err != nil {
				return err
			}
			d, err := a.dialectFor(cmd, doc.Dialect, nil)
			if err != nil {
				return err
			}
			a.debugf("dialect %s", d)

			sql, err := visitors.Generate(d, stmt, a.generateOptions()...)
			if err != nil {
				return config.DocumentError("rendering", err)
			}
			fmt.Fprintln(a.out, sql)
			return nil
		},
	}
}

func newDotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "dot [file]",
		Short:   "Print a query document's statement tree as a Graphviz graph",
		Example: `  sqlgen dot query.yaml | dot -Tsvg > query.svg`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, stmt, err := a.loadDocument(args)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, visitors.Dot(stmt))
			return nil
		},
	}
}
