package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bawdo/sqlgen/internal/config"
	"github.com/bawdo/sqlgen/visitors"
)

func newCheckCmd(a *app) *cobra.Command {
	var schemaFile string
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Render a query document and have an engine accept it",
		Long: `Render a query document, then ask a database engine to prepare the SQL
without running it. sqlite, postgres and mysql are checked over a connection
(--dsn, or DATABASE_URL); clickhouse is parsed offline.

Unless --dialect is given or the document names one, the engine's own
dialect is used.`,
		Example: `  # Check against an in-memory SQLite database
  sqlgen check query.yaml --engine sqlite --schema schema.sql

  # Check against Postgres
  DATABASE_URL=postgres://localhost/app sqlgen check query.yaml --engine postgres`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := a.cfg.Database.Engine
			fallback, ok := engineDialect[engine]
			if !ok {
				return config.ConfigError("resolving engine", fmt.Errorf("unknown engine %q (known: %v)", engine, engineNames))
			}
			doc, stmt, err := a.loadDocument(args)
			if err != nil {
				return err
			}
			d, err := a.dialectFor(cmd, doc.Dialect, fallback)
			if err != nil {
				return err
			}
			sql, err := visitors.Generate(d, stmt, a.generateOptions()...)
			if err != nil {
				return config.DocumentError("rendering", err)
			}
			a.debugf("checking on %s: %s", engine, sql)

			if engine == "clickhouse" {
				if err := checkClickHouse(sql); err != nil {
					return config.DocumentError("clickhouse rejected the statement", err)
				}
				fmt.Fprintln(a.out, "ok")
				return nil
			}

			ctx := cmd.Context()
			conn, err := connect(ctx, engine, a.cfg.Database.DSN)
			if err != nil {
				return config.DatabaseError("connecting to "+sanitizeDSN(a.cfg.Database.DSN), err)
			}
			defer func() { _ = conn.close() }()

			if schemaFile != "" {
				script, err := os.ReadFile(schemaFile)
				if err != nil {
					return config.GeneralError("reading schema", err)
				}
				if err := conn.execScript(ctx, string(script)); err != nil {
					return config.DatabaseError("applying schema", err)
				}
			}
			if err := conn.prepare(ctx, sql); err != nil {
				return config.DocumentError(engine+" rejected the statement", err)
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}
	cmd.Flags().String("engine", "", "engine: clickhouse, mysql, postgres or sqlite")
	cmd.Flags().String("dsn", "", "data source name (default: DATABASE_URL)")
	cmd.Flags().StringVar(&schemaFile, "schema", "", "SQL script run before the check, e.g. CREATE TABLE statements")
	return cmd
}
