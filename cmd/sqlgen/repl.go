package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"

	"github.com/bawdo/sqlgen/internal/config"
)

const replPrompt = "sqlgen> "

func newREPLCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Build statements interactively",
		Long: `Start an interactive session for building statements one clause at a
time, rendering them under any dialect and running them on a database.

If a DSN is configured (--dsn, SQLGEN_DATABASE_DSN or DATABASE_URL) the
session connects on start. Type 'help' inside the session for commands.`,
		Example: `  sqlgen repl --engine sqlite --dsn app.db`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine := a.cfg.Database.Engine
			fallback, ok := engineDialect[engine]
			if !ok {
				return config.ConfigError("resolving engine", fmt.Errorf("unknown engine %q (known: %v)", engine, engineNames))
			}
			d, err := a.dialectFor(cmd, "", fallback)
			if err != nil {
				return err
			}
			return a.runREPL(NewSession(d, engine, nil))
		},
	}
	cmd.Flags().String("engine", "", "database engine: "+strings.Join(engineNames, ", "))
	cmd.Flags().String("dsn", "", "data source name to connect to on start")
	return cmd
}

func (a *app) runREPL(sess *Session) error {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     a.historyPath(),
		HistoryLimit:    500,
		AutoComplete:    &replCompleter{sess: sess},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return config.GeneralError("readline init", err)
	}
	defer func() { _ = rl.Close() }()
	sess.rl = rl
	sess.out = a.out
	sess.indent = a.cfg.Indent

	if a.cfg.Database.DSN != "" && sess.engine != "clickhouse" {
		fmt.Fprintf(a.out, "Connecting to %s...\n", sanitizeDSN(a.cfg.Database.DSN))
		if err := sess.Execute("connect " + a.cfg.Database.DSN); err != nil {
			fmt.Fprintf(a.errOut, "  Warning: connect failed: %v\n", err)
		}
	}

	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "sqlgen REPL (%s, engine %s). Type 'help' for commands, 'exit' to quit\n", sess.dialect, sess.engine)
	fmt.Fprintln(a.out)

	for {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) || err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if lower == "exit" || lower == "quit" {
			break
		}
		if err := sess.Execute(line); err != nil {
			fmt.Fprintf(a.errOut, "  Error: %v\n", err)
		}
	}
	if sess.conn != nil {
		_ = sess.conn.close()
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *app) historyPath() string {
	if a.cfg.REPL.History != "" {
		return a.cfg.REPL.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sqlgen_history")
}

// prompt prints a label with an optional default and returns the user's input
// (or the default if they press enter).
func prompt(rl *readline.Instance, label, defaultVal string) string {
	if rl == nil {
		return defaultVal
	}
	if defaultVal != "" {
		rl.SetPrompt(fmt.Sprintf("  %s [%s]: ", label, defaultVal))
	} else {
		rl.SetPrompt(fmt.Sprintf("  %s: ", label))
	}
	defer rl.SetPrompt(replPrompt)
	line, err := rl.ReadLine()
	if err != nil {
		return defaultVal
	}
	val := strings.TrimSpace(line)
	if val == "" {
		return defaultVal
	}
	return val
}

func buildSQLiteDSN(rl *readline.Instance) string {
	return prompt(rl, "SQLite database path", ":memory:")
}

func buildPostgresDSN(rl *readline.Instance) string {
	defaultUser := "postgres"
	if u, err := user.Current(); err == nil && u.Username != "" {
		defaultUser = u.Username
	}

	dbUser := prompt(rl, "User", defaultUser)
	dbPass := prompt(rl, "Password", "")
	host := prompt(rl, "Host", "localhost")
	port := prompt(rl, "Port", "5432")
	dbName := prompt(rl, "Database", dbUser)
	sslMode := prompt(rl, "SSL mode (disable/require/verify-full)", "disable")

	var userInfo *url.Userinfo
	if dbPass != "" {
		userInfo = url.UserPassword(dbUser, dbPass)
	} else {
		userInfo = url.User(dbUser)
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     host + ":" + port,
		Path:     "/" + dbName,
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String()
}

func buildMySQLDSN(rl *readline.Instance) string {
	dbUser := prompt(rl, "User", "root")
	dbPass := prompt(rl, "Password", "")
	host := prompt(rl, "Host", "localhost")
	port := prompt(rl, "Port", "3306")
	dbName := prompt(rl, "Database", "")

	if dbName == "" {
		return ""
	}

	// Format: user:pass@tcp(host:port)/dbname
	auth := dbUser
	if dbPass != "" {
		auth = dbUser + ":" + dbPass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s", auth, host, port, dbName)
}
