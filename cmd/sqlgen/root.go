package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bawdo/sqlgen/dialects"
	"github.com/bawdo/sqlgen/internal/config"
	"github.com/bawdo/sqlgen/internal/querydoc"
	"github.com/bawdo/sqlgen/nodes"
	"github.com/bawdo/sqlgen/visitors"
)

// app carries the streams and the configuration loaded for one invocation.
type app struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	cfgFile string
	cfg     *config.Config
	cfgPath string
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "sqlgen",
		Short: "Render SQL from query documents",
		Long: `sqlgen - typed SQL generation

sqlgen turns query documents (YAML or JSON statement trees) into exact,
dialect-specific SQL. It never reorders, rewrites or optimises a statement.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			cfg, path, err := config.Load(a.cfgFile, cmd.Flags())
			if err != nil {
				return config.ConfigError("loading configuration", err)
			}
			a.cfg, a.cfgPath = cfg, path
			if path != "" {
				a.debugf("config file %s", path)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: auto-discover sqlgen.yaml)")
	pf.String("dialect", "", "SQL dialect: "+strings.Join(dialects.Names(), ", "))
	pf.Bool("indent", false, "break clauses onto separate lines")
	pf.BoolP("verbose", "v", false, "print diagnostics to stderr")

	root.AddCommand(newRenderCmd(a), newDotCmd(a), newCheckCmd(a), newREPLCmd(a), newConfigCmd(a))
	return root
}

func (a *app) debugf(format string, args ...any) {
	if a.cfg != nil && a.cfg.Verbose {
		fmt.Fprintf(a.errOut, "sqlgen: "+format+"\n", args...)
	}
}

// dialectFor picks the dialect: an explicit --dialect flag, then the
// document's own dialect, then the fallback, then the configured one.
func (a *app) dialectFor(cmd *cobra.Command, docDialect string, fallback dialects.Dialect) (dialects.Dialect, error) {
	name := a.cfg.Dialect
	switch {
	case cmd.Flags().Changed("dialect"):
	case docDialect != "":
		name = docDialect
	case fallback != nil:
		return fallback, nil
	}
	d, err := dialects.ByName(name)
	if err != nil {
		return nil, config.ConfigError("resolving dialect", err)
	}
	return d, nil
}

func (a *app) generateOptions() []visitors.Option {
	if a.cfg.Indent {
		return []visitors.Option{visitors.WithIndent()}
	}
	return nil
}

// loadDocument reads the document named by args, or stdin when args is
// empty or "-", and builds its statement.
func (a *app) loadDocument(args []string) (*querydoc.Document, nodes.Node, error) {
	var (
		data   []byte
		err    error
		source = "stdin"
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(a.in)
	} else {
		source = args[0]
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, nil, config.DocumentError("reading "+source, err)
	}
	a.debugf("read %d bytes from %s", len(data), source)

	doc, err := querydoc.Parse(data)
	if err != nil {
		return nil, nil, config.DocumentError("parsing "+source, err)
	}
	stmt, err := doc.Build()
	if err != nil {
		return nil, nil, config.DocumentError("building "+source, err)
	}
	return doc, stmt, nil
}
