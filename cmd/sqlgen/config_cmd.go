package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

func newConfigCmd(a *app) *cobra.Command {
	var showSource bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  `Show the effective configuration after merging defaults, config file, environment variables and flags.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if showSource {
				if a.cfgPath != "" {
					fmt.Fprintf(a.out, "Config file: %s\n\n", a.cfgPath)
				} else {
					fmt.Fprint(a.out, "Config file: (none, using defaults)\n\n")
				}
			}
			shown := *a.cfg
			shown.Database.DSN = sanitizeDSN(shown.Database.DSN)
			out, err := yaml.Marshal(shown)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, string(out))
			return nil
		},
	}
	show.Flags().BoolVar(&showSource, "source", false, "show config file source")

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	cmd.AddCommand(show)
	return cmd
}
