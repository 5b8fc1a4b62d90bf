// Package config loads sqlgen CLI settings from defaults, a sqlgen.yaml
// file, SQLGEN_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the effective CLI configuration.
type Config struct {
	Dialect  string         `mapstructure:"dialect" json:"dialect"`
	Indent   bool           `mapstructure:"indent" json:"indent"`
	Verbose  bool           `mapstructure:"verbose" json:"verbose"`
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	REPL     REPLConfig     `mapstructure:"repl" json:"repl"`
}

// DatabaseConfig names the engine used by check and the REPL's exec.
type DatabaseConfig struct {
	Engine string `mapstructure:"engine" json:"engine"`
	DSN    string `mapstructure:"dsn" json:"dsn"`
}

// REPLConfig holds interactive session settings.
type REPLConfig struct {
	History string `mapstructure:"history" json:"history"`
}

// flagKeys maps config keys to the flag names that override them.
var flagKeys = map[string]string{
	"dialect":         "dialect",
	"indent":          "indent",
	"verbose":         "verbose",
	"database.engine": "engine",
	"database.dsn":    "dsn",
}

// Load discovers and loads configuration: flags > env > file > defaults.
// flags may be nil. It returns the config and the file it was read from
// (empty when none was found).
func Load(explicitPath string, flags *pflag.FlagSet) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SQLGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.dsn", "SQLGEN_DATABASE_DSN", "DATABASE_URL"); err != nil {
		return nil, "", err
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, "", fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	path, err := findConfigFile(explicitPath)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, path, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, path, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, path, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dialect", "ansi")
	v.SetDefault("indent", false)
	v.SetDefault("verbose", false)
	v.SetDefault("database.engine", "sqlite")
	v.SetDefault("database.dsn", ":memory:")
	v.SetDefault("repl.history", "")
}

// findConfigFile returns explicitPath if it exists, otherwise the first
// sqlgen.yaml or sqlgen.yml in the working directory or
// $HOME/.config/sqlgen. No file is not an error.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "sqlgen"))
	}
	for _, dir := range dirs {
		for _, name := range []string{"sqlgen.yaml", "sqlgen.yml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", nil
}
