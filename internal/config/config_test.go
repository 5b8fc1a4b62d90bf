package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the working directory and HOME at empty temp dirs so no
// stray sqlgen.yaml is discovered.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQLGEN_DIALECT", "")
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("dialect", "", "")
	fs.String("dsn", "", "")
	fs.String("engine", "", "")
	fs.Bool("indent", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, path, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "ansi", cfg.Dialect)
	assert.False(t, cfg.Indent)
	assert.Equal(t, "sqlite", cfg.Database.Engine)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
}

func TestLoadDiscoversFileInWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "sqlgen.yaml"), "dialect: mysql\nindent: true\ndatabase:\n  engine: mysql\n")

	cfg, path, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sqlgen.yaml"), path)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.True(t, cfg.Indent)
	assert.Equal(t, "mysql", cfg.Database.Engine)
}

func TestLoadDiscoversFileInHomeConfig(t *testing.T) {
	isolate(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".config", "sqlgen", "sqlgen.yml"), "dialect: postgres\n")

	cfg, path, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "sqlgen", "sqlgen.yml"), path)
	assert.Equal(t, "postgres", cfg.Dialect)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	isolate(t)
	_, _, err := Load("/nonexistent/sqlgen.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "sqlgen.yaml"), "dialect: mysql\n")
	t.Setenv("SQLGEN_DIALECT", "sqlite")

	cfg, _, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Dialect)
}

func TestDatabaseURLFillsDSN(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/app")

	cfg, _, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/app", cfg.Database.DSN)
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SQLGEN_DIALECT", "sqlite")
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--dialect", "clickhouse", "--dsn", "file:x.db"}))

	cfg, _, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "clickhouse", cfg.Dialect)
	assert.Equal(t, "file:x.db", cfg.Database.DSN)
}

func TestUnchangedFlagsKeepDefaults(t *testing.T) {
	isolate(t)
	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, _, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, "sqlite", cfg.Database.Engine)
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitGeneral, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitConfig, ExitCode(ConfigError("loading", errors.New("x"))))
	assert.Equal(t, ExitDocument, ExitCode(DocumentError("parsing", nil)))
	assert.Equal(t, ExitDatabase, ExitCode(DatabaseError("connecting", nil)))
	assert.Equal(t, ExitGeneral, ExitCode(GeneralError("oops", nil)))
}

func TestExitErrorWrapsCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("disk on fire")
	err := DatabaseError("connecting", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "connecting: disk on fire", err.Error())
	assert.Equal(t, "connecting", DatabaseError("connecting", nil).Error())

	var buf bytes.Buffer
	assert.Equal(t, ExitDatabase, Report(&buf, err))
	assert.Equal(t, "Error: connecting: disk on fire\n", buf.String())
}
