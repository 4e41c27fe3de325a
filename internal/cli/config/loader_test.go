package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlint/pkg/lint"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, 4, cfg.Lint.TabSpaceSize())
	assert.Equal(t, lint.IndentUnitSpace, cfg.Lint.IndentUnit())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
dialect: postgres
output: json
indentation:
  tab_space_size: 2
  indent_unit: space
rules:
  disabled:
    - structure.nested_case
  severity:
    structure.nested_case: error
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 2, cfg.Lint.TabSpaceSize())
	assert.True(t, cfg.Lint.IsDisabled("structure.nested_case"))
	assert.Equal(t, lint.SeverityError, cfg.Lint.SeverityFor("structure.nested_case", lint.SeverityWarning))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadMalformedIndentation(t *testing.T) {
	path := writeConfig(t, `
indentation:
  indent_unit: banana
`)
	_, err := Load(path, nil)
	assert.Error(t, err)

	path = writeConfig(t, `
indentation:
  tab_space_size: -1
`)
	_, err = Load(path, nil)
	assert.Error(t, err)
}

func TestLoadUnknownSeverity(t *testing.T) {
	path := writeConfig(t, `
rules:
  severity:
    structure.nested_case: fatal
`)
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SQLINT_DIALECT", "duckdb")
	t.Setenv("SQLINT_INDENTATION__TAB_SPACE_SIZE", "8")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "duckdb", cfg.Dialect)
	assert.Equal(t, 8, cfg.Lint.TabSpaceSize())
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := writeConfig(t, "dialect: postgres\n")
	t.Setenv("SQLINT_DIALECT", "mysql")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Dialect)
}

func TestFlagOverridesBeatEnv(t *testing.T) {
	t.Setenv("SQLINT_DIALECT", "mysql")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--dialect", "snowflake", "--verbose"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "snowflake", cfg.Dialect)
	assert.True(t, cfg.Verbose)
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "ansi", cfg.Dialect)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	assert.Empty(t, findConfigFile(""))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte("dialect: ansi\n"), 0o644))
	assert.Equal(t, ConfigFileNameAlt, findConfigFile(""))

	// The dotted name wins over the bare name.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("dialect: ansi\n"), 0o644))
	assert.Equal(t, ConfigFileName, findConfigFile(""))

	// An explicit path is only honored when it exists.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "explicit.yaml"), []byte("dialect: ansi\n"), 0o644))
	assert.Equal(t, "explicit.yaml", findConfigFile("explicit.yaml"))
	assert.Empty(t, findConfigFile("missing.yaml"))
}
