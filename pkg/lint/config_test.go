package lint_test

import (
	"testing"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlint/pkg/lint"
)

func koanfFrom(t *testing.T, values map[string]any) *koanf.Koanf {
	t.Helper()
	k := koanf.New(".")
	require.NoError(t, k.Load(confmap.Provider(values, "."), nil))
	return k
}

func TestDefaultConfig(t *testing.T) {
	cfg := lint.NewConfig()
	assert.Equal(t, 4, cfg.TabSpaceSize())
	assert.Equal(t, lint.IndentUnitSpace, cfg.IndentUnit())
	assert.Equal(t, "    ", cfg.SingleIndent())
	assert.False(t, cfg.IsDisabled("structure.nested_case"))
}

func TestConfigOverrides(t *testing.T) {
	cfg, err := lint.NewConfigFromKoanf(koanfFrom(t, map[string]any{
		"indentation.tab_space_size": 2,
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.TabSpaceSize())
	assert.Equal(t, "  ", cfg.SingleIndent())

	cfg, err = lint.NewConfigFromKoanf(koanfFrom(t, map[string]any{
		"indentation.indent_unit": "tab",
	}))
	require.NoError(t, err)
	assert.Equal(t, "\t", cfg.SingleIndent())
	// Unset keys keep their defaults.
	assert.Equal(t, 4, cfg.TabSpaceSize())
}

func TestConfigMalformedValues(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"zero tab size", map[string]any{"indentation.tab_space_size": 0}},
		{"negative tab size", map[string]any{"indentation.tab_space_size": -2}},
		{"non-integer tab size", map[string]any{"indentation.tab_space_size": "wide"}},
		{"unknown indent unit", map[string]any{"indentation.indent_unit": "banana"}},
		{"unknown severity", map[string]any{"rules.severity": map[string]string{"structure.nested_case": "fatal"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lint.NewConfigFromKoanf(koanfFrom(t, tt.values))
			assert.Error(t, err)
		})
	}
}

func TestConfigDisabledRules(t *testing.T) {
	cfg, err := lint.NewConfigFromKoanf(koanfFrom(t, map[string]any{
		"rules.disabled": []string{"structure.nested_case"},
	}))
	require.NoError(t, err)
	assert.True(t, cfg.IsDisabled("structure.nested_case"))
	assert.False(t, cfg.IsDisabled("structure.other"))

	cfg.Disable("structure.other")
	assert.True(t, cfg.IsDisabled("structure.other"))
}

func TestConfigSeverityOverride(t *testing.T) {
	cfg, err := lint.NewConfigFromKoanf(koanfFrom(t, map[string]any{
		"rules.severity": map[string]string{"structure.nested_case": "error"},
	}))
	require.NoError(t, err)

	assert.Equal(t, lint.SeverityError, cfg.SeverityFor("structure.nested_case", lint.SeverityWarning))
	assert.Equal(t, lint.SeverityWarning, cfg.SeverityFor("structure.other", lint.SeverityWarning))
}

func TestParseSeverity(t *testing.T) {
	for name, want := range map[string]lint.Severity{
		"error":   lint.SeverityError,
		"Warning": lint.SeverityWarning,
		"INFO":    lint.SeverityInfo,
		"hint":    lint.SeverityHint,
	} {
		got, ok := lint.ParseSeverity(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	_, ok := lint.ParseSeverity("critical")
	assert.False(t, ok)
}
