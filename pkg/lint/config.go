package lint

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Configuration keys the core recognizes.
const (
	KeyTabSpaceSize = "indentation.tab_space_size"
	KeyIndentUnit   = "indentation.indent_unit"
)

// Indent units.
const (
	IndentUnitSpace = "space"
	IndentUnitTab   = "tab"
)

// Config is the resolved configuration rules see through their context.
// It wraps a koanf tree for nested key lookup and caches the validated
// indentation settings. Malformed values are a load-time error, never
// something masked during evaluation.
type Config struct {
	k *koanf.Koanf

	tabSpaceSize int
	indentUnit   string

	disabled   map[string]bool
	severities map[string]Severity
}

// defaults mirrors the documented default configuration.
func defaults() map[string]any {
	return map[string]any{
		KeyTabSpaceSize: 4,
		KeyIndentUnit:   IndentUnitSpace,
	}
}

// NewConfig returns the default configuration: four-space indents, all
// rules enabled.
func NewConfig() *Config {
	k := koanf.New(".")
	// The defaults are well-formed by construction.
	_ = k.Load(confmap.Provider(defaults(), "."), nil)
	cfg, err := NewConfigFromKoanf(k)
	if err != nil {
		panic(fmt.Sprintf("lint: default config invalid: %v", err))
	}
	return cfg
}

// NewConfigFromKoanf validates a loaded koanf tree and builds a Config from
// it. Missing keys fall back to defaults; present-but-malformed keys are
// errors.
func NewConfigFromKoanf(k *koanf.Koanf) (*Config, error) {
	merged := koanf.New(".")
	_ = merged.Load(confmap.Provider(defaults(), "."), nil)
	if err := merged.Merge(k); err != nil {
		return nil, fmt.Errorf("lint: merging configuration: %w", err)
	}

	cfg := &Config{
		k:          merged,
		disabled:   make(map[string]bool),
		severities: make(map[string]Severity),
	}

	size := merged.Int(KeyTabSpaceSize)
	if size <= 0 {
		return nil, fmt.Errorf("lint: %s must be a positive integer, got %q", KeyTabSpaceSize, merged.String(KeyTabSpaceSize))
	}
	cfg.tabSpaceSize = size

	unit := merged.String(KeyIndentUnit)
	if unit != IndentUnitSpace && unit != IndentUnitTab {
		return nil, fmt.Errorf("lint: %s must be %q or %q, got %q", KeyIndentUnit, IndentUnitSpace, IndentUnitTab, unit)
	}
	cfg.indentUnit = unit

	for _, name := range merged.Strings("rules.disabled") {
		cfg.disabled[name] = true
	}
	for name, raw := range merged.StringMap("rules.severity") {
		sev, ok := ParseSeverity(raw)
		if !ok {
			return nil, fmt.Errorf("lint: rules.severity.%s: unknown severity %q", name, raw)
		}
		cfg.severities[name] = sev
	}

	return cfg, nil
}

// TabSpaceSize returns the number of spaces one indent unit represents when
// the indent unit is "space".
func (c *Config) TabSpaceSize() int { return c.tabSpaceSize }

// IndentUnit returns "space" or "tab".
func (c *Config) IndentUnit() string { return c.indentUnit }

// SingleIndent returns the literal text of one indent level.
func (c *Config) SingleIndent() string {
	if c.indentUnit == IndentUnitTab {
		return "\t"
	}
	return strings.Repeat(" ", c.tabSpaceSize)
}

// IsDisabled returns true if the named rule should be skipped.
func (c *Config) IsDisabled(ruleName string) bool {
	if c == nil {
		return false
	}
	return c.disabled[ruleName]
}

// Disable marks a rule as disabled.
func (c *Config) Disable(ruleName string) *Config {
	c.disabled[ruleName] = true
	return c
}

// SeverityFor returns the severity for a rule, applying any override.
func (c *Config) SeverityFor(ruleName string, def Severity) Severity {
	if c != nil {
		if sev, ok := c.severities[ruleName]; ok {
			return sev
		}
	}
	return def
}

// Get performs a raw nested key lookup, e.g. Get("indentation.indent_unit").
func (c *Config) Get(path string) any { return c.k.Get(path) }
