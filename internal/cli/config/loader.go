// Package config loads CLI configuration for sqlint.
//
// Precedence, lowest to highest: built-in defaults, .sqlint.yaml (or an
// explicit --config path), SQLINT_* environment variables, command-line
// flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/sqlint/pkg/lint"
)

// Config file names looked up in the working directory.
const (
	ConfigFileName    = ".sqlint.yaml"
	ConfigFileNameAlt = "sqlint.yaml"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect      string `koanf:"dialect"`
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`

	// Lint is the resolved rule configuration handed to the core.
	Lint *lint.Config
}

func defaults() map[string]any {
	return map[string]any{
		"dialect": "ansi",
		"output":  "text",
		"verbose": false,
	}
}

// findConfigFile finds the config file to use.
// Priority: explicit path > .sqlint.yaml > sqlint.yaml. A missing explicit
// path yields "" so the caller can report it rather than a raw read error.
func findConfigFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// Load reads configuration from defaults, an optional YAML file, the
// environment and explicitly set command-line flags. Malformed values
// (unknown indent unit, non-integer tab size, unknown severity) are
// load-time errors.
func Load(explicitPath string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	if path := findConfigFile(explicitPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	} else if explicitPath != "" {
		return nil, fmt.Errorf("config: file not found: %s", explicitPath)
	}

	// Double underscore separates nesting levels:
	// SQLINT_INDENTATION__TAB_SPACE_SIZE -> indentation.tab_space_size
	err := k.Load(env.Provider("SQLINT_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "SQLINT_")), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	// Explicitly set flags win over everything else. The --config flag is
	// not a config value itself and stays out of the tree.
	if flags != nil {
		err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("config: loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	lintCfg, err := lint.NewConfigFromKoanf(k)
	if err != nil {
		return nil, err
	}
	cfg.Lint = lintCfg

	return &cfg, nil
}
