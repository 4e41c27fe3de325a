package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlint/internal/cli/config"
	"github.com/leapstack-labs/sqlint/internal/cli/output"
	"github.com/leapstack-labs/sqlint/pkg/linter"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Linter   *linter.Linter
}

// NewCommandContext assembles the shared dependencies from the loaded
// configuration and the command's flags.
func NewCommandContext(cmd *cobra.Command, formatOverride string) (*CommandContext, error) {
	flags := cmd.Root().PersistentFlags()
	cfgPath, _ := flags.GetString("config")
	cfg, err := config.Load(cfgPath, flags)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	mode := output.Mode(cfg.OutputFormat)
	if formatOverride != "" {
		mode = output.Mode(formatOverride)
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Linter: linter.New(linter.Options{
			Dialect: cfg.Dialect,
			Config:  cfg.Lint,
			Logger:  logger,
		}),
	}, nil
}
