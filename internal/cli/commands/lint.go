package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlint/internal/cli/output"
	"github.com/leapstack-labs/sqlint/pkg/lint"
	_ "github.com/leapstack-labs/sqlint/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/sqlint/pkg/linter"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format: text, json
	Disable  []string // Rule names to disable
	Severity string   // Minimum severity to report: error, warning, info, hint
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint <path>...",
		Short: "Report style violations in SQL files",
		Long: `Analyze SQL files and report style violations.

Each path may be a file, a directory (searched recursively for *.sql)
or a glob pattern. Rules can be configured in .sqlint.yaml.`,
		Example: `  # Lint one file
  sqlint lint query.sql

  # Lint a directory tree
  sqlint lint ./models

  # Output as JSON
  sqlint lint --format json 'queries/**/*.sql'

  # Disable a rule
  sqlint lint --disable structure.nested_case query.sql`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule names to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	for _, name := range opts.Disable {
		cmdCtx.Cfg.Lint.Disable(name)
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		cmdCtx.Renderer.Println("No SQL files found.")
		return nil
	}

	threshold, ok := lint.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("unknown severity %q (want error, warning, info or hint)", opts.Severity)
	}

	results, err := cmdCtx.Linter.LintFiles(cmd.Context(), paths)
	if err != nil {
		return err
	}
	results = filterBySeverity(results, threshold)

	return renderLintResults(cmdCtx.Renderer, results)
}

// filterBySeverity drops violations less important than the threshold.
func filterBySeverity(results []linter.FileResult, threshold lint.Severity) []linter.FileResult {
	out := make([]linter.FileResult, 0, len(results))
	for _, fr := range results {
		kept := make([]linter.Violation, 0, len(fr.Violations))
		for _, v := range fr.Violations {
			if v.Severity <= threshold {
				kept = append(kept, v)
			}
		}
		fr.Violations = kept
		out = append(out, fr)
	}
	return out
}

func renderLintResults(r *output.Renderer, results []linter.FileResult) error {
	total := 0
	for _, fr := range results {
		total += len(fr.Violations)
	}

	if r.Mode() == output.ModeJSON {
		if err := r.JSON(results); err != nil {
			return err
		}
	} else {
		for _, fr := range results {
			for _, v := range fr.Violations {
				sev := output.SeverityStyle(v.Severity.String()).Render(v.Severity.String())
				r.Printf("%s:%d:%d: %s %s %s\n",
					fr.Path, v.Pos.Line, v.Pos.Column, sev, output.Dim(v.Rule), v.Description)
			}
		}
		if total == 0 {
			r.Success("All files pass.")
		}
	}

	if total > 0 {
		return fmt.Errorf("found %d violation(s)", total)
	}
	return nil
}
