package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlint/internal/cli/output"
	_ "github.com/leapstack-labs/sqlint/pkg/lint/rules" // register rules
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	Format  string   // Output format: text, json
	Disable []string // Rule names to disable
	Diff    bool     // Print a unified diff instead of writing files
	DryRun  bool     // Report what would change without writing
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix <path>...",
		Short: "Apply automatic fixes to SQL files",
		Long: `Analyze SQL files and rewrite them with every safe fix applied.

Fixes are applied iteratively until no fixable violation remains. Files
that need no change are left untouched.`,
		Example: `  # Fix a file in place
  sqlint fix query.sql

  # Preview changes as a unified diff
  sqlint fix --diff query.sql

  # Check what would change without writing
  sqlint fix --dry-run ./models`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule names to disable")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Print a unified diff instead of writing files")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report files that would change without writing")

	return cmd
}

// fixResult records the outcome for one file in JSON output.
type fixResult struct {
	Path    string `json:"path"`
	Changed bool   `json:"changed"`
	Fixed   int    `json:"fixed"`
}

func runFix(cmd *cobra.Command, args []string, opts *FixOptions) error {
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

	jsonMode := cmdCtx.Renderer.Mode() == output.ModeJSON

	var results []fixResult
	changed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		original := string(data)

		fixed, violations, err := cmdCtx.Linter.Fix(original)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fixable := 0
		for _, v := range violations {
			if v.Fixable {
				fixable++
			}
		}
		results = append(results, fixResult{Path: path, Changed: fixed != original, Fixed: fixable})
		if fixed == original {
			continue
		}
		changed++

		switch {
		case opts.Diff:
			if err := printDiff(cmdCtx, path, original, fixed); err != nil {
				return err
			}
		case opts.DryRun:
			if !jsonMode {
				cmdCtx.Renderer.Printf("would fix %s\n", path)
			}
		default:
			if err := os.WriteFile(path, []byte(fixed), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			if !jsonMode {
				cmdCtx.Renderer.Printf("fixed %s\n", path)
			}
		}
	}

	if jsonMode {
		return cmdCtx.Renderer.JSON(results)
	}
	if changed == 0 {
		cmdCtx.Renderer.Success("Nothing to fix.")
	} else if !opts.Diff {
		cmdCtx.Renderer.Printf("%d of %d file(s) changed\n", changed, len(paths))
	}
	return nil
}

func printDiff(cmdCtx *CommandContext, path, original, fixed string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(fixed),
		FromFile: path,
		ToFile:   path + " (fixed)",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("diffing %s: %w", path, err)
	}
	cmdCtx.Renderer.Printf("%s", diff)
	if !strings.HasSuffix(diff, "\n") {
		cmdCtx.Renderer.Println()
	}
	return nil
}
