package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlint/internal/cli/output"
	"github.com/leapstack-labs/sqlint/pkg/lint"
	_ "github.com/leapstack-labs/sqlint/pkg/lint/rules" // register rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Format string // Output format: text, json
	Group  string // Filter rules by group
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [name]",
		Short: "List available lint rules",
		Long: `List every registered lint rule, or show the full documentation
for one rule by name.`,
		Example: `  # List all rules
  sqlint rules

  # List rules in the structure group
  sqlint rules --group structure

  # Show full documentation for one rule
  sqlint rules structure.nested_case`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Only list rules in this group")

	return cmd
}

func runRules(cmd *cobra.Command, args []string, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return renderRuleDetail(cmdCtx.Renderer, args[0])
	}

	rules := lint.All()
	if opts.Group != "" {
		rules = lint.ByGroup(lint.Group(opts.Group))
	}

	infos := make([]lint.RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, lint.GetRuleInfo(r))
	}

	if cmdCtx.Renderer.Mode() == output.ModeJSON {
		return cmdCtx.Renderer.JSON(infos)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Groups", "Severity", "Fixable", "Description"})
	for _, info := range infos {
		fixable := ""
		if info.IsFixCompatible {
			fixable = "yes"
		}
		t.AppendRow(table.Row{
			info.Name,
			strings.Join(info.Groups, ", "),
			info.DefaultSeverity.String(),
			fixable,
			info.Description,
		})
	}
	t.Render()
	cmdCtx.Renderer.Printf("(%d rules)\n", len(infos))
	return nil
}

func renderRuleDetail(r *output.Renderer, name string) error {
	rule, ok := lint.ByName(name)
	if !ok {
		return fmt.Errorf("unknown rule %q", name)
	}
	info := lint.GetRuleInfo(rule)

	if r.Mode() == output.ModeJSON {
		return r.JSON(info)
	}

	r.Printf("%s\n\n", info.Name)
	r.Printf("%s\n\n", info.Description)
	r.Printf("Groups:   %s\n", strings.Join(info.Groups, ", "))
	r.Printf("Severity: %s\n", info.DefaultSeverity)
	r.Printf("Fixable:  %t\n", info.IsFixCompatible)
	if info.LongDescription != "" {
		r.Printf("\n%s\n", strings.TrimSpace(info.LongDescription))
	}
	return nil
}
