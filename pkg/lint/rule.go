// Package lint defines the rule contract and the supporting machinery rules
// share: the crawler producing match contexts, the fix/violation vocabulary
// and the rule registry.
//
// Rules are pure: Eval must be a function of the context and configuration
// alone, with no observable side effect beyond its return value. The tree a
// rule sees is immutable for the whole crawl-and-evaluate phase, so any
// number of rules (and matches within one rule) can be evaluated
// concurrently without locking. A rule that cannot determine applicability —
// the expected grammar shape is absent or ambiguous — returns an empty
// result rather than failing; only configuration and tree-invariant defects
// are surfaced as errors, and never from inside Eval.
package lint

// Group is a categorical tag used for selective enable/disable of rules.
type Group string

// Rule groups.
const (
	GroupAll        Group = "all"
	GroupCore       Group = "core"
	GroupStructure  Group = "structure"
	GroupAmbiguous  Group = "ambiguous"
	GroupConvention Group = "convention"
	GroupLayout     Group = "layout"
)

// Rule is the capability set every lint rule implements.
type Rule interface {
	// Name returns the dotted rule name, e.g. "structure.nested_case".
	Name() string

	// Description returns a one-line summary of what the rule flags.
	Description() string

	// LongDescription returns the full documentation, including
	// anti-pattern and best-practice examples.
	LongDescription() string

	// Groups returns the categorical tags the rule belongs to. The first
	// entry is always GroupAll.
	Groups() []Group

	// DefaultSeverity returns the severity violations carry unless
	// configuration overrides it.
	DefaultSeverity() Severity

	// IsFixCompatible declares whether the rule ever emits non-empty
	// fix lists.
	IsFixCompatible() bool

	// CrawlBehaviour returns the crawler configuration that decides which
	// segments the rule is evaluated against.
	CrawlBehaviour() Crawler

	// Eval inspects one match context and returns zero or more
	// violations, each optionally carrying repair fixes.
	Eval(ctx RuleContext) []LintResult
}

// RuleInfo provides metadata about a rule for documentation and tooling.
type RuleInfo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	LongDescription string   `json:"long_description,omitempty"`
	Groups          []string `json:"groups"`
	DefaultSeverity Severity `json:"default_severity"`
	IsFixCompatible bool     `json:"is_fix_compatible"`
}

// GetRuleInfo extracts metadata from a Rule.
func GetRuleInfo(r Rule) RuleInfo {
	groups := make([]string, 0, len(r.Groups()))
	for _, g := range r.Groups() {
		groups = append(groups, string(g))
	}
	return RuleInfo{
		Name:            r.Name(),
		Description:     r.Description(),
		LongDescription: r.LongDescription(),
		Groups:          groups,
		DefaultSeverity: r.DefaultSeverity(),
		IsFixCompatible: r.IsFixCompatible(),
	}
}
