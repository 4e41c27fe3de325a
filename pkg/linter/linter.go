// Package linter drives rule evaluation and fix application over whole
// sources: parse, crawl, evaluate every registered rule, then (for fixing)
// serialize the proposed fixes, drop conflicting ones, apply, and iterate to
// a fixed point.
//
// Rule evaluation is read-only and side-effect free, so matches are safe to
// evaluate in any order or in parallel; fix application is the serialized
// phase and happens here only.
package linter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlint/pkg/lint"
	"github.com/leapstack-labs/sqlint/pkg/parser"
	"github.com/leapstack-labs/sqlint/pkg/segment"
	"github.com/leapstack-labs/sqlint/pkg/token"
)

// DefaultMaxFixIterations bounds the fix fixed-point loop: one fix can
// expose another violation, but the loop must terminate.
const DefaultMaxFixIterations = 10

// Violation is one reported finding, positioned in the original source.
type Violation struct {
	Rule        string         `json:"rule"`
	Severity    lint.Severity  `json:"severity"`
	Description string         `json:"description"`
	Pos         token.Position `json:"pos"`
	Fixable     bool           `json:"fixable"`
}

// Options configures a Linter.
type Options struct {
	// Dialect selects the parser dialect; defaults to "ansi".
	Dialect string

	// Config is the resolved rule configuration; defaults to lint.NewConfig().
	Config *lint.Config

	// Rules is the rule set to run; defaults to the full registry.
	Rules []lint.Rule

	// MaxFixIterations bounds the fixed-point loop; defaults to
	// DefaultMaxFixIterations.
	MaxFixIterations int

	// Logger receives debug output; defaults to a discarding logger.
	Logger *slog.Logger
}

// Linter evaluates lint rules against SQL sources.
type Linter struct {
	dialect  string
	cfg      *lint.Config
	rules    []lint.Rule
	maxIters int
	logger   *slog.Logger
}

// New creates a Linter, filling unset options with defaults.
func New(opts Options) *Linter {
	if opts.Dialect == "" {
		opts.Dialect = "ansi"
	}
	if opts.Config == nil {
		opts.Config = lint.NewConfig()
	}
	if opts.Rules == nil {
		opts.Rules = lint.All()
	}
	if opts.MaxFixIterations <= 0 {
		opts.MaxFixIterations = DefaultMaxFixIterations
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}

	enabled := make([]lint.Rule, 0, len(opts.Rules))
	for _, r := range opts.Rules {
		if !opts.Config.IsDisabled(r.Name()) {
			enabled = append(enabled, r)
		}
	}

	return &Linter{
		dialect:  opts.Dialect,
		cfg:      opts.Config,
		rules:    enabled,
		maxIters: opts.MaxFixIterations,
		logger:   opts.Logger,
	}
}

// ruleResult pairs a rule with one of its lint results, in evaluation order.
type ruleResult struct {
	rule   lint.Rule
	result lint.LintResult
}

// evaluate runs every enabled rule over the tree and collects results in
// deterministic order: rules sorted by name, matches in crawl order.
func (l *Linter) evaluate(root *segment.Segment) []ruleResult {
	var out []ruleResult
	for _, rule := range l.rules {
		for _, ctx := range rule.CrawlBehaviour().Crawl(root, l.cfg) {
			for _, res := range rule.Eval(ctx) {
				out = append(out, ruleResult{rule: rule, result: res})
			}
		}
	}
	return out
}

// Lint parses source and returns all violations found, without applying any
// fixes.
func (l *Linter) Lint(source string) ([]Violation, error) {
	root, err := parser.Parse(source, l.dialect)
	if err != nil {
		return nil, err
	}
	results := l.evaluate(root)

	violations := make([]Violation, 0, len(results))
	for _, rr := range results {
		violations = append(violations, l.violation(root, source, rr))
	}
	return violations, nil
}

// Fix lints source and applies every non-conflicting fix, iterating until no
// rule reports a fixable violation or the iteration cap is reached. It
// returns the fixed source and the violations observed on the first pass.
func (l *Linter) Fix(source string) (string, []Violation, error) {
	current := source
	var firstPass []Violation

	for iter := 0; iter < l.maxIters; iter++ {
		root, err := parser.Parse(current, l.dialect)
		if err != nil {
			return "", nil, err
		}

		results := l.evaluate(root)
		if iter == 0 {
			firstPass = make([]Violation, 0, len(results))
			for _, rr := range results {
				firstPass = append(firstPass, l.violation(root, current, rr))
			}
		}

		fixes := selectFixes(results)
		if len(fixes) == 0 {
			break
		}
		l.logger.Debug("applying fixes", "iteration", iter, "count", len(fixes))

		fixedRoot, err := applyFixes(root, fixes)
		if err != nil {
			return "", nil, fmt.Errorf("linter: applying fixes: %w", err)
		}

		next := fixedRoot.Raw()
		if next == current {
			break
		}
		current = next
	}

	return current, firstPass, nil
}

// selectFixes flattens results into one fix list, skipping any result whose
// fixes would touch territory already claimed by an earlier result. A claim
// covers the whole subtree under each anchor: deleting a segment removes its
// descendants too, so a later result anchored anywhere inside is stale.
// Skipped results are not lost: the next fixed-point iteration sees the
// re-parsed tree and proposes them again.
func selectFixes(results []ruleResult) []lint.Fix {
	claimed := make(map[*segment.Segment]bool)
	var out []lint.Fix

	for _, rr := range results {
		if len(rr.result.Fixes) == 0 {
			continue
		}

		var span []*segment.Segment
		conflict := false
		for _, fix := range rr.result.Fixes {
			segment.Walk(fix.Anchor, func(seg *segment.Segment, _ []*segment.Segment) bool {
				if claimed[seg] {
					conflict = true
				}
				span = append(span, seg)
				return true
			})
		}
		if conflict {
			continue
		}

		for _, seg := range span {
			claimed[seg] = true
		}
		out = append(out, rr.result.Fixes...)
	}
	return out
}

func (l *Linter) violation(root *segment.Segment, source string, rr ruleResult) Violation {
	pos := token.Position{Line: 1, Column: 1}
	if off := offsetOf(root, rr.result.Anchor); off >= 0 {
		pos = pos.Advance(source[:off])
	}
	return Violation{
		Rule:        rr.rule.Name(),
		Severity:    l.cfg.SeverityFor(rr.rule.Name(), rr.rule.DefaultSeverity()),
		Description: rr.result.Description,
		Pos:         pos,
		Fixable:     len(rr.result.Fixes) > 0,
	}
}

// offsetOf returns the byte offset of the anchor segment within the tree, by
// identity, or -1 when absent.
func offsetOf(root *segment.Segment, anchor *segment.Segment) int {
	offset := 0
	found := -1
	segment.Walk(root, func(seg *segment.Segment, _ []*segment.Segment) bool {
		if found >= 0 {
			return false
		}
		if seg == anchor {
			found = offset
			return false
		}
		if seg.Kind() != segment.KindComposite {
			offset += len(seg.Raw())
		}
		return true
	})
	return found
}

// FileResult holds the violations of one file.
type FileResult struct {
	Path       string      `json:"path"`
	Violations []Violation `json:"violations"`
}

// LintFiles lints many files concurrently. Rule evaluation is pure and the
// trees are independent, so files fan out across goroutines.
func (l *Linter) LintFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			violations, err := l.Lint(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = FileResult{Path: path, Violations: violations}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
