package structure

import (
	"strings"

	"github.com/leapstack-labs/sqlint/pkg/lint"
	"github.com/leapstack-labs/sqlint/pkg/segment"
)

func init() {
	lint.Register(NestedCase{})
}

// NestedCase flattens a CASE expression whose ELSE branch is solely another
// CASE over the same subject: the inner WHEN/ELSE clauses are hoisted to the
// end of the outer CASE and the nested expression is removed, preserving
// comments and re-indenting the moved clauses.
type NestedCase struct{}

// Name implements lint.Rule.
func (NestedCase) Name() string { return "structure.nested_case" }

// Description implements lint.Rule.
func (NestedCase) Description() string {
	return "Nested CASE statement in ELSE clause could be flattened."
}

// LongDescription implements lint.Rule.
func (NestedCase) LongDescription() string {
	return `## Anti-pattern

In this example, the outer CASE's ELSE is an unnecessary, nested CASE.

    SELECT
      CASE
        WHEN species = 'Cat' THEN 'Meow'
        ELSE
        CASE
           WHEN species = 'Dog' THEN 'Woof'
        END
      END as sound
    FROM mytable

## Best practice

Move the body of the inner CASE to the end of the outer one.

    SELECT
      CASE
        WHEN species = 'Cat' THEN 'Meow'
        WHEN species = 'Dog' THEN 'Woof'
      END AS sound
    FROM mytable
`
}

// Groups implements lint.Rule.
func (NestedCase) Groups() []lint.Group {
	return []lint.Group{lint.GroupAll, lint.GroupStructure}
}

// DefaultSeverity implements lint.Rule.
func (NestedCase) DefaultSeverity() lint.Severity { return lint.SeverityWarning }

// IsFixCompatible implements lint.Rule.
func (NestedCase) IsFixCompatible() bool { return true }

// CrawlBehaviour implements lint.Rule.
func (NestedCase) CrawlBehaviour() lint.Crawler {
	return lint.NewSegmentSeekerCrawler("case_expression")
}

func isComment(seg *segment.Segment) bool { return seg.IsComment() }

// isTrivia matches newlines, whitespace and comments.
func isTrivia(seg *segment.Segment) bool { return seg.IsComment() || seg.IsWhitespace() }

func isClauseOrTrivia(seg *segment.Segment) bool {
	return seg.IsType("when_clause") || seg.IsType("else_clause") || isTrivia(seg)
}

func isCode(seg *segment.Segment) bool { return seg.IsCode() }

// Eval implements lint.Rule. A context whose shape does not match the
// preconditions yields no result; the rule never errors on structure it does
// not recognize.
func (NestedCase) Eval(ctx lint.RuleContext) []lint.LintResult {
	seg := segment.New(ctx.Segment)
	children := seg.Children(nil)

	case1FirstCase := children.FindFirst(segment.IsKeyword("CASE")).First()
	case1FirstWhen := children.FindFirst(segment.OfType("when_clause", "else_clause")).First()
	case1LastWhen := children.FindLast(segment.OfType("when_clause")).First()
	case1ElseClause := children.FindLast(segment.OfType("else_clause"))
	case1ElseClauseSeg := case1ElseClause.First()

	if case1FirstCase == nil || case1LastWhen == nil || case1ElseClauseSeg == nil {
		return nil
	}
	// Exactly one ELSE clause. The shallow parser keeps a stray second ELSE
	// as a sibling clause, and the deletion span below would swallow it.
	if children.Select(segment.OfType("else_clause"), nil, nil, nil).Len() != 1 {
		return nil
	}

	// The ELSE body must be exactly one expression holding exactly one
	// nested CASE; anything else disqualifies the match.
	case1ElseExpressions := case1ElseClause.Children(segment.OfType("expression"))
	expressionChildren := case1ElseExpressions.Children(nil)
	case2 := expressionChildren.Select(nil, nil, nil, nil)
	if case1ElseExpressions.Len() > 1 || expressionChildren.Len() > 1 || case2.IsEmpty() {
		return nil
	}
	if !case2.First().IsType("case_expression") {
		return nil
	}

	case2Children := case2.Children(nil)
	case2FirstCase := case2Children.FindFirst(segment.IsKeyword("CASE")).First()
	case2FirstWhen := case2Children.FindFirst(segment.OfType("when_clause", "else_clause")).First()

	// Both cases must share the same subject expression, token for token:
	// "CASE x WHEN" only merges with "CASE x WHEN", and a searched CASE
	// (empty subject) only with a searched CASE.
	x1 := rawUppers(seg.Children(isCode).Select(nil, nil, case1FirstCase, case1FirstWhen))
	x2 := rawUppers(case2.Children(isCode).Select(nil, nil, case2FirstCase, case2FirstWhen))
	if !equalTokens(x1, x2) {
		return nil
	}

	// Everything strictly between the last outer WHEN and the ELSE is
	// removed; material up to and including the last comment in that span
	// is restored right after the WHEN so trailing comments survive.
	case1ToDelete := children.Select(nil, nil, case1LastWhen, case1ElseClauseSeg)

	afterLastCommentIndex := 0
	if c := case1ToDelete.FindLast(isComment).First(); c != nil {
		afterLastCommentIndex = case1ToDelete.Index(c) + 1
	}
	commentsToRestore := case1ToDelete.Select(nil, nil, nil, case1ToDelete.Get(afterLastCommentIndex))

	// Comments and spacing between the ELSE keyword and the nested CASE.
	afterElseComment := case1ElseClause.Children(nil).Select(isTrivia, nil, nil, case1ElseExpressions.First())

	var fixes []lint.Fix
	for _, seg := range case1ToDelete.All() {
		fixes = append(fixes, lint.Delete(seg))
	}

	whenIndentStr := indentation(children, case1LastWhen, ctx.Config)
	endIndentStr := indentation(children, case1FirstCase, ctx.Config)

	nestedClauses := case2.Children(isClauseOrTrivia)

	payload := append([]*segment.Segment{}, commentsToRestore.All()...)
	payload = append(payload, rebuildSpacing(whenIndentStr, afterElseComment)...)
	payload = append(payload, rebuildSpacing(whenIndentStr, nestedClauses)...)

	fixes = append(fixes, lint.CreateAfter(case1LastWhen, payload...))
	fixes = append(fixes, lint.Delete(case1ElseClauseSeg))
	fixes = append(fixes, nestedEndTrailingComment(children, case1ElseClauseSeg, endIndentStr)...)

	return []lint.LintResult{{
		Anchor:      case2.First(),
		Description: "Nested CASE statement in ELSE clause could be flattened.",
		Fixes:       fixes,
	}}
}

func rawUppers(segs segment.Segments) []string {
	out := make([]string, 0, segs.Len())
	for _, seg := range segs.All() {
		out = append(out, seg.RawUpper())
	}
	return out
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// indentation infers the indent string for content spliced in at the given
// anchor. An existing whitespace run longer than one character is trusted
// verbatim; otherwise one indent unit is synthesized per indent level, where
// the level is the nearest preceding indent marker's depth plus one
// (defaulting to one with no marker in scope).
func indentation(parents segment.Segments, anchor *segment.Segment, cfg *lint.Config) string {
	before := parents.Select(nil, nil, nil, anchor)
	leadingWhitespace := before.Reversed().FindFirst(segment.OfType("whitespace"))
	segIndent := before.FindLast(segment.OfType("indent"))

	indentLevel := 1
	if ind := segIndent.Last(); ind != nil {
		if delta, ok := ind.IndentDelta(); ok {
			indentLevel = delta + 1
		}
	}

	if ws := leadingWhitespace.First(); ws != nil && len(ws.Raw()) > 1 {
		return leadingWhitespace.Raw()
	}
	return strings.Repeat(cfg.SingleIndent(), indentLevel)
}

// rebuildSpacing re-linearizes a run of clause/comment/whitespace/newline
// segments so that every structural clause starts its own line at indentStr,
// inline comments keep their original spacing, and redundant blank lines
// collapse.
func rebuildSpacing(indentStr string, clauses segment.Segments) []*segment.Segment {
	var buff []*segment.Segment

	// Seeded from the last non-whitespace element of the whole span: a
	// trailing comment needs its own line when re-emitted.
	priorNewline := clauses.FindLast(segment.Not(isWhitespace)).Any(isComment)
	priorWhitespace := ""

	for _, seg := range clauses.All() {
		switch {
		case seg.IsType("when_clause") || seg.IsType("else_clause") || (priorNewline && seg.IsComment()):
			buff = append(buff, segment.NewNewline("\n"), segment.NewWhitespace(indentStr), seg)
			priorNewline = false
			priorWhitespace = ""
		case seg.IsType("newline"):
			priorNewline = true
			priorWhitespace = ""
		case !priorNewline && seg.IsComment():
			buff = append(buff, segment.NewWhitespace(priorWhitespace), seg)
			priorNewline = false
			priorWhitespace = ""
		case seg.IsWhitespace():
			priorWhitespace = seg.Raw()
		}
	}

	return buff
}

// isWhitespace matches whitespace and newline leaves but not comments.
func isWhitespace(seg *segment.Segment) bool { return seg.IsWhitespace() }

// nestedEndTrailingComment moves a comment trailing the nested END onto its
// own line at the outer CASE's base indentation. Whitespace-only segments
// ahead of the comment are removed; with no trailing comment there is
// nothing to do.
func nestedEndTrailingComment(children segment.Segments, elseClauseSeg *segment.Segment, endIndentStr string) []lint.Fix {
	trailingEnd := children.Select(nil, segment.Not(segment.OfType("newline")), elseClauseSeg, nil)

	firstComment := trailingEnd.FindFirst(isComment).First()
	if firstComment == nil {
		return nil
	}

	var fixes []lint.Fix
	stale := trailingEnd.Select(isWhitespace, segment.Not(isComment), nil, nil)
	for _, seg := range stale.All() {
		fixes = append(fixes, lint.Delete(seg))
	}

	fixes = append(fixes, lint.CreateBefore(firstComment,
		segment.NewNewline("\n"),
		segment.NewWhitespace(endIndentStr),
	))
	return fixes
}
