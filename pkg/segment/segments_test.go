package segment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlint/pkg/segment"
)

func isComment(seg *segment.Segment) bool { return seg.IsComment() }

func isWhitespace(seg *segment.Segment) bool { return seg.IsWhitespace() }

func TestViewBasics(t *testing.T) {
	a := segment.NewCode("a")
	b := segment.NewWhitespace(" ")
	c := segment.NewCode("c")
	view := segment.New(a, b, c)

	assert.Equal(t, 3, view.Len())
	assert.False(t, view.IsEmpty())
	assert.Same(t, a, view.First())
	assert.Same(t, c, view.Last())
	assert.Same(t, b, view.Get(1))
	assert.Nil(t, view.Get(3))
	assert.Nil(t, view.Get(-1))
	assert.Equal(t, 2, view.Index(c))
	assert.Equal(t, -1, view.Index(segment.NewCode("c"))) // identity, not equality
	assert.True(t, view.Contains(b))
	assert.Equal(t, "a c", view.Raw())

	empty := segment.New()
	assert.True(t, empty.IsEmpty())
	assert.Nil(t, empty.First())
	assert.Nil(t, empty.Last())
}

func TestAny(t *testing.T) {
	view := segment.New(segment.NewCode("a"), segment.NewComment("-- c"))
	assert.True(t, view.Any(isComment))
	assert.True(t, view.Any(nil))
	assert.False(t, view.Any(isWhitespace))
	assert.False(t, segment.New().Any(nil))
}

func TestReversed(t *testing.T) {
	a := segment.NewCode("a")
	b := segment.NewCode("b")
	c := segment.NewCode("c")
	rev := segment.New(a, b, c).Reversed()

	assert.Equal(t, "cba", rev.Raw())
	assert.Same(t, c, rev.First())
	// Reversal is a copy; the original order is untouched.
	assert.Equal(t, "abc", segment.New(a, b, c).Raw())
}

func TestChildrenAcrossView(t *testing.T) {
	first := segment.NewComposite("when_clause", segment.NewCode("WHEN"), segment.NewWhitespace(" "))
	second := segment.NewComposite("else_clause", segment.NewCode("ELSE"))
	view := segment.New(first, second)

	all := view.Children(nil)
	assert.Equal(t, 3, all.Len())
	assert.Equal(t, "WHEN ELSE", all.Raw())

	code := view.Children(func(s *segment.Segment) bool { return s.IsCode() })
	assert.Equal(t, 2, code.Len())
	assert.Equal(t, "WHENELSE", code.Raw())
}

func TestSelect(t *testing.T) {
	a := segment.NewCode("a")
	ws := segment.NewWhitespace(" ")
	cmt := segment.NewComment("-- c")
	nl := segment.NewNewline("\n")
	b := segment.NewCode("b")
	view := segment.New(a, ws, cmt, nl, b)

	t.Run("between anchors exclusive", func(t *testing.T) {
		got := view.Select(nil, nil, a, b)
		assert.Equal(t, []*segment.Segment{ws, cmt, nl}, got.All())
	})

	t.Run("nil start scans from beginning", func(t *testing.T) {
		got := view.Select(nil, nil, nil, cmt)
		assert.Equal(t, []*segment.Segment{a, ws}, got.All())
	})

	t.Run("nil stop scans to end", func(t *testing.T) {
		got := view.Select(nil, nil, cmt, nil)
		assert.Equal(t, []*segment.Segment{nl, b}, got.All())
	})

	t.Run("selectIf filters kept elements", func(t *testing.T) {
		got := view.Select(isWhitespace, nil, a, b)
		assert.Equal(t, []*segment.Segment{ws, nl}, got.All())
	})

	t.Run("loopWhile halts the scan early", func(t *testing.T) {
		got := view.Select(nil, func(s *segment.Segment) bool { return !s.IsComment() }, nil, nil)
		assert.Equal(t, []*segment.Segment{a, ws}, got.All())
	})

	t.Run("missing start anchor yields empty view", func(t *testing.T) {
		got := view.Select(nil, nil, segment.NewCode("a"), nil)
		assert.True(t, got.IsEmpty())
	})

	t.Run("missing stop anchor scans to end", func(t *testing.T) {
		got := view.Select(nil, nil, a, segment.NewCode("x"))
		assert.Equal(t, 4, got.Len())
	})
}

func TestFindFirstFindLast(t *testing.T) {
	c1 := segment.NewComment("-- one")
	c2 := segment.NewComment("-- two")
	view := segment.New(segment.NewCode("a"), c1, segment.NewCode("b"), c2)

	first := view.FindFirst(isComment)
	require.Equal(t, 1, first.Len())
	assert.Same(t, c1, first.First())

	last := view.FindLast(isComment)
	require.Equal(t, 1, last.Len())
	assert.Same(t, c2, last.First())

	assert.True(t, view.FindFirst(isWhitespace).IsEmpty())
	assert.True(t, view.FindLast(isWhitespace).IsEmpty())
}

func TestConcat(t *testing.T) {
	left := segment.New(segment.NewCode("a"))
	right := segment.New(segment.NewCode("b"), segment.NewCode("c"))
	assert.Equal(t, "abc", left.Concat(right).Raw())
	assert.Equal(t, "a", left.Raw())
}

func TestPredicates(t *testing.T) {
	ws := segment.NewWhitespace(" ")
	nl := segment.NewNewline("\n")
	kw := segment.NewCode("Case")

	ofType := segment.OfType("whitespace", "newline")
	assert.True(t, ofType(ws))
	assert.True(t, ofType(nl))
	assert.False(t, ofType(kw))

	assert.True(t, segment.IsKeyword("CASE")(kw))
	assert.False(t, segment.IsKeyword("END")(kw))

	assert.False(t, segment.Not(ofType)(ws))
	assert.True(t, segment.Not(ofType)(kw))
}

func TestRecursiveCrawl(t *testing.T) {
	inner := segment.NewComposite("case_expression", segment.NewCode("CASE"), segment.NewCode("END"))
	outer := segment.NewComposite("case_expression",
		segment.NewCode("CASE"),
		segment.NewComposite("else_clause", segment.NewCode("ELSE"), inner),
		segment.NewCode("END"),
	)

	got := segment.RecursiveCrawl(outer, false, "case_expression")
	require.Equal(t, 1, got.Len())
	assert.Same(t, inner, got.First())

	got = segment.RecursiveCrawl(outer, true, "case_expression")
	require.Equal(t, 2, got.Len())
	assert.Same(t, outer, got.First())
	assert.Same(t, inner, got.Last())
}

func TestWalkOrderAndAncestors(t *testing.T) {
	leaf := segment.NewCode("x")
	mid := segment.NewComposite("expression", leaf)
	root := segment.NewComposite("file", mid)

	var visited []string
	segment.Walk(root, func(seg *segment.Segment, ancestors []*segment.Segment) bool {
		visited = append(visited, seg.Type())
		if seg == leaf {
			require.Len(t, ancestors, 2)
			assert.Same(t, root, ancestors[0])
			assert.Same(t, mid, ancestors[1])
		}
		return true
	})
	assert.Equal(t, []string{"file", "expression", "code"}, visited)
}

func TestWalkPrune(t *testing.T) {
	leaf := segment.NewCode("x")
	mid := segment.NewComposite("expression", leaf)
	root := segment.NewComposite("file", mid, segment.NewCode("y"))

	var visited []string
	segment.Walk(root, func(seg *segment.Segment, _ []*segment.Segment) bool {
		visited = append(visited, seg.Type())
		return seg.Type() != "expression" // prune below the expression
	})
	assert.Equal(t, []string{"file", "expression", "code"}, visited)
}
