package linter

import (
	"fmt"

	"github.com/leapstack-labs/sqlint/pkg/lint"
	"github.com/leapstack-labs/sqlint/pkg/segment"
)

// applyFixes rebuilds the tree with all fixes applied. Anchors are located
// by identity; an anchor that no longer exists in the tree is an invariant
// violation and fails loudly — silently skipping it would corrupt output
// text. Unchanged subtrees are shared between the old and new tree.
func applyFixes(root *segment.Segment, fixes []lint.Fix) (*segment.Segment, error) {
	edits := newEditSet(fixes)
	rebuilt := edits.rebuild(root)

	if missing := edits.unapplied(); len(missing) > 0 {
		return nil, fmt.Errorf("%d fix anchor(s) not found in tree", len(missing))
	}
	return rebuilt, nil
}

// editSet indexes fixes by anchor identity for single-pass application.
type editSet struct {
	deletes map[*segment.Segment]bool
	replace map[*segment.Segment][]*segment.Segment
	before  map[*segment.Segment][]*segment.Segment
	after   map[*segment.Segment][]*segment.Segment

	anchors map[*segment.Segment]bool // all anchors, for existence checking
	seen    map[*segment.Segment]bool
}

func newEditSet(fixes []lint.Fix) *editSet {
	e := &editSet{
		deletes: make(map[*segment.Segment]bool),
		replace: make(map[*segment.Segment][]*segment.Segment),
		before:  make(map[*segment.Segment][]*segment.Segment),
		after:   make(map[*segment.Segment][]*segment.Segment),
		anchors: make(map[*segment.Segment]bool),
		seen:    make(map[*segment.Segment]bool),
	}
	for _, fix := range fixes {
		e.anchors[fix.Anchor] = true
		switch fix.Op {
		case lint.OpDelete:
			e.deletes[fix.Anchor] = true
		case lint.OpReplace:
			e.replace[fix.Anchor] = fix.Payload
		case lint.OpCreateBefore:
			e.before[fix.Anchor] = append(e.before[fix.Anchor], fix.Payload...)
		case lint.OpCreateAfter:
			e.after[fix.Anchor] = append(e.after[fix.Anchor], fix.Payload...)
		}
	}
	return e
}

// rebuild returns seg with the edit set applied to its subtree. Composites
// on the path to an edit are reconstructed; everything else is shared.
func (e *editSet) rebuild(seg *segment.Segment) *segment.Segment {
	if seg.Kind() != segment.KindComposite {
		return seg
	}

	children := seg.ChildSlice()
	out := make([]*segment.Segment, 0, len(children))
	changed := false

	for _, child := range children {
		if e.anchors[child] {
			e.seen[child] = true
		}
		if payload, ok := e.before[child]; ok {
			out = append(out, payload...)
			changed = true
		}
		replacement, replaced := e.replace[child]
		switch {
		case e.deletes[child]:
			changed = true
		case replaced:
			out = append(out, replacement...)
			changed = true
		default:
			rebuilt := e.rebuild(child)
			if rebuilt != child {
				changed = true
			}
			out = append(out, rebuilt)
		}
		if payload, ok := e.after[child]; ok {
			out = append(out, payload...)
			changed = true
		}
	}

	if !changed {
		return seg
	}
	return segment.NewComposite(seg.Type(), out...)
}

// unapplied returns the anchors never encountered during rebuild.
func (e *editSet) unapplied() []*segment.Segment {
	var out []*segment.Segment
	for anchor := range e.anchors {
		if !e.seen[anchor] {
			out = append(out, anchor)
		}
	}
	return out
}

// VerifyLossless checks the lossless-concatenation invariant: the tree's raw
// text must reproduce the source exactly. A mismatch is a defect in the
// parser or in fix application.
func VerifyLossless(root *segment.Segment, source string) error {
	if got := root.Raw(); got != source {
		return fmt.Errorf("lossless invariant violated: tree renders %d bytes, source has %d", len(got), len(source))
	}
	return nil
}
