// Package segment defines the lossless concrete syntax tree used by the
// linter.
//
// A Segment is either a leaf carrying verbatim source text, a composite
// grouping an ordered list of children under a grammar type tag, or a
// zero-width meta marker recording indentation structure. Concatenating the
// raw text of all leaves in tree order reproduces the original source
// exactly; meta segments contribute nothing.
//
// Segments are immutable after construction. Handles (*Segment) are shared
// freely between overlapping read views, so concurrent rule evaluation needs
// no locking. Identity (pointer equality) is what anchors a fix to the tree.
package segment

import (
	"strings"

	"github.com/leapstack-labs/sqlint/pkg/token"
)

// Kind discriminates the segment variants.
type Kind int

// Segment kinds.
const (
	KindLeaf Kind = iota
	KindComposite
	KindMeta
)

// MetaKind discriminates zero-width meta segments.
type MetaKind int

// Meta segment kinds.
const (
	MetaIndent MetaKind = iota
	MetaDedent
	MetaPlaceholder
)

// Segment is one node of the concrete syntax tree. The zero value is not
// useful; use the New* constructors.
type Segment struct {
	kind Kind

	// Leaf fields
	class token.Class
	raw   string // cached for composites, verbatim for leaves

	// Composite fields
	typ      string
	children []*Segment

	// Meta fields
	meta  MetaKind
	delta int // indent depth delta; +1 for Indent, -1 for Dedent
	label string
}

// NewCode returns a code leaf (keyword, identifier, literal, operator).
func NewCode(raw string) *Segment {
	return &Segment{kind: KindLeaf, class: token.Code, raw: raw}
}

// NewWhitespace returns a whitespace leaf (spaces and tabs, no newlines).
func NewWhitespace(raw string) *Segment {
	return &Segment{kind: KindLeaf, class: token.Whitespace, raw: raw}
}

// NewNewline returns a newline leaf.
func NewNewline(raw string) *Segment {
	return &Segment{kind: KindLeaf, class: token.Newline, raw: raw}
}

// NewComment returns a comment leaf, delimiters included.
func NewComment(raw string) *Segment {
	return &Segment{kind: KindLeaf, class: token.Comment, raw: raw}
}

// NewLeaf returns a leaf of the given class.
func NewLeaf(class token.Class, raw string) *Segment {
	return &Segment{kind: KindLeaf, class: class, raw: raw}
}

// NewComposite returns a composite node with the given grammar type tag.
// The children slice is owned by the new segment; callers must not mutate it
// afterwards.
func NewComposite(typ string, children ...*Segment) *Segment {
	var sb strings.Builder
	for _, c := range children {
		sb.WriteString(c.raw)
	}
	return &Segment{kind: KindComposite, typ: typ, children: children, raw: sb.String()}
}

// NewIndent returns an indent meta marker with the given depth delta.
func NewIndent(delta int) *Segment {
	return &Segment{kind: KindMeta, meta: MetaIndent, delta: delta}
}

// NewDedent returns a dedent meta marker.
func NewDedent() *Segment {
	return &Segment{kind: KindMeta, meta: MetaDedent, delta: -1}
}

// NewPlaceholder returns a zero-width placeholder marker.
func NewPlaceholder(label string) *Segment {
	return &Segment{kind: KindMeta, meta: MetaPlaceholder, label: label}
}

// Kind returns the segment variant.
func (s *Segment) Kind() Kind { return s.kind }

// Raw returns the verbatim source text covered by this segment. For
// composites this is the concatenation of all descendant leaves in tree
// order; for meta segments it is empty.
func (s *Segment) Raw() string { return s.raw }

// RawUpper returns Raw upper-cased, used for case-insensitive keyword and
// expression comparison.
func (s *Segment) RawUpper() string { return strings.ToUpper(s.raw) }

// Type returns the grammar type tag. Leaves report their token class name
// ("code", "whitespace", "newline", "comment"); meta segments report
// "indent", "dedent" or "placeholder".
func (s *Segment) Type() string {
	switch s.kind {
	case KindComposite:
		return s.typ
	case KindMeta:
		switch s.meta {
		case MetaIndent:
			return "indent"
		case MetaDedent:
			return "dedent"
		default:
			return "placeholder"
		}
	default:
		return s.class.String()
	}
}

// IsType reports whether the segment's type tag equals tag.
func (s *Segment) IsType(tag string) bool { return s.Type() == tag }

// IsCode reports whether the segment carries code: composites always do,
// leaves do when their token class is Code, meta segments never do.
func (s *Segment) IsCode() bool {
	switch s.kind {
	case KindComposite:
		return true
	case KindLeaf:
		return s.class == token.Code
	default:
		return false
	}
}

// IsComment reports whether the segment is a comment leaf.
func (s *Segment) IsComment() bool {
	return s.kind == KindLeaf && s.class == token.Comment
}

// IsWhitespace reports whether the segment is a whitespace or newline leaf.
// Newlines count as whitespace; use IsType("whitespace") to match literal
// whitespace runs only.
func (s *Segment) IsWhitespace() bool {
	return s.kind == KindLeaf && (s.class == token.Whitespace || s.class == token.Newline)
}

// IsMeta reports whether the segment is a zero-width meta marker.
func (s *Segment) IsMeta() bool { return s.kind == KindMeta }

// IsKeyword reports whether the segment is a code leaf whose text equals the
// given keyword, compared case-insensitively.
func (s *Segment) IsKeyword(text string) bool {
	return s.kind == KindLeaf && s.class == token.Code && strings.EqualFold(s.raw, text)
}

// Class returns the token class for leaf segments.
func (s *Segment) Class() (token.Class, bool) {
	if s.kind != KindLeaf {
		return 0, false
	}
	return s.class, true
}

// IndentDelta returns the recorded depth delta for indent/dedent meta
// segments.
func (s *Segment) IndentDelta() (int, bool) {
	if s.kind != KindMeta || s.meta == MetaPlaceholder {
		return 0, false
	}
	return s.delta, true
}

// Children returns the direct children of a composite segment as a view.
// Leaves and meta segments have no children.
func (s *Segment) Children() Segments {
	return Segments{base: s.children}
}

// ChildSlice returns the underlying child slice. Callers must not mutate it.
func (s *Segment) ChildSlice() []*Segment { return s.children }
