package segment

import "strings"

// Predicate filters segments in view operations. A nil Predicate matches
// everything.
type Predicate func(*Segment) bool

// Segments is an ordered, non-owning projection over a sequence of segment
// handles: the direct children of one parent, or a filtered slice of them.
// All operations are pure and return new views; the underlying tree is never
// mutated, which permits lock-free concurrent reads.
type Segments struct {
	base []*Segment
}

// New builds a view over the given segments.
func New(segs ...*Segment) Segments {
	return Segments{base: segs}
}

// Len returns the number of segments in the view.
func (s Segments) Len() int { return len(s.base) }

// IsEmpty reports whether the view holds no segments.
func (s Segments) IsEmpty() bool { return len(s.base) == 0 }

// First returns the first segment, or nil for an empty view.
func (s Segments) First() *Segment {
	if len(s.base) == 0 {
		return nil
	}
	return s.base[0]
}

// Last returns the last segment, or nil for an empty view.
func (s Segments) Last() *Segment {
	if len(s.base) == 0 {
		return nil
	}
	return s.base[len(s.base)-1]
}

// Get returns the segment at index i, or nil if out of range.
func (s Segments) Get(i int) *Segment {
	if i < 0 || i >= len(s.base) {
		return nil
	}
	return s.base[i]
}

// All returns the underlying segment slice. Callers must not mutate it.
func (s Segments) All() []*Segment { return s.base }

// Index returns the position of the given segment by identity, or -1.
func (s Segments) Index(seg *Segment) int {
	for i, it := range s.base {
		if it == seg {
			return i
		}
	}
	return -1
}

// Contains reports whether the view holds the given segment by identity.
func (s Segments) Contains(seg *Segment) bool { return s.Index(seg) >= 0 }

// Any reports whether any segment in the view matches the predicate.
func (s Segments) Any(pred Predicate) bool {
	for _, it := range s.base {
		if pred == nil || pred(it) {
			return true
		}
	}
	return false
}

// Reversed returns the same elements in reverse order.
func (s Segments) Reversed() Segments {
	out := make([]*Segment, len(s.base))
	for i, it := range s.base {
		out[len(s.base)-1-i] = it
	}
	return Segments{base: out}
}

// Children returns the direct children of every segment in the view, in
// order, filtered by the optional predicate.
func (s Segments) Children(pred Predicate) Segments {
	var out []*Segment
	for _, it := range s.base {
		for _, child := range it.children {
			if pred == nil || pred(child) {
				out = append(out, child)
			}
		}
	}
	return Segments{base: out}
}

// Select returns the contiguous sub-sequence strictly between start and stop,
// which are located by identity; a nil start means "from the beginning" and a
// nil stop means "to the end". Scanning halts early as soon as loopWhile
// fails; of the scanned elements, only those matching selectIf are kept.
func (s Segments) Select(selectIf, loopWhile Predicate, start, stop *Segment) Segments {
	from := 0
	if start != nil {
		if i := s.Index(start); i >= 0 {
			from = i + 1
		} else {
			return Segments{}
		}
	}

	var out []*Segment
	for _, it := range s.base[from:] {
		if it == stop {
			break
		}
		if loopWhile != nil && !loopWhile(it) {
			break
		}
		if selectIf == nil || selectIf(it) {
			out = append(out, it)
		}
	}
	return Segments{base: out}
}

// FindFirst returns the first segment matching the predicate as a singleton
// view, or an empty view.
func (s Segments) FindFirst(pred Predicate) Segments {
	for _, it := range s.base {
		if pred == nil || pred(it) {
			return Segments{base: []*Segment{it}}
		}
	}
	return Segments{}
}

// FindLast returns the last segment matching the predicate as a singleton
// view, or an empty view.
func (s Segments) FindLast(pred Predicate) Segments {
	for i := len(s.base) - 1; i >= 0; i-- {
		if pred == nil || pred(s.base[i]) {
			return Segments{base: []*Segment{s.base[i]}}
		}
	}
	return Segments{}
}

// Concat returns a view holding this view's segments followed by other's.
func (s Segments) Concat(other Segments) Segments {
	out := make([]*Segment, 0, len(s.base)+len(other.base))
	out = append(out, s.base...)
	out = append(out, other.base...)
	return Segments{base: out}
}

// Raw concatenates the raw text of every segment in the view.
func (s Segments) Raw() string {
	var sb strings.Builder
	for _, it := range s.base {
		sb.WriteString(it.raw)
	}
	return sb.String()
}

// OfType returns a predicate matching segments whose type tag is one of tags.
func OfType(tags ...string) Predicate {
	return func(seg *Segment) bool {
		for _, tag := range tags {
			if seg.IsType(tag) {
				return true
			}
		}
		return false
	}
}

// IsKeyword returns a predicate matching code leaves with the given keyword
// text.
func IsKeyword(text string) Predicate {
	return func(seg *Segment) bool { return seg.IsKeyword(text) }
}

// Not negates a predicate.
func Not(pred Predicate) Predicate {
	return func(seg *Segment) bool { return !pred(seg) }
}
