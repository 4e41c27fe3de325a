package lint

import "github.com/leapstack-labs/sqlint/pkg/segment"

// FixOp is the kind of edit a Fix performs relative to its anchor.
type FixOp int

// Fix operations.
const (
	// OpDelete removes the anchor segment.
	OpDelete FixOp = iota
	// OpCreateBefore inserts the payload immediately before the anchor.
	OpCreateBefore
	// OpCreateAfter inserts the payload immediately after the anchor.
	OpCreateAfter
	// OpReplace swaps the anchor for the payload.
	OpReplace
)

// String returns a human-readable name for the operation.
func (op FixOp) String() string {
	switch op {
	case OpDelete:
		return "delete"
	case OpCreateBefore:
		return "create_before"
	case OpCreateAfter:
		return "create_after"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Fix is one atomic edit. It is anchored to a segment by identity rather
// than to a position, so it stays valid when the caller reorders fixes. The
// payload may carry freshly constructed segments or segments lifted from
// elsewhere in the tree; a lifted segment's original occurrence must be
// deleted by the same fix set or its text would appear twice.
type Fix struct {
	Op      FixOp
	Anchor  *segment.Segment
	Payload []*segment.Segment
}

// Delete returns a fix removing the anchor segment.
func Delete(anchor *segment.Segment) Fix {
	return Fix{Op: OpDelete, Anchor: anchor}
}

// CreateBefore returns a fix inserting payload before the anchor.
func CreateBefore(anchor *segment.Segment, payload ...*segment.Segment) Fix {
	return Fix{Op: OpCreateBefore, Anchor: anchor, Payload: payload}
}

// CreateAfter returns a fix inserting payload after the anchor.
func CreateAfter(anchor *segment.Segment, payload ...*segment.Segment) Fix {
	return Fix{Op: OpCreateAfter, Anchor: anchor, Payload: payload}
}

// Replace returns a fix swapping the anchor for payload.
func Replace(anchor *segment.Segment, payload ...*segment.Segment) Fix {
	return Fix{Op: OpReplace, Anchor: anchor, Payload: payload}
}

// LintResult is one reported violation with its optional repair. An empty
// fix list means "violation reported, no safe automatic repair".
type LintResult struct {
	Anchor      *segment.Segment
	Description string
	Fixes       []Fix
}
