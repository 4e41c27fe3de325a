package segment

// Walk traverses the tree depth-first, pre-order, left to right, calling fn
// for every segment with the ancestor stack that leads to it (root first).
// If fn returns false the segment's children are skipped.
//
// The ancestors slice is reused between calls; callers that retain it must
// copy it.
func Walk(root *Segment, fn func(seg *Segment, ancestors []*Segment) bool) {
	var stack []*Segment
	walk(root, &stack, fn)
}

func walk(seg *Segment, stack *[]*Segment, fn func(seg *Segment, ancestors []*Segment) bool) {
	if seg == nil {
		return
	}
	if !fn(seg, *stack) {
		return
	}
	if seg.kind != KindComposite {
		return
	}
	*stack = append(*stack, seg)
	for _, child := range seg.children {
		walk(child, stack, fn)
	}
	*stack = (*stack)[:len(*stack)-1]
}

// RecursiveCrawl returns all descendants (including root itself when
// includeSelf is set) whose type tag is in types, in pre-order.
func RecursiveCrawl(root *Segment, includeSelf bool, types ...string) Segments {
	match := OfType(types...)
	var out []*Segment
	Walk(root, func(seg *Segment, _ []*Segment) bool {
		if seg == root && !includeSelf {
			return true
		}
		if match(seg) {
			out = append(out, seg)
		}
		return true
	})
	return Segments{base: out}
}
