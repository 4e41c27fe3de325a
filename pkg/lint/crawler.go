package lint

import "github.com/leapstack-labs/sqlint/pkg/segment"

// RuleContext is the snapshot bundle handed to a rule for one match: the
// matched segment, the ancestor stack that leads to it (root first) and the
// resolved configuration. Ancestry is reconstructed by the traversal; the
// segments themselves carry no parent pointers.
type RuleContext struct {
	Segment   *segment.Segment
	Ancestors []*segment.Segment
	Config    *Config
}

// Parent returns the immediate parent of the matched segment, or nil at the
// root.
func (c RuleContext) Parent() *segment.Segment {
	if len(c.Ancestors) == 0 {
		return nil
	}
	return c.Ancestors[len(c.Ancestors)-1]
}

// Crawler enumerates the match contexts a rule is evaluated against.
type Crawler interface {
	// Crawl walks the tree and yields one RuleContext per match, in
	// depth-first pre-order. That order is load-bearing: it is the order
	// in which a driver encounters violations and considers fixes for
	// conflicts.
	Crawl(root *segment.Segment, cfg *Config) []RuleContext
}

// SegmentSeekerCrawler yields every composite descendant whose type tag is
// in its configured set. It never matches leaves or meta segments, so rules
// fed by it see only structural nodes.
type SegmentSeekerCrawler struct {
	types map[string]struct{}
}

// NewSegmentSeekerCrawler creates a crawler matching the given type tags.
func NewSegmentSeekerCrawler(types ...string) *SegmentSeekerCrawler {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return &SegmentSeekerCrawler{types: set}
}

// Crawl implements Crawler.
func (c *SegmentSeekerCrawler) Crawl(root *segment.Segment, cfg *Config) []RuleContext {
	var out []RuleContext
	segment.Walk(root, func(seg *segment.Segment, ancestors []*segment.Segment) bool {
		if seg.Kind() != segment.KindComposite {
			return false
		}
		if _, ok := c.types[seg.Type()]; ok {
			stack := make([]*segment.Segment, len(ancestors))
			copy(stack, ancestors)
			out = append(out, RuleContext{Segment: seg, Ancestors: stack, Config: cfg})
		}
		return true
	})
	return out
}

// RootOnlyCrawler yields exactly one context for the root segment. Used by
// rules that inspect whole-file structure.
type RootOnlyCrawler struct{}

// Crawl implements Crawler.
func (RootOnlyCrawler) Crawl(root *segment.Segment, cfg *Config) []RuleContext {
	return []RuleContext{{Segment: root, Config: cfg}}
}
