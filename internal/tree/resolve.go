package tree

import "github.com/jackzampolin/spine/internal/section"

// Range is one section's page span. Pages are 1-based and End is
// inclusive: the last page is shared with whatever section closes the
// span, since print specs start a new section mid-page.
type Range struct {
	SectionID string
	Start     int
	End       int
}

// closes reports whether next terminates cur's content span. A heading
// at the same or a shallower level always closes the span. A deeper
// heading closes it too unless it is cur's direct child, so 1.1.1
// closes 1 even though it nests inside it.
func closes(cur, next *section.Heading) bool {
	return next.Level() <= cur.Level() || !next.ID.IsDirectChildOf(cur.ID)
}

// ResolveRange computes the page span of the heading at position i in
// the ordered list. The span runs from the heading's own page to the
// page of the first subsequent heading that closes it, or to the last
// page of the document when nothing does. A span never ends before it
// starts: a heading always owns at least its own page.
func (t *Tree) ResolveRange(i int) Range {
	cur := t.Headings[i]
	start := cur.Page
	end := t.lastPage()

	for j := i + 1; j < len(t.Headings); j++ {
		if closes(cur, t.Headings[j]) {
			end = t.Headings[j].Page
			break
		}
	}

	if end < start {
		end = start
	}
	return Range{SectionID: cur.ID.String(), Start: start, End: end}
}

// Ranges resolves every heading's span in tree order.
func (t *Tree) Ranges() []Range {
	ranges := make([]Range, len(t.Headings))
	for i := range t.Headings {
		ranges[i] = t.ResolveRange(i)
	}
	return ranges
}

// lastPage is the document's final page: TotalPages when known,
// otherwise the highest page any heading claims.
func (t *Tree) lastPage() int {
	if t.totalPages > 0 {
		return t.totalPages
	}
	last := 0
	for _, h := range t.Headings {
		if h.Page > last {
			last = h.Page
		}
	}
	return last
}
