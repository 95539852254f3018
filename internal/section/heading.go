// Package section defines the normalized section model shared across the
// pipeline: dotted numeric IDs, TOC headings, and extracted section content.
// It depends on no other spine packages so every stage can import it.
package section

import (
	"fmt"
	"sort"
)

// Heading is one parsed TOC entry. Level, ParentID and FullPath are
// derived from ID at construction and never set independently.
type Heading struct {
	DocTitle string
	ID       ID
	Title    string
	Page     int
	Tags     []string
}

// NewHeading builds a validated Heading. Page numbers are 1-based;
// a page below 1, an empty id, or an empty title is rejected here so a
// Heading in circulation is always structurally sound.
func NewHeading(docTitle string, id ID, title string, page int, tags []string) (*Heading, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("heading requires a section id")
	}
	if title == "" {
		return nil, fmt.Errorf("heading %s: empty title", id)
	}
	if page < 1 {
		return nil, fmt.Errorf("heading %s: page %d is not a positive integer", id, page)
	}
	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)
	return &Heading{
		DocTitle: docTitle,
		ID:       id,
		Title:    title,
		Page:     page,
		Tags:     sorted,
	}, nil
}

// Level is the nesting depth derived from the id.
func (h *Heading) Level() int {
	return h.ID.Level()
}

// ParentID returns the dotted parent path, or "" for a top-level heading.
func (h *Heading) ParentID() string {
	p := h.ID.Parent()
	if p == nil {
		return ""
	}
	return p.String()
}

// FullPath is the display form "2.1.3 Title". Derived, never stored.
func (h *Heading) FullPath() string {
	return h.ID.String() + " " + h.Title
}

// WithContent attaches extracted text, producing a Content entry.
func (h *Heading) WithContent(text string) *Content {
	return &Content{Heading: *h, Content: text}
}

// Content is a Heading plus the text extracted for its page span.
// An empty Content string is a valid content-free section; extraction
// failures never produce a Content at all.
type Content struct {
	Heading
	Content string
}
