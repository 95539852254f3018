// Package tree orders parsed headings into the authoritative section
// list for a document and resolves each section's page span. Hierarchy
// defects are reported as anomalies, never as failures: a spec with a
// missing parent or an out-of-order page still produces a usable tree.
package tree

import (
	"fmt"
	"sort"

	"github.com/jackzampolin/spine/internal/section"
)

// AnomalyKind labels one class of hierarchy defect.
type AnomalyKind string

const (
	// AnomalyDuplicateID flags a repeated section id. The first
	// occurrence in scan order stays in the tree.
	AnomalyDuplicateID AnomalyKind = "duplicate_id"
	// AnomalyOrphanParent flags a nested heading whose parent id is
	// absent from the tree.
	AnomalyOrphanParent AnomalyKind = "orphan_parent"
	// AnomalyPageBeforeParent flags a child starting before its parent.
	AnomalyPageBeforeParent AnomalyKind = "page_before_parent"
	// AnomalyPageOrder flags a sibling whose page precedes the sibling
	// ordered before it.
	AnomalyPageOrder AnomalyKind = "page_order"
	// AnomalyPageOutOfBounds flags a page past the end of the document.
	AnomalyPageOutOfBounds AnomalyKind = "page_out_of_bounds"
)

// Anomaly reports one hierarchy defect found during a build. Callers
// log anomalies and continue with the tree.
type Anomaly struct {
	Kind      AnomalyKind `json:"kind"`
	SectionID string      `json:"section_id"`
	Detail    string      `json:"detail"`
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s %s: %s", a.Kind, a.SectionID, a.Detail)
}

// Options tune a build. TotalPages, when positive, bounds heading
// pages and caps the final section's span.
type Options struct {
	TotalPages int
}

// Tree is the ordered, deduplicated section list for one document.
// Headings are sorted by the numeric id comparator, so 2.9 precedes
// 2.10 and a parent precedes its children.
type Tree struct {
	Headings []*section.Heading

	index      map[string]*section.Heading
	totalPages int
}

// Build orders headings by id, drops duplicates keeping the first seen,
// and reports hierarchy anomalies. The tree is always returned, even
// when anomalies are present.
func Build(headings []*section.Heading, opts Options) (*Tree, []Anomaly) {
	t := &Tree{
		index:      make(map[string]*section.Heading, len(headings)),
		totalPages: opts.TotalPages,
	}
	var anomalies []Anomaly

	for _, h := range headings {
		key := h.ID.String()
		if kept, ok := t.index[key]; ok {
			anomalies = append(anomalies, Anomaly{
				Kind:      AnomalyDuplicateID,
				SectionID: key,
				Detail: fmt.Sprintf("dropped %q at page %d, kept %q at page %d",
					h.Title, h.Page, kept.Title, kept.Page),
			})
			continue
		}
		t.index[key] = h
		t.Headings = append(t.Headings, h)
	}

	sort.SliceStable(t.Headings, func(i, j int) bool {
		return t.Headings[i].ID.Compare(t.Headings[j].ID) < 0
	})

	anomalies = append(anomalies, t.checkHierarchy()...)
	return t, anomalies
}

// checkHierarchy walks the ordered list once, validating parent links
// and page monotonicity.
func (t *Tree) checkHierarchy() []Anomaly {
	var anomalies []Anomaly
	prevSibling := make(map[string]*section.Heading)

	for _, h := range t.Headings {
		id := h.ID.String()
		parentKey := h.ParentID()

		if h.Level() > 1 {
			parent, ok := t.index[parentKey]
			switch {
			case !ok:
				anomalies = append(anomalies, Anomaly{
					Kind:      AnomalyOrphanParent,
					SectionID: id,
					Detail:    fmt.Sprintf("parent %s is not in the tree", parentKey),
				})
			case h.Page < parent.Page:
				anomalies = append(anomalies, Anomaly{
					Kind:      AnomalyPageBeforeParent,
					SectionID: id,
					Detail: fmt.Sprintf("page %d precedes parent %s at page %d",
						h.Page, parentKey, parent.Page),
				})
			}
		}

		if prev, ok := prevSibling[parentKey]; ok && h.Page < prev.Page {
			anomalies = append(anomalies, Anomaly{
				Kind:      AnomalyPageOrder,
				SectionID: id,
				Detail: fmt.Sprintf("page %d precedes sibling %s at page %d",
					h.Page, prev.ID, prev.Page),
			})
		}
		prevSibling[parentKey] = h

		if t.totalPages > 0 && h.Page > t.totalPages {
			anomalies = append(anomalies, Anomaly{
				Kind:      AnomalyPageOutOfBounds,
				SectionID: id,
				Detail:    fmt.Sprintf("page %d exceeds document page count %d", h.Page, t.totalPages),
			})
		}
	}
	return anomalies
}

// Len returns the number of headings in the tree.
func (t *Tree) Len() int { return len(t.Headings) }

// Lookup returns the heading with the given dotted id.
func (t *Tree) Lookup(id string) (*section.Heading, bool) {
	h, ok := t.index[id]
	return h, ok
}
