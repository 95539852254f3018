package section

import (
	"fmt"
)

// HeadingRecord is the wire form of a Heading, one JSONL line per record.
// Field names match the published record contract.
type HeadingRecord struct {
	DocTitle  string   `json:"doc_title"`
	SectionID string   `json:"section_id"`
	Title     string   `json:"title"`
	Page      int      `json:"page"`
	Level     int      `json:"level"`
	ParentID  *string  `json:"parent_id"`
	FullPath  string   `json:"full_path"`
	Tags      []string `json:"tags"`
}

// ContentRecord is a HeadingRecord plus the extracted section text.
type ContentRecord struct {
	HeadingRecord
	Content string `json:"content"`
}

// MetadataRecord summarizes one document run.
type MetadataRecord struct {
	RunID         string `json:"run_id"`
	DocTitle      string `json:"doc_title"`
	TotalPages    int    `json:"total_pages"`
	TOCPages      []int  `json:"toc_pages"`
	SectionsCount int    `json:"sections_count"`
	TablesCount   int    `json:"tables_count"`
	FiguresCount  int    `json:"figures_count"`
	GeneratedAt   string `json:"generated_at"`
}

// Record converts a Heading to its wire form.
func (h *Heading) Record() HeadingRecord {
	rec := HeadingRecord{
		DocTitle:  h.DocTitle,
		SectionID: h.ID.String(),
		Title:     h.Title,
		Page:      h.Page,
		Level:     h.Level(),
		FullPath:  h.FullPath(),
		Tags:      h.Tags,
	}
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	if p := h.ParentID(); p != "" {
		rec.ParentID = &p
	}
	return rec
}

// Record converts a Content to its wire form.
func (c *Content) Record() ContentRecord {
	return ContentRecord{
		HeadingRecord: c.Heading.Record(),
		Content:       c.Content,
	}
}

// FromRecord rebuilds a Heading from its wire form. Level, parent_id and
// full_path are re-derived from section_id; a record whose stated values
// disagree with the derivation is rejected rather than silently patched.
func FromRecord(rec HeadingRecord) (*Heading, error) {
	id, err := ParseID(rec.SectionID)
	if err != nil {
		return nil, err
	}
	h, err := NewHeading(rec.DocTitle, id, rec.Title, rec.Page, rec.Tags)
	if err != nil {
		return nil, err
	}
	if rec.Level != 0 && rec.Level != h.Level() {
		return nil, fmt.Errorf("record %s: level %d does not match id depth %d", rec.SectionID, rec.Level, h.Level())
	}
	if rec.ParentID != nil && *rec.ParentID != h.ParentID() {
		return nil, fmt.Errorf("record %s: parent_id %q does not match derived %q", rec.SectionID, *rec.ParentID, h.ParentID())
	}
	if rec.ParentID == nil && h.ParentID() != "" {
		return nil, fmt.Errorf("record %s: parent_id missing, derived %q", rec.SectionID, h.ParentID())
	}
	return h, nil
}

// ContentFromRecord rebuilds a Content entry from its wire form.
func ContentFromRecord(rec ContentRecord) (*Content, error) {
	h, err := FromRecord(rec.HeadingRecord)
	if err != nil {
		return nil, err
	}
	return h.WithContent(rec.Content), nil
}
