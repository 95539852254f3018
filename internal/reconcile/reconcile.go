// Package reconcile compares the TOC heading set against the extracted
// content set and reports coverage, gaps, and ordering problems. The
// engine is a pure read-only analysis: it never mutates its inputs and
// identical inputs always produce an identical report.
package reconcile

import (
	"fmt"
	"sort"

	"github.com/jackzampolin/spine/internal/section"
)

// Status classifies one report row.
type Status string

const (
	StatusOK      Status = "OK"
	StatusMissing Status = "MISSING"
	StatusExtra   Status = "EXTRA"
)

// Row is one section's reconciliation outcome. Rows cover the union of
// both input sets, ordered by numeric section id.
type Row struct {
	SectionID     string   `json:"section_id"`
	Title         string   `json:"title"`
	TOCPage       int      `json:"toc_page"`
	InTOC         bool     `json:"in_toc"`
	InParsed      bool     `json:"in_parsed"`
	ParsedPage    int      `json:"parsed_page"`
	Status        Status   `json:"status"`
	Level         int      `json:"level"`
	ParentID      string   `json:"parent_id"`
	ContentLength int      `json:"content_length"`
	Tags          []string `json:"tags"`
}

// OrderIssue flags a section whose TOC page and parsed page disagree.
type OrderIssue struct {
	SectionID  string `json:"section_id"`
	TOCPage    int    `json:"toc_page"`
	ParsedPage int    `json:"parsed_page"`
	Difference int    `json:"difference"`
}

// Gap flags non-consecutive numbering between two adjacent siblings.
type Gap struct {
	Level       int    `json:"level"`
	Before      string `json:"before"`
	After       string `json:"after"`
	Description string `json:"description"`
}

// Analysis holds the set comparison between TOC and parsed entries.
// Entry counts are over distinct section ids.
type Analysis struct {
	TotalTOCEntries    int          `json:"total_toc_entries"`
	TotalParsedEntries int          `json:"total_parsed_entries"`
	CommonEntries      int          `json:"common_entries"`
	MissingFromParsed  []string     `json:"missing_from_parsed"`
	ExtraInParsed      []string     `json:"extra_in_parsed"`
	OrderIssues        []OrderIssue `json:"order_issues"`
	Gaps               []Gap        `json:"gaps"`
	CoveragePercent    float64      `json:"coverage_percent"`
}

// PageRange is the page extrema of one input set, zero when empty.
type PageRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Summary holds descriptive statistics over both input sets.
type Summary struct {
	LevelDistribution   map[int]int `json:"level_distribution"`
	TOCPageRange        PageRange   `json:"toc_page_range"`
	ParsedPageRange     PageRange   `json:"parsed_page_range"`
	TotalContentLength  int         `json:"total_content_length"`
	AvgContentLength    float64     `json:"avg_content_length"`
	SectionsWithContent int         `json:"sections_with_content"`
}

// Report is the full reconciliation outcome.
type Report struct {
	Rows     []Row    `json:"rows"`
	Analysis Analysis `json:"analysis"`
	Summary  Summary  `json:"summary"`
}

// Run reconciles the TOC heading set with the extracted content set.
// Duplicate ids within one input keep their first occurrence. Inputs
// are read only; re-running on the same inputs yields an identical
// report.
func Run(headings []*section.Heading, contents []*section.Content) *Report {
	toc := dedupeHeadings(headings)
	parsed := dedupeContents(contents)

	tocByID := make(map[string]*section.Heading, len(toc))
	for _, h := range toc {
		tocByID[h.ID.String()] = h
	}
	parsedByID := make(map[string]*section.Content, len(parsed))
	for _, c := range parsed {
		parsedByID[c.ID.String()] = c
	}

	ids := unionIDs(toc, parsed)

	report := &Report{
		Rows: []Row{},
		Analysis: Analysis{
			TotalTOCEntries:    len(toc),
			TotalParsedEntries: len(parsed),
			MissingFromParsed:  []string{},
			ExtraInParsed:      []string{},
			OrderIssues:        []OrderIssue{},
			Gaps:               detectGaps(toc),
		},
		Summary: summarize(toc, parsed),
	}

	for _, id := range ids {
		key := id.String()
		h := tocByID[key]
		c := parsedByID[key]

		switch {
		case h != nil && c != nil:
			report.Analysis.CommonEntries++
			if h.Page != c.Page {
				diff := h.Page - c.Page
				if diff < 0 {
					diff = -diff
				}
				report.Analysis.OrderIssues = append(report.Analysis.OrderIssues, OrderIssue{
					SectionID:  key,
					TOCPage:    h.Page,
					ParsedPage: c.Page,
					Difference: diff,
				})
			}
			report.Rows = append(report.Rows, Row{
				SectionID:     key,
				Title:         h.Title,
				TOCPage:       h.Page,
				InTOC:         true,
				InParsed:      true,
				ParsedPage:    c.Page,
				Status:        StatusOK,
				Level:         h.Level(),
				ParentID:      h.ParentID(),
				ContentLength: len(c.Content),
				Tags:          h.Tags,
			})
		case h != nil:
			report.Analysis.MissingFromParsed = append(report.Analysis.MissingFromParsed, key)
			report.Rows = append(report.Rows, Row{
				SectionID: key,
				Title:     h.Title,
				TOCPage:   h.Page,
				InTOC:     true,
				Status:    StatusMissing,
				Level:     h.Level(),
				ParentID:  h.ParentID(),
				Tags:      h.Tags,
			})
		default:
			report.Analysis.ExtraInParsed = append(report.Analysis.ExtraInParsed, key)
			report.Rows = append(report.Rows, Row{
				SectionID:     key,
				Title:         c.Title,
				InParsed:      true,
				ParsedPage:    c.Page,
				Status:        StatusExtra,
				Level:         c.Level(),
				ParentID:      c.ParentID(),
				ContentLength: len(c.Content),
				Tags:          c.Tags,
			})
		}
	}

	if len(toc) > 0 {
		report.Analysis.CoveragePercent = float64(report.Analysis.CommonEntries) / float64(len(toc)) * 100
	}

	return report
}

// dedupeHeadings returns the headings with duplicate ids dropped (first
// occurrence wins), sorted by numeric id. The input slice is untouched.
func dedupeHeadings(headings []*section.Heading) []*section.Heading {
	seen := make(map[string]bool, len(headings))
	out := make([]*section.Heading, 0, len(headings))
	for _, h := range headings {
		key := h.ID.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID.Compare(out[j].ID) < 0 })
	return out
}

func dedupeContents(contents []*section.Content) []*section.Content {
	seen := make(map[string]bool, len(contents))
	out := make([]*section.Content, 0, len(contents))
	for _, c := range contents {
		key := c.ID.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID.Compare(out[j].ID) < 0 })
	return out
}

// unionIDs merges both id sets into one numerically sorted list.
func unionIDs(toc []*section.Heading, parsed []*section.Content) []section.ID {
	seen := make(map[string]bool, len(toc)+len(parsed))
	ids := make([]section.ID, 0, len(toc)+len(parsed))
	for _, h := range toc {
		if key := h.ID.String(); !seen[key] {
			seen[key] = true
			ids = append(ids, h.ID)
		}
	}
	for _, c := range parsed {
		if key := c.ID.String(); !seen[key] {
			seen[key] = true
			ids = append(ids, c.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Compare(ids[j]) < 0 })
	return ids
}

// detectGaps flags non-consecutive numbering between adjacent siblings.
// Candidates are grouped by level and compared pairwise in numeric
// order; a pair gaps only when both ids share the same parent, so the
// step from 2.9 to 3.1 is a level transition, not a gap.
func detectGaps(toc []*section.Heading) []Gap {
	byLevel := make(map[int][]*section.Heading)
	for _, h := range toc {
		byLevel[h.Level()] = append(byLevel[h.Level()], h)
	}

	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	gaps := []Gap{}
	for _, level := range levels {
		group := byLevel[level]
		sort.SliceStable(group, func(i, j int) bool { return group[i].ID.Compare(group[j].ID) < 0 })

		for i := 1; i < len(group); i++ {
			prev, cur := group[i-1], group[i]
			if prev.ID.CommonPrefixLen(cur.ID) != level-1 {
				continue
			}
			if cur.ID.Last() == prev.ID.Last()+1 {
				continue
			}
			gaps = append(gaps, Gap{
				Level:       level,
				Before:      prev.ID.String(),
				After:       cur.ID.String(),
				Description: fmt.Sprintf("missing sections between %s and %s", prev.ID, cur.ID),
			})
		}
	}
	return gaps
}

// summarize computes descriptive statistics over both input sets.
func summarize(toc []*section.Heading, parsed []*section.Content) Summary {
	s := Summary{LevelDistribution: make(map[int]int)}

	for _, h := range toc {
		s.LevelDistribution[h.Level()]++
		s.TOCPageRange = s.TOCPageRange.extend(h.Page)
	}

	for _, c := range parsed {
		s.ParsedPageRange = s.ParsedPageRange.extend(c.Page)
		s.TotalContentLength += len(c.Content)
		if c.Content != "" {
			s.SectionsWithContent++
		}
	}
	if len(parsed) > 0 {
		s.AvgContentLength = float64(s.TotalContentLength) / float64(len(parsed))
	}

	return s
}

func (r PageRange) extend(page int) PageRange {
	if r.Min == 0 || page < r.Min {
		r.Min = page
	}
	if page > r.Max {
		r.Max = page
	}
	return r
}
