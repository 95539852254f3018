package toc

import (
	"strings"

	"github.com/jackzampolin/spine/internal/pages"
	"github.com/jackzampolin/spine/internal/section"
)

// ScanResult holds the headings found during a TOC scan, in the order
// they were encountered, plus the distinct 1-based numbers of the pages
// that contained at least one heading line.
type ScanResult struct {
	Headings []*section.Heading
	TOCPages []int
}

// Scanner runs the line parser over the leading pages of a document.
type Scanner struct {
	parser *Parser
	limit  int
}

// NewScanner builds a scanner that reads at most scanPages pages.
func NewScanner(p *Parser, scanPages int) *Scanner {
	return &Scanner{parser: p, limit: scanPages}
}

// Scan walks pages [0, limit) line by line and collects every line that
// parses as a heading. A heading's Page is the page number parsed out of
// the line text — where the section's content begins — not the page the
// TOC line was printed on. Pages that fail to read are skipped; a TOC
// scan tolerates noise.
func (s *Scanner) Scan(src pages.Source) *ScanResult {
	res := &ScanResult{}

	limit := s.limit
	if total := src.PageCount(); limit > total {
		limit = total
	}

	for pageIdx := 0; pageIdx < limit; pageIdx++ {
		text, err := src.Text(pageIdx)
		if err != nil || text == "" {
			continue
		}

		found := false
		for _, line := range strings.Split(text, "\n") {
			h, ok := s.parser.ParseLine(line)
			if !ok {
				continue
			}
			res.Headings = append(res.Headings, h)
			found = true
		}
		if found {
			res.TOCPages = append(res.TOCPages, pageIdx+1)
		}
	}

	return res
}
