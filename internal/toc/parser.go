// Package toc turns raw page text into normalized section headings: a
// profile-driven line parser, a keyword tag classifier, a page scanner,
// and a scoring heuristic for locating the TOC inside a document.
package toc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jackzampolin/spine/internal/profile"
	"github.com/jackzampolin/spine/internal/section"
)

var (
	leadingDashRe = regexp.MustCompile(`^\s*[-–—]\s*`)
	innerSpaceRe  = regexp.MustCompile(`\s+`)
)

// Parser extracts section headings from single TOC lines using the active
// profile's ordered pattern list.
type Parser struct {
	profile  *profile.Profile
	docTitle string
}

// NewParser binds a parser to a profile and the owning document's title.
func NewParser(p *profile.Profile, docTitle string) *Parser {
	return &Parser{profile: p, docTitle: docTitle}
}

// ParseLine attempts each profile pattern in priority order and returns
// the heading built from the first structurally valid match. A match
// whose captures fail validation (non-numeric id, empty title, page < 1)
// falls through to later patterns. Lines matching nothing return ok=false;
// most lines of a TOC page are not headings, so that is not an error.
func (p *Parser) ParseLine(line string) (*section.Heading, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	for _, re := range p.profile.TOCPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		id, err := section.ParseID(m[1])
		if err != nil {
			continue
		}
		title := cleanTitle(m[2])
		if title == "" {
			continue
		}
		page, err := strconv.Atoi(m[3])
		if err != nil || page < 1 {
			continue
		}

		h, err := section.NewHeading(p.docTitle, id, title, page, Classify(title, p.profile.TagMap))
		if err != nil {
			continue
		}
		return h, true
	}
	return nil, false
}

// cleanTitle strips a leading dash or em-dash and collapses internal
// whitespace to single spaces.
func cleanTitle(title string) string {
	title = leadingDashRe.ReplaceAllString(title, "")
	title = innerSpaceRe.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}
