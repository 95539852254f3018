package toc

import (
	"regexp"
	"strings"

	"github.com/jackzampolin/spine/internal/pages"
)

// Scoring thresholds for TOC page detection.
const (
	HighScore   = 3.0
	MediumScore = 1.5
)

// Per-signal weights. Indicator words are the strongest evidence; the
// structural signals accumulate per match.
const (
	indicatorWeight    = 3.0
	chapterWeight      = 0.5
	leaderWeight       = 0.3
	numberedLineWeight = 0.2
)

const previewLen = 150

// tocIndicators are phrases whose presence strongly suggests a TOC page.
var tocIndicators = []string{"table of contents", "contents", "toc", "index"}

// chapterPatterns match chapter- and section-like references in page text.
var chapterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d+\s+\w+`),
	regexp.MustCompile(`(?i)\b\d+\.\d+\s+\w+`),
	regexp.MustCompile(`(?i)\b\d+\.\d+\.\d+\s+\w+`),
	regexp.MustCompile(`(?i)chapter\s+\d+`),
	regexp.MustCompile(`(?i)section\s+\d+`),
}

var (
	// leaderPageRe matches dotted-leader page references: "....... 53".
	leaderPageRe = regexp.MustCompile(`(?m)\.+\s*\d+$`)
	// numberedLineRe matches lines starting with a dotted section number.
	numberedLineRe = regexp.MustCompile(`(?m)^\s*\d+(?:\.\d+)*\s+`)
)

// PageScore rates one page's likelihood of holding TOC content.
type PageScore struct {
	Page           int     `json:"page"` // 1-based
	Score          float64 `json:"score"`
	IndicatorScore float64 `json:"indicator_score"`
	PatternScore   float64 `json:"pattern_score"`
	Preview        string  `json:"preview"`
}

// High reports whether the page clears the high-probability threshold.
func (p PageScore) High() bool { return p.Score > HighScore }

// Medium reports whether the page scores in the medium band.
func (p PageScore) Medium() bool { return !p.High() && p.Score > MediumScore }

// LocateResult is the outcome of scanning a document for its TOC.
type LocateResult struct {
	Scores    []PageScore `json:"scores"`     // pages with score > 0, ascending
	HighPages []int       `json:"high_pages"` // pages clearing HighScore
	Best      int         `json:"best"`       // strongest high page, 0 if none
}

// Locate scores the first maxPages pages of a document for TOC likelihood.
// Each page accumulates indicator-word hits plus weighted counts of
// chapter references, dotted-leader page numbers, and numbered lines.
func Locate(src pages.Source, maxPages int) *LocateResult {
	res := &LocateResult{}

	limit := src.PageCount()
	if maxPages > 0 && maxPages < limit {
		limit = maxPages
	}

	bestScore := 0.0
	for pageIdx := 0; pageIdx < limit; pageIdx++ {
		text, err := src.Text(pageIdx)
		if err != nil || text == "" {
			continue
		}

		ps := scorePage(text)
		if ps.Score <= 0 {
			continue
		}
		ps.Page = pageIdx + 1
		res.Scores = append(res.Scores, ps)

		if ps.High() {
			res.HighPages = append(res.HighPages, ps.Page)
			if ps.Score > bestScore {
				bestScore = ps.Score
				res.Best = ps.Page
			}
		}
	}

	return res
}

func scorePage(text string) PageScore {
	lower := strings.ToLower(text)

	var ps PageScore
	for _, indicator := range tocIndicators {
		if strings.Contains(lower, indicator) {
			ps.IndicatorScore += indicatorWeight
		}
	}

	for _, re := range chapterPatterns {
		ps.PatternScore += float64(len(re.FindAllString(text, -1))) * chapterWeight
	}
	ps.PatternScore += float64(len(leaderPageRe.FindAllString(text, -1))) * leaderWeight
	ps.PatternScore += float64(len(numberedLineRe.FindAllString(text, -1))) * numberedLineWeight

	ps.Score = ps.IndicatorScore + ps.PatternScore
	ps.Preview = preview(text)
	return ps
}

// preview returns the first previewLen runes of text on a single line.
func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > previewLen {
		return string(runes[:previewLen])
	}
	return text
}
