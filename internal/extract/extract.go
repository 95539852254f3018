// Package extract pulls per-section text out of a page source using the
// spans resolved by the section tree. Sections are processed
// concurrently and each page read retries transient failures. A section
// whose every page fails to read is reported as a failure; a section
// whose pages read cleanly but hold no text is valid empty content.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jackzampolin/spine/internal/pages"
	"github.com/jackzampolin/spine/internal/profile"
	"github.com/jackzampolin/spine/internal/section"
	"github.com/jackzampolin/spine/internal/tree"
)

const (
	pageReadAttempts = 3
	pageReadDelay    = 100 * time.Millisecond
)

// Failure records one section whose content could not be extracted.
type Failure struct {
	SectionID string
	Err       error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %v", f.SectionID, f.Err)
}

// Result carries extracted contents in tree order plus any failures.
type Result struct {
	Contents []*section.Content
	Failures []Failure
}

// Config configures an Extractor.
type Config struct {
	Source  pages.Source
	Profile *profile.Profile
	Workers int // concurrent sections, default runtime.NumCPU()
	Logger  *slog.Logger
}

// Extractor extracts section content concurrently from a page source.
type Extractor struct {
	source  pages.Source
	profile *profile.Profile
	workers int
	logger  *slog.Logger
}

// New builds an Extractor, applying defaults for workers and logger.
func New(cfg Config) *Extractor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Extractor{
		source:  cfg.Source,
		profile: cfg.Profile,
		workers: workers,
		logger:  logger.With("component", "extract"),
	}
}

// ExtractAll resolves every heading's page span and extracts its text.
// Contents and failures come back in tree order regardless of worker
// scheduling.
func (e *Extractor) ExtractAll(ctx context.Context, t *tree.Tree) *Result {
	n := t.Len()

	type item struct {
		idx     int
		content *section.Content
		err     error
	}

	results := make(chan item, n)
	sem := make(chan struct{}, e.workers)

	for i := 0; i < n; i++ {
		sem <- struct{}{} // acquire
		go func(idx int) {
			defer func() { <-sem }() // release

			content, err := e.extractOne(ctx, t, idx)
			results <- item{idx: idx, content: content, err: err}
		}(i)
	}

	contents := make([]*section.Content, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		r := <-results
		contents[r.idx] = r.content
		errs[r.idx] = r.err
	}

	res := &Result{}
	for idx := 0; idx < n; idx++ {
		if errs[idx] != nil {
			res.Failures = append(res.Failures, Failure{
				SectionID: t.Headings[idx].ID.String(),
				Err:       errs[idx],
			})
			continue
		}
		res.Contents = append(res.Contents, contents[idx])
	}
	return res
}

// extractOne reads one heading's page span, cleans each page, and joins
// the non-empty pages. It fails only when the span holds no readable
// page at all.
func (e *Extractor) extractOne(ctx context.Context, t *tree.Tree, idx int) (*section.Content, error) {
	h := t.Headings[idx]
	r := t.ResolveRange(idx)

	// 0-based page indexes [start, end), clamped to the document. The
	// span's last page stays in: it is shared with the next section.
	start := r.Start - 1
	end := r.End
	if start < 0 {
		start = 0
	}
	if pc := e.source.PageCount(); end > pc {
		end = pc
	}
	if start >= end {
		return nil, fmt.Errorf("section %s: page span %d..%d lies outside the document", r.SectionID, r.Start, r.End)
	}

	var parts []string
	readable := 0
	for page := start; page < end; page++ {
		text, err := e.readPage(ctx, page)
		if err != nil {
			e.logger.Warn("page read failed", "section", r.SectionID, "page", page+1, "error", err)
			continue
		}
		readable++

		cleaned := strings.TrimSpace(e.profile.Clean(text))
		if cleaned == "" {
			continue
		}
		parts = append(parts, cleaned)
	}

	if readable == 0 {
		return nil, fmt.Errorf("section %s: no readable pages in span %d..%d", r.SectionID, r.Start, r.End)
	}

	content := h.WithContent(strings.Join(parts, "\n"))
	e.logger.Debug("extracted section",
		"section", r.SectionID,
		"pages", end-start,
		"chars", len(content.Content))
	return content, nil
}

// readPage reads one page, retrying transient failures.
func (e *Extractor) readPage(ctx context.Context, pageIdx int) (string, error) {
	return retry.DoWithData(
		func() (string, error) {
			return e.source.Text(pageIdx)
		},
		retry.Context(ctx),
		retry.Attempts(pageReadAttempts),
		retry.Delay(pageReadDelay),
		retry.LastErrorOnly(true),
	)
}
