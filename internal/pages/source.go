// Package pages provides the page-source capability the pipeline reads
// from: per-page plain text and table counts behind a small interface,
// with a PDF-backed implementation and an in-memory one for tests and
// record replay.
package pages

import "fmt"

// Source is a read-only view of a paginated document. Page indexes are
// 0-based; implementations must be safe for concurrent reads.
type Source interface {
	// PageCount returns the total number of pages.
	PageCount() int
	// Text returns the plain text of a page. A page with no extractable
	// text yields an empty string and no error; an error means the read
	// itself failed.
	Text(pageIndex int) (string, error)
	// TableCount reports how many tables the page references.
	TableCount(pageIndex int) int
}

// Memory is an in-memory Source backed by per-page strings.
type Memory struct {
	Pages  []string
	Tables []int
}

// NewMemory builds a Memory source from page texts.
func NewMemory(pages ...string) *Memory {
	return &Memory{Pages: pages}
}

// PageCount returns the number of pages.
func (m *Memory) PageCount() int { return len(m.Pages) }

// Text returns the stored text for a page.
func (m *Memory) Text(pageIndex int) (string, error) {
	if pageIndex < 0 || pageIndex >= len(m.Pages) {
		return "", fmt.Errorf("page index %d out of range [0,%d)", pageIndex, len(m.Pages))
	}
	return m.Pages[pageIndex], nil
}

// TableCount returns the stored table count for a page, 0 when none was
// recorded.
func (m *Memory) TableCount(pageIndex int) int {
	if pageIndex < 0 || pageIndex >= len(m.Tables) {
		return 0
	}
	return m.Tables[pageIndex]
}
