package pages

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// tableRefRe matches table caption references ("Table 12") in page text.
var tableRefRe = regexp.MustCompile(`(?i)\bTable\s+\d+`)

// PDF is a Source backed by a PDF file. Text extraction goes through
// ledongthuc/pdf first and falls back to parsing the pdfcpu content
// stream for pages where that yields nothing. Extracted text is cached
// per page, so repeated reads during scanning, extraction, and reference
// counting hit the file once.
type PDF struct {
	path   string
	file   *os.File
	reader *pdflib.Reader
	pctx   *model.Context

	mu    sync.Mutex
	cache map[int]string
}

var _ Source = (*PDF)(nil)

// OpenPDF opens and validates a PDF. maxSizeMB > 0 enforces a file size
// ceiling. Unreadable, encrypted, or structurally invalid files fail here;
// per-page extraction problems do not.
func OpenPDF(path string, maxSizeMB int) (*PDF, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if maxSizeMB > 0 && fi.Size() > int64(maxSizeMB)<<20 {
		return nil, fmt.Errorf("%s is %d MB, exceeds the %d MB limit", path, fi.Size()>>20, maxSizeMB)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	pctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}

	file, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &PDF{
		path:   path,
		file:   file,
		reader: reader,
		pctx:   pctx,
		cache:  make(map[int]string),
	}, nil
}

// Close releases the underlying file handle.
func (p *PDF) Close() error {
	return p.file.Close()
}

// Path returns the file path the source was opened from.
func (p *PDF) Path() string { return p.path }

// PageCount returns the validated page count.
func (p *PDF) PageCount() int { return p.pctx.PageCount }

// Text extracts the plain text of a page. Pages the primary extractor
// cannot handle go through the content-stream fallback; a page with no
// text in either path yields "".
func (p *PDF) Text(pageIndex int) (string, error) {
	if pageIndex < 0 || pageIndex >= p.PageCount() {
		return "", fmt.Errorf("page index %d out of range [0,%d)", pageIndex, p.PageCount())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if text, ok := p.cache[pageIndex]; ok {
		return text, nil
	}

	text := p.plainText(pageIndex + 1)
	if text == "" {
		text = streamText(p.pctx, pageIndex+1)
	}
	p.cache[pageIndex] = text
	return text, nil
}

// TableCount counts table caption references on a page.
func (p *PDF) TableCount(pageIndex int) int {
	text, err := p.Text(pageIndex)
	if err != nil {
		return 0
	}
	return len(tableRefRe.FindAllString(text, -1))
}

// plainText runs the primary extractor for a 1-based page number. The
// extractor panics on some malformed font dictionaries; a panic degrades
// to "" so the fallback path gets its turn.
func (p *PDF) plainText(pageNr int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	page := p.reader.Page(pageNr)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}
