// Package pipeline runs a complete spine parse: TOC scan, tree build,
// content extraction, reconciliation, and output writing. Stages run
// strictly in dependency order because the later ones need the full
// ordered section set, not a running prefix. Outputs are written only
// after reconciliation succeeds, so a fatal error never leaves a
// half-consistent record set behind.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/spine/internal/extract"
	"github.com/jackzampolin/spine/internal/pages"
	"github.com/jackzampolin/spine/internal/profile"
	"github.com/jackzampolin/spine/internal/reconcile"
	"github.com/jackzampolin/spine/internal/section"
	"github.com/jackzampolin/spine/internal/toc"
	"github.com/jackzampolin/spine/internal/tree"
)

// figureRefRe matches figure caption references ("Figure 12") in page text.
var figureRefRe = regexp.MustCompile(`(?i)\bFigure\s+\d+`)

// Options configures one pipeline run.
type Options struct {
	// PDFPath is the input document.
	PDFPath string
	// OutputDir receives the JSONL files and the validation workbook.
	// Empty skips output writing; the Result still carries the report.
	OutputDir string
	// DocType selects the parsing profile; unknown types fall back to
	// the generic profile.
	DocType string
	// DocTitle overrides the profile's document title when set.
	DocTitle string
	// TOCScanPages caps the TOC scan; 0 defers to the profile.
	TOCScanPages int
	// Workers bounds extraction concurrency; 0 means one per CPU.
	Workers int
	// Registry resolves the document profile. nil uses the built-ins.
	Registry *profile.Registry
	// Logger receives stage progress. nil uses slog.Default.
	Logger *slog.Logger
}

// Result summarizes one completed run.
type Result struct {
	RunID       string         `json:"run_id"`
	DocTitle    string         `json:"doc_title"`
	DocType     string         `json:"doc_type"`
	TotalPages  int            `json:"total_pages"`
	TOCEntries  int            `json:"toc_entries"`
	Sections    int            `json:"sections"`
	Coverage    float64        `json:"coverage_percent"`
	Anomalies   []tree.Anomaly `json:"anomalies,omitempty"`
	Failures    []string       `json:"failures,omitempty"`
	OutputFiles []string       `json:"output_files,omitempty"`

	Report   *reconcile.Report      `json:"-"`
	Metadata section.MetadataRecord `json:"-"`
}

// Run opens the document at opts.PDFPath and executes the full
// pipeline against it. Open failures and size-ceiling violations are
// fatal here; everything past open degrades per section or per line.
func Run(ctx context.Context, opts Options) (*Result, error) {
	prof, _ := resolve(opts)

	src, err := pages.OpenPDF(opts.PDFPath, prof.MaxFileSizeMB)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return RunSource(ctx, opts, src)
}

// RunSource executes the pipeline against an already-open page source.
// Tests and record replays drive this directly.
func RunSource(ctx context.Context, opts Options, src pages.Source) (*Result, error) {
	prof, logger := resolve(opts)

	docTitle := opts.DocTitle
	if docTitle == "" {
		docTitle = prof.DocTitle
	}
	if docTitle == "" {
		docTitle = strings.TrimSuffix(filepath.Base(opts.PDFPath), filepath.Ext(opts.PDFPath))
	}

	res := &Result{
		RunID:      uuid.NewString(),
		DocTitle:   docTitle,
		DocType:    prof.DocType,
		TotalPages: src.PageCount(),
	}

	// TOC scan.
	scanPages := opts.TOCScanPages
	if scanPages <= 0 {
		scanPages = prof.ScanPages
	}
	scanner := toc.NewScanner(toc.NewParser(prof, docTitle), scanPages)
	scan := scanner.Scan(src)
	res.TOCEntries = len(scan.Headings)
	logger.Info("toc scan complete", "headings", len(scan.Headings), "toc_pages", len(scan.TOCPages))

	// Tree build.
	t, anomalies := tree.Build(scan.Headings, tree.Options{TotalPages: src.PageCount()})
	res.Anomalies = anomalies
	for _, a := range anomalies {
		logger.Warn("hierarchy anomaly", "kind", a.Kind, "section", a.SectionID, "detail", a.Detail)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Content extraction.
	started := time.Now()
	extractor := extract.New(extract.Config{
		Source:  src,
		Profile: prof,
		Workers: opts.Workers,
		Logger:  logger,
	})
	extracted := extractor.ExtractAll(ctx, t)
	res.Sections = len(extracted.Contents)
	for _, f := range extracted.Failures {
		res.Failures = append(res.Failures, f.String())
	}
	logger.Info("extraction complete",
		"sections", len(extracted.Contents),
		"failures", len(extracted.Failures),
		"duration", time.Since(started))

	// Reconciliation.
	report := reconcile.Run(t.Headings, extracted.Contents)
	res.Report = report
	res.Coverage = report.Analysis.CoveragePercent

	// Reference counts feed the metadata record only; a page that fails
	// to read here degrades to zero counts like any other read problem.
	tables, figures := countReferences(src)
	res.Metadata = section.MetadataRecord{
		RunID:         res.RunID,
		DocTitle:      docTitle,
		TotalPages:    src.PageCount(),
		TOCPages:      scan.TOCPages,
		SectionsCount: len(extracted.Contents),
		TablesCount:   tables,
		FiguresCount:  figures,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if res.Metadata.TOCPages == nil {
		res.Metadata.TOCPages = []int{}
	}

	// Output writing, only now that reconciliation has succeeded.
	if opts.OutputDir != "" {
		files, err := writeOutputs(opts.OutputDir, prof.DocType, t.Headings, extracted.Contents, res.Metadata, report)
		if err != nil {
			return nil, err
		}
		res.OutputFiles = files
	}

	return res, nil
}

// resolve picks the profile and logger for a run, logging when an
// unknown doc type falls back to generic.
func resolve(opts Options) (*profile.Profile, *slog.Logger) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "pipeline")

	reg := opts.Registry
	if reg == nil {
		reg = profile.NewRegistry()
	}
	prof, exact := reg.Get(opts.DocType)
	if !exact && opts.DocType != "" {
		logger.Warn("unknown document type, using generic profile", "doc_type", opts.DocType)
	}
	return prof, logger
}

// countReferences sums per-page table counts and figure caption
// references over the whole document.
func countReferences(src pages.Source) (tables, figures int) {
	for i := 0; i < src.PageCount(); i++ {
		tables += src.TableCount(i)
		text, err := src.Text(i)
		if err != nil {
			continue
		}
		figures += len(figureRefRe.FindAllString(text, -1))
	}
	return tables, figures
}
