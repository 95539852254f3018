package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackzampolin/spine/internal/reconcile"
	"github.com/jackzampolin/spine/internal/schema"
	"github.com/jackzampolin/spine/internal/section"
	"github.com/jackzampolin/spine/internal/sink"
)

// WorkbookName is the validation report file written next to the JSONL
// outputs.
const WorkbookName = "validation_report.xlsx"

// TOCFileName returns the heading record file name for a doc type.
func TOCFileName(docType string) string { return docType + "_toc.jsonl" }

// SpecFileName returns the section-content record file name for a doc type.
func SpecFileName(docType string) string { return docType + "_spec.jsonl" }

// MetadataFileName returns the metadata record file name for a doc type.
func MetadataFileName(docType string) string { return docType + "_metadata.jsonl" }

// writeOutputs writes the three JSONL record files and the validation
// workbook. Every record passes its schema check on the way out; a
// record that fails is a programming error and aborts the write.
func writeOutputs(
	dir, docType string,
	headings []*section.Heading,
	contents []*section.Content,
	meta section.MetadataRecord,
	report *reconcile.Report,
) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	var files []string

	tocPath := filepath.Join(dir, TOCFileName(docType))
	if err := writeJSONL(tocPath, schema.ValidateHeading, len(headings), func(i int) any {
		return headings[i].Record()
	}); err != nil {
		return nil, err
	}
	files = append(files, tocPath)

	specPath := filepath.Join(dir, SpecFileName(docType))
	if err := writeJSONL(specPath, schema.ValidateSection, len(contents), func(i int) any {
		return contents[i].Record()
	}); err != nil {
		return nil, err
	}
	files = append(files, specPath)

	metaPath := filepath.Join(dir, MetadataFileName(docType))
	if err := writeJSONL(metaPath, schema.ValidateMetadata, 1, func(int) any {
		return meta
	}); err != nil {
		return nil, err
	}
	files = append(files, metaPath)

	reportPath := filepath.Join(dir, WorkbookName)
	if err := sink.WriteWorkbook(reportPath, report); err != nil {
		return nil, err
	}
	files = append(files, reportPath)

	return files, nil
}

// writeJSONL streams n records through a validating JSONL sink.
func writeJSONL(path string, validate sink.ValidateFunc, n int, record func(i int) any) error {
	w, err := sink.NewJSONL(path, validate)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.Append(record(i)); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
