// Package sink writes pipeline records to their output forms: JSONL
// files for the three record families and an Excel workbook for the
// validation report. Writers validate records on the way out so a file
// on disk is always schema-clean.
package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// RecordSink is an append-only structured record writer.
type RecordSink interface {
	Append(record any) error
	Close() error
}

// ValidateFunc checks one serialized record before it is committed.
type ValidateFunc func(data []byte) error

// JSONL writes one JSON record per line, UTF-8, without HTML escaping.
type JSONL struct {
	path     string
	f        *os.File
	validate ValidateFunc
	count    int
}

// NewJSONL creates the file at path, truncating any previous contents.
// validate may be nil to skip per-record checks.
func NewJSONL(path string, validate ValidateFunc) (*JSONL, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return &JSONL{path: path, f: f, validate: validate}, nil
}

// Append serializes, validates, and writes one record. A record that
// fails validation is not written.
func (w *JSONL) Append(record any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("failed to encode record for %s: %w", w.path, err)
	}
	if w.validate != nil {
		if err := w.validate(buf.Bytes()); err != nil {
			return fmt.Errorf("record %d for %s: %w", w.count+1, w.path, err)
		}
	}
	if _, err := w.f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	w.count++
	return nil
}

// Count returns the number of records written so far.
func (w *JSONL) Count() int { return w.count }

// Path returns the file path the writer appends to.
func (w *JSONL) Path() string { return w.path }

// Close closes the underlying file.
func (w *JSONL) Close() error {
	return w.f.Close()
}
