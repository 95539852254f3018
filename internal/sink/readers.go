package sink

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jackzampolin/spine/internal/schema"
	"github.com/jackzampolin/spine/internal/section"
)

// ReadHeadings loads a TOC heading JSONL file, validating every line
// against the heading schema. Errors carry the offending line number.
func ReadHeadings(path string) ([]*section.Heading, error) {
	var headings []*section.Heading
	err := eachLine(path, func(line []byte, n int) error {
		if err := schema.ValidateHeading(line); err != nil {
			return fmt.Errorf("%s line %d: %w", path, n, err)
		}
		var rec section.HeadingRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("%s line %d: %w", path, n, err)
		}
		h, err := section.FromRecord(rec)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, n, err)
		}
		headings = append(headings, h)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return headings, nil
}

// ReadContents loads a section-content JSONL file, validating every
// line against the section schema.
func ReadContents(path string) ([]*section.Content, error) {
	var contents []*section.Content
	err := eachLine(path, func(line []byte, n int) error {
		if err := schema.ValidateSection(line); err != nil {
			return fmt.Errorf("%s line %d: %w", path, n, err)
		}
		var rec section.ContentRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return fmt.Errorf("%s line %d: %w", path, n, err)
		}
		c, err := section.ContentFromRecord(rec)
		if err != nil {
			return fmt.Errorf("%s line %d: %w", path, n, err)
		}
		contents = append(contents, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contents, nil
}

// eachLine calls fn for every non-blank line of a file. Lines are read
// unbounded since section contents routinely exceed scanner token
// limits.
func eachLine(path string, fn func(line []byte, n int) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for n := 1; ; n++ {
		line, readErr := r.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			if err := fn(trimmed, n); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", path, readErr)
		}
	}
}
