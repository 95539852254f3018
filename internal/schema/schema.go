// Package schema validates pipeline output records against embedded
// JSON Schemas. One schema exists per record family: TOC headings,
// section contents, and the per-run metadata record. Records are
// validated in their serialized form so the same checks guard both
// writing and re-reading.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Record family names, doubling as embedded file basenames.
const (
	Heading  = "heading"
	Section  = "section"
	Metadata = "metadata"
)

var registry = []string{Heading, Section, Metadata}

var (
	compileOnce sync.Once
	compiled    map[string]*jsonschema.Schema
	compileErr  error
)

// compile parses every embedded schema exactly once.
func compile() {
	compiled = make(map[string]*jsonschema.Schema, len(registry))
	compiler := jsonschema.NewCompiler()

	for _, name := range registry {
		content, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.json", name))
		if err != nil {
			compileErr = fmt.Errorf("failed to read schema %s: %w", name, err)
			return
		}
		if err := compiler.AddResource(name+".json", bytes.NewReader(content)); err != nil {
			compileErr = fmt.Errorf("failed to load schema %s: %w", name, err)
			return
		}
	}
	for _, name := range registry {
		s, err := compiler.Compile(name + ".json")
		if err != nil {
			compileErr = fmt.Errorf("failed to compile schema %s: %w", name, err)
			return
		}
		compiled[name] = s
	}
}

// Names returns the known record families, sorted.
func Names() []string {
	names := make([]string, len(registry))
	copy(names, registry)
	sort.Strings(names)
	return names
}

// Validate checks one serialized record against the named schema.
func Validate(name string, data []byte) error {
	compileOnce.Do(compile)
	if compileErr != nil {
		return compileErr
	}
	s, ok := compiled[name]
	if !ok {
		return fmt.Errorf("schema not found: %s", name)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON for %s record: %w", name, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%s record does not match schema: %w", name, err)
	}
	return nil
}

// ValidateHeading checks a serialized TOC heading record.
func ValidateHeading(data []byte) error { return Validate(Heading, data) }

// ValidateSection checks a serialized section-content record.
func ValidateSection(data []byte) error { return Validate(Section, data) }

// ValidateMetadata checks a serialized run metadata record.
func ValidateMetadata(data []byte) error { return Validate(Metadata, data) }
