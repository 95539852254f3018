package schema

import (
	"encoding/json"
	"testing"

	"github.com/jackzampolin/spine/internal/section"
)

func headingJSON(t *testing.T, id, title string, page int) []byte {
	t.Helper()
	parsed, err := section.ParseID(id)
	if err != nil {
		t.Fatalf("parse id %q: %v", id, err)
	}
	h, err := section.NewHeading("Test Spec", parsed, title, page, []string{"power_management"})
	if err != nil {
		t.Fatalf("new heading: %v", err)
	}
	data, err := json.Marshal(h.Record())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestNames(t *testing.T) {
	want := []string{"heading", "metadata", "section"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestValidateHeadingAcceptsRecords(t *testing.T) {
	if err := ValidateHeading(headingJSON(t, "1", "Introduction", 1)); err != nil {
		t.Errorf("top-level heading rejected: %v", err)
	}
	if err := ValidateHeading(headingJSON(t, "2.1.3", "Collision Avoidance", 53)); err != nil {
		t.Errorf("nested heading rejected: %v", err)
	}
}

func TestValidateHeadingRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing fields", `{"doc_title":"X"}`},
		{"letter in section id", `{"doc_title":"X","section_id":"1.a","title":"T","page":1,"level":2,"parent_id":"1","full_path":"1.a T"}`},
		{"page zero", `{"doc_title":"X","section_id":"1","title":"T","page":0,"level":1,"parent_id":null,"full_path":"1 T"}`},
		{"empty title", `{"doc_title":"X","section_id":"1","title":"","page":1,"level":1,"parent_id":null,"full_path":"1 "}`},
		{"not an object", `[1,2,3]`},
		{"invalid json", `{"doc_title":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateHeading([]byte(tc.data)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateSectionRequiresContent(t *testing.T) {
	parsed, _ := section.ParseID("2.1")
	h, err := section.NewHeading("Test Spec", parsed, "Electrical", 5, nil)
	if err != nil {
		t.Fatalf("new heading: %v", err)
	}

	withContent, err := json.Marshal(h.WithContent("body text").Record())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateSection(withContent); err != nil {
		t.Errorf("section record rejected: %v", err)
	}

	empty, err := json.Marshal(h.WithContent("").Record())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateSection(empty); err != nil {
		t.Errorf("empty content rejected: %v", err)
	}

	// A heading record lacks the content field entirely.
	if err := ValidateSection(headingJSON(t, "2.1", "Electrical", 5)); err == nil {
		t.Error("expected error for record without content")
	}
}

func TestValidateMetadata(t *testing.T) {
	rec := section.MetadataRecord{
		RunID:         "a3f1",
		DocTitle:      "Test Spec",
		TotalPages:    100,
		TOCPages:      []int{2, 3},
		SectionsCount: 42,
		TablesCount:   7,
		FiguresCount:  3,
		GeneratedAt:   "2025-06-01T12:00:00Z",
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateMetadata(data); err != nil {
		t.Errorf("metadata record rejected: %v", err)
	}

	// Records from older runs carry no run id or timestamp.
	legacy := `{"doc_title":"Test Spec","total_pages":100,"toc_pages":[2],"sections_count":1,"tables_count":0,"figures_count":0}`
	if err := ValidateMetadata([]byte(legacy)); err != nil {
		t.Errorf("legacy metadata rejected: %v", err)
	}

	if err := ValidateMetadata([]byte(`{"total_pages":100}`)); err == nil {
		t.Error("expected error for metadata without doc_title")
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	if err := Validate("bogus", []byte(`{}`)); err == nil {
		t.Error("expected error for unknown schema name")
	}
}
