package tree

import (
	"testing"

	"github.com/jackzampolin/spine/internal/section"
)

func mustHeading(t *testing.T, id, title string, page int) *section.Heading {
	t.Helper()
	parsed, err := section.ParseID(id)
	if err != nil {
		t.Fatalf("parse id %q: %v", id, err)
	}
	h, err := section.NewHeading("Test Spec", parsed, title, page, nil)
	if err != nil {
		t.Fatalf("new heading %s: %v", id, err)
	}
	return h
}

func ids(t *Tree) []string {
	out := make([]string, len(t.Headings))
	for i, h := range t.Headings {
		out[i] = h.ID.String()
	}
	return out
}

func TestBuildSortsNumerically(t *testing.T) {
	headings := []*section.Heading{
		mustHeading(t, "2.10", "Sink Capabilities", 30),
		mustHeading(t, "2.9", "Source Capabilities", 29),
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "2", "Overview", 20),
		mustHeading(t, "1.2", "References", 5),
		mustHeading(t, "1.1", "Scope", 2),
	}

	tr, anomalies := Build(headings, Options{TotalPages: 40})

	want := []string{"1", "1.1", "1.2", "2", "2.9", "2.10"}
	got := ids(tr)
	if len(got) != len(want) {
		t.Fatalf("tree has %d headings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if len(anomalies) != 0 {
		t.Errorf("anomalies = %v, want none", anomalies)
	}
}

func TestBuildDropsDuplicateIDs(t *testing.T) {
	headings := []*section.Heading{
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "1", "Intro Again", 3),
		mustHeading(t, "2", "Overview", 5),
	}

	tr, anomalies := Build(headings, Options{})

	if tr.Len() != 2 {
		t.Fatalf("tree has %d headings, want 2", tr.Len())
	}
	kept, ok := tr.Lookup("1")
	if !ok || kept.Title != "Introduction" {
		t.Errorf("kept %v, want first occurrence Introduction", kept)
	}
	if len(anomalies) != 1 || anomalies[0].Kind != AnomalyDuplicateID {
		t.Fatalf("anomalies = %v, want one duplicate_id", anomalies)
	}
	if anomalies[0].SectionID != "1" {
		t.Errorf("anomaly section = %s, want 1", anomalies[0].SectionID)
	}
}

func TestBuildFlagsOrphanParent(t *testing.T) {
	headings := []*section.Heading{
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "2.1", "Electrical", 5),
	}

	_, anomalies := Build(headings, Options{})

	if len(anomalies) != 1 || anomalies[0].Kind != AnomalyOrphanParent {
		t.Fatalf("anomalies = %v, want one orphan_parent", anomalies)
	}
	if anomalies[0].SectionID != "2.1" {
		t.Errorf("anomaly section = %s, want 2.1", anomalies[0].SectionID)
	}
}

func TestBuildFlagsChildBeforeParent(t *testing.T) {
	headings := []*section.Heading{
		mustHeading(t, "1", "Introduction", 10),
		mustHeading(t, "1.1", "Scope", 5),
	}

	_, anomalies := Build(headings, Options{})

	if len(anomalies) != 1 || anomalies[0].Kind != AnomalyPageBeforeParent {
		t.Fatalf("anomalies = %v, want one page_before_parent", anomalies)
	}
}

func TestBuildFlagsSiblingPageOrder(t *testing.T) {
	headings := []*section.Heading{
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "1.1", "Scope", 4),
		mustHeading(t, "1.2", "References", 2),
	}

	_, anomalies := Build(headings, Options{})

	if len(anomalies) != 1 || anomalies[0].Kind != AnomalyPageOrder {
		t.Fatalf("anomalies = %v, want one page_order", anomalies)
	}
	if anomalies[0].SectionID != "1.2" {
		t.Errorf("anomaly section = %s, want 1.2", anomalies[0].SectionID)
	}
}

func TestBuildFlagsPageOutOfBounds(t *testing.T) {
	headings := []*section.Heading{
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "2", "Overview", 15),
	}

	_, anomalies := Build(headings, Options{TotalPages: 10})

	if len(anomalies) != 1 || anomalies[0].Kind != AnomalyPageOutOfBounds {
		t.Fatalf("anomalies = %v, want one page_out_of_bounds", anomalies)
	}
	if anomalies[0].SectionID != "2" {
		t.Errorf("anomaly section = %s, want 2", anomalies[0].SectionID)
	}
}

func TestBuildAnomaliesNeverFatal(t *testing.T) {
	headings := []*section.Heading{
		mustHeading(t, "1", "Introduction", 6),
		mustHeading(t, "1", "Duplicate", 7),
		mustHeading(t, "1.1", "Scope", 2),
		mustHeading(t, "3.1", "Orphan", 30),
	}

	tr, anomalies := Build(headings, Options{TotalPages: 20})

	if tr.Len() != 3 {
		t.Fatalf("tree has %d headings, want 3", tr.Len())
	}
	if len(anomalies) < 3 {
		t.Errorf("anomalies = %v, want duplicate, page-before-parent and out-of-bounds reports", anomalies)
	}
	kinds := map[AnomalyKind]bool{}
	for _, a := range anomalies {
		kinds[a.Kind] = true
	}
	for _, want := range []AnomalyKind{AnomalyDuplicateID, AnomalyPageBeforeParent, AnomalyPageOutOfBounds} {
		if !kinds[want] {
			t.Errorf("missing %s anomaly", want)
		}
	}
}

func TestLookup(t *testing.T) {
	tr, _ := Build([]*section.Heading{
		mustHeading(t, "2.1", "Electrical", 5),
		mustHeading(t, "2", "Requirements", 4),
	}, Options{})

	if h, ok := tr.Lookup("2.1"); !ok || h.Title != "Electrical" {
		t.Errorf("Lookup(2.1) = %v, %v", h, ok)
	}
	if _, ok := tr.Lookup("9"); ok {
		t.Error("Lookup(9) should miss")
	}
}
