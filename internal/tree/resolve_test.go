package tree

import (
	"testing"

	"github.com/jackzampolin/spine/internal/section"
)

func buildTree(t *testing.T, totalPages int, specs ...*section.Heading) *Tree {
	t.Helper()
	tr, anomalies := Build(specs, Options{TotalPages: totalPages})
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %v", anomalies)
	}
	return tr
}

func TestResolveRangeSpansToClosingHeading(t *testing.T) {
	tr := buildTree(t, 10,
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "1.1", "Scope", 2),
		mustHeading(t, "1.2", "References", 4),
		mustHeading(t, "2", "Requirements", 6),
	)

	want := []Range{
		{SectionID: "1", Start: 1, End: 6},
		{SectionID: "1.1", Start: 2, End: 4},
		{SectionID: "1.2", Start: 4, End: 6},
		{SectionID: "2", Start: 6, End: 10},
	}
	got := tr.Ranges()
	if len(got) != len(want) {
		t.Fatalf("got %d ranges, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestResolveRangeDirectChildDoesNotClose(t *testing.T) {
	// 1.1 is a direct child of 1 and keeps the span open; 2 closes it.
	tr := buildTree(t, 10,
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "1.1", "Scope", 3),
		mustHeading(t, "2", "Requirements", 6),
	)

	if r := tr.ResolveRange(0); r.Start != 1 || r.End != 6 {
		t.Errorf("range for 1 = %+v, want 1..6", r)
	}
}

func TestResolveRangeDeeperNonChildCloses(t *testing.T) {
	// 1.1.1 is not a direct child of 1, so it closes 1's span even
	// though it nests under it.
	tr := buildTree(t, 10,
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "1.1", "Scope", 2),
		mustHeading(t, "1.1.1", "Definitions", 3),
		mustHeading(t, "2", "Requirements", 6),
	)

	if r := tr.ResolveRange(0); r.End != 3 {
		t.Errorf("range for 1 = %+v, want end at 1.1.1's page 3", r)
	}
	// 1.1's own direct child keeps its span open until 2.
	if r := tr.ResolveRange(1); r.Start != 2 || r.End != 6 {
		t.Errorf("range for 1.1 = %+v, want 2..6", r)
	}
	if r := tr.ResolveRange(2); r.Start != 3 || r.End != 6 {
		t.Errorf("range for 1.1.1 = %+v, want 3..6", r)
	}
}

func TestResolveRangeLastSectionRunsToDocumentEnd(t *testing.T) {
	tr := buildTree(t, 25,
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "2", "Requirements", 6),
	)

	if r := tr.ResolveRange(1); r.Start != 6 || r.End != 25 {
		t.Errorf("range for 2 = %+v, want 6..25", r)
	}
}

func TestResolveRangeUnknownTotalFallsBackToLastHeading(t *testing.T) {
	tr := buildTree(t, 0,
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "2", "Requirements", 6),
	)

	if r := tr.ResolveRange(1); r.Start != 6 || r.End != 6 {
		t.Errorf("range for 2 = %+v, want 6..6", r)
	}
}

func TestResolveRangeNeverEndsBeforeStart(t *testing.T) {
	// A heading past the document end still owns its own page.
	headings := []*section.Heading{
		mustHeading(t, "1", "Introduction", 1),
		mustHeading(t, "2", "Overflow", 12),
	}
	tr, _ := Build(headings, Options{TotalPages: 10})

	if r := tr.ResolveRange(1); r.Start != 12 || r.End != 12 {
		t.Errorf("range for 2 = %+v, want 12..12", r)
	}
}

func TestCloses(t *testing.T) {
	h := func(id string) *section.Heading { return mustHeading(t, id, "X", 1) }
	// Same-or-shallower always closes. Deeper closes unless it is the
	// current heading's direct child.
	cases := []struct {
		cur, next string
		want      bool
	}{
		{"1", "2", true},
		{"1.1", "2", true},
		{"1", "1.1", false},
		{"1", "1.1.1", true},
		{"1.1", "1.1.1", false},
		{"1.1", "1.2.1", true},
		{"2", "10", true},
	}
	for _, tc := range cases {
		if got := closes(h(tc.cur), h(tc.next)); got != tc.want {
			t.Errorf("closes(%s, %s) = %v, want %v", tc.cur, tc.next, got, tc.want)
		}
	}
}
