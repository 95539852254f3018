package sink

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jackzampolin/spine/internal/reconcile"
)

// Workbook sheet names.
const (
	sheetReport   = "Validation_Report"
	sheetSummary  = "Summary_Statistics"
	sheetAnalysis = "Analysis_Details"
	sheetLevels   = "Level_Distribution"
)

// WriteWorkbook saves a reconciliation report as a four-sheet Excel
// workbook at path.
func WriteWorkbook(path string, report *reconcile.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetReport); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}
	if err := writeRows(f, sheetReport, reportRows(report.Rows)); err != nil {
		return err
	}

	extras := []struct {
		name string
		rows [][]any
	}{
		{sheetSummary, summaryRows(report.Summary)},
		{sheetAnalysis, analysisRows(report.Analysis)},
		{sheetLevels, levelRows(report.Summary.LevelDistribution)},
	}
	for _, s := range extras {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
		}
		if err := writeRows(f, s.name, s.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func reportRows(rows []reconcile.Row) [][]any {
	out := [][]any{{
		"section_id", "title", "toc_page", "in_toc", "in_parsed",
		"parsed_page", "status", "level", "parent_id", "content_length", "tags",
	}}
	for _, r := range rows {
		out = append(out, []any{
			r.SectionID,
			r.Title,
			pageCell(r.TOCPage, r.InTOC),
			yesNo(r.InTOC),
			yesNo(r.InParsed),
			pageCell(r.ParsedPage, r.InParsed),
			string(r.Status),
			r.Level,
			r.ParentID,
			r.ContentLength,
			strings.Join(r.Tags, ", "),
		})
	}
	return out
}

// pageCell renders a page number, or "N/A" when the section is absent
// from that side of the comparison.
func pageCell(page int, present bool) any {
	if !present {
		return "N/A"
	}
	return page
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func summaryRows(s reconcile.Summary) [][]any {
	return [][]any{
		{"metric", "value"},
		{"toc_page_range", rangeCell(s.TOCPageRange)},
		{"parsed_page_range", rangeCell(s.ParsedPageRange)},
		{"total_content_length", s.TotalContentLength},
		{"avg_content_length", fmt.Sprintf("%.1f", s.AvgContentLength)},
		{"sections_with_content", s.SectionsWithContent},
	}
}

func rangeCell(r reconcile.PageRange) string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

func analysisRows(a reconcile.Analysis) [][]any {
	rows := [][]any{
		{"metric", "value"},
		{"total_toc_entries", a.TotalTOCEntries},
		{"total_parsed_entries", a.TotalParsedEntries},
		{"common_entries", a.CommonEntries},
		{"coverage_percent", fmt.Sprintf("%.1f", a.CoveragePercent)},
		{"missing_from_parsed", strings.Join(a.MissingFromParsed, ", ")},
		{"extra_in_parsed", strings.Join(a.ExtraInParsed, ", ")},
	}

	if len(a.OrderIssues) > 0 {
		rows = append(rows,
			[]any{},
			[]any{"order_issues"},
			[]any{"section_id", "toc_page", "parsed_page", "difference"})
		for _, issue := range a.OrderIssues {
			rows = append(rows, []any{issue.SectionID, issue.TOCPage, issue.ParsedPage, issue.Difference})
		}
	}
	if len(a.Gaps) > 0 {
		rows = append(rows,
			[]any{},
			[]any{"gaps"},
			[]any{"level", "before", "after", "description"})
		for _, g := range a.Gaps {
			rows = append(rows, []any{g.Level, g.Before, g.After, g.Description})
		}
	}
	return rows
}

func levelRows(dist map[int]int) [][]any {
	levels := make([]int, 0, len(dist))
	for level := range dist {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	rows := [][]any{{"level", "count"}}
	for _, level := range levels {
		rows = append(rows, []any{level, dist[level]})
	}
	return rows
}
