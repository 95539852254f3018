package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/spine/internal/pages"
	"github.com/jackzampolin/spine/internal/toc"
)

var scanMaxPages int

var scanCmd = &cobra.Command{
	Use:   "scan <pdf>",
	Short: "Locate likely table-of-contents pages in a PDF",
	Long: `Score the leading pages of a PDF for table-of-contents likelihood.

Each page accumulates weighted evidence: TOC indicator phrases, chapter
references, dotted-leader page numbers, and numbered lines. Pages above
the high threshold are strong TOC candidates.

Examples:
  spine scan spec.pdf
  spine scan spec.pdf --max-pages 40`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := pages.OpenPDF(args[0], 0)
		if err != nil {
			return err
		}
		defer src.Close()

		res := toc.Locate(src, scanMaxPages)
		printScanResult(res)
		return nil
	},
}

func init() {
	scanCmd.Flags().IntVar(&scanMaxPages, "max-pages", 30, "pages to scan from the start of the document (0: all)")
}

func printScanResult(res *toc.LocateResult) {
	if len(res.Scores) == 0 {
		fmt.Println("no TOC-like pages found")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Page", "Score", "Probability", "Preview"})

	for _, ps := range res.Scores {
		var prob string
		switch {
		case ps.High():
			prob = color.New(color.FgGreen, color.Bold).Sprint("HIGH")
		case ps.Medium():
			prob = color.New(color.FgYellow).Sprint("MEDIUM")
		default:
			prob = "low"
		}
		table.Append([]string{
			strconv.Itoa(ps.Page),
			fmt.Sprintf("%.1f", ps.Score),
			prob,
			ps.Preview,
		})
	}
	table.Render()

	if res.Best > 0 {
		fmt.Printf("recommended TOC start: page %d\n", res.Best)
	} else {
		fmt.Println("no page cleared the high-probability threshold; try --max-pages with a larger value")
	}
}
