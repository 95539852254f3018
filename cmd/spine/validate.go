package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/spine/internal/reconcile"
	"github.com/jackzampolin/spine/internal/sink"
)

var (
	validateTOCPath      string
	validateSectionsPath string
	validateReportPath   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Re-run reconciliation over previously written records",
	Long: `Load TOC heading and section-content JSONL files, validate every
record against its schema, and re-run the reconciliation engine over
them. The engine is pure and deterministic: the same inputs always
produce the same report.

Examples:
  spine validate --toc out/usb_pd_toc.jsonl --sections out/usb_pd_spec.jsonl
  spine validate --toc t.jsonl --sections s.jsonl --report report.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headings, err := sink.ReadHeadings(validateTOCPath)
		if err != nil {
			return err
		}
		contents, err := sink.ReadContents(validateSectionsPath)
		if err != nil {
			return err
		}

		report := reconcile.Run(headings, contents)

		if validateReportPath != "" {
			if err := sink.WriteWorkbook(validateReportPath, report); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", validateReportPath)
		}

		return output(report.Analysis)
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateTOCPath, "toc", "", "TOC heading JSONL file")
	validateCmd.Flags().StringVar(&validateSectionsPath, "sections", "", "section-content JSONL file")
	validateCmd.Flags().StringVar(&validateReportPath, "report", "", "optional validation workbook output path")
	validateCmd.MarkFlagRequired("toc")
	validateCmd.MarkFlagRequired("sections")
}
