package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/spine/internal/config"
	"github.com/jackzampolin/spine/internal/home"
	"github.com/jackzampolin/spine/internal/pipeline"
	"github.com/jackzampolin/spine/internal/profile"
)

var (
	parseOutputDir string
	parseDocTitle  string
	parseDocType   string
	parseTOCPages  int
	parseWorkers   int
	parseVerbose   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <pdf>",
	Short: "Parse a specification PDF into structured section records",
	Long: `Parse a specification PDF: scan its leading pages for the table of
contents, extract each section's content, reconcile the result against
the TOC, and write JSONL records plus a validation workbook.

Examples:
  spine parse spec.pdf
  spine parse spec.pdf -d usb_pd -o out/
  spine parse spec.pdf -t "USB PD R3.2" -p 20 --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pdfPath := args[0]
		if _, err := os.Stat(pdfPath); err != nil {
			return fmt.Errorf("input file not found: %s", pdfPath)
		}
		if !strings.EqualFold(filepath.Ext(pdfPath), ".pdf") {
			return fmt.Errorf("input must be a PDF file, got %s", filepath.Ext(pdfPath))
		}

		logger := newLogger(parseVerbose)
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyParseFlags(cmd, cfg)

		registry, err := loadRegistry(cfg, logger)
		if err != nil {
			return err
		}

		res, err := pipeline.Run(cmd.Context(), pipeline.Options{
			PDFPath:      pdfPath,
			OutputDir:    cfg.OutputDir,
			DocType:      cfg.DocType,
			DocTitle:     cfg.DocTitle,
			TOCScanPages: cfg.TOCScanPages,
			Workers:      cfg.Workers,
			Registry:     registry,
			Logger:       logger,
		})
		if err != nil {
			return err
		}

		printRunSummary(res)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseOutputDir, "output-dir", "o", "", "directory for JSONL records and the validation workbook")
	parseCmd.Flags().StringVarP(&parseDocTitle, "doc-title", "t", "", "document title override")
	parseCmd.Flags().StringVarP(&parseDocType, "doc-type", "d", "", "document profile key (see 'spine profiles')")
	parseCmd.Flags().IntVarP(&parseTOCPages, "toc-pages", "p", 0, "pages to scan for the TOC (0: profile default)")
	parseCmd.Flags().IntVar(&parseWorkers, "workers", 0, "concurrent section extractions (0: one per CPU)")
	parseCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "debug logging")
}

// applyParseFlags lets explicit flags override config file values.
func applyParseFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = parseOutputDir
	}
	if cmd.Flags().Changed("doc-title") {
		cfg.DocTitle = parseDocTitle
	}
	if cmd.Flags().Changed("doc-type") {
		cfg.DocType = parseDocType
	}
	if cmd.Flags().Changed("toc-pages") {
		cfg.TOCScanPages = parseTOCPages
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = parseWorkers
	}
}

// newLogger builds the run logger, debug-level when verbose.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads configuration from the --config file, defaults, and
// SPINE_ environment variables.
func loadConfig() (*config.Config, error) {
	m, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	return m.Get(), nil
}

// loadRegistry seeds the built-in profiles and layers user profiles
// from the profiles directory on top.
func loadRegistry(cfg *config.Config, logger *slog.Logger) (*profile.Registry, error) {
	registry := profile.NewRegistry()

	dir := cfg.ProfilesDir
	if dir == "" {
		h, err := home.New(homeDir)
		if err != nil {
			return nil, err
		}
		dir = h.ProfilesPath()
	}
	loaded, err := registry.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if loaded > 0 {
		logger.Info("loaded user profiles", "dir", dir, "count", loaded)
	}
	return registry, nil
}

// printRunSummary renders the run outcome as a console table.
func printRunSummary(res *pipeline.Result) {
	coverage := fmt.Sprintf("%.1f%%", res.Coverage)
	switch {
	case res.Coverage >= 90:
		coverage = color.New(color.FgGreen).Sprint(coverage)
	case res.Coverage >= 50:
		coverage = color.New(color.FgYellow).Sprint(coverage)
	default:
		coverage = color.New(color.FgRed).Sprint(coverage)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Document", res.DocTitle})
	table.Append([]string{"Profile", res.DocType})
	table.Append([]string{"Pages", strconv.Itoa(res.TotalPages)})
	table.Append([]string{"TOC entries", strconv.Itoa(res.TOCEntries)})
	table.Append([]string{"Sections extracted", strconv.Itoa(res.Sections)})
	table.Append([]string{"Coverage", coverage})
	table.Append([]string{"Anomalies", strconv.Itoa(len(res.Anomalies))})
	table.Append([]string{"Gaps", strconv.Itoa(len(res.Report.Analysis.Gaps))})
	table.Append([]string{"Order issues", strconv.Itoa(len(res.Report.Analysis.OrderIssues))})
	table.Render()

	for _, f := range res.OutputFiles {
		fmt.Printf("wrote %s\n", f)
	}
}
