package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/spine/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "spine",
	Short: "TOC extraction and reconciliation for technical specifications",
	Long: `Spine extracts the hierarchical table of contents from paginated
technical-specification PDFs, pulls each section's content, and reconciles
the result against the detected TOC.

The pipeline includes:
  - Profile-driven TOC line parsing for heterogeneous formats
  - Section tree building with hierarchy anomaly reporting
  - Page-range resolution and per-section content extraction
  - Coverage, ordering, and numbering-gap validation reports`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.spine/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "spine home directory (default: ~/.spine)",
	)
	rootCmd.PersistentFlags().StringVar(
		&outputFormat, "output", "yaml", "structured output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
