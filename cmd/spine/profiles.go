package main

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List known document profiles",
	Long: `List the document profiles spine can parse with, built-ins plus any
user profiles from the profiles directory. Pass a profile key to
'spine parse --doc-type'; unknown keys fall back to the generic
profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(false)
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		registry, err := loadRegistry(cfg, logger)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetAutoWrapText(false)
		table.SetHeader([]string{"Key", "Description", "Patterns", "Scan Pages", "Max Size"})
		for _, key := range registry.Keys() {
			p, _ := registry.Get(key)
			table.Append([]string{
				key,
				p.Description,
				strconv.Itoa(len(p.TOCPatterns)),
				strconv.Itoa(p.ScanPages),
				strconv.Itoa(p.MaxFileSizeMB) + " MB",
			})
		}
		table.Render()
		return nil
	},
}
