package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/store"
)

var appliedCmd = &cobra.Command{
	Use:   "applied",
	Short: "List jobs already applied to",
	Long:  "Reads the state file and prints a table of every recorded application.",
	RunE:  runApplied,
}

func init() {
	rootCmd.AddCommand(appliedCmd)
}

func runApplied(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	records := store.NewJSONStore(cfg.StatePath, logger).Load()
	if len(records) == 0 {
		fmt.Printf("No applications recorded in %s.\n", cfg.StatePath)
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Applied At", "Source", "Company", "URL")
	for _, r := range records {
		at := "-"
		if !r.AppliedAt.IsZero() {
			at = r.AppliedAt.Local().Format("2006-01-02 15:04")
		}
		table.Append(at, r.Source, r.Company, r.JobURL)
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("\nTotal: %d applications\n", len(records))
	return nil
}
