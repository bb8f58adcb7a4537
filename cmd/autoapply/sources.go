package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/discovery"
	"github.com/amishk599/autoapply/internal/pacing"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List job sources and whether they will be polled",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	statuses := discovery.Statuses(cfg)
	enabled := 0

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Source", "Status", "Pacing", "Reason")
	for _, st := range statuses {
		status := "skipped"
		if st.Enabled {
			status = "enabled"
			enabled++
		}
		table.Append(st.Name, status, describePolicy(st.Policy), st.Reason)
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("\nTotal: %d sources (%d enabled, %d skipped)\n", len(statuses), enabled, len(statuses)-enabled)
	return nil
}

func describePolicy(p pacing.Policy) string {
	switch {
	case p.Before > 0:
		return fmt.Sprintf("wait %s before", p.Before)
	case p.Interval > 0:
		return fmt.Sprintf("%s between requests", p.Interval)
	case p.After > 0:
		return fmt.Sprintf("wait %s after", p.After)
	default:
		return "-"
	}
}
