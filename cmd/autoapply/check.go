package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Discover once, print matches, exit",
	Long:  "One-shot discovery: polls every enabled source and prints the matching jobs with their applied status. Sends nothing and does not write the state file.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("check mode: no applications will be sent")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	records := store.NewJSONStore(cfg.StatePath, logger).Load()
	jobs := buildDiscoverer(cfg, logger).FetchAllJobs(ctx)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Source", "Company", "Position", "Applied", "URL")
	for _, j := range jobs {
		applied := "no"
		if store.IsApplied(j.URL, records) {
			applied = "yes"
		}
		table.Append(j.Source, j.Company, j.Position, applied, j.URL)
	}
	if err := table.Render(); err != nil {
		return err
	}

	logger.Info("check complete", "matched", len(jobs))
	return nil
}
