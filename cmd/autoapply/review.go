package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/config"
	"github.com/amishk599/autoapply/internal/discovery"
	"github.com/amishk599/autoapply/internal/filter"
	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/review"
	"github.com/amishk599/autoapply/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse discovered jobs interactively (TUI)",
	Long:  "Shows the source picker, then a split-pane view of matching jobs: pending on the left, already applied on the right.",
	RunE:  runReviewCmd,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReviewCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Any log output while the TUI owns the terminal corrupts the display.
	silentLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runReview(cfg, silentLogger)
	return nil
}

func runReview(cfg *config.Config, logger *slog.Logger) {
	jsonStore := store.NewJSONStore(cfg.StatePath, logger)
	jobFilter := filter.NewKeywordFilter(filter.DefaultKeywords)

	for {
		choice, ok, err := review.RunSourcePicker(discovery.Statuses(cfg))
		if err != nil {
			fmt.Printf("Picker error: %v\n", err)
			return
		}
		if !ok {
			return
		}

		sources := discovery.BuildSources(cfg, nil, logger)
		if choice != review.AllSources {
			sources = pickSource(sources, choice)
		}
		d := discovery.NewDiscoverer(sources, jobFilter, logger)

		jobs, err := review.RunLoader(choice, d.FetchAllJobs)
		if err != nil {
			fmt.Printf("Error discovering jobs: %v\n", err)
			continue
		}

		wantQuit, err := review.RunReviewTUI(jobs, jsonStore.Load())
		if err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
		if wantQuit {
			return
		}
		// else: loop → back to picker
	}
}

func pickSource(sources []model.JobFetcher, name string) []model.JobFetcher {
	for _, s := range sources {
		if s.Name() == name {
			return []model.JobFetcher{s}
		}
	}
	return nil
}
