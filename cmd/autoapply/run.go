package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/contact"
	"github.com/amishk599/autoapply/internal/mailer"
	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/notifier"
	"github.com/amishk599/autoapply/internal/pipeline"
	"github.com/amishk599/autoapply/internal/store"
)

var (
	dryRun  bool
	maxOver int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Discover jobs and send applications once",
	Long: "Performs one full pass: discovers matching jobs, skips those already applied to, " +
		"finds and verifies a contact address, sends the application, notifies and records it.",
	RunE: runRun,
}

func init() {
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log what would be sent; send nothing and record nothing")
	cmd.Flags().IntVar(&maxOver, "max", -1, "override the per-run application cap")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if !dryRun {
		if err := cfg.RequireCredentials(); err != nil {
			logger.Error("cannot send applications", "error", err)
			os.Exit(1)
		}
	}

	maxApplications := cfg.MaxApplications
	if maxOver >= 0 {
		maxApplications = maxOver
	}

	logger.Info("config loaded",
		"max_applications", maxApplications,
		"state_path", cfg.StatePath,
		"hunter", cfg.HunterAPIKey != "",
		"telegram", cfg.Telegram.Enabled(),
		"password_from_keyring", cfg.Gmail.PasswordFromKeyring,
		"dry_run", dryRun,
	)

	jsonStore := store.NewJSONStore(cfg.StatePath, logger)
	unlock, err := jsonStore.Lock()
	if errors.Is(err, store.ErrLocked) {
		logger.Error("another run is in progress", "state_path", cfg.StatePath)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("failed to lock state file", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := unlock(); err != nil {
			logger.Warn("failed to release state lock", "error", err)
		}
	}()

	var (
		appliedStore model.AppliedStore = jsonStore
		sender       model.Sender
		n            model.Notifier
	)
	if dryRun {
		logger.Info("dry-run mode enabled, nothing will be sent or recorded")
		appliedStore = store.NewNopStore(jsonStore)
		sender = mailer.NewLogSender(cfg.PortfolioURL, cfg.SenderName, logger)
		n = notifier.NewLogNotifier(logger)
	} else {
		sender = mailer.NewSMTPSender(mailer.Options{
			User:         cfg.Gmail.User,
			Password:     cfg.Gmail.AppPassword,
			SenderName:   cfg.SenderName,
			PortfolioURL: cfg.PortfolioURL,
			Timeout:      cfg.Timeouts.SMTP,
		}, logger)
		n = setupNotifier(cfg, logger)
	}

	hunter := setupHunter(cfg)
	runner := pipeline.NewRunner(pipeline.Components{
		Jobs:     buildDiscoverer(cfg, logger),
		Store:    appliedStore,
		Finder:   contact.NewFinder(hunter, logger),
		Verifier: contact.NewVerifier(hunter, logger),
		Sender:   sender,
		Notifier: n,
	}, maxApplications, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sum := runner.Run(ctx)
	if sum.Interrupted {
		logger.Info("stopped early", "sent", sum.Sent)
	}
	logger.Info("goodbye")
	return nil
}
