package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/config"
	"github.com/amishk599/autoapply/internal/contact"
	"github.com/amishk599/autoapply/internal/discovery"
	"github.com/amishk599/autoapply/internal/filter"
	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/notifier"
	"github.com/amishk599/autoapply/internal/pacing"
)

const defaultEnvFile = ".env"

var (
	cfgPath string
	envFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "autoapply",
	Short: "Find remote backend jobs and email applications",
	Long: "AutoApply polls public job boards, keeps postings that match the configured keywords, " +
		"finds a contact address for each company and emails a short application.",
	// Default to `run` so that `autoapply` with no args performs a full pass.
	// This keeps cron entries that invoke the binary directly working.
	RunE:         runRun,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to settings file (default: AUTOAPPLY_CONFIG env var or ./autoapply.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	addRunFlags(rootCmd)

	cobra.OnInitialize(loadEnvFile)
}

// loadEnvFile loads envFile into the process environment without overriding
// variables that are already set. A missing default file is not an error.
func loadEnvFile() {
	err := godotenv.Load(envFile)
	if err == nil {
		return
	}
	if errors.Is(err, fs.ErrNotExist) && envFile == defaultEnvFile {
		return
	}
	setupLogger(debug).Warn("failed to load env file", "path", envFile, "error", err)
}

// loadConfig parses the environment and the optional settings file.
// Priority for the settings path: --config > AUTOAPPLY_CONFIG > ./autoapply.yaml
func loadConfig(path string) (*config.Config, error) {
	return config.Load(path)
}

// runID tags every log line of one process.
var runID = uuid.NewString()

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})).
		With("run_id", runID)
}

func setupNotifier(cfg *config.Config, logger *slog.Logger) model.Notifier {
	if cfg.Telegram.Enabled() {
		logger.Info("using telegram notifier")
		httpClient := &http.Client{Timeout: cfg.Timeouts.Telegram}
		return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, httpClient, logger)
	}
	return notifier.NewLogNotifier(logger)
}

func setupHunter(cfg *config.Config) *contact.HunterClient {
	httpClient := &http.Client{Timeout: cfg.Timeouts.Hunter}
	return contact.NewHunterClient(cfg.HunterAPIKey, httpClient, pacing.NewPacer(contact.HunterPolicy, nil))
}

func buildDiscoverer(cfg *config.Config, logger *slog.Logger) *discovery.Discoverer {
	sources := discovery.BuildSources(cfg, nil, logger)
	jobFilter := filter.NewKeywordFilter(filter.DefaultKeywords)
	return discovery.NewDiscoverer(sources, jobFilter, logger)
}
