package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPortfolioURL    = "https://taha-arar-portfolio.vercel.app"
	DefaultMaxApplications = 10
	DefaultStatePath       = "data/applied.json"
	DefaultSenderName      = "Taha Arar"
	DefaultConfigPath      = "autoapply.yaml"

	defaultSourceTimeout   = 30 * time.Second
	defaultHunterTimeout   = 15 * time.Second
	defaultTelegramTimeout = 10 * time.Second
	defaultSMTPTimeout     = 30 * time.Second
)

// Config is the immutable run configuration. Build it once with Load and
// pass it by pointer.
type Config struct {
	Gmail           GmailConfig
	HunterAPIKey    string
	Telegram        TelegramConfig
	PortfolioURL    string
	MaxApplications int
	SenderName      string
	StatePath       string
	UserAgent       string // empty means the adapter default
	Sources         SourcesConfig
	Timeouts        TimeoutConfig
}

// GmailConfig holds the SMTP sender credentials.
type GmailConfig struct {
	User        string
	AppPassword string
	// PasswordFromKeyring is true when AppPassword came from the OS keyring
	// rather than the environment.
	PasswordFromKeyring bool
}

// TelegramConfig holds the optional notification credentials.
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// Enabled reports whether both the bot token and chat id are set.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// SourcesConfig holds the optional source keys and the disabled-source list.
type SourcesConfig struct {
	AdzunaAppID         string
	AdzunaAppKey        string
	TheMuseAPIKey       string
	AuthenticJobsAPIKey string
	Disabled            []string
}

// IsDisabled reports whether the named source was turned off in settings.
func (s SourcesConfig) IsDisabled(name string) bool {
	for _, d := range s.Disabled {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}

// TimeoutConfig bounds every outbound call.
type TimeoutConfig struct {
	Source   time.Duration
	Hunter   time.Duration
	Telegram time.Duration
	SMTP     time.Duration
}

// envConfig is the environment surface, parsed with caarlos0/env.
type envConfig struct {
	GmailUser           string `env:"GMAIL_USER"`
	GmailAppPassword    string `env:"GMAIL_APP_PASSWORD"`
	HunterAPIKey        string `env:"HUNTER_API_KEY"`
	TelegramBotToken    string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID      string `env:"TELEGRAM_CHAT_ID"`
	PortfolioURL        string `env:"PORTFOLIO_URL"`
	MaxApplications     string `env:"MAX_APPLICATIONS_PER_RUN"`
	AdzunaAppID         string `env:"ADZUNA_APP_ID"`
	AdzunaAppKey        string `env:"ADZUNA_APP_KEY"`
	TheMuseAPIKey       string `env:"THEMUSE_API_KEY"`
	AuthenticJobsAPIKey string `env:"AUTHENTICJOBS_API_KEY"`
	StatePath           string `env:"AUTOAPPLY_STATE_PATH"`
	ConfigPath          string `env:"AUTOAPPLY_CONFIG"`
}

// rawConfig is the optional YAML settings file (snake_case fields and
// durations as strings). It never carries secrets.
type rawConfig struct {
	StatePath       string           `yaml:"state_path"`
	PortfolioURL    string           `yaml:"portfolio_url"`
	MaxApplications *int             `yaml:"max_applications"`
	UserAgent       string           `yaml:"user_agent"`
	SenderName      string           `yaml:"sender_name"`
	DisabledSources []string         `yaml:"disabled_sources"`
	Timeouts        rawTimeoutConfig `yaml:"timeouts"`
}

type rawTimeoutConfig struct {
	Source   string `yaml:"source"`
	Hunter   string `yaml:"hunter"`
	Telegram string `yaml:"telegram"`
	SMTP     string `yaml:"smtp"`
}

// passwordFallback looks up the Gmail app password when the environment has
// none. Replaced in tests.
var passwordFallback = keyringPassword

// Load builds the Config from the environment and the optional YAML settings
// file at path. An empty path means AUTOAPPLY_CONFIG, then autoapply.yaml; a
// missing default file is ignored, a missing explicit file is an error.
// Environment values win over the settings file.
//
// Load does not check required credentials; see RequireCredentials.
func Load(path string) (*Config, error) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	trimAll(&e)

	raw, err := readSettings(path, e.ConfigPath)
	if err != nil {
		return nil, err
	}

	timeouts, err := parseTimeouts(raw.Timeouts)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Gmail: GmailConfig{
			User:        e.GmailUser,
			AppPassword: e.GmailAppPassword,
		},
		HunterAPIKey: e.HunterAPIKey,
		Telegram: TelegramConfig{
			BotToken: e.TelegramBotToken,
			ChatID:   e.TelegramChatID,
		},
		PortfolioURL:    firstSet(e.PortfolioURL, raw.PortfolioURL, DefaultPortfolioURL),
		MaxApplications: maxApplications(e.MaxApplications, raw.MaxApplications),
		SenderName:      firstSet(raw.SenderName, DefaultSenderName),
		StatePath:       firstSet(e.StatePath, raw.StatePath, DefaultStatePath),
		UserAgent:       raw.UserAgent,
		Sources: SourcesConfig{
			AdzunaAppID:         e.AdzunaAppID,
			AdzunaAppKey:        e.AdzunaAppKey,
			TheMuseAPIKey:       e.TheMuseAPIKey,
			AuthenticJobsAPIKey: e.AuthenticJobsAPIKey,
			Disabled:            raw.DisabledSources,
		},
		Timeouts: timeouts,
	}

	if cfg.Gmail.AppPassword == "" && cfg.Gmail.User != "" {
		if pw, err := passwordFallback(cfg.Gmail.User); err == nil && pw != "" {
			cfg.Gmail.AppPassword = pw
			cfg.Gmail.PasswordFromKeyring = true
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MissingError lists required environment variables that are unset.
type MissingError struct {
	Names []string
}

func (e *MissingError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Names, ", ")
}

// RequireCredentials returns a *MissingError naming every required variable
// that is empty, in a fixed order.
func (c *Config) RequireCredentials() error {
	var missing []string
	if c.Gmail.User == "" {
		missing = append(missing, "GMAIL_USER")
	}
	if c.Gmail.AppPassword == "" {
		missing = append(missing, "GMAIL_APP_PASSWORD")
	}
	if c.HunterAPIKey == "" {
		missing = append(missing, "HUNTER_API_KEY")
	}
	if len(missing) > 0 {
		return &MissingError{Names: missing}
	}
	return nil
}

func readSettings(path, envPath string) (rawConfig, error) {
	var raw rawConfig

	explicit := path != ""
	if !explicit {
		path = envPath
		explicit = path != ""
	}
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return raw, nil
		}
		return raw, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return raw, fmt.Errorf("parse config: %w", err)
	}
	return raw, nil
}

func parseTimeouts(raw rawTimeoutConfig) (TimeoutConfig, error) {
	t := TimeoutConfig{
		Source:   defaultSourceTimeout,
		Hunter:   defaultHunterTimeout,
		Telegram: defaultTelegramTimeout,
		SMTP:     defaultSMTPTimeout,
	}
	fields := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"timeouts.source", raw.Source, &t.Source},
		{"timeouts.hunter", raw.Hunter, &t.Hunter},
		{"timeouts.telegram", raw.Telegram, &t.Telegram},
		{"timeouts.smtp", raw.SMTP, &t.SMTP},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return t, fmt.Errorf("parse %s %q: %w", f.name, f.raw, err)
		}
		*f.dst = d
	}
	return t, nil
}

// maxApplications applies the environment value when it is set (digits only,
// anything else falls back to the default), else the settings value.
func maxApplications(envValue string, settings *int) int {
	if envValue != "" {
		if !isDigits(envValue) {
			return DefaultMaxApplications
		}
		n, err := strconv.Atoi(envValue)
		if err != nil {
			return DefaultMaxApplications
		}
		return n
	}
	if settings != nil {
		return *settings
	}
	return DefaultMaxApplications
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func trimAll(e *envConfig) {
	for _, p := range []*string{
		&e.GmailUser, &e.GmailAppPassword, &e.HunterAPIKey,
		&e.TelegramBotToken, &e.TelegramChatID, &e.PortfolioURL,
		&e.MaxApplications, &e.AdzunaAppID, &e.AdzunaAppKey,
		&e.TheMuseAPIKey, &e.AuthenticJobsAPIKey, &e.StatePath, &e.ConfigPath,
	} {
		*p = strings.TrimSpace(*p)
	}
}

func validate(cfg *Config) error {
	if cfg.MaxApplications < 0 {
		return fmt.Errorf("max_applications must not be negative, got %d", cfg.MaxApplications)
	}
	for name, d := range map[string]time.Duration{
		"timeouts.source":   cfg.Timeouts.Source,
		"timeouts.hunter":   cfg.Timeouts.Hunter,
		"timeouts.telegram": cfg.Timeouts.Telegram,
		"timeouts.smtp":     cfg.Timeouts.SMTP,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	return nil
}
