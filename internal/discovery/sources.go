package discovery

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/amishk599/autoapply/internal/adapter"
	"github.com/amishk599/autoapply/internal/config"
	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/pacing"
)

// SourcePolicies holds the pauses each source asks for. Sources not listed
// are polled without delay.
var SourcePolicies = map[string]pacing.Policy{
	adapter.SourceRemotive:     {Before: 35 * time.Second},
	adapter.SourceJobicy:       {Before: 35 * time.Second},
	adapter.SourceJobsCollider: {Before: 5 * time.Second},
	adapter.SourceAdzuna:       {Interval: 2 * time.Second},
	adapter.SourceTheMuse:      {Interval: time.Second},
}

// SourceStatus describes whether a source will be polled.
type SourceStatus struct {
	Name    string
	Enabled bool
	Reason  string // why the source is skipped; empty when enabled
	Policy  pacing.Policy
}

// BuildSources creates the ten sources in polling order, skipping those
// disabled in settings. sleep is used for every pause; nil means real sleeps.
func BuildSources(cfg *config.Config, sleep pacing.SleepFunc, logger *slog.Logger) []model.JobFetcher {
	for _, name := range cfg.Sources.Disabled {
		if !slices.Contains(adapter.SourceNames, strings.ToLower(strings.TrimSpace(name))) {
			logger.Warn("unknown source in disabled_sources", "source", name)
		}
	}

	client := &http.Client{Timeout: cfg.Timeouts.Source}
	ua := cfg.UserAgent
	pacerFor := func(name string) *pacing.Pacer {
		return pacing.NewPacer(SourcePolicies[name], sleep)
	}

	all := []model.JobFetcher{
		adapter.NewRemoteOKAdapter(client, ua),
		adapter.NewRemotiveAdapter(client, ua),
		adapter.NewJobicyAdapter(client, ua),
		adapter.NewWorkingNomadsAdapter(client, ua),
		adapter.NewJobsColliderAdapter(client, ua),
		adapter.NewWWRAdapter(client, ua),
		adapter.NewAdzunaAdapter(cfg.Sources.AdzunaAppID, cfg.Sources.AdzunaAppKey, client, ua, pacerFor(adapter.SourceAdzuna)),
		adapter.NewTheMuseAdapter(cfg.Sources.TheMuseAPIKey, client, ua, pacerFor(adapter.SourceTheMuse)),
		adapter.NewRealWorkFromAnywhereAdapter(client, ua),
		adapter.NewAuthenticJobsAdapter(cfg.Sources.AuthenticJobsAPIKey, client, ua),
	}

	sources := make([]model.JobFetcher, 0, len(all))
	for _, f := range all {
		if cfg.Sources.IsDisabled(f.Name()) {
			logger.Info("source disabled in settings", "source", f.Name())
			continue
		}
		p := SourcePolicies[f.Name()]
		if p.Before > 0 || p.After > 0 {
			// Intervals are applied inside the adapter between its own requests.
			f = pacing.NewPacedFetcher(f, pacing.NewPacer(pacing.Policy{Before: p.Before, After: p.After}, sleep))
		}
		sources = append(sources, f)
	}
	return sources
}

// Statuses reports, for each of the ten sources in order, whether it will be
// polled with cfg and why not.
func Statuses(cfg *config.Config) []SourceStatus {
	keyed := map[string]bool{
		adapter.SourceAdzuna:        cfg.Sources.AdzunaAppID != "" && cfg.Sources.AdzunaAppKey != "",
		adapter.SourceTheMuse:       cfg.Sources.TheMuseAPIKey != "",
		adapter.SourceAuthenticJobs: cfg.Sources.AuthenticJobsAPIKey != "",
	}

	out := make([]SourceStatus, 0, len(adapter.SourceNames))
	for _, name := range adapter.SourceNames {
		st := SourceStatus{Name: name, Enabled: true, Policy: SourcePolicies[name]}
		if configured, needsKey := keyed[name]; needsKey && !configured {
			st.Enabled = false
			st.Reason = "missing API key"
		}
		if cfg.Sources.IsDisabled(name) {
			st.Enabled = false
			st.Reason = "disabled in settings"
		}
		out = append(out, st)
	}
	return out
}
