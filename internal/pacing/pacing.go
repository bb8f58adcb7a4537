// Package pacing holds the fixed delays external services ask callers to keep.
package pacing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/amishk599/autoapply/internal/model"
)

// Policy describes the pauses around calls to one source or service.
type Policy struct {
	Before   time.Duration // once, before the first request of a fetch
	After    time.Duration // after every call, on every exit path
	Interval time.Duration // minimum gap between consecutive requests
}

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoSleep skips every pause. Used in tests and dry runs of the pipeline.
func NoSleep(context.Context, time.Duration) error { return nil }

// Pacer applies a Policy. It is not safe for concurrent use; the pipeline is
// sequential.
type Pacer struct {
	policy  Policy
	sleep   SleepFunc
	limiter *rate.Limiter
}

// NewPacer returns a Pacer for policy. A nil sleep uses Sleep.
func NewPacer(policy Policy, sleep SleepFunc) *Pacer {
	if sleep == nil {
		sleep = Sleep
	}
	p := &Pacer{policy: policy, sleep: sleep}
	if policy.Interval > 0 {
		p.limiter = rate.NewLimiter(rate.Every(policy.Interval), 1)
	}
	return p
}

// Policy returns the configured policy.
func (p *Pacer) Policy() Policy { return p.policy }

// Begin waits out the Before delay.
func (p *Pacer) Begin(ctx context.Context) error {
	if err := p.sleep(ctx, p.policy.Before); err != nil {
		return fmt.Errorf("pacing wait: %w", err)
	}
	return nil
}

// Wait blocks until Interval has passed since the previous Wait.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	r := p.limiter.Reserve()
	if err := p.sleep(ctx, r.Delay()); err != nil {
		r.Cancel()
		return fmt.Errorf("pacing wait: %w", err)
	}
	return nil
}

// Done waits out the After delay. Meant to be deferred right after a call
// starts so it runs on every exit path.
func (p *Pacer) Done(ctx context.Context) {
	// A cancelled context only shortens the pause.
	_ = p.sleep(ctx, p.policy.After)
}

// PacedFetcher is a decorator that applies a source's Before and After delays
// around the wrapped JobFetcher.
type PacedFetcher struct {
	inner model.JobFetcher
	pacer *Pacer
}

// NewPacedFetcher wraps inner with pacer.
func NewPacedFetcher(inner model.JobFetcher, pacer *Pacer) *PacedFetcher {
	return &PacedFetcher{inner: inner, pacer: pacer}
}

// Name returns the wrapped source name.
func (f *PacedFetcher) Name() string { return f.inner.Name() }

// Configured reports whether the wrapped source has its keys.
func (f *PacedFetcher) Configured() bool {
	if kf, ok := f.inner.(model.KeyedFetcher); ok {
		return kf.Configured()
	}
	return true
}

// FetchJobs waits for the pacer, then delegates. Unconfigured sources are
// skipped without pausing.
func (f *PacedFetcher) FetchJobs(ctx context.Context) ([]model.Job, error) {
	if !f.Configured() {
		return nil, nil
	}
	if err := f.pacer.Begin(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", f.inner.Name(), err)
	}
	defer f.pacer.Done(ctx)
	return f.inner.FetchJobs(ctx)
}
