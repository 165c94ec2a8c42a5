// Package analytics drives the refresh control on the statistics view.
package analytics

import (
	"context"
	"sync"
	"time"

	"smartlink/pkg/clock"
	"smartlink/pkg/logger"
	"smartlink/pkg/notify"
	"smartlink/pkg/surface"
)

const (
	DefaultInterval     = 5 * time.Minute
	DefaultRefreshDelay = time.Second

	LabelRefreshing = "Refreshing..."
	MsgRefreshed    = "Analytics refreshed!"
)

// Refresher shows a busy state on its button while a refresh runs and
// announces completion with a toast.
type Refresher struct {
	button   *surface.Element
	notifier notify.Notifier
	clock    clock.Clock
	delay    time.Duration
	onReload func()

	mu         sync.Mutex
	refreshing bool
}

type Option func(*Refresher)

func WithClock(clk clock.Clock) Option {
	return func(r *Refresher) { r.clock = clk }
}

// WithDelay sets how long the busy state lasts.
func WithDelay(d time.Duration) Option {
	return func(r *Refresher) { r.delay = d }
}

// WithReload registers a hook run when the busy state ends, before the toast.
func WithReload(fn func()) Option {
	return func(r *Refresher) { r.onReload = fn }
}

func NewRefresher(button *surface.Element, notifier notify.Notifier, opts ...Option) *Refresher {
	r := &Refresher{
		button:   button,
		notifier: notifier,
		clock:    clock.Real(),
		delay:    DefaultRefreshDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refreshing reports whether a refresh is in progress.
func (r *Refresher) Refreshing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshing
}

// Refresh starts a refresh unless one is already running. It reports
// whether a new refresh was started.
func (r *Refresher) Refresh() bool {
	if r.button == nil {
		return false
	}

	r.mu.Lock()
	if r.refreshing {
		r.mu.Unlock()
		return false
	}
	r.refreshing = true
	r.mu.Unlock()

	original := r.button.Text()
	r.button.SetText(LabelRefreshing)
	r.button.SetDisabled(true)
	logger.Component("analytics").Debug().Msg("refresh started")

	r.clock.AfterFunc(r.delay, func() {
		r.button.SetText(original)
		r.button.SetDisabled(false)
		if r.onReload != nil {
			r.onReload()
		}

		r.mu.Lock()
		r.refreshing = false
		r.mu.Unlock()

		r.notifier.Notify(MsgRefreshed, notify.SeveritySuccess)
	})
	return true
}

// Start refreshes every interval until ctx is done. It blocks.
func (r *Refresher) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := r.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			r.Refresh()
		}
	}
}
