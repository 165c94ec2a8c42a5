// Package notify shows transient toast notifications on a surface tree.
//
// Each toast is attached hidden, slides in after a short delay, slides out
// once its display duration has elapsed and is then detached. Timelines are
// independent of each other and cannot be cancelled.
package notify

import (
	"context"
	"sync"
	"time"

	"smartlink/pkg/clock"
	"smartlink/pkg/logger"
	"smartlink/pkg/surface"

	"github.com/google/uuid"
)

const (
	ClassToast = "toast-notification"

	DefaultShowDelay       = 10 * time.Millisecond
	DefaultDisplayDuration = 3000 * time.Millisecond
	DefaultExitDuration    = 300 * time.Millisecond
)

// Notifier is implemented by anything that can report a message to the user.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Timing controls a toast's timeline. DisplayDuration is measured from
// insertion, ExitDuration from the start of the slide-out.
type Timing struct {
	ShowDelay       time.Duration
	DisplayDuration time.Duration
	ExitDuration    time.Duration
}

// DefaultTiming is the 10ms / 3s / 300ms toast timeline.
func DefaultTiming() Timing {
	return Timing{
		ShowDelay:       DefaultShowDelay,
		DisplayDuration: DefaultDisplayDuration,
		ExitDuration:    DefaultExitDuration,
	}
}

// State is the position of a notification on its timeline.
type State int

const (
	StateHidden State = iota
	StateVisible
	StateLeaving
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateVisible:
		return "visible"
	case StateLeaving:
		return "hidden (leaving)"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Notification is one toast. It is never reused after reaching StateRemoved.
type Notification struct {
	id        string
	message   string
	severity  Severity
	createdAt time.Time
	element   *surface.Element

	mu    sync.Mutex
	state State
}

func (n *Notification) ID() string { return n.id }
func (n *Notification) Message() string { return n.message }
func (n *Notification) Severity() Severity { return n.severity }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
func (n *Notification) Element() *surface.Element { return n.element }

func (n *Notification) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// advance moves to next unless the toast already reached StateRemoved.
func (n *Notification) advance(next State) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state == StateRemoved || next <= n.state {
		return false
	}
	n.state = next
	return true
}

// Center creates toasts on a tree and drives their timelines.
type Center struct {
	tree   *surface.Tree
	clock  clock.Clock
	timing Timing

	mu      sync.Mutex
	history []*Notification
	active  int
	idle    chan struct{}
}

// Option configures a Center.
type Option func(*Center)

// WithClock schedules timelines on clk instead of the wall clock.
func WithClock(clk clock.Clock) Option {
	return func(c *Center) { c.clock = clk }
}

// WithTiming replaces the default timeline.
func WithTiming(t Timing) Option {
	return func(c *Center) { c.timing = t }
}

// NewCenter creates a Center that attaches toasts to tree.
func NewCenter(tree *surface.Tree, opts ...Option) *Center {
	c := &Center{
		tree:   tree,
		clock:  clock.Real(),
		timing: DefaultTiming(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Center) Tree() *surface.Tree { return c.tree }

// Notify shows message as a toast. It always succeeds.
func (c *Center) Notify(message string, severity Severity) {
	c.Show(message, severity)
}

// Show is Notify returning the created notification.
func (c *Center) Show(message string, severity Severity) *Notification {
	if severity == "" {
		severity = SeverityInfo
	}

	el := surface.NewElement("div")
	el.AddClass(ClassToast, "toast-"+string(severity))
	el.SetText(message)
	el.SetStyle(
		"background-color", severity.Color(),
		"opacity", "0",
		"transform", "translateX(100%)",
	)

	n := &Notification{
		id:        uuid.New().String(),
		message:   message,
		severity:  severity,
		createdAt: c.clock.Now(),
		element:   el,
		state:     StateHidden,
	}

	c.mu.Lock()
	c.history = append(c.history, n)
	if c.active == 0 {
		c.idle = make(chan struct{})
	}
	c.active++
	c.mu.Unlock()

	log := logger.Component("notify")
	log.Debug().Str("id", n.id).Str("severity", string(severity)).Msg("toast created")

	c.tree.Append(el)

	c.clock.AfterFunc(c.timing.ShowDelay, func() {
		if n.advance(StateVisible) {
			el.SetStyle("opacity", "1", "transform", "translateX(0)")
			log.Debug().Str("id", n.id).Msg("toast visible")
		}
	})

	c.clock.AfterFunc(c.timing.DisplayDuration, func() {
		if n.advance(StateLeaving) {
			el.SetStyle("opacity", "0", "transform", "translateX(100%)")
		}
		c.clock.AfterFunc(c.timing.ExitDuration, func() {
			c.remove(n)
		})
	})

	return n
}

func (c *Center) remove(n *Notification) {
	if n.element.Attached() {
		if err := c.tree.Remove(n.element); err != nil {
			logger.Component("notify").Debug().Err(err).Str("id", n.id).Msg("toast already detached")
		}
	}
	if !n.advance(StateRemoved) {
		return
	}

	c.mu.Lock()
	c.active--
	if c.active == 0 {
		close(c.idle)
	}
	c.mu.Unlock()
}

// Active reports how many notifications have not yet been removed.
func (c *Center) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// History returns every notification created by this center, oldest first.
func (c *Center) History() []*Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Notification, len(c.history))
	copy(out, c.history)
	return out
}

// Wait blocks until every notification created so far has been removed or
// ctx is done.
func (c *Center) Wait(ctx context.Context) error {
	c.mu.Lock()
	if c.active == 0 {
		c.mu.Unlock()
		return nil
	}
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
