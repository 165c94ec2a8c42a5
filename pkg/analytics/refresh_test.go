package analytics

import (
	"context"
	"sync"
	"testing"
	"time"

	"smartlink/pkg/clock"
	"smartlink/pkg/notify"
	"smartlink/pkg/surface"
)

type countingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (c *countingNotifier) Notify(message string, severity notify.Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
}

func (c *countingNotifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func TestRefresher_Refresh(t *testing.T) {
	clk := clock.NewVirtual(time.Unix(0, 0))
	button := surface.NewElement("button")
	button.SetText("Refresh")
	rec := &countingNotifier{}
	reloads := 0

	r := NewRefresher(button, rec, WithClock(clk), WithReload(func() { reloads++ }))

	if !r.Refresh() {
		t.Fatal("Refresh() = false on idle refresher")
	}
	if button.Text() != LabelRefreshing || !button.Disabled() {
		t.Errorf("busy state: text=%q disabled=%v", button.Text(), button.Disabled())
	}
	if r.Refresh() {
		t.Error("overlapping Refresh() should be ignored")
	}

	clk.Advance(999 * time.Millisecond)
	if !r.Refreshing() {
		t.Error("refresh finished early")
	}

	clk.Advance(time.Millisecond)
	if button.Text() != "Refresh" || button.Disabled() {
		t.Errorf("restored state: text=%q disabled=%v", button.Text(), button.Disabled())
	}
	if reloads != 1 {
		t.Errorf("reload hook ran %d times, want 1", reloads)
	}
	if rec.count() != 1 || rec.messages[0] != MsgRefreshed {
		t.Errorf("messages = %v", rec.messages)
	}
}

func TestRefresher_NoButton(t *testing.T) {
	r := NewRefresher(nil, &countingNotifier{})
	if r.Refresh() {
		t.Error("Refresh() without a button should do nothing")
	}
}

func TestRefresher_Start(t *testing.T) {
	clk := clock.NewVirtual(time.Unix(0, 0))
	button := surface.NewElement("button")
	rec := &countingNotifier{}
	r := NewRefresher(button, rec, WithClock(clk))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx, time.Minute)
		close(done)
	}()

	// Wait for the ticker to be registered before advancing.
	deadline := time.Now().Add(2 * time.Second)
	for clk.Pending() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	clk.Advance(time.Minute)
	deadline = time.Now().Add(2 * time.Second)
	// The ticker plus the pending end-of-refresh task.
	for clk.Pending() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !r.Refreshing() {
		t.Fatal("tick did not start a refresh")
	}

	clk.Advance(time.Second)
	if rec.count() != 1 {
		t.Errorf("notifications = %d, want 1", rec.count())
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
