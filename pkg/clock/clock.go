// Package clock abstracts scheduling so timed UI transitions can be driven
// by the wall clock in production and advanced deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is the cancellation token of a scheduled task.
type Timer interface {
	// Stop prevents the task from running. It reports false if the task
	// already ran or was already stopped.
	Stop() bool
}

// Ticker delivers ticks on C until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock schedules work and reports the current time.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (realClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop() { r.t.Stop() }

// Virtual is a manually advanced clock. Scheduled tasks run synchronously
// on the goroutine calling Advance.
type Virtual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*virtualTask
}

type virtualTask struct {
	clock    *Virtual
	deadline time.Time
	seq      uint64
	fn       func()
	period   time.Duration
	done     bool
}

// NewVirtual returns a virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *Virtual) AfterFunc(d time.Duration, fn func()) Timer {
	return v.schedule(d, 0, fn)
}

func (v *Virtual) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	t := &virtualTicker{ch: make(chan time.Time, 1)}
	t.task = v.schedule(d, d, func() {
		select {
		case t.ch <- v.Now():
		default:
		}
	})
	return t
}

func (v *Virtual) schedule(d, period time.Duration, fn func()) *virtualTask {
	if d < 0 {
		d = 0
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	task := &virtualTask{
		clock:    v,
		deadline: v.now.Add(d),
		seq:      v.seq,
		fn:       fn,
		period:   period,
	}
	v.pending = append(v.pending, task)
	return task
}

// Advance moves the clock forward by d, running every task whose deadline
// falls inside the window in deadline order. Tasks scheduled while
// advancing run too when they fall due before the new time.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	for {
		task := v.popDue(target)
		if task == nil {
			break
		}
		task.fn()
	}

	v.mu.Lock()
	v.now = target
	v.mu.Unlock()
}

// Pending reports how many tasks are scheduled and not yet run or stopped.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.pending)
}

func (v *Virtual) popDue(target time.Time) *virtualTask {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.pending) == 0 {
		return nil
	}
	sort.SliceStable(v.pending, func(i, j int) bool {
		a, b := v.pending[i], v.pending[j]
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		return a.seq < b.seq
	})
	next := v.pending[0]
	if next.deadline.After(target) {
		return nil
	}
	v.now = next.deadline
	if next.period > 0 {
		v.seq++
		next.seq = v.seq
		next.deadline = next.deadline.Add(next.period)
	} else {
		next.done = true
		v.pending = v.pending[1:]
	}
	return next
}

func (t *virtualTask) Stop() bool {
	v := t.clock
	v.mu.Lock()
	defer v.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	for i, p := range v.pending {
		if p == t {
			v.pending = append(v.pending[:i], v.pending[i+1:]...)
			break
		}
	}
	return true
}

type virtualTicker struct {
	ch   chan time.Time
	task *virtualTask
}

func (t *virtualTicker) C() <-chan time.Time { return t.ch }
func (t *virtualTicker) Stop() { t.task.Stop() }
