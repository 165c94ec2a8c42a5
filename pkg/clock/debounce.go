package clock

import (
	"sync"
	"time"
)

// Debounce returns a function that delays fn until wait has elapsed since
// the most recent call. Only the trailing call runs.
func Debounce(clk Clock, wait time.Duration, fn func()) func() {
	var (
		mu      sync.Mutex
		pending Timer
	)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if pending != nil {
			pending.Stop()
		}
		pending = clk.AfterFunc(wait, fn)
	}
}
