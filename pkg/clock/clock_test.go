package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVirtual_AfterFuncRunsInDeadlineOrder(t *testing.T) {
	v := NewVirtual(epoch)
	var order []string

	v.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	v.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	v.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	v.Advance(9 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("tasks ran early: %v", order)
	}

	v.Advance(30 * time.Millisecond)
	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
	if got := v.Now(); !got.Equal(epoch.Add(39 * time.Millisecond)) {
		t.Errorf("Now() = %v, want %v", got, epoch.Add(39*time.Millisecond))
	}
}

func TestVirtual_NestedSchedulingWithinWindow(t *testing.T) {
	v := NewVirtual(epoch)
	var firedAt []time.Duration

	v.AfterFunc(100*time.Millisecond, func() {
		firedAt = append(firedAt, v.Now().Sub(epoch))
		v.AfterFunc(50*time.Millisecond, func() {
			firedAt = append(firedAt, v.Now().Sub(epoch))
		})
	})

	v.Advance(200 * time.Millisecond)

	if len(firedAt) != 2 {
		t.Fatalf("fired %d tasks, want 2", len(firedAt))
	}
	if firedAt[0] != 100*time.Millisecond || firedAt[1] != 150*time.Millisecond {
		t.Errorf("firedAt = %v, want [100ms 150ms]", firedAt)
	}
}

func TestVirtual_Stop(t *testing.T) {
	v := NewVirtual(epoch)
	ran := false
	timer := v.AfterFunc(time.Second, func() { ran = true })

	if !timer.Stop() {
		t.Fatal("Stop() = false for pending task")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}

	v.Advance(2 * time.Second)
	if ran {
		t.Error("stopped task ran")
	}
	if v.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", v.Pending())
	}
}

func TestVirtual_Ticker(t *testing.T) {
	v := NewVirtual(epoch)
	ticker := v.NewTicker(time.Minute)
	defer ticker.Stop()

	v.Advance(time.Minute)
	select {
	case <-ticker.C():
	default:
		t.Fatal("expected a tick after one interval")
	}

	v.Advance(30 * time.Second)
	select {
	case <-ticker.C():
		t.Fatal("unexpected tick before the next interval")
	default:
	}
}

func TestDebounce_OnlyTrailingCallRuns(t *testing.T) {
	v := NewVirtual(epoch)
	calls := 0
	debounced := Debounce(v, 10*time.Millisecond, func() { calls++ })

	debounced()
	v.Advance(5 * time.Millisecond)
	debounced()
	v.Advance(5 * time.Millisecond)
	debounced()

	if calls != 0 {
		t.Fatalf("calls = %d before quiet period, want 0", calls)
	}

	v.Advance(10 * time.Millisecond)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
