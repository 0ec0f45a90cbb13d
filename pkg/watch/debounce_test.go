package watch

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var calls, last atomic.Int32
	for i := 1; i <= 5; i++ {
		i := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(i)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("callback ran %d times, want 1", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("last callback = %d, want 5", got)
	}
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(100 * time.Millisecond)
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Errorf("callback ran %d times, want 2", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Stop()

	d.Trigger(func() { calls.Add(1) })
	time.Sleep(150 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("callback ran %d times after Stop, want 0", got)
	}
}
