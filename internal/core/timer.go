package core

import (
	"context"
	"time"
)

// FixedStep paces frame updates at a steady ticks-per-second rate.
type FixedStep struct {
	step time.Duration
	next time.Time
	now  func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval reports the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether the next tick is due without blocking.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.next.IsZero() {
		f.next = now.Add(f.step)
		return true
	}
	if now.Before(f.next) {
		return false
	}
	f.next = f.next.Add(f.step)
	// Skip ticks that were missed entirely instead of bursting through them.
	if f.next.Before(now) {
		f.next = now.Add(f.step)
	}
	return true
}

// Wait blocks until the next tick is due or ctx is cancelled.
func (f *FixedStep) Wait(ctx context.Context) error {
	for !f.ShouldStep() {
		delay := f.next.Sub(f.now())
		if delay <= 0 {
			continue
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}
