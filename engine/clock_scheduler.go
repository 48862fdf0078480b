package engine

import "time"

// TickScheduler converts frame time into fixed-interval movement steps
// It accumulates elapsed time and fires at most once per Update, carrying the remainder
type TickScheduler struct {
	interval    time.Duration
	accumulated time.Duration
	ticks       uint64
}

// NewTickScheduler creates a scheduler; non-positive intervals panic
func NewTickScheduler(interval time.Duration) *TickScheduler {
	if interval <= 0 {
		panic("engine: tick interval must be positive")
	}
	return &TickScheduler{interval: interval}
}

// Update adds dt and reports whether a step is due
func (ts *TickScheduler) Update(dt time.Duration) bool {
	if dt > 0 {
		ts.accumulated += dt
	}
	if ts.accumulated < ts.interval {
		return false
	}
	ts.accumulated -= ts.interval
	ts.ticks++
	return true
}

// Reset drops any accumulated time
func (ts *TickScheduler) Reset() {
	ts.accumulated = 0
}

func (ts *TickScheduler) Interval() time.Duration    { return ts.interval }
func (ts *TickScheduler) Accumulated() time.Duration { return ts.accumulated }

// Ticks returns the total number of steps fired
func (ts *TickScheduler) Ticks() uint64 {
	return ts.ticks
}
