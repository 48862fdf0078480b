package engine

import (
	"testing"
	"time"
)

func TestTickSchedulerFiresOnInterval(t *testing.T) {
	tests := []struct {
		name  string
		steps []time.Duration
		want  []bool
	}{
		{"exact interval", []time.Duration{100 * time.Millisecond}, []bool{true}},
		{"below interval", []time.Duration{99 * time.Millisecond}, []bool{false}},
		{"accumulates", []time.Duration{60 * time.Millisecond, 60 * time.Millisecond}, []bool{false, true}},
		{"carries remainder", []time.Duration{150 * time.Millisecond, 50 * time.Millisecond}, []bool{true, true}},
		{"negative ignored", []time.Duration{-time.Second, 100 * time.Millisecond}, []bool{false, true}},
		{"at most once per update", []time.Duration{350 * time.Millisecond, 0, 0, 0}, []bool{true, true, true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTickScheduler(100 * time.Millisecond)
			for i, dt := range tt.steps {
				if got := ts.Update(dt); got != tt.want[i] {
					t.Errorf("step %d: Update(%v) = %v, want %v", i, dt, got, tt.want[i])
				}
			}
		})
	}
}

func TestTickSchedulerReset(t *testing.T) {
	ts := NewTickScheduler(100 * time.Millisecond)
	ts.Update(250 * time.Millisecond)

	if ts.Ticks() != 1 {
		t.Errorf("Ticks = %d, want 1", ts.Ticks())
	}
	if ts.Accumulated() != 150*time.Millisecond {
		t.Errorf("Accumulated = %v, want 150ms", ts.Accumulated())
	}

	ts.Reset()
	if ts.Accumulated() != 0 {
		t.Errorf("Accumulated after Reset = %v", ts.Accumulated())
	}
	if ts.Update(50 * time.Millisecond) {
		t.Error("Reset should drop the carried remainder")
	}
}

func TestTickSchedulerRejectsZeroInterval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero interval")
		}
	}()
	NewTickScheduler(0)
}

func TestTickSchedulerWithFrameClock(t *testing.T) {
	mock := NewMockTimeProvider(epochStart)
	clock := NewFrameClock(mock)
	ts := NewTickScheduler(time.Second / 12)

	// One second of 10ms frames is twelve steps
	fired := 0
	for i := 0; i < 100; i++ {
		mock.Advance(10 * time.Millisecond)
		if ts.Update(clock.Delta()) {
			fired++
		}
	}
	if fired != 12 {
		t.Errorf("fired %d steps in one second, want 12", fired)
	}
}
