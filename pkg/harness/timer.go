package harness

import "time"

// The duration timer reports ticks from the monotonic clock, one tick per
// nanosecond. Reading it costs one clock query at start and one at stop, so it
// is treated as non-intrusive.

// Timer measures the duration of one benchmark run.
type Timer struct {
	start   time.Time
	running bool
}

// TimerAvailable reports whether a duration timer is present.
func TimerAvailable() bool { return true }

// TimerIsIntrusive reports whether operating the timer has run-time overhead
// that needs to be accounted for.
func TimerIsIntrusive() bool { return false }

// TicksPerSec returns the number of timer ticks per second.
func TicksPerSec() uint64 { return uint64(time.Second) }

// TickGranularity returns the granularity of the reported tick value.
func TickGranularity() uint64 { return 1 }

// SignalStart marks the beginning of the measured section.
func (t *Timer) SignalStart() {
	t.start = time.Now()
	t.running = true
}

// SignalFinished marks the end of the measured section and returns the elapsed
// ticks. Calling it without a prior SignalStart returns zero.
func (t *Timer) SignalFinished() uint64 {
	if !t.running {
		return 0
	}
	t.running = false
	return uint64(time.Since(t.start))
}

// Elapsed returns the ticks since SignalStart without stopping the timer.
func (t *Timer) Elapsed() uint64 {
	if !t.running {
		return 0
	}
	return uint64(time.Since(t.start))
}
