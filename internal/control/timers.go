package control

import "time"

// AwakeTimer tracks how long the device has been serving in normal mode and
// raises the sleep request once the budget is spent. It never runs in
// provisioning mode: Start is simply not called there.
type AwakeTimer struct {
	limit   time.Duration
	start   time.Time
	running bool
}

// NewAwakeTimer returns a stopped timer with the given awake budget.
func NewAwakeTimer(limit time.Duration) *AwakeTimer {
	return &AwakeTimer{limit: limit}
}

// Start begins (or restarts) the awake countdown.
func (t *AwakeTimer) Start(now time.Time) {
	t.start = now
	t.running = true
}

// Stop suppresses the timer until the next Start.
func (t *AwakeTimer) Stop() {
	t.running = false
}

// Expired reports whether the awake budget is spent. Always false while
// stopped.
func (t *AwakeTimer) Expired(now time.Time) bool {
	return t.running && now.Sub(t.start) >= t.limit
}

// Interval fires on a fixed wall-clock cadence, used for the 1 Hz
// temperature sampling. The first Due call after construction fires
// immediately.
type Interval struct {
	every time.Duration
	last  time.Time
}

// NewInterval returns an interval with the given cadence.
func NewInterval(every time.Duration) *Interval {
	return &Interval{every: every}
}

// Due reports whether the cadence point has been reached, consuming it.
func (i *Interval) Due(now time.Time) bool {
	if !i.last.IsZero() && now.Sub(i.last) < i.every {
		return false
	}
	i.last = now
	return true
}
