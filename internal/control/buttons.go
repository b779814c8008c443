package control

import "time"

// Debouncer turns raw, bouncy button levels into single adjust events. One
// instance per button; Poll is called every loop pass with the current time
// and the raw (already active-low-inverted) level.
type Debouncer struct {
	window      time.Duration
	pressed     bool
	lastTrigger time.Time
}

// NewDebouncer returns a debouncer that suppresses edges closer together
// than window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Poll records the current level and reports whether an adjust event fires
// this pass. An event fires on a rising edge once the debounce window since
// the previous trigger has passed. While held no repeats fire; release
// re-arms the next edge. A press that lands inside the window fires as soon
// as the window elapses if still held, so no press is lost between polls.
func (d *Debouncer) Poll(now time.Time, down bool) bool {
	if !down {
		d.pressed = false
		return false
	}
	if d.pressed {
		return false
	}
	if !d.lastTrigger.IsZero() && now.Sub(d.lastTrigger) <= d.window {
		return false
	}
	d.pressed = true
	d.lastTrigger = now
	return true
}

// LongPress detects the mode button being held past a threshold. It fires
// at most once per continuous hold; the timer restarts from zero on every
// new press.
type LongPress struct {
	threshold  time.Duration
	wasPressed bool
	pressStart time.Time
	fired      bool
}

// NewLongPress returns a tracker firing after threshold of continuous hold.
func NewLongPress(threshold time.Duration) *LongPress {
	return &LongPress{threshold: threshold}
}

// Poll records the current level and reports whether the long-press gesture
// completes this pass.
func (l *LongPress) Poll(now time.Time, down bool) bool {
	if !down {
		l.wasPressed = false
		l.fired = false
		return false
	}
	if !l.wasPressed {
		l.wasPressed = true
		l.pressStart = now
		return false
	}
	if !l.fired && now.Sub(l.pressStart) >= l.threshold {
		l.fired = true
		return true
	}
	return false
}
