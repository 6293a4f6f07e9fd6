package snake

import "time"

// TurnLimiter accepts at most one direction change per cooldown window.
// The window starts at the last accepted change; a zero window disables it.
type TurnLimiter struct {
	window time.Duration
	now    func() time.Time
	last   time.Time
	armed  bool
}

// NewTurnLimiter creates a limiter reading time from now.
func NewTurnLimiter(window time.Duration, now func() time.Time) *TurnLimiter {
	if now == nil {
		now = time.Now
	}
	return &TurnLimiter{window: window, now: now}
}

// Allow reports whether a change may be applied now and, if so, starts a
// new window.
func (l *TurnLimiter) Allow() bool {
	if l.window <= 0 {
		return true
	}
	now := l.now()
	if l.armed && now.Sub(l.last) < l.window {
		return false
	}
	l.last = now
	l.armed = true
	return true
}

// Reset forgets the last accepted change.
func (l *TurnLimiter) Reset() {
	l.armed = false
	l.last = time.Time{}
}
