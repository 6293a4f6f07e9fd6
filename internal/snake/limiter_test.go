package snake

import (
	"testing"
	"time"
)

func TestTurnLimiterWindow(t *testing.T) {
	clock := newFakeClock()
	l := NewTurnLimiter(450*time.Millisecond, clock.Now)

	if !l.Allow() {
		t.Fatal("first Allow() = false, expected true")
	}
	clock.Advance(449 * time.Millisecond)
	if l.Allow() {
		t.Error("Allow() inside the window = true, expected false")
	}
	clock.Advance(time.Millisecond)
	if !l.Allow() {
		t.Error("Allow() at the window edge = false, expected true")
	}
	if l.Allow() {
		t.Error("Allow() right after an accepted change = true, expected false")
	}
}

func TestTurnLimiterReset(t *testing.T) {
	clock := newFakeClock()
	l := NewTurnLimiter(time.Second, clock.Now)

	l.Allow()
	l.Reset()
	if !l.Allow() {
		t.Error("Allow() after Reset() = false, expected true")
	}
}

func TestTurnLimiterDisabled(t *testing.T) {
	l := NewTurnLimiter(0, nil)
	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("Allow() #%d = false with zero window", i)
		}
	}
}
