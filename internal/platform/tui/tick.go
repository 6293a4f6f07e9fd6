// Package tui provides the Bubble Tea host for the snake engine.
// It handles the terminal UI loop, timers, input mapping and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TimerID names one of the host's repeating timers.
type TimerID int

const (
	GameTimer  TimerID = iota // advances the engine
	BlinkTimer                // fades the food
)

// TimerMsg is sent when a timer fires. Gen identifies the timer run that
// scheduled it; messages from a stopped run are ignored.
type TimerMsg struct {
	ID  TimerID
	Gen uint64
}

// Timer is a repeating tea.Tick with a generation counter. Bubble Tea cannot
// cancel a scheduled tick, so Stop bumps the generation and the stale message
// is dropped when it arrives.
type Timer struct {
	id       TimerID
	interval time.Duration
	gen      uint64
	running  bool
}

// NewTimer creates a running timer. Call Next to schedule its first tick.
func NewTimer(id TimerID, interval time.Duration) Timer {
	return Timer{id: id, interval: interval, gen: 1, running: true}
}

// Start begins a new run and schedules its first tick.
func (t *Timer) Start() tea.Cmd {
	t.gen++
	t.running = true
	return t.Next()
}

// Stop ends the current run. A tick already in flight will not be handled.
func (t *Timer) Stop() {
	t.gen++
	t.running = false
}

// SetInterval changes the period used for the next scheduled tick.
func (t *Timer) SetInterval(d time.Duration) {
	if d > 0 {
		t.interval = d
	}
}

// Interval returns the current period.
func (t *Timer) Interval() time.Duration {
	return t.interval
}


// Handles reports whether msg belongs to the current run of this timer.
func (t *Timer) Handles(msg TimerMsg) bool {
	return t.running && msg.ID == t.id && msg.Gen == t.gen
}

// Next schedules the next tick of the current run.
func (t *Timer) Next() tea.Cmd {
	if !t.running {
		return nil
	}
	id, gen := t.id, t.gen
	return tea.Tick(t.interval, func(time.Time) tea.Msg {
		return TimerMsg{ID: id, Gen: gen}
	})
}
