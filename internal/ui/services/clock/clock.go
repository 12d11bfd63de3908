// Package clock schedules the timer messages used by the UI services.
// Fake is a test helper shared by the service and coordinator tests.
package clock

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickFunc has the shape of tea.Tick
type TickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Real schedules ticks on the wall clock
var Real TickFunc = tea.Tick

// Timer is a tick captured by Fake
type Timer struct {
	Delay time.Duration
	fn    func(time.Time) tea.Msg
}

// Fire produces the timer's message as if d had elapsed at now
func (t Timer) Fire(now time.Time) tea.Msg {
	return t.fn(now.Add(t.Delay))
}

// Fake records ticks instead of sleeping. Tests fire them in any order.
type Fake struct {
	mu     sync.Mutex
	timers []Timer
}

// Tick satisfies TickFunc
func (f *Fake) Tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timers = append(f.timers, Timer{Delay: d, fn: fn})
	// The command itself is inert; the test decides when the tick fires.
	return func() tea.Msg { return nil }
}

// Timers returns every tick scheduled so far
func (f *Fake) Timers() []Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Timer, len(f.timers))
	copy(out, f.timers)
	return out
}

// Last returns the most recently scheduled tick
func (f *Fake) Last() (Timer, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.timers) == 0 {
		return Timer{}, false
	}
	return f.timers[len(f.timers)-1], true
}
