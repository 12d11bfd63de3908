package dispatch

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quickbar/internal/ui/services/clock"
	"quickbar/internal/ui/services/events"
)

// DefaultDelay is the quiet period between the last keystroke and the search
const DefaultDelay = 100 * time.Millisecond

// Service turns raw input changes into at most one search per quiet period
type Service struct {
	state     *State
	bus       events.EventBus
	delay     time.Duration
	tick      clock.TickFunc
	queryFn   func() string        // current input value
	searchFn  func(string) tea.Cmd // issues the search
	loadingFn func()               // marks the result list as loading
}

// NewService creates a new dispatcher
func NewService(bus events.EventBus, delay time.Duration, tick clock.TickFunc) *Service {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if tick == nil {
		tick = clock.Real
	}
	return &Service{
		state: &State{},
		bus:   bus,
		delay: delay,
		tick:  tick,
	}
}

// SetQueryFunction sets the function that reads the current input value
func (s *Service) SetQueryFunction(fn func() string) {
	s.queryFn = fn
}

// SetSearchFunction sets the function invoked when the quiet period elapses
func (s *Service) SetSearchFunction(fn func(string) tea.Cmd) {
	s.searchFn = fn
}

// SetLoadingFunction sets the function called on every raw change
func (s *Service) SetLoadingFunction(fn func()) {
	s.loadingFn = fn
}

// Delay returns the quiet period
func (s *Service) Delay() time.Duration {
	return s.delay
}

// IsPending reports whether a debounce window is open
func (s *Service) IsPending() bool {
	return s.state.Pending
}

// OnTextChanged restarts the quiet period. The loading flag is raised
// immediately, before any request is sent.
func (s *Service) OnTextChanged(query string) tea.Cmd {
	s.state.Query = query
	s.state.Version++
	s.state.Pending = true
	version := s.state.Version

	if s.loadingFn != nil {
		s.loadingFn()
	}
	s.bus.Publish(QueryChangedEvent{Query: query})

	return s.tick(s.delay, func(time.Time) tea.Msg {
		return QuietMsg{Version: version}
	})
}

// HandleQuiet fires the search if msg belongs to the newest window
func (s *Service) HandleQuiet(msg QuietMsg) tea.Cmd {
	if !s.state.Pending || msg.Version != s.state.Version {
		return nil
	}
	s.state.Pending = false

	query := s.state.Query
	if s.queryFn != nil {
		query = s.queryFn()
	}
	s.bus.Publish(QueryDispatchedEvent{Query: query})

	if s.searchFn == nil {
		return nil
	}
	return s.searchFn(query)
}

// Cancel drops the pending window without searching
func (s *Service) Cancel() {
	if !s.state.Pending {
		return
	}
	s.state.Version++
	s.state.Pending = false
}
