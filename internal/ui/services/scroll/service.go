package scroll

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quickbar/internal/ui/services/clock"
	"quickbar/internal/ui/services/events"
)

// DefaultSuppressWindow is how long hover stays disabled after a wheel event
const DefaultSuppressWindow = 150 * time.Millisecond

// Service keeps the result viewport in sync with the selection and tracks
// wheel activity over the list
type Service struct {
	state      *State
	bus        events.EventBus
	window     time.Duration
	wheelLines int
	tick       clock.TickFunc
}

// NewService creates a new scroll service
func NewService(bus events.EventBus, window time.Duration, wheelLines int, tick clock.TickFunc) *Service {
	if window <= 0 {
		window = DefaultSuppressWindow
	}
	if wheelLines <= 0 {
		wheelLines = 1
	}
	if tick == nil {
		tick = clock.Real
	}
	return &Service{
		state: &State{
			Height: 10,
		},
		bus:        bus,
		window:     window,
		wheelLines: wheelLines,
		tick:       tick,
	}
}

// GetOffset returns the first visible row
func (s *Service) GetOffset() int {
	return s.state.Offset
}

// GetHeight returns the number of visible rows
func (s *Service) GetHeight() int {
	return s.state.Height
}

// VisibleRange returns the half-open range of rows on screen
func (s *Service) VisibleRange() (int, int) {
	end := s.state.Offset + s.state.Height
	if end > s.state.Total {
		end = s.state.Total
	}
	return s.state.Offset, end
}

// RowAt maps a line inside the list area to a result index
func (s *Service) RowAt(line int) (int, bool) {
	if line < 0 || line >= s.state.Height {
		return 0, false
	}
	index := s.state.Offset + line
	if index >= s.state.Total {
		return 0, false
	}
	return index, true
}

// SetViewportHeight updates the number of rows that fit on screen
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.Height = height
	s.setOffset(s.state.Offset)
}

// Reset shows a new list of total rows from the top
func (s *Service) Reset(total int) {
	if total < 0 {
		total = 0
	}
	s.state.Total = total
	s.setOffset(0)
}

// EnsureVisible scrolls the least distance that brings index on screen.
// Indexes outside the list are ignored.
func (s *Service) EnsureVisible(index int) bool {
	if index < 0 || index >= s.state.Total {
		return false
	}
	switch {
	case index < s.state.Offset:
		s.setOffset(index)
	case index >= s.state.Offset+s.state.Height:
		s.setOffset(index - s.state.Height + 1)
	}
	return true
}

// Wheel scrolls by notches (negative is up) and opens the suppression
// window. The returned command closes it once the wheel is quiet.
func (s *Service) Wheel(notches int) tea.Cmd {
	s.setOffset(s.state.Offset + notches*s.wheelLines)

	s.state.Version++
	version := s.state.Version
	if !s.state.MouseScrollActive {
		s.state.MouseScrollActive = true
		s.bus.Publish(ScrollActivityEvent{Active: true})
	}

	return s.tick(s.window, func(time.Time) tea.Msg {
		return IdleMsg{Version: version}
	})
}

// HandleIdle closes the suppression window if msg is from the newest wheel event
func (s *Service) HandleIdle(msg IdleMsg) {
	if msg.Version != s.state.Version || !s.state.MouseScrollActive {
		return
	}
	s.state.MouseScrollActive = false
	s.bus.Publish(ScrollActivityEvent{Active: false})
}

// IsScrollActive reports whether hover selection is suppressed
func (s *Service) IsScrollActive() bool {
	return s.state.MouseScrollActive
}

func (s *Service) setOffset(offset int) {
	maxOffset := s.state.Total - s.state.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	if offset == s.state.Offset {
		return
	}
	s.state.Offset = offset
	s.bus.Publish(ViewportChangedEvent{
		Offset: s.state.Offset,
		Height: s.state.Height,
	})
}
