package selection

import (
	"quickbar/internal/ui/services/events"
)

// Service owns the selected result index. Keyboard navigation always
// applies; pointer hover applies only when the pointer really moved and no
// wheel scroll is in progress.
type Service struct {
	state          *State
	bus            events.EventBus
	scrollActiveFn func() bool // reports an open scroll suppression window
}

// NewService creates a new selection service
func NewService(bus events.EventBus) *Service {
	return &Service{
		state: &State{},
		bus:   bus,
	}
}

// SetScrollActiveFunction sets the function that reports wheel activity
func (s *Service) SetScrollActiveFunction(fn func() bool) {
	s.scrollActiveFn = fn
}

// Reset selects the first row of a freshly replaced result set of size n
func (s *Service) Reset(n int) {
	if n < 0 {
		n = 0
	}
	old := s.state.Index
	s.state.Index = 0
	s.state.Count = n
	s.state.KeyboardScroll = false

	s.publish(old, SourceReset)
}

// MoveDown selects the next row, wrapping to the top
func (s *Service) MoveDown() bool {
	return s.step(1)
}

// MoveUp selects the previous row, wrapping to the bottom
func (s *Service) MoveUp() bool {
	return s.step(-1)
}

func (s *Service) step(delta int) bool {
	n := s.state.Count
	if n == 0 {
		return false
	}
	old := s.state.Index
	s.state.Index = ((s.state.Index+delta)%n + n) % n
	s.state.KeyboardScroll = true
	s.state.KeyboardSelection = true

	s.publish(old, SourceKeyboard)
	return true
}

// Hover selects row index under the pointer. dx and dy are the pointer
// movement since the previous event; a stationary event never selects.
func (s *Service) Hover(index, dx, dy int) bool {
	if s.scrollActiveFn != nil && s.scrollActiveFn() {
		return false
	}
	if dx == 0 && dy == 0 {
		return false
	}
	if index < 0 || index >= s.state.Count {
		return false
	}

	old := s.state.Index
	s.state.Index = index
	s.state.KeyboardSelection = false

	if old != index {
		s.publish(old, SourceMouse)
	}
	return true
}

// ConsumeKeyboardScroll reports and clears the pending keyboard scroll
func (s *Service) ConsumeKeyboardScroll() bool {
	pending := s.state.KeyboardScroll
	s.state.KeyboardScroll = false
	return pending
}

// GetIndex returns the selected index and whether it refers to a row
func (s *Service) GetIndex() (int, bool) {
	if s.state.Count == 0 {
		return 0, false
	}
	return s.state.Index, true
}

// GetCount returns the size of the current result set
func (s *Service) GetCount() int {
	return s.state.Count
}

// IsKeyboardSelection reports whether the keyboard made the last choice
func (s *Service) IsKeyboardSelection() bool {
	return s.state.KeyboardSelection
}

func (s *Service) publish(old int, source Source) {
	s.bus.Publish(SelectionChangedEvent{
		OldIndex: old,
		NewIndex: s.state.Index,
		Source:   source,
	})
}
