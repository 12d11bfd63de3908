package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventWindowFocused  EventType = "window-focused"
	EventIndexRefreshed EventType = "index-refreshed"
	EventStreamError    EventType = "stream-error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// WindowFocusedEvent is pushed when the launcher is summoned. No payload.
type WindowFocusedEvent struct{}

func (e WindowFocusedEvent) Type() EventType { return EventWindowFocused }

// IndexRefreshedEvent is emitted by the backend after the catalog was re-read
type IndexRefreshedEvent struct {
	Items int
}

func (e IndexRefreshedEvent) Type() EventType { return EventIndexRefreshed }

// StreamErrorEvent is emitted when the push event stream drops
type StreamErrorEvent struct {
	Err error
}

func (e StreamErrorEvent) Type() EventType { return EventStreamError }

// ParseEventType maps a wire name to a known event type
func ParseEventType(name string) (EventType, bool) {
	switch EventType(name) {
	case EventWindowFocused, EventIndexRefreshed:
		return EventType(name), true
	default:
		return "", false
	}
}
