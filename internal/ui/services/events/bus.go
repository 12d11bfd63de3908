package events

import (
	"fmt"
	"sync"
)

// Bus is a simple event bus for UI services. Handlers run synchronously on
// the publishing goroutine, which is always the program's update loop, so
// services see each other's state changes before Update returns.
type Bus struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[string][]listener
}

type listener struct {
	id      int
	handler func(interface{})
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[string][]listener),
	}
}

// Subscribe registers a listener for an event type and returns a function
// that removes it
func (b *Bus) Subscribe(eventType string, handler func(interface{})) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[eventType] = append(b.listeners[eventType], listener{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		ls := b.listeners[eventType]
		for i, l := range ls {
			if l.id == id {
				b.listeners[eventType] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all listeners
func (b *Bus) Publish(event interface{}) {
	b.mu.RLock()
	handlers := make([]listener, len(b.listeners[EventType(event)]))
	copy(handlers, b.listeners[EventType(event)])
	b.mu.RUnlock()

	for _, l := range handlers {
		l.handler(event)
	}
}

// EventType returns the name listeners use to subscribe to event
func EventType(event interface{}) string {
	return fmt.Sprintf("%T", event)
}
