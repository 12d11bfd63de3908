package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pinged struct{ n int }
type ponged struct{}

func TestPublishIsSynchronous(t *testing.T) {
	b := NewBus()
	var got []int
	b.Subscribe(EventType(pinged{}), func(e interface{}) {
		got = append(got, e.(pinged).n)
	})

	b.Publish(pinged{n: 1})
	b.Publish(ponged{})
	b.Publish(pinged{n: 2})

	assert.Equal(t, []int{1, 2}, got)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	calls := 0
	stop := b.Subscribe(EventType(pinged{}), func(interface{}) { calls++ })
	other := 0
	b.Subscribe(EventType(pinged{}), func(interface{}) { other++ })

	b.Publish(pinged{})
	stop()
	stop()
	b.Publish(pinged{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestHandlerMayPublish(t *testing.T) {
	b := NewBus()
	var order []string
	b.Subscribe(EventType(pinged{}), func(interface{}) {
		order = append(order, "ping")
		b.Publish(ponged{})
	})
	b.Subscribe(EventType(ponged{}), func(interface{}) {
		order = append(order, "pong")
	})

	b.Publish(pinged{})
	assert.Equal(t, []string{"ping", "pong"}, order)
}

func TestEventTypeName(t *testing.T) {
	assert.Equal(t, "events.pinged", EventType(pinged{}))
}
