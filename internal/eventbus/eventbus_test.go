package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	unsubscribe := b.Subscribe(EventWindowFocused, func(e DomainEvent) {
		got <- e
	})
	defer unsubscribe()

	b.Publish(WindowFocusedEvent{})

	select {
	case e := <-got:
		require.Equal(t, EventWindowFocused, e.Type())
	case <-time.After(time.Second):
		t.Fatal("handler was not called")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	var calls atomic.Int32
	first := b.Subscribe(EventWindowFocused, func(DomainEvent) { calls.Add(1) })
	done := make(chan struct{}, 1)
	second := b.Subscribe(EventWindowFocused, func(DomainEvent) { done <- struct{}{} })
	defer second()

	first()
	first() // idempotent

	b.Publish(WindowFocusedEvent{})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	// the removed handler would have been started in the same dispatch round
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(0), calls.Load())
}

func TestOtherEventTypesAreNotDelivered(t *testing.T) {
	b := New()
	defer b.Close()

	var calls atomic.Int32
	defer b.Subscribe(EventIndexRefreshed, func(DomainEvent) { calls.Add(1) })()

	done := make(chan struct{}, 1)
	defer b.Subscribe(EventWindowFocused, func(DomainEvent) { done <- struct{}{} })()

	b.Publish(WindowFocusedEvent{})
	<-done
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(0), calls.Load())
}

func TestHandlerPanicDoesNotKillBus(t *testing.T) {
	b := New()
	defer b.Close()

	defer b.Subscribe(EventWindowFocused, func(DomainEvent) { panic("boom") })()
	done := make(chan struct{}, 2)
	defer b.Subscribe(EventIndexRefreshed, func(DomainEvent) { done <- struct{}{} })()

	b.Publish(WindowFocusedEvent{})
	b.Publish(IndexRefreshedEvent{Items: 3})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bus stopped dispatching after a handler panic")
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := New()
	b.Close()
	b.Close()
	require.NotPanics(t, func() { b.Publish(WindowFocusedEvent{}) })
}
