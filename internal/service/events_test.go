package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/questcycle/backend/internal/service"
)

func TestBroadcaster(t *testing.T) {
	b := service.NewBroadcaster()

	first, cancelFirst := b.Subscribe()
	second, cancelSecond := b.Subscribe()
	defer cancelSecond()
	assert.Equal(t, 2, b.Subscribers())

	b.Publish(service.Event{Type: service.EventLoading})

	e := <-first
	assert.Equal(t, service.EventLoading, e.Type)
	assert.False(t, e.At.IsZero(), "publish stamps the event")
	assert.Equal(t, service.EventLoading, (<-second).Type)

	cancelFirst()
	cancelFirst()
	assert.Equal(t, 1, b.Subscribers())
	_, open := <-first
	assert.False(t, open, "cancel closes the channel")
}

func TestBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := service.NewBroadcaster()
	events, cancel := b.Subscribe()
	defer cancel()

	for i := 0; i < 100; i++ {
		b.Publish(service.Event{Type: service.EventReady})
	}
	assert.Equal(t, 16, len(events))
}

func TestStatusEvent(t *testing.T) {
	e := service.StatusEvent(&service.View{Status: service.StatusIdle})
	assert.Equal(t, service.EventType("idle"), e.Type)
	assert.Nil(t, e.Predicates)

	e = service.StatusEvent(&service.View{Status: service.StatusReady, SessionID: "abc"})
	assert.Equal(t, service.EventReady, e.Type)
	assert.Equal(t, "abc", e.SessionID)
	assert.NotNil(t, e.Predicates)
}
