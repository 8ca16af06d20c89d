package service

import (
	"sync"
	"time"

	"github.com/questcycle/backend/internal/domain/category"
	"github.com/questcycle/backend/internal/grader"
)

type EventType string

const (
	EventLoading        EventType = "loading"
	EventReady          EventType = "ready"
	EventNoResults      EventType = "no_results"
	EventCycleCompleted EventType = "cycle_completed"
	EventGraded         EventType = "graded"
	EventError          EventType = "error"
	EventWarning        EventType = "warning"
)

// Event is a status change pushed to subscribers.
type Event struct {
	Type       EventType            `json:"type"`
	Message    string               `json:"message,omitempty"`
	Predicates *category.Predicates `json:"predicates,omitempty"`
	SessionID  string               `json:"session_id,omitempty"`
	Result     *grader.Result       `json:"result,omitempty"`
	At         time.Time            `json:"at"`
}

const subscriberBuffer = 16

// Broadcaster fans events out to subscribers. Slow subscribers miss
// events rather than blocking the publisher.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan Event)}
}

// Subscribe returns an event channel and a function that closes it.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *Broadcaster) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribers returns the number of open subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// StatusEvent describes the current state of v. It is the first message a
// new subscriber receives.
func StatusEvent(v *View) Event {
	e := Event{
		Type:      EventType(v.Status),
		Message:   v.Message,
		SessionID: v.SessionID,
		Result:    v.Result,
	}
	if v.Status != StatusIdle {
		p := v.Predicates
		e.Predicates = &p
	}
	return e
}
