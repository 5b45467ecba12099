// Package events provides an in-process pub/sub bus for domain events
// emitted by the stores (reminder created/completed/rescheduled, user
// deleted). Handlers run synchronously on the publishing goroutine.
package events

import (
	"sync"
	"time"
)

// Event types published by the stores.
const (
	ReminderCreated         = "reminder.created"
	ReminderCompleted       = "reminder.completed"
	ReminderRescheduled     = "reminder.rescheduled"
	ReminderDeleted         = "reminder.deleted"
	UserRegistered          = "user.registered"
	UserDeleted             = "user.deleted"
	AchievementsInitialized = "achievements.initialized"
)

// Event is a lightweight domain event.
type Event struct {
	Type   string
	At     time.Time
	Fields map[string]any
}

// Handler reacts to an event.
type Handler func(Event)

// Bus provides in-process pub/sub for events.
type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeAll registers a handler for every event type known to the bus.
func (b *Bus) SubscribeAll(handler Handler) {
	for _, t := range []string{
		ReminderCreated, ReminderCompleted, ReminderRescheduled,
		ReminderDeleted, UserRegistered, UserDeleted,
		AchievementsInitialized,
	} {
		b.Subscribe(t, handler)
	}
}

// Publish notifies subscribers of the event type.
// Handlers run synchronously; the publisher decides the concurrency model.
func (b *Bus) Publish(eventType string, fields map[string]any) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[eventType]...)
	b.mu.RUnlock()

	event := Event{Type: eventType, At: time.Now(), Fields: fields}
	for _, handler := range handlers {
		handler(event)
	}
}
