// Package notify carries external-write notifications between store instances.
// Every persistence write publishes the entity it touched; subscribed stores
// reload their in-memory snapshot.
package notify

import "sync"

// Entities published on the bus.
const (
	EntityFleet     = "fleet"
	EntityFavorites = "favorites"
	EntityAnalytics = "analytics"
)

// Bus is the write-notification contract shared by all persistence strategies.
type Bus interface {
	// Publish signals that the named entity was written. Must not block the
	// caller.
	Publish(entity string)
	// Subscribe registers a handler invoked after each write of the entity.
	Subscribe(entity string, fn func())
	Close()
}

// InProcessBus dispatches notifications inside a single process. Handlers run
// on their own goroutine so a store write never blocks on its consumers.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers map[string][]func()
	closed   bool
}

// NewInProcessBus creates an in-process notification bus.
func NewInProcessBus() *InProcessBus {
	return &InProcessBus{handlers: make(map[string][]func())}
}

// Publish invokes every handler registered for the entity.
func (b *InProcessBus) Publish(entity string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, fn := range b.handlers[entity] {
		go fn()
	}
}

// Subscribe registers a handler for the entity.
func (b *InProcessBus) Subscribe(entity string, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[entity] = append(b.handlers[entity], fn)
}

// Close stops dispatching further notifications.
func (b *InProcessBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
