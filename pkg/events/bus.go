// Package events provides a small synchronous publish/subscribe bus for
// decoupled components of one app instance.
package events

import (
	"log/slog"
	"sync"
)

// Handler receives the data passed to Emit.
type Handler func(data any)

type binding struct {
	id uint64
	fn Handler
}

// Bus dispatches named events to registered handlers. Handlers run
// synchronously in registration order on the emitting goroutine.
type Bus struct {
	mu     sync.Mutex
	events map[string][]binding
	nextID uint64
	logger *slog.Logger
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		events: make(map[string][]binding),
		logger: slog.Default().With("component", "events"),
	}
}

// On registers fn for name and returns a function that removes it.
// Removing twice is a no-op.
func (b *Bus) On(name string, fn Handler) (off func()) {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.events[name] = append(b.events[name], binding{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.off(name, id) })
	}
}

// Once registers fn for the next emission of name only.
func (b *Bus) Once(name string, fn Handler) (off func()) {
	if fn == nil {
		return func() {}
	}
	var remove func()
	var fired sync.Once
	remove = b.On(name, func(data any) {
		fired.Do(func() {
			remove()
			fn(data)
		})
	})
	return remove
}

// Emit calls every handler registered for name with data.
func (b *Bus) Emit(name string, data any) {
	b.mu.Lock()
	handlers := append([]binding(nil), b.events[name]...)
	b.mu.Unlock()

	b.logger.Debug("emit", "event", name, "handlers", len(handlers))
	for _, h := range handlers {
		h.fn(data)
	}
}

// Has reports whether name has at least one handler.
func (b *Bus) Has(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events[name]) > 0
}

func (b *Bus) off(name string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.events[name]
	for i, h := range handlers {
		if h.id == id {
			handlers = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
	if len(handlers) == 0 {
		delete(b.events, name)
		return
	}
	b.events[name] = handlers
}
