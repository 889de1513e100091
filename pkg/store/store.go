// Package store holds application state and notifies subscribers on every
// update.
//
// The Store is the single owner of its state. Readers and listeners get deep
// copies, so mutating a returned value never bypasses notification. Every
// SetState or Update call runs one notification cycle: each subscriber is
// invoked once, synchronously, in registration order. There is no batching
// and no recovery; a panicking listener unwinds into the caller that
// triggered the update.
package store

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/mohae/deepcopy"

	"github.com/vango-dev/minifw/pkg/metrics"
)

// State is the application state, conventionally a mapping of named fields.
type State map[string]any

// Partial is merged shallowly into State: each key replaces the current
// value wholesale.
type Partial map[string]any

// Listener receives a copy of the new state after each update.
type Listener func(State)

type subscription struct {
	id       uint64
	listener Listener
	removed  atomic.Bool
}

// Store is an observable state container.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   []*subscription
	nextID uint64

	logger  *slog.Logger
	metrics *metrics.Collector
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics counts updates and tracks the subscriber gauge.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Store) {
		s.metrics = c
	}
}

// New creates a store holding a copy of initial.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state:  clone(initial),
		logger: slog.Default().With("component", "store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetState returns an isolated copy of the current state.
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.state)
}

// SetState merges partial into the state and notifies every subscriber.
func (s *Store) SetState(partial Partial) {
	s.mu.Lock()
	s.merge(partial)
	s.mu.Unlock()

	s.notify()
}

// Update computes a partial from a copy of the current state, merges it and
// notifies every subscriber. fn runs without the store lock held, so it may
// read or update the store; a concurrent SetState between the read and the
// merge is not detected.
func (s *Store) Update(fn func(State) Partial) {
	s.SetState(fn(s.GetState()))
}

// Subscribe registers l and returns its unsubscribe function. Calling the
// returned function more than once is a no-op.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, &subscription{id: id, listener: l})
	n := len(s.subs)
	s.mu.Unlock()

	s.metrics.Subscribers(n)
	s.logger.Debug("subscribed", "id", id, "subscribers", n)

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

// Len returns the number of registered subscribers.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	for i, sub := range s.subs {
		if sub.id == id {
			sub.removed.Store(true)
			// Preserve registration order for the remaining subscribers.
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			break
		}
	}
	n := len(s.subs)
	s.mu.Unlock()

	s.metrics.Subscribers(n)
	s.logger.Debug("unsubscribed", "id", id, "subscribers", n)
}

// merge must be called with mu held.
func (s *Store) merge(partial Partial) {
	if s.state == nil {
		s.state = make(State, len(partial))
	}
	for k, v := range partial {
		s.state[k] = deepcopy.Copy(v)
	}
}

// notify invokes a snapshot of the subscriber list without holding the lock,
// so listeners may read or update the store. A listener unsubscribed earlier
// in the same cycle is skipped; one subscribed during the cycle first runs
// on the next update.
func (s *Store) notify() {
	s.mu.Lock()
	subs := slices.Clone(s.subs)
	snapshot := clone(s.state)
	s.mu.Unlock()

	s.metrics.StoreUpdated()
	for _, sub := range subs {
		if sub.removed.Load() {
			continue
		}
		sub.listener(clone(snapshot))
	}
}

// clone deep copies a state value.
func clone(s State) State {
	if s == nil {
		return State{}
	}
	return deepcopy.Copy(s).(State)
}
