package router

import (
	"strings"
	"sync"
)

type entry struct {
	path string
	hash string // includes the leading '#', or empty
}

func (e entry) url() string { return e.path + e.hash }

func parseURL(raw string) entry {
	path, hash, found := strings.Cut(raw, "#")
	if path == "" {
		path = "/"
	}
	if found {
		hash = "#" + hash
	}
	return entry{path: path, hash: hash}
}

// Browser is an in-memory navigation environment: a URL with a fragment, a
// session history stack, and hashchange and popstate listeners. It behaves
// like the browser APIs the two Location adapters are modelled on:
// assigning the current fragment again fires nothing, pushState and
// replaceState fire nothing, and moving through history fires popstate
// (plus hashchange when the fragment differs).
type Browser struct {
	mu      sync.Mutex
	history []entry
	index   int

	hashListeners []func()
	popListeners  []func()
}

// NewBrowser creates a browser positioned at rawURL ("/", "/#/active",
// "/completed").
func NewBrowser(rawURL string) *Browser {
	return &Browser{history: []entry{parseURL(rawURL)}}
}

// URL returns the current path and fragment.
func (b *Browser) URL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history[b.index].url()
}

// Path returns the current URL path.
func (b *Browser) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history[b.index].path
}

// Hash returns the current fragment including '#', or "" when there is none.
func (b *Browser) Hash() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history[b.index].hash
}

// Len returns the number of history entries.
func (b *Browser) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.history)
}

// SetHash assigns the fragment. A new fragment pushes a history entry and
// fires hashchange; assigning the current fragment does nothing.
func (b *Browser) SetHash(hash string) {
	if hash != "" && !strings.HasPrefix(hash, "#") {
		hash = "#" + hash
	}

	b.mu.Lock()
	cur := b.history[b.index]
	if cur.hash == hash {
		b.mu.Unlock()
		return
	}
	b.push(entry{path: cur.path, hash: hash})
	listeners := append([]func(){}, b.hashListeners...)
	b.mu.Unlock()

	fire(listeners)
}

// PushState adds a history entry for rawURL without firing any event.
func (b *Browser) PushState(rawURL string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.push(parseURL(rawURL))
}

// ReplaceState replaces the current history entry without firing any event.
func (b *Browser) ReplaceState(rawURL string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history[b.index] = parseURL(rawURL)
}

// Back moves one entry back. It reports false at the start of history.
func (b *Browser) Back() bool { return b.Go(-1) }

// Forward moves one entry forward. It reports false at the end of history.
func (b *Browser) Forward() bool { return b.Go(1) }

// Go moves delta entries through history and fires popstate, then
// hashchange if the fragment changed. Out of range moves do nothing.
func (b *Browser) Go(delta int) bool {
	b.mu.Lock()
	target := b.index + delta
	if delta == 0 || target < 0 || target >= len(b.history) {
		b.mu.Unlock()
		return false
	}
	from := b.history[b.index]
	b.index = target
	to := b.history[target]

	listeners := append([]func(){}, b.popListeners...)
	if from.hash != to.hash {
		listeners = append(listeners, b.hashListeners...)
	}
	b.mu.Unlock()

	fire(listeners)
	return true
}

// OnHashChange registers fn for hashchange events. Listeners cannot be
// removed.
func (b *Browser) OnHashChange(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hashListeners = append(b.hashListeners, fn)
}

// OnPopState registers fn for popstate events. Listeners cannot be removed.
func (b *Browser) OnPopState(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.popListeners = append(b.popListeners, fn)
}

// push must be called with mu held. Forward entries are discarded.
func (b *Browser) push(e entry) {
	b.history = append(b.history[:b.index+1], e)
	b.index++
}

func fire(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
