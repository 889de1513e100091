package router

import "strings"

// Location is the navigation environment a Router drives.
type Location interface {
	// Path returns the active route path.
	Path() string

	// Navigate changes the active path. It reports whether the change will
	// be announced to the Listen callback; when it is not, the caller is
	// responsible for dispatching.
	Navigate(path string) (announced bool)

	// Listen registers fn to receive the new path after an external change.
	Listen(fn func(path string))
}

// HashLocation keeps the route in the URL fragment and follows hashchange.
type HashLocation struct {
	browser *Browser
}

// NewHashLocation creates a fragment based location over b.
func NewHashLocation(b *Browser) *HashLocation {
	return &HashLocation{browser: b}
}

// Path returns the fragment without '#', or "/" when there is none.
func (l *HashLocation) Path() string {
	hash := l.browser.Hash()
	if len(hash) <= 1 {
		return "/"
	}
	return hash[1:]
}

// Navigate assigns the fragment "#/path". Assigning the current fragment
// fires no hashchange, so that case reports false.
func (l *HashLocation) Navigate(path string) bool {
	hash := "#" + rooted(path)
	if l.browser.Hash() == hash {
		return false
	}
	l.browser.SetHash(hash)
	return true
}

// Listen follows hashchange.
func (l *HashLocation) Listen(fn func(path string)) {
	l.browser.OnHashChange(func() { fn(l.Path()) })
}

// HistoryLocation keeps the route in the URL path, navigates with pushState
// and follows popstate.
type HistoryLocation struct {
	browser *Browser
}

// NewHistoryLocation creates a history based location over b.
func NewHistoryLocation(b *Browser) *HistoryLocation {
	return &HistoryLocation{browser: b}
}

// Path returns the URL path.
func (l *HistoryLocation) Path() string {
	return l.browser.Path()
}

// Navigate pushes a history entry. pushState is never announced.
func (l *HistoryLocation) Navigate(path string) bool {
	l.browser.PushState(rooted(path))
	return false
}

// Listen follows popstate.
func (l *HistoryLocation) Listen(fn func(path string)) {
	l.browser.OnPopState(func() { fn(l.Path()) })
}

func rooted(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
