// Package todo is the demo consumer of the framework: a TodoMVC list with
// All, Active and Completed routes. It drives the CLI and the server.
package todo

import (
	"encoding/json"
	"strings"

	"github.com/vango-dev/minifw/pkg/events"
	"github.com/vango-dev/minifw/pkg/router"
	"github.com/vango-dev/minifw/pkg/store"
)

// Filters and the routes that select them.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterCompleted = "completed"
)

var routes = map[string]string{
	"/":          FilterAll,
	"/active":    FilterActive,
	"/completed": FilterCompleted,
}

// State keys.
const (
	keyTodos   = "todos"
	keyFilter  = "filter"
	keyNextID  = "nextID"
	keyEditing = "editing"
)

// Bus events emitted after each change.
const (
	EventAdded   = "todo:added"
	EventRemoved = "todo:removed"
	EventChanged = "todo:changed"
)

// Item is one entry of the list.
type Item struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// InitialState is the state of an empty list.
func InitialState() store.State {
	return store.State{
		keyTodos:   []Item{},
		keyFilter:  FilterAll,
		keyNextID:  1,
		keyEditing: 0,
	}
}

// Todo owns the list behaviour over a store and a router.
type Todo struct {
	store  *store.Store
	router *router.Router
	bus    *events.Bus

	linkPrefix string
	focus      func(node any)
}

// Option configures a Todo.
type Option func(*Todo)

// WithBus emits EventAdded, EventRemoved and EventChanged on bus.
func WithBus(bus *events.Bus) Option {
	return func(t *Todo) {
		t.bus = bus
	}
}

// WithLinkPrefix sets what filter hrefs start with: "#" for hash routing
// (the default), "" for history routing.
func WithLinkPrefix(prefix string) Option {
	return func(t *Todo) {
		t.linkPrefix = prefix
	}
}

// WithFocus is called with the host node of an input that should take
// focus, such as the edit field of the item being edited.
func WithFocus(fn func(node any)) Option {
	return func(t *Todo) {
		t.focus = fn
	}
}

// New registers the filter routes on rt. Unknown paths fall back to All.
func New(st *store.Store, rt *router.Router, opts ...Option) (*Todo, error) {
	t := &Todo{store: st, router: rt, bus: events.NewBus(), linkPrefix: "#"}
	for _, opt := range opts {
		opt(t)
	}

	for path, filter := range routes {
		if err := rt.AddRoute(path, t.filterHandler(filter)); err != nil {
			return nil, err
		}
	}
	if err := rt.SetDefaultHandler(t.filterHandler(FilterAll)); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Todo) filterHandler(filter string) router.Handler {
	return func() {
		t.store.SetState(store.Partial{keyFilter: filter})
	}
}

// Items returns every item in insertion order.
func (t *Todo) Items() []Item {
	return items(t.store.GetState())
}

// Filter returns the active filter.
func (t *Todo) Filter() string {
	f, _ := t.store.GetState()[keyFilter].(string)
	if f == "" {
		return FilterAll
	}
	return f
}

// Visible returns the items the active filter shows.
func (t *Todo) Visible() []Item {
	return visible(items(t.store.GetState()), t.Filter())
}

// Add appends an item. Blank titles are ignored.
func (t *Todo) Add(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	var added Item
	t.store.Update(func(s store.State) store.Partial {
		id := intOf(s[keyNextID], 1)
		added = Item{ID: id, Title: title}
		return store.Partial{
			keyTodos:  append(items(s), added),
			keyNextID: id + 1,
		}
	})
	t.bus.Emit(EventAdded, added)
}

// Toggle flips the done flag of id.
func (t *Todo) Toggle(id int) {
	t.modify(func(list []Item) []Item {
		for i := range list {
			if list[i].ID == id {
				list[i].Done = !list[i].Done
			}
		}
		return list
	})
}

// ToggleAll marks every item done or not done.
func (t *Todo) ToggleAll(done bool) {
	t.modify(func(list []Item) []Item {
		for i := range list {
			list[i].Done = done
		}
		return list
	})
}

// Remove deletes id.
func (t *Todo) Remove(id int) {
	t.modify(func(list []Item) []Item {
		out := list[:0]
		for _, it := range list {
			if it.ID != id {
				out = append(out, it)
			}
		}
		return out
	})
	t.bus.Emit(EventRemoved, id)
}

// ClearCompleted deletes every done item.
func (t *Todo) ClearCompleted() {
	t.modify(func(list []Item) []Item {
		out := list[:0]
		for _, it := range list {
			if !it.Done {
				out = append(out, it)
			}
		}
		return out
	})
	t.bus.Emit(EventRemoved, 0)
}

// StartEdit puts id into edit mode.
func (t *Todo) StartEdit(id int) {
	t.store.SetState(store.Partial{keyEditing: id})
}

// CancelEdit leaves edit mode without changes.
func (t *Todo) CancelEdit() {
	t.store.SetState(store.Partial{keyEditing: 0})
}

// Editing returns the id in edit mode, or 0.
func (t *Todo) Editing() int {
	return intOf(t.store.GetState()[keyEditing], 0)
}

// Edit renames id and leaves edit mode. A blank title removes the item.
func (t *Todo) Edit(id int, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		t.store.SetState(store.Partial{keyEditing: 0})
		t.Remove(id)
		return
	}
	t.store.Update(func(s store.State) store.Partial {
		list := items(s)
		for i := range list {
			if list[i].ID == id {
				list[i].Title = title
			}
		}
		return store.Partial{keyTodos: list, keyEditing: 0}
	})
	t.bus.Emit(EventChanged, id)
}

// Navigate moves the router to a filter path.
func (t *Todo) Navigate(path string) {
	t.router.Navigate(path)
}

func (t *Todo) modify(fn func([]Item) []Item) {
	t.store.Update(func(s store.State) store.Partial {
		return store.Partial{keyTodos: fn(items(s))}
	})
	t.bus.Emit(EventChanged, nil)
}

// Restore converts a persisted snapshot, whose values come back in their
// JSON decoded forms, into a partial with typed items.
func Restore(snapshot store.State) store.Partial {
	p := store.Partial{}
	for k, v := range snapshot {
		p[k] = v
	}
	p[keyTodos] = items(snapshot)
	p[keyNextID] = intOf(snapshot[keyNextID], 1)
	p[keyEditing] = 0
	return p
}

// items reads the list from a state copy.
func items(s store.State) []Item {
	switch v := s[keyTodos].(type) {
	case []Item:
		return v
	case nil:
		return []Item{}
	default:
		// A decoded snapshot holds []any of maps.
		data, err := json.Marshal(v)
		if err != nil {
			return []Item{}
		}
		var out []Item
		if err := json.Unmarshal(data, &out); err != nil || out == nil {
			return []Item{}
		}
		return out
	}
}

func visible(list []Item, filter string) []Item {
	out := make([]Item, 0, len(list))
	for _, it := range list {
		switch {
		case filter == FilterActive && it.Done:
		case filter == FilterCompleted && !it.Done:
		default:
			out = append(out, it)
		}
	}
	return out
}

func intOf(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return def
}
