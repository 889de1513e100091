package host

import (
	"time"

	"github.com/vango-dev/minifw/pkg/vdom"
)

// Node is an opaque handle to a host node. Implementations must use
// comparable handles (pointers in practice) because the renderer keys its
// bookkeeping by them.
type Node any

// Tree is the capability the renderer uses to mutate a host tree.
type Tree interface {
	// CreateElement creates a detached element.
	CreateElement(tag string) Node

	// CreateText creates a detached text node.
	CreateText(text string) Node

	// AppendChild attaches child as the last child of parent.
	AppendChild(parent, child Node)

	// InsertBefore attaches child before ref. A nil ref appends.
	InsertBefore(parent, child, ref Node)

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node)

	// SetAttribute sets a string attribute.
	SetAttribute(node Node, key, value string)

	// RemoveAttribute removes an attribute. Removing a missing key is a no-op.
	RemoveAttribute(node Node, key string)

	// SetText replaces the payload of a text node.
	SetText(node Node, text string)

	// SetHandler binds a live handler for an event, replacing any previous one.
	SetHandler(node Node, event string, h vdom.Handler)

	// RemoveHandler unbinds the handler for an event.
	RemoveHandler(node Node, event string)
}

// Focuser is implemented by trees that track keyboard focus.
type Focuser interface {
	Focus(node Node)
}

// FocusAfter focuses node once delay has elapsed, if the tree supports focus.
// It is fire-and-forget: nothing orders it relative to later renders, and the
// node may have been removed by the time the timer fires.
func FocusAfter(t Tree, node Node, delay time.Duration) *time.Timer {
	f, ok := t.(Focuser)
	if !ok {
		return nil
	}
	return time.AfterFunc(delay, func() { f.Focus(node) })
}
