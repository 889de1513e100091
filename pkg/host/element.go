package host

import "sort"

// ID returns the node's stable identifier.
func (el *Element) ID() string { return el.id }

// IsText reports whether the node is a text node.
func (el *Element) IsText() bool { return el.isText }

// Tag returns the element tag ("" for text nodes).
func (el *Element) Tag() string { return el.tag }

// Text returns the payload of a text node.
func (el *Element) Text() string {
	el.doc.mu.Lock()
	defer el.doc.mu.Unlock()
	return el.text
}

// Attr returns an attribute value and whether it is present.
func (el *Element) Attr(key string) (string, bool) {
	el.doc.mu.Lock()
	defer el.doc.mu.Unlock()
	v, ok := el.attrs[key]
	return v, ok
}

// Attrs returns a copy of the element's attributes.
func (el *Element) Attrs() map[string]string {
	el.doc.mu.Lock()
	defer el.doc.mu.Unlock()
	out := make(map[string]string, len(el.attrs))
	for k, v := range el.attrs {
		out[k] = v
	}
	return out
}

// Handlers returns the sorted names of events with a bound handler.
func (el *Element) Handlers() []string {
	el.doc.mu.Lock()
	defer el.doc.mu.Unlock()
	out := make([]string, 0, len(el.handlers))
	for k := range el.handlers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Children returns a copy of the child list.
func (el *Element) Children() []*Element {
	el.doc.mu.Lock()
	defer el.doc.mu.Unlock()
	return append([]*Element(nil), el.children...)
}

// Parent returns the parent element, or nil when detached.
func (el *Element) Parent() *Element {
	el.doc.mu.Lock()
	defer el.doc.mu.Unlock()
	return el.parent
}
