package host

import (
	"strconv"
	"strings"
	"sync"

	"github.com/vango-dev/minifw/pkg/vdom"
)

// MutationOp names a recorded host mutation.
type MutationOp string

const (
	OpCreateElement MutationOp = "createElement"
	OpCreateText    MutationOp = "createText"
	OpAppend        MutationOp = "append"
	OpInsert        MutationOp = "insert"
	OpRemove        MutationOp = "remove"
	OpSetAttr       MutationOp = "setAttr"
	OpRemoveAttr    MutationOp = "removeAttr"
	OpSetText       MutationOp = "setText"
	OpSetHandler    MutationOp = "setHandler"
	OpRemoveHandler MutationOp = "removeHandler"
	OpFocus         MutationOp = "focus"
)

// Mutation is one entry of a Document's mutation log.
type Mutation struct {
	Op     MutationOp `json:"op"`
	Target string     `json:"target"`
	Parent string     `json:"parent,omitempty"`
	Ref    string     `json:"ref,omitempty"`
	Tag    string     `json:"tag,omitempty"`
	Key    string     `json:"key,omitempty"`
	Value  string     `json:"value,omitempty"`
}

// Element is a node of a Document. Text nodes are Elements with IsText set.
type Element struct {
	doc      *Document
	id       string
	tag      string
	text     string
	isText   bool
	attrs    map[string]string
	handlers map[string]vdom.Handler
	parent   *Element
	children []*Element
}

// Document is an in-memory Tree.
type Document struct {
	mu      sync.Mutex
	nextID  uint64
	nodes   map[string]*Element
	body    *Element
	log     []Mutation
	count   int
	focused *Element
}

var _ Tree = (*Document)(nil)
var _ Focuser = (*Document)(nil)

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	d := &Document{nodes: make(map[string]*Element)}
	d.body = d.newElement("body", false)
	return d
}

// Body returns the document's root element.
func (d *Document) Body() *Element {
	return d.body
}

func (d *Document) newElement(tag string, isText bool) *Element {
	id := "n" + strconv.FormatUint(d.nextID, 10)
	d.nextID++
	el := &Element{
		doc:    d,
		id:     id,
		tag:    tag,
		isText: isText,
	}
	if !isText {
		el.attrs = make(map[string]string)
		el.handlers = make(map[string]vdom.Handler)
	}
	d.nodes[id] = el
	return el
}

func (d *Document) record(m Mutation) {
	d.log = append(d.log, m)
	d.count++
}

// element resolves a Node handle belonging to this document.
func (d *Document) element(n Node) *Element {
	el, ok := n.(*Element)
	if !ok || el == nil || el.doc != d {
		return nil
	}
	return el
}

// CreateElement implements Tree.
func (d *Document) CreateElement(tag string) Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := d.newElement(tag, false)
	d.record(Mutation{Op: OpCreateElement, Target: el.id, Tag: tag})
	return el
}

// CreateText implements Tree.
func (d *Document) CreateText(text string) Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := d.newElement("", true)
	el.text = text
	d.record(Mutation{Op: OpCreateText, Target: el.id, Value: text})
	return el
}

// AppendChild implements Tree.
func (d *Document) AppendChild(parent, child Node) {
	d.InsertBefore(parent, child, nil)
}

// InsertBefore implements Tree.
func (d *Document) InsertBefore(parent, child, ref Node) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, c := d.element(parent), d.element(child)
	if p == nil || c == nil || p.isText {
		return
	}
	if c.parent != nil {
		c.parent.detach(c)
	}
	d.index(c)

	idx := -1
	if r := d.element(ref); r != nil && r.parent == p {
		idx = p.indexOf(r)
	}
	c.parent = p
	if idx < 0 {
		p.children = append(p.children, c)
		d.record(Mutation{Op: OpAppend, Target: c.id, Parent: p.id})
		return
	}
	p.children = append(p.children, nil)
	copy(p.children[idx+1:], p.children[idx:])
	p.children[idx] = c
	d.record(Mutation{Op: OpInsert, Target: c.id, Parent: p.id, Ref: p.children[idx+1].id})
}

// RemoveChild implements Tree.
func (d *Document) RemoveChild(parent, child Node) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, c := d.element(parent), d.element(child)
	if p == nil || c == nil || c.parent != p {
		return
	}
	p.detach(c)
	d.unindex(c)
	if d.focused != nil && !d.attached(d.focused) {
		d.focused = nil
	}
	d.record(Mutation{Op: OpRemove, Target: c.id, Parent: p.id})
}

// SetAttribute implements Tree.
func (d *Document) SetAttribute(node Node, key, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := d.element(node)
	if el == nil || el.isText {
		return
	}
	el.attrs[key] = value
	d.record(Mutation{Op: OpSetAttr, Target: el.id, Key: key, Value: value})
}

// RemoveAttribute implements Tree.
func (d *Document) RemoveAttribute(node Node, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := d.element(node)
	if el == nil || el.isText {
		return
	}
	if _, ok := el.attrs[key]; !ok {
		return
	}
	delete(el.attrs, key)
	d.record(Mutation{Op: OpRemoveAttr, Target: el.id, Key: key})
}

// SetText implements Tree.
func (d *Document) SetText(node Node, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := d.element(node)
	if el == nil || !el.isText {
		return
	}
	el.text = text
	d.record(Mutation{Op: OpSetText, Target: el.id, Value: text})
}

// SetHandler implements Tree.
func (d *Document) SetHandler(node Node, event string, h vdom.Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := d.element(node)
	if el == nil || el.isText || h == nil {
		return
	}
	el.handlers[event] = h
	d.record(Mutation{Op: OpSetHandler, Target: el.id, Key: event})
}

// RemoveHandler implements Tree.
func (d *Document) RemoveHandler(node Node, event string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := d.element(node)
	if el == nil || el.isText {
		return
	}
	if _, ok := el.handlers[event]; !ok {
		return
	}
	delete(el.handlers, event)
	d.record(Mutation{Op: OpRemoveHandler, Target: el.id, Key: event})
}

// Focus implements Focuser. Detached nodes cannot take focus.
func (d *Document) Focus(node Node) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := d.element(node)
	if el == nil || el.isText || !d.attached(el) {
		return
	}
	d.focused = el
	d.record(Mutation{Op: OpFocus, Target: el.id})
}

// Focused returns the focused element, or nil.
func (d *Document) Focused() *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focused
}

// Find returns the live node with the given ID.
func (d *Document) Find(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nodes[id]
}

// QueryClass returns attached elements whose class list contains class,
// in document order.
func (d *Document) QueryClass(class string) []*Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []*Element
	var walk func(el *Element)
	walk = func(el *Element) {
		if !el.isText {
			for _, c := range strings.Fields(el.attrs["class"]) {
				if c == class {
					out = append(out, el)
					break
				}
			}
		}
		for _, child := range el.children {
			walk(child)
		}
	}
	walk(d.body)
	return out
}

// Dispatch invokes the handler bound for e.Type on the node with the given
// ID. It reports whether a handler ran. The handler runs without the
// document lock held, so it may trigger renders.
func (d *Document) Dispatch(id string, e *vdom.Event) bool {
	d.mu.Lock()
	el := d.nodes[id]
	var h vdom.Handler
	if el != nil && !el.isText {
		h = el.handlers[e.Type]
	}
	d.mu.Unlock()

	if h == nil {
		return false
	}
	e.Target = el
	h(e)
	return true
}

// Mutations returns a copy of the undrained mutation log.
func (d *Document) Mutations() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Mutation(nil), d.log...)
}

// Drain returns the undrained mutation log and clears it.
func (d *Document) Drain() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.log
	d.log = nil
	return out
}

// MutationCount returns the number of mutations ever applied.
func (d *Document) MutationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.count
}

// index registers a subtree whose nodes may have been dropped on removal.
func (d *Document) index(el *Element) {
	d.nodes[el.id] = el
	for _, c := range el.children {
		d.index(c)
	}
}

func (d *Document) unindex(el *Element) {
	delete(d.nodes, el.id)
	for _, c := range el.children {
		d.unindex(c)
	}
}

func (d *Document) attached(el *Element) bool {
	for n := el; n != nil; n = n.parent {
		if n == d.body {
			return true
		}
	}
	return false
}

func (el *Element) indexOf(child *Element) int {
	for i, c := range el.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (el *Element) detach(child *Element) {
	if i := el.indexOf(child); i >= 0 {
		el.children = append(el.children[:i], el.children[i+1:]...)
	}
	child.parent = nil
}
