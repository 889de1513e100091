package vdom

import "strings"

// TextTag is the reserved tag of text nodes.
const TextTag = "text"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode is the virtual node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div"); TextTag for text
	Attrs    Attrs    // Attributes, handlers and refs
	Children []*VNode // Child nodes, already flattened
	Text     string   // For KindText
}

// Attrs maps attribute keys to typed values.
type Attrs map[string]Value

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value Value
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// NodeTag returns the tag used to match nodes during reconciliation.
// Text nodes always report TextTag.
func (v *VNode) NodeTag() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		return TextTag
	}
	return v.Tag
}

// IsText reports whether v is a text node.
func (v *VNode) IsText() bool {
	return v != nil && v.Kind == KindText
}

// IsInteractive returns true if this node binds at least one event handler.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for _, val := range v.Attrs {
		if val.Kind == ValueHandler {
			return true
		}
	}
	return false
}

// IsHandlerKey returns true if the key names an event handler slot.
// Case-insensitive so onclick, onClick and ONCLICK all qualify.
func IsHandlerKey(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// EventName returns the event a handler key binds ("onKeyDown" -> "keydown").
func EventName(key string) string {
	if !IsHandlerKey(key) {
		return ""
	}
	return strings.ToLower(key[2:])
}
