// Package vdom provides the virtual node model for minifw.
//
// A VNode is an immutable description of one element or text unit. Application
// code builds a fresh tree on every render; the render package compares it with
// the previous tree and applies the difference to a host tree.
//
// # Core Types
//
// VNode is either an element (KindElement, with a tag, attributes and children)
// or a text node (KindText, tag "text", with a payload). Attribute values are a
// tagged union, Value, distinguishing strings, booleans, event handlers and refs,
// so the renderer never has to guess what a value is from its key.
//
// # Element API
//
// Elements are created with H or the tag helpers, taking attributes and
// children in any order:
//
//	Div(ClassName("todo"),
//	    Input(Type("checkbox"), Checked(done), OnChange(toggle)),
//	    Label("Buy milk"),
//	    nil, // dropped
//	)
//
// Nested slices of children are flattened to a single level and nil entries are
// dropped before the tree ever reaches the renderer.
package vdom
