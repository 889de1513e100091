package vdom

import (
	"strconv"
)

// H creates an element node with the given tag.
// Arguments can be: nil, Attr, []Attr, Attrs, *VNode, []*VNode, []any,
// string, or an integer (the last two become text children). Nested
// slices are flattened and nil children are dropped.
func H(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    make(Attrs),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes and children)
			continue

		case Attr:
			if !v.IsEmpty() {
				node.Attrs[v.Key] = v.Value
			}

		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Attrs[a.Key] = a.Value
				}
			}

		case Attrs:
			for key, val := range v {
				if key != "" {
					node.Attrs[key] = val
				}
			}

		default:
			node.Children = appendChild(node.Children, arg)
		}
	}

	return node
}

// appendChild flattens one child argument into dst.
func appendChild(dst []*VNode, arg any) []*VNode {
	switch v := arg.(type) {
	case nil:
		return dst
	case *VNode:
		if v != nil {
			dst = append(dst, v)
		}
	case []*VNode:
		for _, child := range v {
			if child != nil {
				dst = append(dst, child)
			}
		}
	case []any:
		for _, child := range v {
			dst = appendChild(dst, child)
		}
	case string:
		dst = append(dst, Text(v))
	case int:
		dst = append(dst, Text(strconv.Itoa(v)))
	case int64:
		dst = append(dst, Text(strconv.FormatInt(v, 10)))
	}
	return dst
}

// Normalize flattens render output into an ordered list of nodes.
// A single node and a list of nodes normalize identically.
func Normalize(nodes ...any) []*VNode {
	out := make([]*VNode, 0, len(nodes))
	for _, n := range nodes {
		out = appendChild(out, n)
	}
	return out
}

// Content sectioning elements

func Header(args ...any) *VNode  { return H("header", args...) }
func Footer(args ...any) *VNode  { return H("footer", args...) }
func Main(args ...any) *VNode    { return H("main", args...) }
func Nav(args ...any) *VNode     { return H("nav", args...) }
func Section(args ...any) *VNode { return H("section", args...) }
func Aside(args ...any) *VNode   { return H("aside", args...) }
func H1(args ...any) *VNode      { return H("h1", args...) }
func H3(args ...any) *VNode      { return H("h3", args...) }

// Text content elements

func Div(args ...any) *VNode  { return H("div", args...) }
func P(args ...any) *VNode    { return H("p", args...) }
func Span(args ...any) *VNode { return H("span", args...) }
func Ul(args ...any) *VNode   { return H("ul", args...) }
func Li(args ...any) *VNode   { return H("li", args...) }
func Hr(args ...any) *VNode   { return H("hr", args...) }

// Inline text semantics

func A(args ...any) *VNode      { return H("a", args...) }
func Strong(args ...any) *VNode { return H("strong", args...) }
func Em(args ...any) *VNode     { return H("em", args...) }

// Form elements

func Form(args ...any) *VNode   { return H("form", args...) }
func Input(args ...any) *VNode  { return H("input", args...) }
func Button(args ...any) *VNode { return H("button", args...) }
func Label(args ...any) *VNode  { return H("label", args...) }
