package vdom

import (
	"fmt"
	"maps"
	"slices"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Tag: TextTag, Text: content}
}

// Textf creates a text node from a format string.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// If returns node when cond holds and nil otherwise. H drops nil children.
func If(cond bool, node *VNode) *VNode {
	if !cond {
		return nil
	}
	return node
}

// Range renders one node per item, skipping nil results.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i := range items {
		if n := fn(items[i], i); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// SortedKeys returns the attribute keys in ascending order.
func (a Attrs) SortedKeys() []string {
	return sortedKeys(a)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
