package render

import (
	"maps"
	"slices"

	"github.com/vango-dev/minifw/pkg/vdom"
)

// hostKey maps an attribute slot to the host attribute it writes.
func hostKey(key string) string {
	if key == "className" {
		return "class"
	}
	return key
}

// applyAttrs moves rec's host node from the prev attributes to next.
// prev is nil on mount. Handler slots are diffed per key. Host attributes
// are diffed by the name they write, so className and class resolve to one
// value whichever of them changed. Keys are visited in sorted order to keep
// host mutations deterministic.
func (r *Renderer) applyAttrs(rec *mounted, prev, next vdom.Attrs) {
	for _, key := range prev.SortedKeys() {
		if _, ok := next[key]; !ok && bound(key, prev[key]) {
			r.unbindHandler(rec, vdom.EventName(key))
		}
	}

	for _, key := range next.SortedKeys() {
		val := next[key]
		old, had := prev[key]
		if had && old.Equal(val) {
			if val.Kind == vdom.ValueHandler && vdom.IsHandlerKey(key) {
				rec.handlers[vdom.EventName(key)] = val.Handler
			}
			continue
		}
		if err := vdom.ValidateAttr(key, val); err != nil {
			r.metrics.Malformed(errorCode(err))
			r.logger.Error("skipping malformed attribute", "error", err, "key", key, "tag", rec.vnode.Tag)
		}
		switch {
		case bound(key, val):
			r.bindHandler(rec, vdom.EventName(key), val.Handler)
		case had && bound(key, old):
			r.unbindHandler(rec, vdom.EventName(key))
		}
	}

	before, after := hostValues(prev), hostValues(next)
	for _, name := range sortedNames(before) {
		if _, ok := after[name]; !ok {
			r.tree.RemoveAttribute(rec.node, name)
		}
	}
	for _, name := range sortedNames(after) {
		if v, ok := before[name]; !ok || v != after[name] {
			r.tree.SetAttribute(rec.node, name, after[name])
		}
	}
}

// bound reports whether val under key installs an event handler.
func bound(key string, val vdom.Value) bool {
	return val.Kind == vdom.ValueHandler && vdom.ValidateAttr(key, val) == nil
}

// hostValues resolves attrs to the host attributes they write. Strings and
// true booleans write; null, false, handlers, refs and malformed slots do
// not. When two slots write the same name the later key wins.
func hostValues(attrs vdom.Attrs) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, key := range attrs.SortedKeys() {
		val := attrs[key]
		if vdom.ValidateAttr(key, val) != nil {
			continue
		}
		switch {
		case val.Kind == vdom.ValueString:
			out[hostKey(key)] = val.Str
		case val.Kind == vdom.ValueBool && val.Bool:
			out[hostKey(key)] = ""
		}
	}
	return out
}

func sortedNames(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}

// bindHandler installs h for event. An existing binding is replaced in
// place: the old function becomes unreachable and the host is untouched.
func (r *Renderer) bindHandler(rec *mounted, event string, h vdom.Handler) {
	if _, bound := rec.handlers[event]; bound {
		rec.handlers[event] = h
		return
	}
	rec.handlers[event] = h
	r.tree.SetHandler(rec.node, event, func(e *vdom.Event) {
		if cur := rec.handlers[event]; cur != nil {
			cur(e)
		}
	})
}

func (r *Renderer) unbindHandler(rec *mounted, event string) {
	if _, bound := rec.handlers[event]; !bound {
		return
	}
	delete(rec.handlers, event)
	r.tree.RemoveHandler(rec.node, event)
}
