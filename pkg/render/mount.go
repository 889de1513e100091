package render

import (
	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/vdom"
)

// Mount materializes v and appends it to parent, returning the host node.
//
// Refs in the subtree run once the node is attached.
// A malformed node (missing or invalid tag) is replaced by an empty text node
// and logged; it never aborts the surrounding tree, so its siblings still
// mount. A nil parent is logged and the detached host node is returned.
func (r *Renderer) Mount(v *vdom.VNode, parent host.Node) host.Node {
	rec := r.build(v, true)
	defer r.flushRefs()
	if parent == nil {
		r.logger.Error("mount failed: nil parent", "tag", v.NodeTag())
		return rec.node
	}
	r.tree.AppendChild(parent, rec.node)
	r.roots[parent] = append(r.roots[parent], rec)
	return rec.node
}

// build creates the host subtree for v without attaching it.
func (r *Renderer) build(v *vdom.VNode, report bool) *mounted {
	r.metrics.Mounted()

	v = r.sanitize(v, report)
	if v.IsText() {
		return &mounted{vnode: v, node: r.tree.CreateText(v.Text)}
	}

	rec := &mounted{
		vnode:    v,
		node:     r.tree.CreateElement(v.Tag),
		handlers: make(map[string]vdom.Handler),
	}
	r.applyAttrs(rec, nil, v.Attrs)

	children := liveChildren(v)
	rec.children = make([]*mounted, 0, len(children))
	for _, child := range children {
		c := r.build(child, true)
		r.tree.AppendChild(rec.node, c.node)
		rec.children = append(rec.children, c)
	}

	if ref, ok := v.Attrs["ref"]; ok && ref.Kind == vdom.ValueRef {
		node := rec.node
		r.pendingRefs = append(r.pendingRefs, func() { ref.Ref(node) })
	}
	return rec
}

// flushRefs runs the refs of subtrees built since the last flush. Refs run
// after their subtree is attached, so they may focus or measure the node.
func (r *Renderer) flushRefs() {
	refs := r.pendingRefs
	r.pendingRefs = nil
	for _, fn := range refs {
		fn()
	}
}
