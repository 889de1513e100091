package render

import (
	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/vdom"
)

// Patch moves the host children of parent from matching prev to matching
// next. prev must be the list last mounted or patched into parent; a single
// root is simply a one-element list. Nil entries are dropped from both lists
// before diffing.
func (r *Renderer) Patch(parent host.Node, prev, next []*vdom.VNode) {
	r.metrics.Patched()

	prev, next = vdom.Normalize(prev), vdom.Normalize(next)
	records := r.roots[parent]
	if len(records) != len(prev) {
		r.logger.Warn("mounted nodes out of sync with previous tree",
			"mounted", len(records), "previous", len(prev))
	}

	out := r.patchChildren(parent, records, prev, next)
	if len(out) == 0 {
		delete(r.roots, parent)
	} else {
		r.roots[parent] = out
	}
	r.flushRefs()
}

// patchChildren diffs two child lists position by position and returns the
// mounted records for next.
func (r *Renderer) patchChildren(parent host.Node, records []*mounted, prev, next []*vdom.VNode) []*mounted {
	n := max(len(prev), len(next))
	out := make([]*mounted, 0, len(next))

	for i := 0; i < n; i++ {
		var rec *mounted
		if i < len(records) {
			rec = records[i]
		}
		var p, x *vdom.VNode
		if i < len(prev) {
			p = prev[i]
		}
		if i < len(next) {
			x = next[i]
		}

		switch {
		case x == nil:
			if rec != nil {
				r.tree.RemoveChild(parent, rec.node)
			}

		case p == nil || rec == nil:
			if rec != nil {
				r.tree.RemoveChild(parent, rec.node)
			}
			c := r.build(x, true)
			r.tree.AppendChild(parent, c.node)
			out = append(out, c)

		default:
			sp := r.sanitize(p, false)
			sx := r.sanitize(x, vdom.Validate(p) == nil)
			if sp.NodeTag() != sx.NodeTag() {
				c := r.build(sx, false)
				r.tree.InsertBefore(parent, c.node, rec.node)
				r.tree.RemoveChild(parent, rec.node)
				out = append(out, c)
				continue
			}
			r.update(rec, sp, sx)
			out = append(out, rec)
		}
	}

	// Records past both lists belong to nothing the caller rendered.
	for i := n; i < len(records); i++ {
		r.tree.RemoveChild(parent, records[i].node)
	}

	return out
}

// update patches rec in place from p to x, which share a tag.
func (r *Renderer) update(rec *mounted, p, x *vdom.VNode) {
	rec.vnode = x
	if x.IsText() {
		if p.Text != x.Text {
			r.tree.SetText(rec.node, x.Text)
		}
		return
	}

	r.applyAttrs(rec, p.Attrs, x.Attrs)
	rec.children = r.patchChildren(rec.node, rec.children, liveChildren(p), liveChildren(x))
}
