package render

import (
	"log/slog"

	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/metrics"
	"github.com/vango-dev/minifw/pkg/vdom"
)

// mounted pairs a vdom node with the host node it produced.
type mounted struct {
	vnode    *vdom.VNode
	node     host.Node
	children []*mounted

	// handlers holds the live function for each bound event. The host only
	// ever sees a trampoline that reads from here, so swapping a handler
	// never touches the host tree.
	handlers map[string]vdom.Handler
}

// Renderer mounts and patches vdom trees into a host tree.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	tree    host.Tree
	logger  *slog.Logger
	metrics *metrics.Collector

	// roots holds the mounted top-level nodes of each container.
	roots map[host.Node][]*mounted

	// pendingRefs are refs of built subtrees waiting for attachment.
	pendingRefs []func()
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used to report malformed nodes.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithMetrics records mounts, patches and host mutations.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Renderer) {
		r.metrics = c
	}
}

// New creates a Renderer driving tree.
func New(tree host.Tree, opts ...Option) *Renderer {
	r := &Renderer{
		tree:   tree,
		logger: slog.Default().With("component", "render"),
		roots:  make(map[host.Node][]*mounted),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics != nil {
		r.tree = &countingTree{Tree: tree, metrics: r.metrics}
	}
	return r
}

// Tree returns the host tree the renderer writes to.
func (r *Renderer) Tree() host.Tree {
	if ct, ok := r.tree.(*countingTree); ok {
		return ct.Tree
	}
	return r.tree
}

// Mounted returns the host nodes currently managed under container, in order.
func (r *Renderer) Mounted(container host.Node) []host.Node {
	recs := r.roots[container]
	out := make([]host.Node, len(recs))
	for i, rec := range recs {
		out[i] = rec.node
	}
	return out
}

// sanitize substitutes an empty text node for a malformed one. When report
// is set the condition is logged and counted.
func (r *Renderer) sanitize(v *vdom.VNode, report bool) *vdom.VNode {
	err := vdom.Validate(v)
	if err == nil {
		return v
	}
	if report {
		r.malformed(err, "tag", v.NodeTag())
	}
	return vdom.Text("")
}

func (r *Renderer) malformed(err error, args ...any) {
	code := errorCode(err)
	r.metrics.Malformed(code)
	r.logger.Error("skipping malformed node", append([]any{"error", err, "code", code}, args...)...)
}

// liveChildren returns v's children without nil entries.
func liveChildren(v *vdom.VNode) []*vdom.VNode {
	if v == nil || v.IsText() {
		return nil
	}
	for _, c := range v.Children {
		if c == nil {
			return vdom.Normalize(v.Children)
		}
	}
	return v.Children
}
