package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/metrics"
	"github.com/vango-dev/minifw/pkg/render"
	"github.com/vango-dev/minifw/pkg/store"
	"github.com/vango-dev/minifw/pkg/vdom"
)

// Version is the framework version.
const Version = "1.0.0"

// RenderFunc produces the top-level nodes of the view. It must be pure: the
// same state yields the same tree.
type RenderFunc func() []*vdom.VNode

// Single adapts a render function with one root node.
func Single(fn func() *vdom.VNode) RenderFunc {
	return func() []*vdom.VNode {
		return vdom.Normalize(fn())
	}
}

// App drives one container from one store.
type App struct {
	store     *store.Store
	renderer  *render.Renderer
	fn        RenderFunc
	container host.Node

	mu          sync.Mutex
	prev        []*vdom.VNode
	rendered    bool
	rendering   bool
	dirty       bool
	unsubscribe func()

	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the app logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithMetrics counts and times render cycles.
func WithMetrics(c *metrics.Collector) Option {
	return func(a *App) {
		a.metrics = c
	}
}

// WithTracer sets the tracer for render spans.
// Default: the global provider's "minifw" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(a *App) {
		a.tracer = t
	}
}

// Start subscribes to st and performs the first render into container.
func Start(st *store.Store, r *render.Renderer, fn RenderFunc, container host.Node, opts ...Option) *App {
	a := &App{
		store:     st,
		renderer:  r,
		fn:        fn,
		container: container,
		logger:    slog.Default().With("component", "app"),
		tracer:    otel.Tracer("minifw"),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.mu.Lock()
	a.unsubscribe = st.Subscribe(func(store.State) { a.render() })
	a.mu.Unlock()

	a.render()
	a.logger.Debug("started", "roots", len(a.Tree()))
	return a
}

// render runs one render cycle. It is a no-op once the app is destroyed.
// A render requested while one is in progress (a ref or the render function
// updating the store) is folded into one more cycle after it finishes.
func (a *App) render() {
	a.mu.Lock()
	if a.unsubscribe == nil {
		a.mu.Unlock()
		return
	}
	if a.rendering {
		a.dirty = true
		a.mu.Unlock()
		return
	}
	a.rendering = true
	a.mu.Unlock()

	for {
		a.cycle()

		a.mu.Lock()
		if !a.dirty || a.unsubscribe == nil {
			a.rendering, a.dirty = false, false
			a.mu.Unlock()
			return
		}
		a.dirty = false
		a.mu.Unlock()
	}
}

// cycle renders and reconciles once. Only the goroutine that set rendering
// calls it.
func (a *App) cycle() {
	start := time.Now()
	_, span := a.tracer.Start(context.Background(), "minifw.render")
	defer span.End()

	next := vdom.Normalize(a.fn())
	if !a.rendered {
		for _, n := range next {
			a.renderer.Mount(n, a.container)
		}
		a.rendered = true
	} else {
		a.renderer.Patch(a.container, a.prev, next)
	}

	a.mu.Lock()
	a.prev = next
	a.mu.Unlock()

	span.SetAttributes(attribute.Int("minifw.render.roots", len(next)))
	a.metrics.Rendered(time.Since(start))
}

// Destroy removes the store subscription. Later store updates never reach
// the container. Calling Destroy again is a no-op.
func (a *App) Destroy() {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
		a.logger.Debug("destroyed")
	}
}

// Tree returns the most recently rendered top-level nodes.
func (a *App) Tree() []*vdom.VNode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.prev
}

// Container returns the host node the app renders into.
func (a *App) Container() host.Node {
	return a.container
}
