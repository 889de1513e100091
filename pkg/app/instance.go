package app

import (
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/minifw/internal/errors"
	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/metrics"
	"github.com/vango-dev/minifw/pkg/render"
	"github.com/vango-dev/minifw/pkg/router"
	"github.com/vango-dev/minifw/pkg/store"
)

// Options configures Create.
type Options struct {
	// Render produces the view. Required.
	Render RenderFunc

	// Container receives the rendered nodes. Required.
	Container host.Node

	// Renderer reconciles into the host. When nil, one is built over Tree.
	Renderer *render.Renderer
	Tree     host.Tree

	// Store holds the state. Default: an empty store.
	Store *store.Store

	// Router is initialized after the first render. Default: a hash router
	// over a browser positioned at "/".
	Router *router.Router

	Logger  *slog.Logger
	Metrics *metrics.Collector
	Tracer  trace.Tracer
}

// Instance is a running app with its store and router.
type Instance struct {
	Store  *store.Store
	Router *router.Router
	App    *App

	mu       sync.Mutex
	cleanups []func()
	done     bool
}

// Create starts the app and then initializes the router, so the initial
// route handler sees a mounted view. Route handlers registered on
// opts.Router before Create run during this call.
func Create(opts Options) (*Instance, error) {
	if opts.Render == nil || opts.Container == nil || (opts.Renderer == nil && opts.Tree == nil) {
		return nil, errors.New("E500")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	st := opts.Store
	if st == nil {
		st = store.New(store.State{},
			store.WithLogger(logger.With("component", "store")),
			store.WithMetrics(opts.Metrics))
	}
	r := opts.Renderer
	if r == nil {
		r = render.New(opts.Tree,
			render.WithLogger(logger.With("component", "render")),
			render.WithMetrics(opts.Metrics))
	}
	rt := opts.Router
	if rt == nil {
		rt = router.New(router.NewHashLocation(router.NewBrowser("/")),
			router.WithLogger(logger.With("component", "router")),
			router.WithMetrics(opts.Metrics))
	}

	appOpts := []Option{
		WithLogger(logger.With("component", "app")),
		WithMetrics(opts.Metrics),
	}
	if opts.Tracer != nil {
		appOpts = append(appOpts, WithTracer(opts.Tracer))
	}

	a := Start(st, r, opts.Render, opts.Container, appOpts...)
	rt.Init()

	return &Instance{Store: st, Router: rt, App: a}, nil
}

// OnDestroy registers fn to run when the instance is destroyed, after
// rendering has stopped. Functions run in reverse registration order.
func (i *Instance) OnDestroy(fn func()) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.cleanups = append(i.cleanups, fn)
}

// Destroy stops rendering and runs the OnDestroy functions. The router keeps
// its environment listener. Calling Destroy again is a no-op.
func (i *Instance) Destroy() {
	i.mu.Lock()
	if i.done {
		i.mu.Unlock()
		return
	}
	i.done = true
	cleanups := i.cleanups
	i.cleanups = nil
	i.mu.Unlock()

	i.App.Destroy()
	for j := len(cleanups) - 1; j >= 0; j-- {
		cleanups[j]()
	}
}
