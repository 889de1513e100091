package router

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/minifw/internal/errors"
	"github.com/vango-dev/minifw/pkg/metrics"
)

// ErrInvalidHandler is wrapped by the errors AddRoute and SetDefaultHandler
// return for a nil handler.
var ErrInvalidHandler = stderrors.New("router: handler is nil")

// Handler is invoked when its route is dispatched.
type Handler func()

// Router maps paths to handlers over a Location.
type Router struct {
	loc Location

	mu             sync.Mutex
	routes         map[string]Handler
	defaultHandler Handler
	current        string
	hasCurrent     bool

	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithMetrics counts dispatches by hit and miss.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Router) {
		r.metrics = c
	}
}

// WithTracer sets the tracer used for dispatch spans.
// Default: the global provider's "minifw" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Router) {
		r.tracer = t
	}
}

// New creates a Router over loc and registers its one environment listener.
// The listener lives as long as loc does.
func New(loc Location, opts ...Option) *Router {
	r := &Router{
		loc:    loc,
		routes: make(map[string]Handler),
		logger: slog.Default().With("component", "router"),
		tracer: otel.Tracer("minifw"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.defaultHandler = r.missingDefault
	loc.Listen(r.HandleRoute)
	return r
}

// missingDefault stands in until SetDefaultHandler is called.
func (r *Router) missingDefault() {
	r.logger.Warn("no default route handler set")
}

// AddRoute registers h for the exact path. A nil handler is rejected.
func (r *Router) AddRoute(path string, h Handler) error {
	if h == nil {
		return errors.New("E200").WithDetailf("path %q", path).Wrap(ErrInvalidHandler)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[path] = h
	return nil
}

// SetDefaultHandler sets the handler for paths with no route. A nil handler
// is rejected.
func (r *Router) SetDefaultHandler(h Handler) error {
	if h == nil {
		return errors.New("E201").Wrap(ErrInvalidHandler)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultHandler = h
	return nil
}

// Navigate moves the environment to path. Exactly one dispatch follows,
// through the environment listener when the Location announces the change
// and directly otherwise.
func (r *Router) Navigate(path string) {
	if announced := r.loc.Navigate(path); !announced {
		r.HandleRoute(r.loc.Path())
	}
}

// HandleRoute dispatches path. An exact match becomes the current route
// before its handler runs; anything else runs the default handler and
// leaves the current route unchanged.
func (r *Router) HandleRoute(path string) {
	r.mu.Lock()
	h, hit := r.routes[path]
	if hit {
		r.current = path
		r.hasCurrent = true
	} else {
		h = r.defaultHandler
	}
	r.mu.Unlock()

	_, span := r.tracer.Start(context.Background(), "minifw.route",
		trace.WithAttributes(
			attribute.String("minifw.route.path", path),
			attribute.Bool("minifw.route.matched", hit),
		))
	defer span.End()

	r.metrics.RouteDispatched(hit)
	r.logger.Debug("dispatch", "path", path, "matched", hit)
	h()
}

// Init registers the default handler for "/" when no root route exists,
// then dispatches the environment's current path.
func (r *Router) Init() {
	r.mu.Lock()
	if _, ok := r.routes["/"]; !ok {
		r.routes["/"] = r.defaultHandler
	}
	r.mu.Unlock()

	r.HandleRoute(r.loc.Path())
}

// Current returns the last matched path. ok is false until a registered
// route has been dispatched.
func (r *Router) Current() (path string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.hasCurrent
}

// Routes returns the registered paths in sorted order.
func (r *Router) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Location returns the environment the router drives.
func (r *Router) Location() Location {
	return r.loc
}
