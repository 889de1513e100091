// Package metrics exposes Prometheus collectors for the renderer, store,
// router and app lifecycle.
//
// A nil *Collector is valid and records nothing, so instrumented packages
// never need to check whether metrics are enabled.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "minifw").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: a fresh registry, so independent app instances never collide.
	Registry *prometheus.Registry
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "minifw",
		Buckets:   prometheus.DefBuckets,
	}
}

// Collector holds the framework's Prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	mounts         prometheus.Counter
	patches        prometheus.Counter
	hostMutations  *prometheus.CounterVec
	malformedNodes *prometheus.CounterVec
	renders        prometheus.Counter
	renderDuration prometheus.Histogram
	storeUpdates   prometheus.Counter
	subscribers    prometheus.Gauge
	routeDispatch  *prometheus.CounterVec
	sessions       prometheus.Gauge
}

// New creates and registers the collectors.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}

	return &Collector{
		registry:       config.Registry,
		mounts:         counter("mounts_total", "Total number of subtrees mounted"),
		patches:        counter("patches_total", "Total number of patch passes"),
		hostMutations:  counterVec("host_mutations_total", "Host tree mutations applied by the renderer", "op"),
		malformedNodes: counterVec("malformed_nodes_total", "Malformed nodes and attributes skipped", "code"),
		renders:        counter("renders_total", "Total number of render cycles"),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render plus patch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
		storeUpdates: counter("store_updates_total", "Total number of store updates"),
		subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_subscribers",
			Help:        "Number of registered store subscribers",
			ConstLabels: config.ConstLabels,
		}),
		routeDispatch: counterVec("route_dispatches_total", "Route dispatches by result", "result"),
		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sessions",
			Help:        "Number of live WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Registry returns the registry the collectors are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Mounted records one mounted subtree.
func (c *Collector) Mounted() {
	if c == nil {
		return
	}
	c.mounts.Inc()
}

// Patched records one patch pass.
func (c *Collector) Patched() {
	if c == nil {
		return
	}
	c.patches.Inc()
}

// HostMutation records one host tree mutation.
func (c *Collector) HostMutation(op string) {
	if c == nil {
		return
	}
	c.hostMutations.WithLabelValues(op).Inc()
}

// Malformed records a skipped node or attribute by error code.
func (c *Collector) Malformed(code string) {
	if c == nil {
		return
	}
	c.malformedNodes.WithLabelValues(code).Inc()
}

// Rendered records one render cycle and its duration.
func (c *Collector) Rendered(d time.Duration) {
	if c == nil {
		return
	}
	c.renders.Inc()
	c.renderDuration.Observe(d.Seconds())
}

// StoreUpdated records one store update.
func (c *Collector) StoreUpdated() {
	if c == nil {
		return
	}
	c.storeUpdates.Inc()
}

// Subscribers sets the store subscriber gauge.
func (c *Collector) Subscribers(n int) {
	if c == nil {
		return
	}
	c.subscribers.Set(float64(n))
}

// RouteDispatched records a route dispatch; hit is false for fallbacks.
func (c *Collector) RouteDispatched(hit bool) {
	if c == nil {
		return
	}
	result := "hit"
	if !hit {
		result = "miss"
	}
	c.routeDispatch.WithLabelValues(result).Inc()
}

// Sessions records the number of live WebSocket sessions.
func (c *Collector) Sessions(n int) {
	if c == nil {
		return
	}
	c.sessions.Set(float64(n))
}
