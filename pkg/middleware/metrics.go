package middleware

import (
	stderrors "errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/glintkit/glint/internal/errors"
	"github.com/glintkit/glint/pkg/host"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "glint").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "glint",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for glint event dispatch. It
// doubles as the host's session observer so the active-sessions gauge
// tracks connection lifecycle.
type Metrics struct {
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	eventErrors    *prometheus.CounterVec
	patchesSent    prometheus.Counter
	activeSessions prometheus.Gauge
}

var _ host.Observer = (*Metrics)(nil)

// globalMetrics is the singleton metrics instance, created on first
// call to Prometheus(). A second registration against the same
// registry would panic inside promauto.
var (
	globalMetrics   *Metrics
	globalMetricsMu sync.Mutex
)

// NewMetrics registers the glint metrics on a registry. Most callers
// use Prometheus() instead; this constructor exists for tests and for
// applications running more than one registry.
func NewMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of element events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"tag", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"tag"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of event processing errors",
			ConstLabels: config.ConstLabels,
		}, []string{"tag", "code"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Middleware returns the event middleware backed by these metrics.
func (m *Metrics) Middleware() host.Middleware {
	return func(c *host.Ctx, next func() error) error {
		start := time.Now()
		err := next()
		m.eventDuration.WithLabelValues(c.Tag()).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.eventErrors.WithLabelValues(c.Tag(), errorCode(err)).Inc()
		}
		m.eventsTotal.WithLabelValues(c.Tag(), status).Inc()

		return err
	}
}

// SessionStarted implements host.Observer.
func (m *Metrics) SessionStarted(string) {
	m.activeSessions.Inc()
}

// SessionClosed implements host.Observer.
func (m *Metrics) SessionClosed(string) {
	m.activeSessions.Dec()
}

// PatchesSent implements host.Observer. Sessions report the size of
// every patch frame they deliver.
func (m *Metrics) PatchesSent(_ string, count int) {
	m.patchesSent.Add(float64(count))
}

// Prometheus creates middleware that collects Prometheus metrics for
// glint events.
//
// Metrics collected:
//   - glint_events_total: Counter of events by tag and status
//   - glint_event_duration_seconds: Histogram of event processing duration
//   - glint_event_errors_total: Counter of event errors by tag and code
//   - glint_patches_sent_total: Counter of patches sent (via host.WithObserver)
//   - glint_active_sessions: Gauge of live sessions (via host.WithObserver)
//
// Example:
//
//	app := glint.New(
//	    glint.WithMiddleware(middleware.Prometheus(
//	        middleware.WithNamespace("myapp"),
//	    )),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) host.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = NewMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return m.Middleware()
}

// GetMetrics returns the global metrics instance, or nil if Prometheus
// middleware has not been initialized. Hosts pass it to WithObserver to
// keep the active-sessions gauge live.
func GetMetrics() *Metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}

// errorCode maps errors to a low-cardinality label. Structured errors
// carry their code; everything else is "internal".
func errorCode(err error) string {
	var ge *errors.GlintError
	if stderrors.As(err, &ge) && ge.Code != "" {
		return ge.Code
	}
	return "internal"
}
