package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/relaykit/relay/core/handler"
)

// MetricsConfig configures the Prometheus metrics guard.
type MetricsConfig struct {
	// Skip disables the guard for specific requests, for example the
	// metrics endpoint itself.
	Skip func(ctx handler.Context) bool

	// Namespace is the metrics namespace (default: "relay").
	Namespace string

	// Subsystem is the metrics subsystem (default: "http").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// SizeBuckets are the histogram buckets for request body size in bytes.
	SizeBuckets []float64

	// PathLabel derives the "path" label value for a request. The default
	// uses the raw URL path, which is unbounded under parameterized routes
	// (/items/1, /items/2, ...); supply a normalizer when such routes carry
	// real traffic.
	PathLabel func(ctx handler.Context) string

	// Registry is the Prometheus registry to register with
	// (default: prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// Metrics creates a Prometheus metrics guard with default configuration,
// registering on the default registry.
func Metrics[C handler.Context]() handler.Guard[C] {
	return MetricsWithConfig[C](MetricsConfig{})
}

// MetricsWithConfig creates a Prometheus metrics guard. It counts inbound
// requests by method and path and observes declared request body sizes.
// Each call registers fresh collectors, so construct the guard once at
// startup.
func MetricsWithConfig[C handler.Context](cfg MetricsConfig) handler.Guard[C] {
	if cfg.Namespace == "" {
		cfg.Namespace = "relay"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "http"
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	if cfg.SizeBuckets == nil {
		cfg.SizeBuckets = []float64{256, 1024, 4096, 16384, 65536, 262144, 1048576, 10485760}
	}
	if cfg.PathLabel == nil {
		cfg.PathLabel = func(ctx handler.Context) string {
			return ctx.Request().URL.Path
		}
	}

	factory := promauto.With(cfg.Registry)

	requestsTotal := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "requests_total",
		Help:        "Total number of HTTP requests received",
		ConstLabels: cfg.ConstLabels,
	}, []string{"method", "path"})

	requestSize := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "request_size_bytes",
		Help:        "Declared request body size in bytes",
		ConstLabels: cfg.ConstLabels,
		Buckets:     cfg.SizeBuckets,
	}, []string{"method"})

	return func(ctx C) handler.GuardResult {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return handler.Allow()
		}

		req := ctx.Request()
		requestsTotal.WithLabelValues(req.Method, cfg.PathLabel(ctx)).Inc()
		if req.ContentLength >= 0 {
			requestSize.WithLabelValues(req.Method).Observe(float64(req.ContentLength))
		}

		return handler.Allow()
	}
}
