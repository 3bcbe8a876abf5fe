package store

import (
	"log/slog"

	"github.com/c360/retain/metric"
)

// Option configures store behavior using the functional options pattern.
type Option[V any] func(*storeOptions[V])

// storeOptions holds internal configuration for store instances.
// Stats are ALWAYS collected - they are not optional.
// Metrics are optional and exposed via WithMetrics().
type storeOptions[V any] struct {
	// metricsReg is optional - if provided, store stats are also exposed as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsPrefix is used as the component label for Prometheus metrics
	metricsPrefix string

	// logger receives lifecycle events (clear, close). Nil means discard.
	logger *slog.Logger
}

// WithLogger attaches a structured logger to the store. Without it the store
// logs nowhere.
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(opts *storeOptions[V]) {
		opts.logger = logger
	}
}

// WithMetrics enables Prometheus metrics export for store statistics.
// If registry is nil or prefix is empty, this option is ignored.
func WithMetrics[V any](registry *metric.MetricsRegistry, prefix string) Option[V] {
	return func(opts *storeOptions[V]) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// applyOptions applies functional options to create final store configuration.
// This is an internal helper used by the store constructor.
func applyOptions[V any](options ...Option[V]) *storeOptions[V] {
	opts := &storeOptions[V]{}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
