// Package metric provides Prometheus metrics registration and exposure for
// Retain stores.
//
// A MetricsRegistry wraps a dedicated prometheus.Registry, tracks which
// component registered which metric, and rejects duplicate registration with
// a classified error instead of a panic. Stores export their operation
// counters through it when constructed with store.WithMetrics.
//
// Metrics can be exposed either by mounting the registry's Handler() on an
// existing HTTP mux, or by running the standalone Server:
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//	go server.Start()
//	defer server.Stop()
package metric
