package store

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/retain/metric"
)

// storeMetrics holds Prometheus metrics for store operations.
type storeMetrics struct {
	// Counter metrics - directly incremented without stats duplication
	upserts       prometheus.Counter
	hits          prometheus.Counter
	misses        prometheus.Counter
	removes       prometheus.Counter
	notifications prometheus.Counter
	subscribes    prometheus.Counter
	unsubscribes  prometheus.Counter

	// Gauge metrics - updated on operations
	records       prometheus.Gauge
	subscriptions prometheus.Gauge
}

// newStoreMetrics creates and registers store metrics with the provided registry.
func newStoreMetrics(registry *metric.MetricsRegistry, prefix string) (*storeMetrics, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "retain",
			Subsystem:   "store",
			Name:        name,
			ConstLabels: prometheus.Labels{"store": prefix},
			Help:        help,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "retain",
			Subsystem:   "store",
			Name:        name,
			ConstLabels: prometheus.Labels{"store": prefix},
			Help:        help,
		})
	}

	m := &storeMetrics{
		upserts:       counter("upserts_total", "Total number of upsert operations"),
		hits:          counter("hits_total", "Total number of Get operations that found a record"),
		misses:        counter("misses_total", "Total number of Get operations that found nothing"),
		removes:       counter("removes_total", "Total number of record removals"),
		notifications: counter("notifications_total", "Total number of callback deliveries to subscriptions"),
		subscribes:    counter("subscribes_total", "Total number of subscriptions created"),
		unsubscribes:  counter("unsubscribes_total", "Total number of subscriptions torn down"),
		records:       gauge("records", "Current number of records in the store"),
		subscriptions: gauge("subscriptions", "Current number of live subscriptions"),
	}

	counters := []struct {
		name    string
		counter prometheus.Counter
	}{
		{"store_upserts", m.upserts},
		{"store_hits", m.hits},
		{"store_misses", m.misses},
		{"store_removes", m.removes},
		{"store_notifications", m.notifications},
		{"store_subscribes", m.subscribes},
		{"store_unsubscribes", m.unsubscribes},
	}
	for _, reg := range counters {
		if err := registry.RegisterCounter(prefix, reg.name, reg.counter); err != nil {
			return nil, err
		}
	}
	if err := registry.RegisterGauge(prefix, "store_records", m.records); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge(prefix, "store_subscriptions", m.subscriptions); err != nil {
		return nil, err
	}

	return m, nil
}

// recordUpsert increments the upsert counter.
func (m *storeMetrics) recordUpsert() {
	m.upserts.Inc()
}

// recordHit increments the hit counter.
func (m *storeMetrics) recordHit() {
	m.hits.Inc()
}

// recordMiss increments the miss counter.
func (m *storeMetrics) recordMiss() {
	m.misses.Inc()
}

// recordRemove increments the remove counter.
func (m *storeMetrics) recordRemove() {
	m.removes.Inc()
}

// recordNotification increments the notification counter.
func (m *storeMetrics) recordNotification() {
	m.notifications.Inc()
}

// recordSubscribe increments the subscribe counter.
func (m *storeMetrics) recordSubscribe() {
	m.subscribes.Inc()
}

// recordUnsubscribe increments the unsubscribe counter.
func (m *storeMetrics) recordUnsubscribe() {
	m.unsubscribes.Inc()
}

// updateRecords sets the record count gauge.
func (m *storeMetrics) updateRecords(count int) {
	m.records.Set(float64(count))
}

// updateSubscriptions sets the subscription count gauge.
func (m *storeMetrics) updateSubscriptions(count int) {
	m.subscriptions.Set(float64(count))
}
