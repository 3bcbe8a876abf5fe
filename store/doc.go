// Package store provides a keyed, in-memory, last-write-wins state store
// with push-based subscriptions ("observable queries").
//
// # Overview
//
// A Store[V] maps opaque string keys to records of an application state type
// V. Writes fully replace the prior state for a key and bump a per-record
// revision counter. Reads never fail for a missing key, and removal is
// silent: subscribers are simply not told, mirroring "no known state" rather
// than "pushed empty state".
//
// # Observable queries
//
// Observe(key, fn) registers a subscription with replay-latest semantics: if
// a record exists at subscribe time, the current state is delivered to fn
// synchronously before Observe returns. Every later Upsert on the key is
// then delivered to all active subscriptions in registration order, within
// the writer's turn. There is no buffering, reordering, or background
// delivery anywhere in the store.
//
// Unsubscribe is idempotent and final: after it returns, the callback is
// never invoked again, even for a write already in flight. A subscriber may
// unsubscribe itself from inside its own callback; delivery to the remaining
// subscribers of that write is unaffected because the notification loop
// iterates a snapshot of the subscriber list.
//
// # Concurrency
//
// All operations complete synchronously within the caller's turn. The record
// table is guarded by a single mutex per store, released before callbacks
// run, so callbacks may freely call back into the store. In an event-loop
// host the mutex is uncontended and effectively free.
//
// # Observability
//
// Every store carries always-on Statistics. Prometheus export is optional:
//
//	registry := metric.NewMetricsRegistry()
//	st, err := store.New[FormState](store.WithMetrics[FormState](registry, "form_state"))
//
// # Persistence hook
//
// The store itself is process-lifetime memory. Hosts that want durability
// across restarts use Export/Restore, typically through the snapshot
// package's sinks.
package store
