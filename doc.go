// Package retain provides a reactive, identity-keyed state store that lets
// short-lived, frequently destroyed-and-recreated consumers preserve logical
// state across their own destruction.
//
// # Problem
//
// A UI fragment, plugin instance, or unit of work that is torn down and
// rebuilt loses its in-memory state every time. The instance's memory
// identity is not stable across recreation, so state cannot be attached to
// the instance itself. Retain treats this as a cache-consistency problem:
// state is keyed by an externally stable identifier and held in a
// process-wide store that outlives any individual consumer.
//
// # Architecture
//
// Retain is organized as small root-level packages:
//
//	┌─────────────────────────────────────┐
//	│        lifecycle.Binding            │  capture-on-destroy /
//	│   (OnCreate restore, OnDestroy      │  restore-on-create glue,
//	│    capture, identity resolution)    │  per consumer instance
//	└─────────────────────────────────────┘
//	           ↓ observes / upserts
//	┌─────────────────────────────────────┐
//	│          store.Store[V]             │  keyed records with
//	│  (upsert, get, remove, observe)     │  push-based subscriptions
//	└─────────────────────────────────────┘
//	           ↓ optional export
//	┌─────────────────────────────────────┐
//	│        snapshot.KVSink[V]           │  durable snapshots via
//	│       (Save / Load hooks)           │  NATS JetStream KV
//	└─────────────────────────────────────┘
//
// The store is a single-process, synchronous, last-write-wins cache with
// reactive read access. Subscriptions replay the latest value on subscribe
// and then receive every subsequent write for their key, in subscription
// order, within the writer's turn. There is no internal queuing or
// background delivery.
//
// The lifecycle package binds a consumer's create/destroy signals to the
// store: on create it resolves a stable key from caller-supplied context and
// restores the latest stored state; on destroy it captures the consumer's
// final working state back into the store. Identity resolution never depends
// on instance identity, so two recreate cycles of the same logical slot land
// on the same key.
//
// # Packages
//
//   - store: generic keyed store with observable queries
//   - lifecycle: create/destroy binding state machine and identity resolvers
//   - snapshot: JSON snapshot codec and JetStream KV persistence sink
//   - errors: classified error handling shared by all packages
//   - metric: Prometheus registry and HTTP handler for store metrics
//
// # Quick Start
//
//	st, _ := store.New[string]()
//	binder := lifecycle.NewBinder(st, lifecycle.SlotResolver{}, nil)
//
//	var working string
//	b, err := binder.OnCreate(lifecycle.Context{"slot": "editor-a"},
//		func(restored string) { working = restored })
//	if err != nil {
//		// identity could not be resolved; state is simply not preserved
//	}
//	working = "draft text"
//	_ = b.OnDestroy(working) // captured; next OnCreate for "editor-a" restores it
package retain
