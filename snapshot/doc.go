// Package snapshot gives Retain stores durability across process restarts.
//
// The core store is process-lifetime memory; durable persistence is a host
// concern. This package is the hook the host attaches: serialize the store
// before shutdown, restore it on startup. Restoration is silent, like
// store.Restore, and preserves revisions so replay detection survives a
// restart.
//
// Two surfaces are provided:
//
//   - Encode/Restore: one-shot JSON snapshot of the whole store, for hosts
//     with their own storage (a file, a database column, a config service).
//   - KVSink: per-key persistence into a NATS JetStream KV bucket, with
//     Save pruning keys removed from the store so Load reproduces it
//     exactly.
//
// Typical wiring:
//
//	js, _ := jetstream.New(nc)
//	bucket, err := snapshot.CreateBucket(ctx, js, snapshot.BucketConfig{History: 5})
//	sink, err := snapshot.NewKVSink[FormState](bucket, logger)
//
//	// onStartup
//	err = sink.Load(ctx, st)
//	// onBeforeShutdown
//	err = sink.Save(ctx, st)
package snapshot
