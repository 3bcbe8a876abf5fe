package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360/retain/errors"
	"github.com/c360/retain/store"
)

// DefaultBucket is the KV bucket name CreateBucket uses when the config
// leaves it empty.
const DefaultBucket = "retain_state"

// BucketConfig describes the KV bucket backing a KVSink.
type BucketConfig struct {
	// Bucket is the KV bucket name. Empty means DefaultBucket.
	Bucket string
	// Description is stored on the bucket for operators.
	Description string
	// History is how many revisions the bucket keeps per key for recovery.
	// Zero means 1.
	History uint8
}

// CreateBucket creates (or binds to) the KV bucket for a sink.
func CreateBucket(ctx context.Context, js jetstream.JetStream, cfg BucketConfig) (jetstream.KeyValue, error) {
	if js == nil {
		return nil, errors.WrapInvalid(fmt.Errorf("jetstream context cannot be nil"),
			"snapshot", "CreateBucket", "validate jetstream")
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = DefaultBucket
	}
	history := cfg.History
	if history == 0 {
		history = 1
	}

	kv, err := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: cfg.Description,
		History:     history,
	})
	if err != nil {
		return nil, errors.WrapTransient(err, "snapshot", "CreateBucket", "create KV bucket")
	}
	return kv, nil
}

// KVSink persists store records to a NATS JetStream KV bucket, one KV entry
// per store key. Store keys must be valid NATS KV keys when this sink is
// used.
type KVSink[V any] struct {
	bucket jetstream.KeyValue
	logger *slog.Logger
}

// NewKVSink creates a sink over an existing KV bucket. A nil logger
// disables logging.
func NewKVSink[V any](bucket jetstream.KeyValue, logger *slog.Logger) (*KVSink[V], error) {
	if bucket == nil {
		return nil, errors.WrapInvalid(fmt.Errorf("bucket cannot be nil"),
			"snapshot", "NewKVSink", "validate bucket")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &KVSink[V]{
		bucket: bucket,
		logger: logger,
	}, nil
}

// Save writes every current store record to the bucket and prunes bucket
// keys that no longer exist in the store, so Load reproduces the store
// exactly.
func (s *KVSink[V]) Save(ctx context.Context, st *store.Store[V]) error {
	records := st.Export()

	for key, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return errors.WrapFatal(err, "snapshot", "Save",
				fmt.Sprintf("marshal record %s", key))
		}
		if _, err := s.bucket.Put(ctx, key, data); err != nil {
			return errors.WrapTransient(err, "snapshot", "Save",
				fmt.Sprintf("put record %s", key))
		}
	}

	existing, err := s.bucket.Keys(ctx)
	if err != nil && !errors.Is(err, jetstream.ErrNoKeysFound) {
		return errors.WrapTransient(err, "snapshot", "Save", "list bucket keys")
	}
	for _, key := range existing {
		if _, ok := records[key]; ok {
			continue
		}
		if err := s.bucket.Delete(ctx, key); err != nil {
			return errors.WrapTransient(err, "snapshot", "Save",
				fmt.Sprintf("prune stale key %s", key))
		}
	}

	s.logger.Debug("snapshot saved", "records", len(records))
	return nil
}

// Load reads every record from the bucket and restores the store from it.
// An empty bucket restores an empty store.
func (s *KVSink[V]) Load(ctx context.Context, st *store.Store[V]) error {
	keys, err := s.bucket.Keys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return st.Restore(nil)
		}
		return errors.WrapTransient(err, "snapshot", "Load", "list bucket keys")
	}

	records := make(map[string]store.Record[V], len(keys))
	for _, key := range keys {
		entry, err := s.bucket.Get(ctx, key)
		if err != nil {
			return errors.WrapTransient(err, "snapshot", "Load",
				fmt.Sprintf("get record %s", key))
		}

		var record store.Record[V]
		if err := json.Unmarshal(entry.Value(), &record); err != nil {
			return errors.WrapFatal(errors.ErrSnapshotCorrupt, "snapshot", "Load",
				fmt.Sprintf("unmarshal record %s", key))
		}
		records[key] = record
	}

	if err := st.Restore(records); err != nil {
		return err
	}

	s.logger.Debug("snapshot loaded", "records", len(records))
	return nil
}
