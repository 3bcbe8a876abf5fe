package snapshot

import (
	"encoding/json"

	"github.com/c360/retain/errors"
	"github.com/c360/retain/store"
)

// Codec encodes an exported record set to JSON and back. State values must
// be JSON-serializable; the store itself never requires that, only the
// snapshot layer does.
type Codec[V any] struct{}

// Encode serializes an exported record set.
func (Codec[V]) Encode(records map[string]store.Record[V]) ([]byte, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return nil, errors.WrapFatal(err, "snapshot", "Encode", "marshal records")
	}
	return data, nil
}

// Decode deserializes a snapshot previously produced by Encode.
// Malformed input fails with ErrSnapshotCorrupt.
func (Codec[V]) Decode(data []byte) (map[string]store.Record[V], error) {
	var records map[string]store.Record[V]
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapFatal(errors.ErrSnapshotCorrupt, "snapshot", "Decode", "unmarshal records")
	}
	if records == nil {
		records = make(map[string]store.Record[V])
	}
	return records, nil
}

// Encode serializes the store's current records in one shot. This is the
// onBeforeShutdown half of a host-attached persistence hook.
func Encode[V any](st *store.Store[V]) ([]byte, error) {
	return Codec[V]{}.Encode(st.Export())
}

// Restore decodes a snapshot and replaces the store's records with it. This
// is the onStartup half of a host-attached persistence hook; it is silent,
// like store.Restore itself.
func Restore[V any](st *store.Store[V], data []byte) error {
	records, err := Codec[V]{}.Decode(data)
	if err != nil {
		return err
	}
	return st.Restore(records)
}
