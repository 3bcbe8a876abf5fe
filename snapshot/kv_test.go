package snapshot

import (
	"context"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/retain/errors"
	"github.com/c360/retain/store"
)

// fakeKV implements the slice of jetstream.KeyValue the sink uses. The
// embedded interface panics on anything the sink should never call.
type fakeKV struct {
	jetstream.KeyValue
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Put(_ context.Context, key string, value []byte) (uint64, error) {
	f.data[key] = append([]byte(nil), value...)
	return uint64(len(f.data)), nil
}

func (f *fakeKV) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	value, ok := f.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	return fakeEntry{key: key, value: value}, nil
}

func (f *fakeKV) Delete(_ context.Context, key string, _ ...jetstream.KVDeleteOpt) error {
	delete(f.data, key)
	return nil
}

func (f *fakeKV) Keys(_ context.Context, _ ...jetstream.WatchOpt) ([]string, error) {
	if len(f.data) == 0 {
		return nil, jetstream.ErrNoKeysFound
	}
	keys := make([]string, 0, len(f.data))
	for key := range f.data {
		keys = append(keys, key)
	}
	return keys, nil
}

type fakeEntry struct {
	jetstream.KeyValueEntry
	key   string
	value []byte
}

func (e fakeEntry) Key() string   { return e.key }
func (e fakeEntry) Value() []byte { return e.value }

func TestNewKVSinkNilBucket(t *testing.T) {
	_, err := NewKVSink[panelState](nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestKVSinkSaveLoadRoundTrip(t *testing.T) {
	kv := newFakeKV()
	sink, err := NewKVSink[panelState](kv, nil)
	require.NoError(t, err)

	st, err := store.New[panelState]()
	require.NoError(t, err)
	require.NoError(t, st.Upsert("A", panelState{Input: "hi", Cursor: 2}))
	require.NoError(t, st.Upsert("B", panelState{Input: "there"}))

	ctx := context.Background()
	require.NoError(t, sink.Save(ctx, st))
	assert.Len(t, kv.data, 2)

	fresh, err := store.New[panelState]()
	require.NoError(t, err)
	require.NoError(t, sink.Load(ctx, fresh))

	state, ok := fresh.Get("A")
	require.True(t, ok)
	assert.Equal(t, panelState{Input: "hi", Cursor: 2}, state)
	assert.Equal(t, st.Export(), fresh.Export())
}

func TestKVSinkSavePrunesStaleKeys(t *testing.T) {
	kv := newFakeKV()
	sink, err := NewKVSink[panelState](kv, nil)
	require.NoError(t, err)

	st, err := store.New[panelState]()
	require.NoError(t, err)
	require.NoError(t, st.Upsert("A", panelState{Input: "a"}))
	require.NoError(t, st.Upsert("B", panelState{Input: "b"}))

	ctx := context.Background()
	require.NoError(t, sink.Save(ctx, st))

	require.NoError(t, st.Remove("B"))
	require.NoError(t, sink.Save(ctx, st))

	fresh, err := store.New[panelState]()
	require.NoError(t, err)
	require.NoError(t, sink.Load(ctx, fresh))

	_, ok := fresh.Get("B")
	assert.False(t, ok, "removed keys must not resurrect through the sink")
	assert.Equal(t, 1, fresh.Len())
}

func TestKVSinkLoadEmptyBucket(t *testing.T) {
	sink, err := NewKVSink[panelState](newFakeKV(), nil)
	require.NoError(t, err)

	st, err := store.New[panelState]()
	require.NoError(t, err)
	require.NoError(t, st.Upsert("old", panelState{Input: "stale"}))

	require.NoError(t, sink.Load(context.Background(), st))
	assert.Equal(t, 0, st.Len(), "loading an empty bucket restores an empty store")
}

func TestKVSinkLoadCorruptEntry(t *testing.T) {
	kv := newFakeKV()
	kv.data["A"] = []byte("{broken")

	sink, err := NewKVSink[panelState](kv, nil)
	require.NoError(t, err)

	st, err := store.New[panelState]()
	require.NoError(t, err)

	err = sink.Load(context.Background(), st)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSnapshotCorrupt))
}
