package store

import (
	"log/slog"
	"sync"

	"github.com/c360/retain/errors"
)

// Record is a single keyed state entry. Revision is a monotonically
// increasing counter assigned internally on each write to the same key; it is
// used to detect redundant replays, not for conflict resolution.
type Record[V any] struct {
	State    V      `json:"state"`
	Revision uint64 `json:"revision"`
}

// Store is a keyed, in-memory, last-write-wins state store with push-based
// subscriptions. Writes to a key fully replace the prior state and are
// delivered synchronously to every active subscription on that key, in
// subscription-registration order, before Upsert returns.
//
// The internal table is guarded by a single mutex and is never exposed by
// reference; all access goes through Store methods, so external mutation
// cannot bypass notification.
type Store[V any] struct {
	mu      sync.Mutex
	records map[string]Record[V]
	subs    map[string][]*Subscription[V]
	// revs is the per-key revision high-water mark. It outlives the records
	// themselves: Remove and Clear delete records but keep their counters,
	// so a later write always carries a revision higher than anything a
	// subscriber has already seen.
	revs    map[string]uint64
	nextSub uint64
	closed  bool

	logger  *slog.Logger
	stats   *Statistics   // ALWAYS initialized
	metrics *storeMetrics // Optional, if metrics enabled
}

// New creates a new store instance.
// Returns an error if metrics registration fails when requested.
func New[V any](options ...Option[V]) (*Store[V], error) {
	opts := applyOptions(options...)

	// Stats are ALWAYS initialized - observability is not optional
	stats := NewStatistics()

	var metrics *storeMetrics
	// Optionally expose stats as Prometheus metrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newStoreMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "store", "New", "metrics registration")
		}
	}

	logger := opts.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Store[V]{
		records: make(map[string]Record[V]),
		subs:    make(map[string][]*Subscription[V]),
		revs:    make(map[string]uint64),
		logger:  logger,
		stats:   stats,
		metrics: metrics,
	}, nil
}

// validateKey validates a store key for basic requirements.
// Keys must be non-empty; everything else is opaque to the store.
func validateKey(key string) error {
	if key == "" {
		return errors.WrapInvalid(errors.ErrInvalidKey, "store", "validateKey", "key cannot be empty")
	}
	return nil
}

// Upsert inserts or replaces the record for key and increments its revision.
// Every active subscription on that key is notified synchronously, in
// registration order, before Upsert returns.
func (s *Store[V]) Upsert(key string, state V) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.WrapInvalid(errors.ErrStoreClosed, "store", "Upsert", "store closed")
	}

	rev := s.revs[key] + 1
	s.revs[key] = rev
	s.records[key] = Record[V]{State: state, Revision: rev}
	size := len(s.records)

	// Snapshot the subscriber list so a subscriber that unsubscribes itself
	// mid-delivery cannot corrupt the loop.
	targets := append([]*Subscription[V](nil), s.subs[key]...)
	s.mu.Unlock()

	s.stats.Upsert()
	s.stats.UpdateRecords(int64(size))
	if s.metrics != nil {
		s.metrics.recordUpsert()
		s.metrics.updateRecords(size)
	}

	for _, sub := range targets {
		if sub.deliver(rev, state) {
			s.stats.Notification()
			if s.metrics != nil {
				s.metrics.recordNotification()
			}
		}
	}

	return nil
}

// Get returns the current state for key. The second return value reports
// whether a record exists; a missing key is not an error.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	record, exists := s.records[key]
	if s.closed {
		exists = false
	}
	s.mu.Unlock()

	if exists {
		s.stats.Hit()
		if s.metrics != nil {
			s.metrics.recordHit()
		}
		return record.State, true
	}

	s.stats.Miss()
	if s.metrics != nil {
		s.metrics.recordMiss()
	}
	var zero V
	return zero, false
}

// Remove deletes the record for key. Removal is silent: subscribers are not
// notified, mirroring "no known state" rather than "pushed empty state".
// Removing a missing or empty key is a no-op.
func (s *Store[V]) Remove(key string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.WrapInvalid(errors.ErrStoreClosed, "store", "Remove", "store closed")
	}

	_, exists := s.records[key]
	if exists {
		delete(s.records, key)
	}
	size := len(s.records)
	s.mu.Unlock()

	if exists {
		s.stats.Remove()
		s.stats.UpdateRecords(int64(size))
		if s.metrics != nil {
			s.metrics.recordRemove()
			s.metrics.updateRecords(size)
		}
	}

	return nil
}

// Clear removes all records. Subscriptions survive and resume receiving
// values on the next Upsert for their key.
func (s *Store[V]) Clear() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.WrapInvalid(errors.ErrStoreClosed, "store", "Clear", "store closed")
	}
	// Revision counters are kept so writes after Clear stay above anything
	// subscribers have already seen.
	size := len(s.records)
	s.records = make(map[string]Record[V])
	s.mu.Unlock()

	s.logger.Debug("store cleared", "records_dropped", size)
	s.stats.UpdateRecords(0)
	if s.metrics != nil {
		s.metrics.updateRecords(0)
	}

	return nil
}

// Close shuts the store down. All records and subscriptions are dropped and
// subsequent mutating operations fail with ErrStoreClosed. Close is
// idempotent.
func (s *Store[V]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	subs := s.subs
	s.records = make(map[string]Record[V])
	s.subs = make(map[string][]*Subscription[V])
	s.mu.Unlock()

	dropped := 0
	for _, keySubs := range subs {
		for _, sub := range keySubs {
			sub.closed.Store(true)
			dropped++
		}
	}

	s.logger.Debug("store closed", "subscriptions_dropped", dropped)
	s.stats.UpdateRecords(0)
	s.stats.UpdateSubscriptions(0)
	if s.metrics != nil {
		s.metrics.updateRecords(0)
		s.metrics.updateSubscriptions(0)
	}

	return nil
}

// Len returns the current number of records in the store.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	size := len(s.records)
	s.mu.Unlock()
	return size
}

// Keys returns a slice of all keys currently in the store.
func (s *Store[V]) Keys() []string {
	s.mu.Lock()
	keys := make([]string, 0, len(s.records))
	for key := range s.records {
		keys = append(keys, key)
	}
	s.mu.Unlock()
	return keys
}

// Export returns a copy of every record, including revisions. The copy is
// detached from the store; mutating it has no effect on stored state. This is
// the surface a host-attached persistence hook serializes.
func (s *Store[V]) Export() map[string]Record[V] {
	s.mu.Lock()
	out := make(map[string]Record[V], len(s.records))
	for key, record := range s.records {
		out[key] = record
	}
	s.mu.Unlock()
	return out
}

// Restore replaces the store's records with a previously exported snapshot.
// Restoration is silent: no subscriptions are notified. Revisions are taken
// from the snapshot so replay detection keeps working across a restart.
func (s *Store[V]) Restore(records map[string]Record[V]) error {
	for key := range records {
		if err := validateKey(key); err != nil {
			return err
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.WrapInvalid(errors.ErrStoreClosed, "store", "Restore", "store closed")
	}
	s.records = make(map[string]Record[V], len(records))
	for key, record := range records {
		s.records[key] = record
		// Never lower a key's revision high-water mark: a snapshot older
		// than what live subscribers have seen must not make the next write
		// look like a replay.
		if record.Revision > s.revs[key] {
			s.revs[key] = record.Revision
		}
	}
	size := len(s.records)
	s.mu.Unlock()

	s.stats.UpdateRecords(int64(size))
	if s.metrics != nil {
		s.metrics.updateRecords(size)
	}

	return nil
}

// Stats returns the store's always-on statistics.
func (s *Store[V]) Stats() *Statistics {
	return s.stats
}
