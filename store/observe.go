package store

import (
	"fmt"
	"sync/atomic"

	"github.com/c360/retain/errors"
)

// Callback receives states pushed to a subscription. It is invoked
// synchronously in the writer's turn; a long-running callback delays the
// writer and every later subscriber on the same key.
type Callback[V any] func(state V)

// Subscription is a live observable query over a single key. It replays the
// latest stored state on creation and then receives every subsequent Upsert
// for its key until unsubscribed.
type Subscription[V any] struct {
	store *Store[V]
	key   string
	id    uint64
	fn    Callback[V]

	closed atomic.Bool
	// lastRev tracks the highest revision delivered so a redundant replay of
	// an already-seen revision is suppressed.
	lastRev atomic.Uint64
}

// Key returns the key this subscription observes.
func (sub *Subscription[V]) Key() string {
	return sub.key
}

// Unsubscribe tears the subscription down. It is idempotent, and after it
// returns the callback is guaranteed never to be invoked again, even for an
// upsert already in flight. Safe to call from inside the callback itself.
func (sub *Subscription[V]) Unsubscribe() {
	sub.store.Unsubscribe(sub)
}

// deliver invokes the callback unless the subscription is closed or the
// revision was already seen. Reports whether the callback ran.
func (sub *Subscription[V]) deliver(rev uint64, state V) bool {
	if sub.closed.Load() {
		return false
	}
	for {
		seen := sub.lastRev.Load()
		if rev <= seen {
			return false
		}
		// CAS so concurrent deliveries cannot move lastRev backwards.
		if sub.lastRev.CompareAndSwap(seen, rev) {
			break
		}
	}
	sub.fn(state)
	return true
}

// Observe registers a push-based subscription on key. Replay-latest
// semantics: if a record exists at subscribe time, the current state is
// delivered synchronously before Observe returns. If no record exists,
// nothing is delivered until the first Upsert on that key.
func (s *Store[V]) Observe(key string, fn Callback[V]) (*Subscription[V], error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, errors.WrapInvalid(fmt.Errorf("callback cannot be nil"), "store", "Observe", "validate callback")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errors.WrapInvalid(errors.ErrStoreClosed, "store", "Observe", "store closed")
	}

	s.nextSub++
	sub := &Subscription[V]{
		store: s,
		key:   key,
		id:    s.nextSub,
		fn:    fn,
	}
	s.subs[key] = append(s.subs[key], sub)
	total := s.subscriptionCountLocked()
	record, exists := s.records[key]
	s.mu.Unlock()

	s.stats.Subscribe()
	s.stats.UpdateSubscriptions(int64(total))
	if s.metrics != nil {
		s.metrics.recordSubscribe()
		s.metrics.updateSubscriptions(total)
	}

	if exists {
		if sub.deliver(record.Revision, record.State) {
			s.stats.Notification()
			if s.metrics != nil {
				s.metrics.recordNotification()
			}
		}
	}

	return sub, nil
}

// Unsubscribe tears down a subscription previously returned by Observe.
// Idempotent; a nil or foreign subscription is a no-op.
func (s *Store[V]) Unsubscribe(sub *Subscription[V]) {
	if sub == nil || sub.store != s {
		return
	}
	// The closed flag is checked by in-flight deliveries, so flipping it
	// first guarantees no callback invocation after this call returns.
	if sub.closed.Swap(true) {
		return
	}

	s.mu.Lock()
	keySubs := s.subs[sub.key]
	for i, candidate := range keySubs {
		if candidate.id == sub.id {
			s.subs[sub.key] = append(keySubs[:i:i], keySubs[i+1:]...)
			break
		}
	}
	if len(s.subs[sub.key]) == 0 {
		delete(s.subs, sub.key)
	}
	total := s.subscriptionCountLocked()
	s.mu.Unlock()

	s.stats.Unsubscribe()
	s.stats.UpdateSubscriptions(int64(total))
	if s.metrics != nil {
		s.metrics.recordUnsubscribe()
		s.metrics.updateSubscriptions(total)
	}
}

// Subscriptions returns the number of live subscriptions across all keys.
func (s *Store[V]) Subscriptions() int {
	s.mu.Lock()
	total := s.subscriptionCountLocked()
	s.mu.Unlock()
	return total
}

func (s *Store[V]) subscriptionCountLocked() int {
	total := 0
	for _, keySubs := range s.subs {
		total += len(keySubs)
	}
	return total
}
