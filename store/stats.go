package store

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks store activity. All counters are always on; Prometheus
// export is layered on top when the store is built with WithMetrics.
type Statistics struct {
	// Atomic counters for thread-safe updates
	upserts       int64
	hits          int64
	misses        int64
	removes       int64
	notifications int64
	subscribes    int64
	unsubscribes  int64

	// Protected by mutex
	mu            sync.RWMutex
	startTime     time.Time
	records       int64
	maxRecords    int64
	subscriptions int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Upsert records a write operation.
func (s *Statistics) Upsert() {
	atomic.AddInt64(&s.upserts, 1)
}

// Hit records a Get that found a record.
func (s *Statistics) Hit() {
	atomic.AddInt64(&s.hits, 1)
}

// Miss records a Get that found nothing.
func (s *Statistics) Miss() {
	atomic.AddInt64(&s.misses, 1)
}

// Remove records a record deletion.
func (s *Statistics) Remove() {
	atomic.AddInt64(&s.removes, 1)
}

// Notification records one callback delivery to a subscription.
func (s *Statistics) Notification() {
	atomic.AddInt64(&s.notifications, 1)
}

// Subscribe records a new subscription.
func (s *Statistics) Subscribe() {
	atomic.AddInt64(&s.subscribes, 1)
}

// Unsubscribe records a subscription teardown.
func (s *Statistics) Unsubscribe() {
	atomic.AddInt64(&s.unsubscribes, 1)
}

// UpdateRecords updates the current record count.
func (s *Statistics) UpdateRecords(count int64) {
	s.mu.Lock()
	s.records = count
	if count > s.maxRecords {
		s.maxRecords = count
	}
	s.mu.Unlock()
}

// UpdateSubscriptions updates the current live subscription count.
func (s *Statistics) UpdateSubscriptions(count int64) {
	s.mu.Lock()
	s.subscriptions = count
	s.mu.Unlock()
}

// Upserts returns the total number of write operations.
func (s *Statistics) Upserts() int64 {
	return atomic.LoadInt64(&s.upserts)
}

// Hits returns the total number of Get hits.
func (s *Statistics) Hits() int64 {
	return atomic.LoadInt64(&s.hits)
}

// Misses returns the total number of Get misses.
func (s *Statistics) Misses() int64 {
	return atomic.LoadInt64(&s.misses)
}

// Removes returns the total number of removals.
func (s *Statistics) Removes() int64 {
	return atomic.LoadInt64(&s.removes)
}

// Notifications returns the total number of callback deliveries.
func (s *Statistics) Notifications() int64 {
	return atomic.LoadInt64(&s.notifications)
}

// Subscribes returns the total number of subscriptions created.
func (s *Statistics) Subscribes() int64 {
	return atomic.LoadInt64(&s.subscribes)
}

// Unsubscribes returns the total number of subscriptions torn down.
func (s *Statistics) Unsubscribes() int64 {
	return atomic.LoadInt64(&s.unsubscribes)
}

// Records returns the current number of records in the store.
func (s *Statistics) Records() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// MaxRecords returns the maximum number of records the store has held.
func (s *Statistics) MaxRecords() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxRecords
}

// Subscriptions returns the current number of live subscriptions.
func (s *Statistics) Subscriptions() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subscriptions
}

// HitRatio returns the Get hit ratio (0.0 to 1.0).
func (s *Statistics) HitRatio() float64 {
	hits := s.Hits()
	misses := s.Misses()
	total := hits + misses

	if total == 0 {
		return 0.0
	}

	return float64(hits) / float64(total)
}

// Uptime returns how long the store has been running.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.upserts, 0)
	atomic.StoreInt64(&s.hits, 0)
	atomic.StoreInt64(&s.misses, 0)
	atomic.StoreInt64(&s.removes, 0)
	atomic.StoreInt64(&s.notifications, 0)
	atomic.StoreInt64(&s.subscribes, 0)
	atomic.StoreInt64(&s.unsubscribes, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.records = 0
	s.maxRecords = 0
	s.subscriptions = 0
	s.mu.Unlock()
}

// StatsSummary is a point-in-time snapshot of all statistics.
type StatsSummary struct {
	Upserts       int64         `json:"upserts"`
	Hits          int64         `json:"hits"`
	Misses        int64         `json:"misses"`
	Removes       int64         `json:"removes"`
	Notifications int64         `json:"notifications"`
	Subscribes    int64         `json:"subscribes"`
	Unsubscribes  int64         `json:"unsubscribes"`
	Records       int64         `json:"records"`
	MaxRecords    int64         `json:"max_records"`
	Subscriptions int64         `json:"subscriptions"`
	HitRatio      float64       `json:"hit_ratio"`
	Uptime        time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Upserts:       s.Upserts(),
		Hits:          s.Hits(),
		Misses:        s.Misses(),
		Removes:       s.Removes(),
		Notifications: s.Notifications(),
		Subscribes:    s.Subscribes(),
		Unsubscribes:  s.Unsubscribes(),
		Records:       s.Records(),
		MaxRecords:    s.MaxRecords(),
		Subscriptions: s.Subscriptions(),
		HitRatio:      s.HitRatio(),
		Uptime:        s.Uptime(),
	}
}
