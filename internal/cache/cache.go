// Package cache is the request correlation cache: a bounded, time-evicting
// store keyed by request identifier, used to stitch together data observed
// at different network lifecycle hooks.
package cache

import (
	"sync"
	"time"

	"github.com/walexbarnes/nosey-web-sdk/internal/model"
)

const (
	// DefaultCapacity bounds the number of live entries.
	DefaultCapacity = 100
	// DefaultTTL is how long an entry may live without a fresh write.
	DefaultTTL = 5 * time.Minute
	// DefaultSweepInterval is how often the background sweep scans for
	// entries the per-entry timers somehow missed.
	DefaultSweepInterval = 60 * time.Second
)

// record pairs a cache entry with its pending expiry timer.
type record struct {
	entry *model.CacheEntry
	timer *time.Timer
}

// Cache maps request ids to correlation entries. Every write schedules a
// deferred eviction and cancels the previous one for that key; a periodic
// sweep independently evicts anything past the age bound. Both triggers
// funnel into the same eviction path. Eviction is silent.
type Cache struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	records   map[string]*record
	evictions int64
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Cache. Zero or negative capacity/ttl fall back to the
// defaults. A sweepInterval <= 0 disables the background sweep (the
// per-entry timers still fire).
func New(capacity int, ttl, sweepInterval time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Cache{
		capacity: capacity,
		ttl:      ttl,
		records:  make(map[string]*record),
		done:     make(chan struct{}),
	}

	if sweepInterval > 0 {
		go c.sweepLoop(sweepInterval)
	}

	return c
}

// Set stores or refreshes the entry for a request id. The entry's Timestamp
// is set to now, any pending expiry for the key is cancelled before the new
// one is installed, and an insert past capacity evicts the oldest entry.
func (c *Cache) Set(id string, entry *model.CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.Timestamp = time.Now()

	if old, ok := c.records[id]; ok {
		// Rewrite: the stale timer must not fire against the fresh entry.
		old.timer.Stop()
	} else if len(c.records) >= c.capacity {
		c.evictOldestLocked()
	}

	c.records[id] = &record{
		entry: entry,
		timer: time.AfterFunc(c.ttl, func() { c.expire(id) }),
	}
}

// Get returns the live entry for a request id.
func (c *Cache) Get(id string) (*model.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, false
	}
	return rec.entry, true
}

// Delete removes an entry and cancels its pending expiry. Deleting a
// missing key is a no-op.
func (c *Cache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rec, ok := c.records[id]; ok {
		rec.timer.Stop()
		delete(c.records, id)
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Evictions returns the total number of silently evicted entries.
func (c *Cache) Evictions() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictions
}

// Close stops the sweep loop and cancels all pending expiry timers.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.done) })

	c.mu.Lock()
	defer c.mu.Unlock()
	for id, rec := range c.records {
		rec.timer.Stop()
		delete(c.records, id)
	}
}

// expire is the per-entry timer callback. A timer that was stopped just as
// it fired may still reach here after the key was rewritten, so the entry's
// age is re-checked before eviction.
func (c *Cache) expire(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return
	}
	if time.Since(rec.entry.Timestamp) < c.ttl {
		return // refreshed since this timer was scheduled
	}
	c.evictLocked(id)
}

// sweepLoop proactively evicts over-age entries on a fixed interval, as a
// safety net independent of the per-entry timers.
func (c *Cache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-c.ttl)
	for id, rec := range c.records {
		if rec.entry.Timestamp.Before(cutoff) {
			c.evictLocked(id)
		}
	}
}

// evictOldestLocked scans for the entry with the oldest timestamp and
// evicts it. Linear scan: correctness matters here, not speed, at this
// capacity.
func (c *Cache) evictOldestLocked() {
	var oldestID string
	var oldest time.Time

	for id, rec := range c.records {
		if oldestID == "" || rec.entry.Timestamp.Before(oldest) {
			oldestID = id
			oldest = rec.entry.Timestamp
		}
	}

	if oldestID != "" {
		c.evictLocked(oldestID)
	}
}

// evictLocked is the single eviction path for both trigger sources.
// Caller holds c.mu.
func (c *Cache) evictLocked(id string) {
	rec, ok := c.records[id]
	if !ok {
		return
	}
	rec.timer.Stop()
	delete(c.records, id)
	c.evictions++
}
