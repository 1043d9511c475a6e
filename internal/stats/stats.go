// Package stats tracks capture counters and a short-window events-per-second
// rate for the status endpoint and the getStatus control message.
package stats

import (
	"context"
	"sync"
	"time"
)

const epsWindow = 5 * time.Second

// Snapshot is a point-in-time view of the capture counters.
type Snapshot struct {
	Uptime          string  `json:"uptime"`
	EventsSeen      int64   `json:"events_seen"`
	MatchedRequests int64   `json:"matched_requests"`
	Broadcasts      int64   `json:"broadcasts"`
	ParseFailures   int64   `json:"parse_failures"`
	CacheSize       int     `json:"cache_size"`
	CacheEvictions  int64   `json:"cache_evictions"`
	DroppedResults  int64   `json:"dropped_results"`
	EPS             float64 `json:"eps"`
	Panels          int     `json:"panels"`
}

// Collector accumulates counters. Live gauges (cache size, evictions,
// dropped deliveries, panel count) are read through callbacks so the
// collector does not own those components.
type Collector struct {
	mu          sync.RWMutex
	startTime   time.Time
	eventsSeen  int64
	matched     int64
	broadcasts  int64
	parseFails  int64
	window      []time.Time // classified-event timestamps inside epsWindow
	cacheSize   func() int
	evictions   func() int64
	dropped     func() int64
	panels      func() int
}

// New creates a Collector. Nil callbacks read as zero.
func New(cacheSize func() int, evictions, dropped func() int64, panels func() int) *Collector {
	if cacheSize == nil {
		cacheSize = func() int { return 0 }
	}
	if evictions == nil {
		evictions = func() int64 { return 0 }
	}
	if dropped == nil {
		dropped = func() int64 { return 0 }
	}
	if panels == nil {
		panels = func() int { return 0 }
	}
	return &Collector{
		startTime: time.Now(),
		cacheSize: cacheSize,
		evictions: evictions,
		dropped:   dropped,
		panels:    panels,
	}
}

// RecordEvent counts one classified lifecycle event.
func (c *Collector) RecordEvent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventsSeen++
	c.window = append(c.window, time.Now())
}

// RecordMatch counts one request whose payload produced results.
func (c *Collector) RecordMatch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matched++
}

// RecordBroadcast counts one delivered result message.
func (c *Collector) RecordBroadcast() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.broadcasts++
}

// RecordParseFailure counts one body that failed JSON decoding.
func (c *Collector) RecordParseFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parseFails++
}

// Matched returns the matched-request counter (the status requestCounter).
func (c *Collector) Matched() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.matched
}

// Snapshot returns the current metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	cutoff := now.Add(-epsWindow)
	var recent int
	for _, ts := range c.window {
		if ts.After(cutoff) {
			recent++
		}
	}

	return Snapshot{
		Uptime:          time.Since(c.startTime).Truncate(time.Second).String(),
		EventsSeen:      c.eventsSeen,
		MatchedRequests: c.matched,
		Broadcasts:      c.broadcasts,
		ParseFailures:   c.parseFails,
		CacheSize:       c.cacheSize(),
		CacheEvictions:  c.evictions(),
		DroppedResults:  c.dropped(),
		EPS:             float64(recent) / epsWindow.Seconds(),
		Panels:          c.panels(),
	}
}

// Start periodically prunes the EPS window. Blocks until the context is
// cancelled.
func (c *Collector) Start(ctx context.Context) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.prune()
		}
	}
}

func (c *Collector) prune() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-epsWindow)
	i := 0
	for _, ts := range c.window {
		if ts.After(cutoff) {
			c.window[i] = ts
			i++
		}
	}
	c.window = c.window[:i]
}
