package stats

import "testing"

func TestCounters(t *testing.T) {
	c := New(func() int { return 7 }, func() int64 { return 3 }, func() int64 { return 1 }, func() int { return 2 })

	for i := 0; i < 5; i++ {
		c.RecordEvent()
	}
	c.RecordMatch()
	c.RecordMatch()
	c.RecordBroadcast()
	c.RecordParseFailure()

	snap := c.Snapshot()
	if snap.EventsSeen != 5 {
		t.Errorf("expected 5 events, got %d", snap.EventsSeen)
	}
	if snap.MatchedRequests != 2 {
		t.Errorf("expected 2 matched, got %d", snap.MatchedRequests)
	}
	if snap.Broadcasts != 1 {
		t.Errorf("expected 1 broadcast, got %d", snap.Broadcasts)
	}
	if snap.ParseFailures != 1 {
		t.Errorf("expected 1 parse failure, got %d", snap.ParseFailures)
	}
	if snap.CacheSize != 7 || snap.CacheEvictions != 3 || snap.DroppedResults != 1 || snap.Panels != 2 {
		t.Errorf("gauge callbacks not reflected: %+v", snap)
	}
	if snap.EPS <= 0 {
		t.Errorf("expected positive EPS, got %f", snap.EPS)
	}

	if c.Matched() != 2 {
		t.Errorf("expected Matched()=2, got %d", c.Matched())
	}
}

func TestNilCallbacks(t *testing.T) {
	c := New(nil, nil, nil, nil)
	snap := c.Snapshot()
	if snap.CacheSize != 0 || snap.Panels != 0 {
		t.Errorf("expected zero gauges, got %+v", snap)
	}
}
