package cache

import (
	"path/filepath"
	"testing"
	"time"

	"StockCharts/internal/collector"
)

func newTestCache(t *testing.T) *SQLiteCache {
	t.Helper()
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	bars := collector.GenerateMockBars(100, 10)

	if _, ok := c.Get("GOOGL", time.Hour); ok {
		t.Fatal("expected miss on empty cache")
	}
	if err := c.Put("GOOGL", bars); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok := c.Get("GOOGL", time.Hour)
	if !ok {
		t.Fatal("expected hit after put")
	}
	if len(got) != len(bars) {
		t.Fatalf("expected %d bars, got %d", len(bars), len(got))
	}
	if got[0].Close != bars[0].Close || !got[0].Time.Equal(bars[0].Time) {
		t.Errorf("first bar corrupted: %+v != %+v", got[0], bars[0])
	}

	if _, ok := c.Get("NVDA", time.Hour); ok {
		t.Fatal("expected miss for a different symbol")
	}
}

func TestSQLiteCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	if err := c.Put("GOOGL", collector.GenerateMockBars(100, 5)); err != nil {
		t.Fatalf("put: %v", err)
	}

	time.Sleep(1100 * time.Millisecond) // fetched_at has second resolution
	if _, ok := c.Get("GOOGL", time.Second); ok {
		t.Fatal("expected miss once ttl elapsed")
	}
	if _, ok := c.Get("GOOGL", time.Hour); !ok {
		t.Fatal("entry should still be a hit under a longer ttl")
	}
}

func TestSQLiteCachePrune(t *testing.T) {
	c := newTestCache(t)
	if err := c.Put("GOOGL", collector.GenerateMockBars(100, 5)); err != nil {
		t.Fatalf("put: %v", err)
	}

	n, err := c.Prune(time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 0 {
		t.Fatalf("fresh entry pruned: %d", n)
	}

	time.Sleep(2100 * time.Millisecond) // past the 1s ttl even after unix truncation
	n, err = c.Prune(time.Second)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 pruned entry, got %d", n)
	}
	if _, ok := c.Get("GOOGL", time.Hour); ok {
		t.Fatal("entry should be gone after prune")
	}
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	n := NewNoopCache()
	if err := n.Put("GOOGL", collector.GenerateMockBars(100, 3)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := n.Get("GOOGL", time.Hour); ok {
		t.Fatal("noop cache must never hit")
	}
}
