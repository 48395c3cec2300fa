package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockCharts/internal/collector"
	"StockCharts/internal/model"
)

type recordingCache struct {
	puts map[string]int
}

func (r *recordingCache) Get(_ string, _ time.Duration) ([]model.OHLCV, bool) { return nil, false }
func (r *recordingCache) Put(symbol string, _ []model.OHLCV) error {
	r.puts[symbol]++
	return nil
}
func (r *recordingCache) Prune(_ time.Duration) (int64, error) { return 0, nil }
func (r *recordingCache) Close() error                         { return nil }

func TestRefreshTaskWarmsCache(t *testing.T) {
	fetcher := &collector.MockFetcher{
		History: map[string][]model.OHLCV{
			"GOOGL": collector.GenerateMockBars(100, 10),
			"NVDA":  collector.GenerateMockBars(400, 10),
		},
		Errs: map[string]error{"TSLA": errors.New("timeout")},
	}
	rc := &recordingCache{puts: make(map[string]int)}

	s := NewScheduler(context.Background(), fetcher, rc, []string{"GOOGL", "NVDA", "TSLA", "BOGUS"}, time.Hour)
	s.RunRefreshNow()

	if rc.puts["GOOGL"] != 1 || rc.puts["NVDA"] != 1 {
		t.Errorf("expected one put per healthy symbol, got %v", rc.puts)
	}
	// Failed and unknown symbols must not write empty entries.
	if rc.puts["TSLA"] != 0 || rc.puts["BOGUS"] != 0 {
		t.Errorf("unexpected puts for failing symbols: %v", rc.puts)
	}
}

func TestRegisterAllRejectsBadSpec(t *testing.T) {
	s := NewScheduler(context.Background(), &collector.MockFetcher{}, &recordingCache{puts: map[string]int{}}, nil, time.Hour)
	if err := s.RegisterAll("not a cron spec", "0 0 23 * * *"); err == nil {
		t.Fatal("expected error for malformed cron spec")
	}
	if err := s.RegisterAll("0 30 22 * * 1-5", "0 0 23 * * *"); err != nil {
		t.Fatalf("valid specs rejected: %v", err)
	}
}
