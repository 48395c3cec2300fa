package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockCharts/internal/cache"
	"StockCharts/internal/collector"

	"github.com/robfig/cron/v3"
)

// Scheduler keeps the history cache warm: a refresh job re-fetches the
// configured symbols (the source's latest bars change daily) and a prune job
// drops expired entries. Plots still work without it; a cold cache just means
// the first request pays for the fetch.
type Scheduler struct {
	Cron    *cron.Cron
	Fetcher collector.Fetcher
	Cache   cache.Cache
	Symbols []string
	TTL     time.Duration
	Ctx     context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, f collector.Fetcher, c cache.Cache, symbols []string, ttl time.Duration) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Fetcher: f,
		Cache:   c,
		Symbols: symbols,
		TTL:     ttl,
		Ctx:     ctx,
	}
}

// RegisterAll registers the refresh and prune tasks.
func (s *Scheduler) RegisterAll(refreshCron, pruneCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(pruneCron, s.pruneTask); err != nil {
		return fmt.Errorf("register prune task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (for RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Printf("[INFO] refreshing history cache for %d symbols", len(s.Symbols))
	for _, sym := range s.Symbols {
		ctx, cancel := context.WithTimeout(s.Ctx, time.Minute)
		bars, err := s.Fetcher.FetchHistory(ctx, sym)
		cancel()
		if err != nil {
			log.Printf("[WARN] refresh %s: %v", sym, err)
			continue
		}
		if len(bars) == 0 {
			log.Printf("[WARN] refresh %s: source returned no history", sym)
			continue
		}
		if err := s.Cache.Put(sym, bars); err != nil {
			log.Printf("[ERROR] cache put %s: %v", sym, err)
			continue
		}
		log.Printf("[INFO] refreshed %s: %d bars", sym, len(bars))
	}
}

func (s *Scheduler) pruneTask() {
	n, err := s.Cache.Prune(s.TTL)
	if err != nil {
		log.Printf("[ERROR] cache prune: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[INFO] pruned %d expired cache entries", n)
	}
}
