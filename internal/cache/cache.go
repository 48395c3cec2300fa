package cache

import (
	"time"

	"StockCharts/internal/model"
)

// Cache stores raw daily history per symbol so repeated plots do not hit the
// upstream source. Entries older than the ttl passed to Get are misses; the
// source's latest data changes daily, so correctness never depends on a hit.
type Cache interface {
	Get(symbol string, ttl time.Duration) ([]model.OHLCV, bool)
	Put(symbol string, bars []model.OHLCV) error
	Prune(ttl time.Duration) (int64, error)
	Close() error
}

// NoopCache is a no-op implementation used when no cache path is configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) Get(_ string, _ time.Duration) ([]model.OHLCV, bool) { return nil, false }
func (n *NoopCache) Put(_ string, _ []model.OHLCV) error                 { return nil }
func (n *NoopCache) Prune(_ time.Duration) (int64, error)                { return 0, nil }
func (n *NoopCache) Close() error                                        { return nil }
