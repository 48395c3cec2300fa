package series

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"StockCharts/internal/cache"
	"StockCharts/internal/collector"
	"StockCharts/internal/model"
)

// Pipeline turns raw daily history from a Fetcher into filtered, resampled
// close-price series. It holds no mutable state of its own; every call
// returns a freshly allocated result, so callers replace rather than mutate
// previous results. The cache is optional and only ever a shortcut.
type Pipeline struct {
	Fetcher collector.Fetcher
	Cache   cache.Cache
	TTL     time.Duration
}

// NewPipeline creates a Pipeline. cache may be nil to disable caching.
func NewPipeline(f collector.Fetcher, c cache.Cache, ttl time.Duration) *Pipeline {
	return &Pipeline{Fetcher: f, Cache: c, TTL: ttl}
}

// Fetch retrieves the full daily history for req.Symbol, filters it to
// [req.Start, req.End] (a zero End means no upper bound) and resamples it to
// req.Granularity. Failures are distinguishable at the call site:
// ErrSymbolNotFound, ErrNoDataInRange, or a *FetchError wrapping the cause.
func (p *Pipeline) Fetch(ctx context.Context, req model.FetchRequest) (*model.PriceSeries, error) {
	bars, err := p.history(ctx, req.Symbol)
	if err != nil {
		return nil, &FetchError{Symbol: req.Symbol, Err: err}
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", req.Symbol, ErrSymbolNotFound)
	}

	points := filterRange(bars, req.Start, req.End)
	if len(points) == 0 {
		return nil, fmt.Errorf("%s: %w", req.Symbol, ErrNoDataInRange)
	}

	return &model.PriceSeries{
		Symbol:      req.Symbol,
		Granularity: req.Granularity,
		Points:      Resample(points, req.Granularity),
		FetchedAt:   time.Now(),
	}, nil
}

// FetchAll runs Fetch for each symbol independently and reports failures per
// symbol: one failing ticker never suppresses the ones that succeeded. The
// maps are keyed by symbol, so the outcome does not depend on fetch order.
func (p *Pipeline) FetchAll(ctx context.Context, symbols []string, start, end time.Time, g model.Granularity) (map[string]*model.PriceSeries, map[string]error) {
	results := make(map[string]*model.PriceSeries, len(symbols))
	errs := make(map[string]error)
	for _, sym := range symbols {
		s, err := p.Fetch(ctx, model.FetchRequest{Symbol: sym, Start: start, End: end, Granularity: g})
		if err != nil {
			errs[sym] = err
			continue
		}
		results[sym] = s
	}
	return results, errs
}

func (p *Pipeline) history(ctx context.Context, symbol string) ([]model.OHLCV, error) {
	if p.Cache != nil {
		if bars, ok := p.Cache.Get(symbol, p.TTL); ok {
			return bars, nil
		}
	}
	bars, err := p.Fetcher.FetchHistory(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if p.Cache != nil && len(bars) > 0 {
		if err := p.Cache.Put(symbol, bars); err != nil {
			log.Printf("[WARN] cache put %s: %v", symbol, err)
		}
	}
	return bars, nil
}

// filterRange keeps bars with start <= date <= end, projected down to
// (date, close) points in chronological order.
func filterRange(bars []model.OHLCV, start, end time.Time) []model.PricePoint {
	points := make([]model.PricePoint, 0, len(bars))
	for _, b := range bars {
		if b.Time.Before(start) {
			continue
		}
		if !end.IsZero() && b.Time.After(end) {
			continue
		}
		points = append(points, model.PricePoint{Date: b.Time, Close: b.Close})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}
