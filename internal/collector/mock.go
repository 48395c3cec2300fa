package collector

import (
	"context"
	"time"

	"StockCharts/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// With History set, a symbol missing from the map behaves like an unknown
// ticker (zero bars); with History nil, every symbol yields generated bars.
type MockFetcher struct {
	History map[string][]model.OHLCV
	Errs    map[string]error
	Base    float64
	Days    int
	Calls   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string) ([]model.OHLCV, error) {
	m.Calls++
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if m.History != nil {
		return m.History[symbol], nil
	}
	days := m.Days
	if days == 0 {
		days = 500
	}
	base := m.Base
	if base == 0 {
		base = 100
	}
	return GenerateMockBars(base, days), nil
}

// GenerateMockBars produces count synthetic weekday bars ending today, with a
// mild linear drift around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, 0, count)
	day := time.Now().UTC().Truncate(24 * time.Hour)
	for len(bars) < count {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			bars = append(bars, model.OHLCV{Time: day})
		}
		day = day.AddDate(0, 0, -1)
	}
	// Reverse into chronological order and price oldest to newest.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	for i := range bars {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i].Open = p * 0.999
		bars[i].High = p * 1.005
		bars[i].Low = p * 0.995
		bars[i].Close = p
		bars[i].Volume = 1000000
	}
	return bars
}
