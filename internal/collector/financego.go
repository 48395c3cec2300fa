package collector

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"

	"StockCharts/internal/model"
)

// FinanceGoFetcher implements Fetcher on top of the piquette/finance-go
// chart iterator. Alternate source, selected by config.
type FinanceGoFetcher struct{}

// NewFinanceGoFetcher creates a new finance-go backed fetcher with the same
// bounded timeout the Yahoo fetcher uses.
func NewFinanceGoFetcher() *FinanceGoFetcher {
	finance.SetHTTPClient(&http.Client{Timeout: 30 * time.Second})
	return &FinanceGoFetcher{}
}

func (f *FinanceGoFetcher) Name() string { return "finance-go" }

// FetchHistory retrieves daily bars from 1990-01-01 (the UI minimum year)
// through today.
func (f *FinanceGoFetcher) FetchHistory(ctx context.Context, symbol string) ([]model.OHLCV, error) {
	start := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Now()
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)
	var bars []model.OHLCV
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := iter.Bar()
		o, _ := b.Open.Float64()
		h, _ := b.High.Float64()
		l, _ := b.Low.Float64()
		c, _ := b.Close.Float64()
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(int64(b.Timestamp), 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: float64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		// The iterator reports unknown symbols as a "Not Found" remote error;
		// translate that answer into zero bars.
		if strings.Contains(err.Error(), "Not Found") {
			return nil, nil
		}
		return nil, fmt.Errorf("finance-go fetch %s: %w", symbol, err)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
