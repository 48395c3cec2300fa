package collector

import (
	"context"

	"StockCharts/internal/model"
)

// Fetcher retrieves the maximum available daily price history for a symbol.
// A nil error with zero bars means the source answered and knows no such
// symbol; a non-nil error means the fetch itself failed (network, decode,
// rate limit) and carries the underlying cause.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string) ([]model.OHLCV, error)
	Name() string
}
