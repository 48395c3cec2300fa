package model

import "time"

// PricePoint is one (date, close) observation of a series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries is an ordered close-price history for one symbol, strictly
// increasing by date, at most one point per calendar bucket of its
// granularity. It is immutable once returned; a re-fetch produces a fresh
// series instead of mutating an old one.
type PriceSeries struct {
	Symbol      string       `json:"symbol"`
	Granularity Granularity  `json:"granularity"`
	Points      []PricePoint `json:"points"`
	FetchedAt   time.Time    `json:"fetched_at"`
}

// FetchRequest describes one series fetch. A zero End means no upper bound.
type FetchRequest struct {
	Symbol      string
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

// TaggedPoint is a PricePoint tagged with its originating symbol, used when
// several symbols are combined for one chart.
type TaggedPoint struct {
	Date   time.Time `json:"date"`
	Symbol string    `json:"symbol"`
	Close  float64   `json:"close"`
}

// MAPoint is one moving-average value aligned with a daily series point.
// Valid is false while the trailing window is not yet full.
type MAPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Valid bool      `json:"valid"`
}
