package series

import (
	"sort"

	"StockCharts/internal/model"
)

// Align merges several symbols' series into one sequence of tagged points,
// sorted by date then symbol. Each symbol contributes only its own observed
// points; symbols with different trading calendars are not gap-filled
// against each other. The result is independent of input order.
func Align(seriesList ...*model.PriceSeries) []model.TaggedPoint {
	total := 0
	for _, s := range seriesList {
		if s != nil {
			total += len(s.Points)
		}
	}
	out := make([]model.TaggedPoint, 0, total)
	for _, s := range seriesList {
		if s == nil {
			continue
		}
		for _, p := range s.Points {
			out = append(out, model.TaggedPoint{Date: p.Date, Symbol: s.Symbol, Close: p.Close})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}
