package series

import (
	"time"

	"StockCharts/internal/model"
)

// Resample reduces a chronological daily series to at most one point per
// calendar bucket, keeping the last observed close in each bucket. The
// output point keeps the date of that last trading day; buckets with no
// rows produce nothing (no interpolation, no forward fill). Day granularity
// is a passthrough.
func Resample(points []model.PricePoint, g model.Granularity) []model.PricePoint {
	if g == model.Day || len(points) <= 1 {
		return points
	}
	out := make([]model.PricePoint, 0, len(points))
	var cur int64
	for i, p := range points {
		key := bucketKey(p.Date, g)
		if i == 0 || key != cur {
			out = append(out, p)
			cur = key
			continue
		}
		out[len(out)-1] = p
	}
	return out
}

// bucketKey identifies the calendar bucket a date falls in: ISO week
// (Monday through Sunday), calendar month, quarter, or year.
func bucketKey(t time.Time, g model.Granularity) int64 {
	switch g {
	case model.Week:
		y, w := t.ISOWeek()
		return int64(y)*100 + int64(w)
	case model.Month:
		return int64(t.Year())*100 + int64(t.Month())
	case model.Quarter:
		return int64(t.Year())*10 + int64(int(t.Month())-1)/3
	case model.Year:
		return int64(t.Year())
	default:
		return t.Unix()
	}
}
