package series

import "StockCharts/internal/model"

// DefaultMAWindow is the trailing window of the standard overlay (200
// trading days).
const DefaultMAWindow = 200

// MovingAverage computes a trailing simple moving average aligned 1:1 with
// the input: the point at index i averages the closes at [i-window+1, i],
// and is marked not Valid while the window is not yet full. Meaningful only
// on daily series; callers do not compute it for coarser granularities.
func MovingAverage(points []model.PricePoint, window int) []model.MAPoint {
	if window <= 0 || len(points) == 0 {
		return nil
	}
	out := make([]model.MAPoint, len(points))
	sum := 0.0
	for i, p := range points {
		sum += p.Close
		if i >= window {
			sum -= points[i-window].Close
		}
		out[i] = model.MAPoint{Date: p.Date}
		if i >= window-1 {
			out[i].Value = sum / float64(window)
			out[i].Valid = true
		}
	}
	return out
}
