package series

import "testing"

func TestMovingAverageValues(t *testing.T) {
	points := tradingDays(2023)[:5]
	for i := range points {
		points[i].Close = float64(i + 1) // 1..5
	}

	out := MovingAverage(points, 3)
	if len(out) != len(points) {
		t.Fatalf("overlay must align 1:1: %d != %d", len(out), len(points))
	}
	for i := 0; i < 2; i++ {
		if out[i].Valid {
			t.Errorf("point %d: expected absent value before window fills", i)
		}
	}
	want := []float64{2, 3, 4} // means of (1,2,3), (2,3,4), (3,4,5)
	for i, w := range want {
		p := out[i+2]
		if !p.Valid || p.Value != w {
			t.Errorf("point %d: expected %v, got %+v", i+2, w, p)
		}
		if !p.Date.Equal(points[i+2].Date) {
			t.Errorf("point %d: date misaligned", i+2)
		}
	}
}

func TestMovingAveragePresentCount(t *testing.T) {
	cases := []struct {
		n, window, want int
	}{
		{260, 200, 61},
		{199, 200, 0},
		{200, 200, 1},
		{5, 1, 5},
	}
	for _, c := range cases {
		points := tradingDays(2023)
		if len(points) < c.n {
			t.Fatalf("not enough generated points for case %+v", c)
		}
		out := MovingAverage(points[:c.n], c.window)
		present := 0
		for _, p := range out {
			if p.Valid {
				present++
			}
		}
		if present != c.want {
			t.Errorf("n=%d window=%d: expected %d present values, got %d", c.n, c.window, c.want, present)
		}
	}
}

func TestMovingAverageDegenerate(t *testing.T) {
	if out := MovingAverage(nil, 200); out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
	if out := MovingAverage(tradingDays(2023)[:10], 0); out != nil {
		t.Errorf("expected nil for non-positive window, got %v", out)
	}
}
