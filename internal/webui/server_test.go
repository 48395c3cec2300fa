package webui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"StockCharts/internal/collector"
	"StockCharts/internal/model"
	"StockCharts/internal/series"
)

func weekdayBars(year, count int, base float64) []model.OHLCV {
	var bars []model.OHLCV
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for len(bars) < count {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			p := base + float64(len(bars))
			bars = append(bars, model.OHLCV{Time: d, Open: p, High: p, Low: p, Close: p, Volume: 1000})
		}
		d = d.AddDate(0, 0, 1)
	}
	return bars
}

func newTestServer(fetcher collector.Fetcher) *Server {
	p := series.NewPipeline(fetcher, nil, 0)
	return NewServer(p, []string{"GOOGL", "NVDA"}, 3)
}

func doRequest(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", url, nil)
	rr := httptest.NewRecorder()
	s.Routes().ServeHTTP(rr, req)
	return rr
}

func TestSeriesEndpoint(t *testing.T) {
	s := newTestServer(&collector.MockFetcher{
		History: map[string][]model.OHLCV{
			"GOOGL": weekdayBars(2023, 200, 100),
			"NVDA":  weekdayBars(2023, 180, 400),
		},
	})

	rr := doRequest(t, s, "/api/series?symbols=GOOGL,NVDA&start=2023&interval=day")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Interval string              `json:"interval"`
		Points   []model.TaggedPoint `json:"points"`
		Errors   map[string]string   `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Interval != "day" {
		t.Errorf("interval: %s", resp.Interval)
	}
	if len(resp.Points) != 380 {
		t.Errorf("expected 380 tagged points, got %d", len(resp.Points))
	}
	if len(resp.Errors) != 0 {
		t.Errorf("unexpected errors: %v", resp.Errors)
	}
}

func TestSeriesPartialFailure(t *testing.T) {
	s := newTestServer(&collector.MockFetcher{
		History: map[string][]model.OHLCV{"GOOGL": weekdayBars(2023, 50, 100)},
		Errs:    map[string]error{"NVDA": errors.New("timeout")},
	})

	rr := doRequest(t, s, "/api/series?symbols=GOOGL,NVDA,BOGUS&start=2023")
	if rr.Code != http.StatusOK {
		t.Fatalf("partial failure must still render: status %d", rr.Code)
	}

	var resp struct {
		Points []model.TaggedPoint `json:"points"`
		Errors map[string]string   `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Points) != 50 {
		t.Errorf("expected GOOGL's 50 points, got %d", len(resp.Points))
	}
	if !strings.Contains(resp.Errors["NVDA"], "check your connection") {
		t.Errorf("NVDA message should read as a fetch failure: %q", resp.Errors["NVDA"])
	}
	if !strings.Contains(resp.Errors["BOGUS"], "check the symbol") {
		t.Errorf("BOGUS message should read as an unknown symbol: %q", resp.Errors["BOGUS"])
	}
}

func TestSeriesMovingAverageOnlyDaily(t *testing.T) {
	s := newTestServer(&collector.MockFetcher{
		History: map[string][]model.OHLCV{"GOOGL": weekdayBars(2023, 250, 100)},
	})

	rr := doRequest(t, s, "/api/series?symbols=GOOGL&start=2023&interval=day&ma=true")
	var daily struct {
		MA map[string][]model.MAPoint `json:"ma"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &daily); err != nil {
		t.Fatalf("decode: %v", err)
	}
	ma := daily.MA["GOOGL"]
	if len(ma) != 250 {
		t.Fatalf("expected overlay aligned with 250 points, got %d", len(ma))
	}
	present := 0
	for _, p := range ma {
		if p.Valid {
			present++
		}
	}
	if present != 51 {
		t.Errorf("expected 51 present values (250-200+1), got %d", present)
	}

	rr = doRequest(t, s, "/api/series?symbols=GOOGL&start=2023&interval=week&ma=true")
	var weekly struct {
		MA map[string][]model.MAPoint `json:"ma"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &weekly); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(weekly.MA) != 0 {
		t.Error("moving average must not be computed for non-daily granularities")
	}
}

func TestSeriesRejectsBadParams(t *testing.T) {
	s := newTestServer(&collector.MockFetcher{})

	for _, url := range []string{
		"/api/series?interval=fortnight",
		"/api/series?start=banana",
		"/api/series?start=2024&end=2020",
	} {
		if rr := doRequest(t, s, url); rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", url, rr.Code)
		}
	}
}

func TestSeriesCapsSymbolCount(t *testing.T) {
	fetcher := &collector.MockFetcher{History: map[string][]model.OHLCV{
		"A": weekdayBars(2023, 10, 1),
		"B": weekdayBars(2023, 10, 2),
		"C": weekdayBars(2023, 10, 3),
		"D": weekdayBars(2023, 10, 4),
	}}
	s := newTestServer(fetcher)

	rr := doRequest(t, s, "/api/series?symbols=A,B,C,D&start=2023")
	var resp struct {
		Points []model.TaggedPoint `json:"points"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Points) != 30 {
		t.Errorf("expected 3 symbols * 10 points after capping, got %d", len(resp.Points))
	}
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(&collector.MockFetcher{})
	rr := doRequest(t, s, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "GOOGL,NVDA") {
		t.Error("default symbols missing from page")
	}
	if !strings.Contains(body, "Quarter") {
		t.Error("interval options missing from page")
	}
}
