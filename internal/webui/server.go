package webui

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"StockCharts/internal/model"
	"StockCharts/internal/series"
)

// MinYear is the earliest selectable start year; older history is noisy and
// the original charts never reached past it.
const MinYear = 1990

// Server exposes the chart page and the JSON series API. It owns all
// presentation state; the pipeline underneath is stateless.
type Server struct {
	Pipeline   *series.Pipeline
	Symbols    []string // default symbols for the chart page
	MaxSymbols int
}

// NewServer creates a Server with the given default symbols.
func NewServer(p *series.Pipeline, symbols []string, maxSymbols int) *Server {
	return &Server{Pipeline: p, Symbols: symbols, MaxSymbols: maxSymbols}
}

// Routes returns the HTTP mux for the web UI.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/series", s.handleSeries)
	return mux
}

// seriesResponse is the plain-data payload the chart page renders.
type seriesResponse struct {
	Interval model.Granularity          `json:"interval"`
	Points   []model.TaggedPoint        `json:"points"`
	MA       map[string][]model.MAPoint `json:"ma,omitempty"`
	Errors   map[string]string          `json:"errors,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	now := time.Now().Year()
	data := indexData{
		Symbols:   strings.Join(s.Symbols, ","),
		MinYear:   MinYear,
		MaxYear:   now,
		StartYear: now - 5,
		EndYear:   now,
		Intervals: []string{"Day", "Week", "Month", "Quarter", "Year"},
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("[ERROR] render index: %v", err)
	}
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	symbols := s.Symbols
	if v := q.Get("symbols"); v != "" {
		symbols = nil
		for _, part := range strings.Split(v, ",") {
			if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
				symbols = append(symbols, part)
			}
		}
	}
	if len(symbols) == 0 {
		http.Error(w, "no symbols given", http.StatusBadRequest)
		return
	}
	if len(symbols) > s.MaxSymbols {
		symbols = symbols[:s.MaxSymbols]
	}

	g := model.Day
	if v := q.Get("interval"); v != "" {
		parsed, err := model.ParseGranularity(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		g = parsed
	}

	startYear := time.Now().Year() - 5
	if v := q.Get("start"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "bad start year", http.StatusBadRequest)
			return
		}
		startYear = y
	}
	if startYear < MinYear {
		startYear = MinYear
	}
	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)

	var end time.Time
	if v := q.Get("end"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "bad end year", http.StatusBadRequest)
			return
		}
		end = time.Date(y, time.December, 31, 23, 59, 59, 0, time.UTC)
		if end.Before(start) {
			http.Error(w, "end year before start year", http.StatusBadRequest)
			return
		}
	}

	withMA := q.Get("ma") == "true" || q.Get("ma") == "1"

	results, errs := s.Pipeline.FetchAll(r.Context(), symbols, start, end, g)

	resp := seriesResponse{Interval: g}
	ordered := make([]*model.PriceSeries, 0, len(symbols))
	for _, sym := range symbols {
		if ps, ok := results[sym]; ok {
			ordered = append(ordered, ps)
		}
	}
	resp.Points = series.Align(ordered...)

	// The overlay only makes sense on daily data.
	if withMA && g == model.Day {
		resp.MA = make(map[string][]model.MAPoint, len(ordered))
		for _, ps := range ordered {
			resp.MA[ps.Symbol] = series.MovingAverage(ps.Points, series.DefaultMAWindow)
		}
	}

	if len(errs) > 0 {
		resp.Errors = make(map[string]string, len(errs))
		for sym, err := range errs {
			resp.Errors[sym] = userMessage(sym, err)
			log.Printf("[WARN] fetch %s: %v", sym, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[ERROR] encode series response: %v", err)
	}
}

// userMessage turns a pipeline error into a message the page can show; the
// three failure kinds read differently so the user knows what to change.
func userMessage(symbol string, err error) string {
	var fe *series.FetchError
	switch {
	case errors.Is(err, series.ErrSymbolNotFound):
		return fmt.Sprintf("no data found for %s, check the symbol", symbol)
	case errors.Is(err, series.ErrNoDataInRange):
		return fmt.Sprintf("no %s data in the selected range, try an earlier year", symbol)
	case errors.As(err, &fe):
		return fmt.Sprintf("fetching %s failed (%v), check your connection and try again", symbol, fe.Err)
	default:
		return err.Error()
	}
}
