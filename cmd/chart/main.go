// Command chart is the one-shot front-end: fetch, resample and print price
// series for a handful of tickers.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"StockCharts/internal/collector"
	"StockCharts/internal/model"
	"StockCharts/internal/series"
)

// minYear is the earliest selectable start year, matching the web front-end.
const minYear = 1990

func main() {
	log.SetFlags(0)

	var (
		symbolsFlag  = flag.String("symbols", "GOOGL,NVDA", "comma-separated ticker symbols")
		startFlag    = flag.Int("start", time.Now().Year()-5, "start year (>= 1990)")
		endFlag      = flag.Int("end", 0, "end year, 0 for no upper bound")
		intervalFlag = flag.String("interval", "day", "day, week, month, quarter or year")
		maFlag       = flag.Bool("ma", false, "include the 200-day moving average (daily interval only)")
		formatFlag   = flag.String("format", "table", "output format: table, csv or json")
		providerFlag = flag.String("provider", "yahoo", "data source: yahoo, finance-go or mock")
		proxyFlag    = flag.String("proxy", os.Getenv("HTTPS_PROXY"), "HTTPS proxy URL")
	)
	flag.Parse()

	g, err := model.ParseGranularity(*intervalFlag)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	symbols := splitSymbols(*symbolsFlag)
	if len(symbols) == 0 {
		log.Fatal("[FATAL] no symbols given")
	}

	startYear := *startFlag
	if startYear < minYear {
		startYear = minYear
	}
	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	var end time.Time
	if *endFlag > 0 {
		end = time.Date(*endFlag, time.December, 31, 23, 59, 59, 0, time.UTC)
		if end.Before(start) {
			log.Fatal("[FATAL] end year before start year")
		}
	}

	var fetcher collector.Fetcher
	switch *providerFlag {
	case "yahoo":
		fetcher = collector.NewYahooFetcher(*proxyFlag)
	case "finance-go":
		fetcher = collector.NewFinanceGoFetcher()
	case "mock":
		fetcher = &collector.MockFetcher{}
	default:
		log.Fatalf("[FATAL] unknown provider %q", *providerFlag)
	}

	pipeline := series.NewPipeline(fetcher, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	results, errs := pipeline.FetchAll(ctx, symbols, start, end, g)

	// Report failures per symbol; the successes still print below.
	for _, sym := range symbols {
		if err, ok := errs[sym]; ok {
			fmt.Fprintln(os.Stderr, describe(sym, err))
		}
	}
	if len(results) == 0 {
		os.Exit(1)
	}

	ordered := make([]*model.PriceSeries, 0, len(results))
	for _, sym := range symbols {
		if ps, ok := results[sym]; ok {
			ordered = append(ordered, ps)
		}
	}
	points := series.Align(ordered...)

	var ma map[string][]model.MAPoint
	if *maFlag && g == model.Day {
		ma = make(map[string][]model.MAPoint, len(ordered))
		for _, ps := range ordered {
			ma[ps.Symbol] = series.MovingAverage(ps.Points, series.DefaultMAWindow)
		}
	}

	switch *formatFlag {
	case "table":
		printTable(points, ma)
	case "csv":
		printCSV(points)
	case "json":
		printJSON(g, points, ma)
	default:
		log.Fatalf("[FATAL] unknown format %q", *formatFlag)
	}
}

func describe(symbol string, err error) string {
	var fe *series.FetchError
	switch {
	case errors.Is(err, series.ErrSymbolNotFound):
		return fmt.Sprintf("%s: unknown symbol, no data found", symbol)
	case errors.Is(err, series.ErrNoDataInRange):
		return fmt.Sprintf("%s: no data in the selected range, try an earlier start year", symbol)
	case errors.As(err, &fe):
		return fmt.Sprintf("%s: fetch failed: %v (check your connection)", symbol, fe.Err)
	default:
		return fmt.Sprintf("%s: %v", symbol, err)
	}
}

func printTable(points []model.TaggedPoint, ma map[string][]model.MAPoint) {
	maByKey := make(map[string]float64)
	for sym, seq := range ma {
		for _, p := range seq {
			if p.Valid {
				maByKey[sym+p.Date.Format("2006-01-02")] = p.Value
			}
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if len(ma) > 0 {
		fmt.Fprintln(w, "DATE\tSYMBOL\tCLOSE\tMA200")
	} else {
		fmt.Fprintln(w, "DATE\tSYMBOL\tCLOSE")
	}
	for _, p := range points {
		date := p.Date.Format("2006-01-02")
		if len(ma) > 0 {
			maCol := "-"
			if v, ok := maByKey[p.Symbol+date]; ok {
				maCol = strconv.FormatFloat(v, 'f', 2, 64)
			}
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", date, p.Symbol, p.Close, maCol)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%.2f\n", date, p.Symbol, p.Close)
		}
	}
	w.Flush()
}

func printCSV(points []model.TaggedPoint) {
	w := csv.NewWriter(os.Stdout)
	w.Write([]string{"date", "symbol", "close"})
	for _, p := range points {
		w.Write([]string{
			p.Date.Format("2006-01-02"),
			p.Symbol,
			strconv.FormatFloat(p.Close, 'f', -1, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("[FATAL] write csv: %v", err)
	}
}

func printJSON(g model.Granularity, points []model.TaggedPoint, ma map[string][]model.MAPoint) {
	out := struct {
		Interval model.Granularity          `json:"interval"`
		Points   []model.TaggedPoint        `json:"points"`
		MA       map[string][]model.MAPoint `json:"ma,omitempty"`
	}{Interval: g, Points: points, MA: ma}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("[FATAL] encode json: %v", err)
	}
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
