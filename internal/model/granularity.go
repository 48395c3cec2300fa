package model

import (
	"fmt"
	"strings"
)

// Granularity is the calendar bucket size a daily series is resampled to.
type Granularity string

const (
	Day     Granularity = "day"
	Week    Granularity = "week"
	Month   Granularity = "month"
	Quarter Granularity = "quarter"
	Year    Granularity = "year"
)

// ParseGranularity maps a user-supplied interval name to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily", "d", "1d":
		return Day, nil
	case "week", "weekly", "w", "1wk":
		return Week, nil
	case "month", "monthly", "m", "1mo":
		return Month, nil
	case "quarter", "quarterly", "q", "3mo":
		return Quarter, nil
	case "year", "yearly", "y", "1y":
		return Year, nil
	}
	return "", fmt.Errorf("unknown interval %q", s)
}
