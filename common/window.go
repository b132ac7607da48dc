package common

import (
	"fmt"
	"time"

	"cafe-analytics/records"
)

const (
	MinWindow = 1
	MaxWindow = 30
)

// Window is an inclusive, anchor-ended range of days and the daily stats inside it.
type Window struct {
	Start time.Time
	End   time.Time
	Rows  []records.DailyStat
}

// ResolveWindow selects the daily stats of the window days ending at anchor. An
// empty anchor means the most recent date present in rows.
func ResolveWindow(rows []records.DailyStat, anchor string, window int) (Window, error) {
	if window < MinWindow || window > MaxWindow {
		return Window{}, fmt.Errorf("%w: %d, expected %d to %d", ErrInvalidWindow, window, MinWindow, MaxWindow)
	}

	var end time.Time
	if anchor != "" {
		parsed, err := ParseDate(anchor)
		if err != nil {
			return Window{}, err
		}
		end = parsed
	} else {
		latest, ok := LatestDate(rows)
		if !ok {
			return Window{}, ErrNoDataInRange
		}
		end = latest
	}

	w := SelectDays(rows, end, window)
	if len(w.Rows) == 0 {
		return w, fmt.Errorf("%w: %s to %s", ErrNoDataInRange, formatDate(w.Start), formatDate(w.End))
	}
	return w, nil
}

// SelectDays returns the rows dated within the days ending at end, without
// validating the length.
func SelectDays(rows []records.DailyStat, end time.Time, days int) Window {
	start := end.AddDate(0, 0, -(days - 1))
	w := Window{Start: start, End: end, Rows: make([]records.DailyStat, 0, days)}
	for _, row := range rows {
		if inRange(row.Date, start, end) {
			w.Rows = append(w.Rows, row)
		}
	}
	return w
}

// LatestDate returns the maximum date in rows.
func LatestDate(rows []records.DailyStat) (time.Time, bool) {
	if len(rows) == 0 {
		return time.Time{}, false
	}
	latest := rows[0].Date
	for _, row := range rows[1:] {
		if row.Date.After(latest) {
			latest = row.Date
		}
	}
	return latest, true
}
