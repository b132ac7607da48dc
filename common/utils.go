package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cafe-analytics/records"

	"github.com/shopspring/decimal"
)

const KeyPartsSeparator = "|"

func getGroupByKey(parts ...string) string {
	return strings.Join(parts, KeyPartsSeparator)
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func round2(v float64) float64 { return round(v, 2) }

func round1(v float64) float64 { return round(v, 1) }

// ParseDate parses a YYYY-MM-DD query value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(records.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// parseBound returns the zero time for empty or unparsable bounds.
func parseBound(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := ParseDate(s)
	if err != nil {
		log.Debugf("Ignoring unparsable date bound %q", s)
		return time.Time{}
	}
	return t
}

// ParseBounds parses optional start and end dates, ignoring the ones that don't parse.
func ParseBounds(start, end string) (time.Time, time.Time) {
	return parseBound(start), parseBound(end)
}

// ParseBoundsStrict parses optional start and end dates and rejects malformed ones.
func ParseBoundsStrict(start, end string) (from time.Time, to time.Time, err error) {
	if start != "" {
		if from, err = ParseDate(start); err != nil {
			return
		}
	}
	if end != "" {
		to, err = ParseDate(end)
	}
	return
}

func inRange(t, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && t.After(end) {
		return false
	}
	return true
}

// hourOf extracts the hour from an HH:MM value. Anything unusable maps to hour 0.
func hourOf(timeOfDay string) int {
	hourPart, _, _ := strings.Cut(strings.TrimSpace(timeOfDay), ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0
	}
	return hour
}

func formatDate(t time.Time) string {
	return t.Format(records.DateLayout)
}
