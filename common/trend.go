package common

import (
	"fmt"
	"sort"
	"time"

	a "cafe-analytics/common/aggFunctions"
	"cafe-analytics/records"
)

// TrendPoint is the revenue of one day, or of the first day of a week or month.
type TrendPoint struct {
	Date         string  `json:"date"`
	TotalRevenue float64 `json:"total_revenue"`
}

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Peak is the busiest hour by quantity sold.
type Peak struct {
	Hour     int
	Quantity int
	Revenue  float64
}

func sortedByDate(rows []records.DailyStat) []records.DailyStat {
	sorted := make([]records.DailyStat, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}

// RecentTrend returns the revenue of the last count days, oldest first.
func RecentTrend(rows []records.DailyStat, count int) []TrendPoint {
	points := make([]TrendPoint, 0)
	if count <= 0 {
		return points
	}
	sorted := sortedByDate(rows)
	if count < len(sorted) {
		sorted = sorted[len(sorted)-count:]
	}
	for _, row := range sorted {
		points = append(points, TrendPoint{Date: formatDate(row.Date), TotalRevenue: row.TotalRevenue})
	}
	return points
}

// PeriodDelta is the percent change of the average order value between the two
// most recent days. It is nil when there is nothing to compare against.
func PeriodDelta(rows []records.DailyStat) *float64 {
	if len(rows) < 2 {
		return nil
	}
	sorted := sortedByDate(rows)
	prev := sorted[len(sorted)-2].AvgOrderValue
	last := sorted[len(sorted)-1].AvgOrderValue
	if prev == 0 {
		return nil
	}
	delta := round2((last - prev) / prev * 100)
	return &delta
}

// PeakHour returns the hour with the highest quantity sold. The earliest hour wins
// ties.
func PeakHour(lines []records.SalesLine) (Peak, bool) {
	buckets := HourlyBuckets(lines)
	if len(buckets) == 0 {
		return Peak{}, false
	}
	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.Quantity > best.Quantity {
			best = b
		}
	}
	return Peak{Hour: best.Hour, Quantity: best.Quantity, Revenue: best.Revenue}, true
}

func periodStart(t time.Time, period Period) time.Time {
	switch period {
	case PeriodWeekly:
		offset := (int(t.Weekday()) + 6) % 7
		return t.AddDate(0, 0, -offset)
	case PeriodMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return t
	}
}

// RevenueByPeriod sums revenue per day, ISO week (keyed by its Monday) or calendar
// month (keyed by its first day), oldest first.
func RevenueByPeriod(rows []records.DailyStat, period Period) ([]TrendPoint, error) {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
	default:
		return nil, fmt.Errorf("%w: %q, expected daily, weekly or monthly", ErrInvalidPeriod, period)
	}

	groups := newGroupedData([]string{a.Sum})
	for _, row := range sortedByDate(rows) {
		groups.add(formatDate(periodStart(row.Date, period)), row.TotalRevenue)
	}

	points := make([]TrendPoint, 0, len(groups.order))
	for _, key := range groups.order {
		points = append(points, TrendPoint{Date: key, TotalRevenue: round2(groups.results(key)[0])})
	}
	return points, nil
}

// FilterDaily keeps the days within the optional bounds and rejects malformed ones.
func FilterDaily(rows []records.DailyStat, start, end string) ([]records.DailyStat, error) {
	from, to, err := ParseBoundsStrict(start, end)
	if err != nil {
		return nil, err
	}
	out := make([]records.DailyStat, 0, len(rows))
	for _, row := range rows {
		if inRange(row.Date, from, to) {
			out = append(out, row)
		}
	}
	return out, nil
}
