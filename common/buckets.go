package common

import (
	"sort"
	"strconv"
	"time"

	"cafe-analytics/records"
)

// HourBucket is the sales of one hour of the day.
type HourBucket struct {
	Hour     int     `json:"hour"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
	Lines    int     `json:"lines"`
}

// HeatCell is the sales of one hour of one weekday.
type HeatCell struct {
	Day      string  `json:"day"`
	Hour     int     `json:"hour"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// weekdays in heatmap row order
var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

const hoursPerDay = 24

// HourlyBuckets returns the hours that have sales, ascending.
func HourlyBuckets(rows []records.SalesLine) []HourBucket {
	groups := newGroupedData(salesAggregations)
	for _, line := range rows {
		groups.add(strconv.Itoa(hourOf(line.Time)), float64(line.Quantity), line.LineTotal, 1)
	}

	buckets := make([]HourBucket, 0, len(groups.order))
	for _, key := range groups.order {
		hour, _ := strconv.Atoi(key)
		results := groups.results(key)
		buckets = append(buckets, HourBucket{
			Hour:     hour,
			Quantity: int(results[quantityIdx]),
			Revenue:  round2(results[revenueIdx]),
			Lines:    int(results[linesIdx]),
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Hour < buckets[j].Hour })
	return buckets
}

// Heatmap returns one cell per weekday and hour, Monday first, with zeros for the
// slots that had no sales.
func Heatmap(rows []records.SalesLine) []HeatCell {
	groups := newGroupedData(salesAggregations)
	for _, line := range rows {
		key := getGroupByKey(line.Date.Weekday().String(), strconv.Itoa(hourOf(line.Time)))
		groups.add(key, float64(line.Quantity), line.LineTotal, 1)
	}

	cells := make([]HeatCell, 0, len(weekdays)*hoursPerDay)
	for _, day := range weekdays {
		for hour := 0; hour < hoursPerDay; hour++ {
			cell := HeatCell{Day: day.String(), Hour: hour}
			if results := groups.results(getGroupByKey(day.String(), strconv.Itoa(hour))); results != nil {
				cell.Quantity = int(results[quantityIdx])
				cell.Revenue = round2(results[revenueIdx])
			}
			cells = append(cells, cell)
		}
	}
	return cells
}

// FilterSales keeps the lines dated within the optional bounds. Bounds that do not
// parse are ignored.
func FilterSales(rows []records.SalesLine, start, end string) []records.SalesLine {
	from, to := ParseBounds(start, end)
	if from.IsZero() && to.IsZero() {
		return rows
	}
	out := make([]records.SalesLine, 0)
	for _, line := range rows {
		if inRange(line.Date, from, to) {
			out = append(out, line)
		}
	}
	return out
}
