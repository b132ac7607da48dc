package common

import (
	"strings"

	a "cafe-analytics/common/aggFunctions"
	dr "cafe-analytics/common/dataRetainer"
	"cafe-analytics/records"
)

type GroupKey string

const (
	GroupByItem          GroupKey = "item_name"
	GroupByPaymentMethod GroupKey = "payment_method"
	GroupByCategory      GroupKey = "category"
)

func (k GroupKey) of(line records.SalesLine) string {
	switch k {
	case GroupByPaymentMethod:
		return line.PaymentMethod
	case GroupByCategory:
		return line.Category
	default:
		return line.ItemName
	}
}

type Metric string

const (
	MetricQuantity Metric = "quantity"
	MetricRevenue  Metric = "revenue"
)

// indexes into the per-group aggregations
const (
	quantityIdx = iota
	revenueIdx
	linesIdx
)

var salesAggregations = []string{a.Sum, a.Sum, a.Count}

// Ranking is the total quantity and revenue of one group.
type Ranking struct {
	Key      string  `json:"key"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// Share is a Ranking plus the group's percentage of total revenue.
type Share struct {
	Ranking
	Percentage float64 `json:"percentage"`
}

// groupedData keeps the aggregations of each group and the order in which the
// groups were first seen.
type groupedData struct {
	order []string
	data  map[string][]a.Aggregation
	funcs []string
}

func newGroupedData(funcs []string) *groupedData {
	return &groupedData{data: make(map[string][]a.Aggregation), funcs: funcs}
}

func (g *groupedData) add(key string, values ...float64) {
	aggs, exists := g.data[key]
	if !exists {
		aggs = make([]a.Aggregation, len(g.funcs))
		for i, f := range g.funcs {
			aggs[i] = a.NewAggregation(f)
		}
		g.data[key] = aggs
		g.order = append(g.order, key)
	}
	for i := range aggs {
		aggs[i] = aggs[i].Add(values[i])
	}
}

func (g *groupedData) results(key string) []float64 {
	aggs, exists := g.data[key]
	if !exists {
		return nil
	}
	out := make([]float64, len(aggs))
	for i, agg := range aggs {
		out[i] = agg.Result()
	}
	return out
}

func groupSales(rows []records.SalesLine, key GroupKey) *groupedData {
	groups := newGroupedData(salesAggregations)
	for _, line := range rows {
		groups.add(key.of(line), float64(line.Quantity), line.LineTotal, 1)
	}
	return groups
}

// retainTop ranks every group by the given column, descending, keeping the first
// seen group ahead on ties.
func retainTop(groups *groupedData, valueIdx int, top int) []dr.Entry[float64] {
	topValues := dr.NewTopN[float64](top, true)
	for seq, key := range groups.order {
		results := groups.results(key)
		topValues.Insert(dr.Entry[float64]{
			Key:     key,
			Seq:     seq,
			Value:   results[valueIdx],
			Payload: results,
		})
	}
	return topValues.Values()
}

func rankingFrom(e dr.Entry[float64]) Ranking {
	return Ranking{
		Key:      e.Key,
		Quantity: int(e.Payload[quantityIdx]),
		Revenue:  round2(e.Payload[revenueIdx]),
	}
}

// RankBy groups sales lines by key and returns the top groups by metric.
func RankBy(rows []records.SalesLine, key GroupKey, metric Metric, top int) []Ranking {
	rankings := make([]Ranking, 0)
	if len(rows) == 0 {
		return rankings
	}

	valueIdx := revenueIdx
	if metric == MetricQuantity {
		valueIdx = quantityIdx
	}

	groups := groupSales(rows, key)
	for _, entry := range retainTop(groups, valueIdx, top) {
		rankings = append(rankings, rankingFrom(entry))
	}
	return rankings
}

// RevenueShare returns every group by revenue, descending, with its share of the
// total revenue in percent.
func RevenueShare(rows []records.SalesLine, key GroupKey) []Share {
	shares := make([]Share, 0)
	if len(rows) == 0 {
		return shares
	}

	groups := groupSales(rows, key)
	grandTotal := 0.0
	for _, k := range groups.order {
		grandTotal += groups.results(k)[revenueIdx]
	}

	for _, entry := range retainTop(groups, revenueIdx, len(groups.order)) {
		share := Share{Ranking: rankingFrom(entry)}
		if grandTotal != 0 {
			share.Percentage = round2(entry.Payload[revenueIdx] / grandTotal * 100)
		}
		shares = append(shares, share)
	}
	return shares
}

// FilterCategory keeps the lines of the given category, ignoring case. An empty
// category keeps everything.
func FilterCategory(rows []records.SalesLine, category string) []records.SalesLine {
	if category == "" {
		return rows
	}
	out := make([]records.SalesLine, 0)
	for _, line := range rows {
		if strings.EqualFold(line.Category, category) {
			out = append(out, line)
		}
	}
	return out
}

// ItemPerformance is an item ranking enriched with menu costs.
type ItemPerformance struct {
	Ranking
	UnitCost    *float64 `json:"unit_cost"`
	GrossMargin *float64 `json:"gross_margin"`
	MarginPct   *float64 `json:"margin_pct"`
}

// WithMargins attaches the cost of goods from the menu to each item ranking.
// Items that are not on the menu keep nil margins.
func WithMargins(rankings []Ranking, menu []records.MenuItem) []ItemPerformance {
	costs := make(map[string]float64, len(menu))
	for _, item := range menu {
		costs[strings.ToLower(item.ItemName)] = item.CostToMake
	}

	out := make([]ItemPerformance, 0, len(rankings))
	for _, r := range rankings {
		perf := ItemPerformance{Ranking: r}
		if cost, ok := costs[strings.ToLower(r.Key)]; ok {
			unitCost := cost
			margin := round2(r.Revenue - float64(r.Quantity)*cost)
			perf.UnitCost = &unitCost
			perf.GrossMargin = &margin
			if r.Revenue != 0 {
				pct := round2(margin / r.Revenue * 100)
				perf.MarginPct = &pct
			}
		}
		out = append(out, perf)
	}
	return out
}
