package common

import (
	"cafe-analytics/records"

	"github.com/shopspring/decimal"
)

// KPI summarises a set of days. TotalTransactions is the summed customer count.
type KPI struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalTransactions int     `json:"total_transactions"`
	AvgOrderValue     float64 `json:"avg_order_value"`
}

// ComputeKPI sums revenue and customers and derives the average order value from
// the totals, so busy days weigh more than quiet ones.
func ComputeKPI(rows []records.DailyStat) KPI {
	revenue := decimal.Zero
	transactions := 0
	for _, row := range rows {
		revenue = revenue.Add(decimal.NewFromFloat(row.TotalRevenue))
		transactions += row.TotalCustomers
	}
	revenue = revenue.Round(2)

	kpi := KPI{
		TotalRevenue:      revenue.InexactFloat64(),
		TotalTransactions: transactions,
	}
	if transactions > 0 {
		kpi.AvgOrderValue = revenue.Div(decimal.NewFromInt(int64(transactions))).Round(2).InexactFloat64()
	}
	return kpi
}

// SalesTotal sums line totals across sales lines.
func SalesTotal(lines []records.SalesLine) float64 {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(decimal.NewFromFloat(line.LineTotal))
	}
	return total.Round(2).InexactFloat64()
}
