package common_test

import (
	"time"

	"cafe-analytics/records"
)

func date(s string) time.Time {
	t, err := time.Parse(records.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func day(d string, revenue float64, customers int) records.DailyStat {
	return records.DailyStat{Date: date(d), TotalRevenue: revenue, TotalCustomers: customers}
}

func dayWithAvg(d string, avg float64) records.DailyStat {
	return records.DailyStat{Date: date(d), AvgOrderValue: avg}
}

func line(d, tm, item string, qty int, total float64, payment string) records.SalesLine {
	return records.SalesLine{
		Date:          date(d),
		Time:          tm,
		ItemName:      item,
		Quantity:      qty,
		LineTotal:     total,
		PaymentMethod: payment,
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
