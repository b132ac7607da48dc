package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cafe-analytics/common"
	"cafe-analytics/records"

	"github.com/labstack/echo/v4"
)

const (
	defaultDashboardPeriod = "7d"
	maxDashboardDays       = 365
	dashboardTopProducts   = 10
	dashboardTrendDays     = 14
)

type dashboardKPI struct {
	common.KPI
	PeakHour        *string  `json:"peak_hour"`
	PeakHourRevenue *float64 `json:"peak_hour_revenue"`
	AvgOrderDelta   *float64 `json:"avg_order_delta"`
}

type paymentEntry struct {
	Method     string  `json:"method"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

type dashboardResponse struct {
	Period              string              `json:"period"`
	StartDate           string              `json:"start_date"`
	EndDate             string              `json:"end_date"`
	KPI                 dashboardKPI        `json:"kpi"`
	TopProducts         []productEntry      `json:"top_products"`
	PaymentDistribution []paymentEntry      `json:"payment_distribution"`
	RevenueTrend        []common.TrendPoint `json:"revenue_trend"`
}

// parsePeriodDays reads a "<N>d" period.
func parsePeriodDays(period string) (int, error) {
	raw, ok := strings.CutSuffix(period, "d")
	days, err := strconv.Atoi(raw)
	if !ok || err != nil || days < 1 || days > maxDashboardDays {
		return 0, fmt.Errorf("%w: %q, expected <days>d with 1 to %d days", common.ErrInvalidPeriod, period, maxDashboardDays)
	}
	return days, nil
}

// dashboard composes the KPI, rankings, payment split, trend and peak hour of the
// last period days of data.
func (s *Server) dashboard(c echo.Context) error {
	period := c.QueryParam("period")
	if period == "" {
		period = defaultDashboardPeriod
	}
	days, err := parsePeriodDays(period)
	if err != nil {
		return err
	}

	daily := s.snapshot.DailyStats()
	end, ok := common.LatestDate(daily)
	if !ok {
		return fmt.Errorf("%w: no daily stats loaded", common.ErrNoDataInRange)
	}
	w := common.SelectDays(daily, end, days)
	if len(w.Rows) == 0 {
		return fmt.Errorf("%w: last %d days", common.ErrNoDataInRange, days)
	}
	sales := s.snapshot.SalesBetween(w.Start, w.End)

	kpi := dashboardKPI{
		KPI:           common.ComputeKPI(w.Rows),
		AvgOrderDelta: common.PeriodDelta(daily),
	}
	if peak, ok := common.PeakHour(sales); ok {
		label := fmt.Sprintf("%02d:00", peak.Hour)
		revenue := peak.Revenue
		kpi.PeakHour = &label
		kpi.PeakHourRevenue = &revenue
	}

	shares := common.RevenueShare(sales, common.GroupByPaymentMethod)
	payments := make([]paymentEntry, 0, len(shares))
	for _, sh := range shares {
		payments = append(payments, paymentEntry{
			Method:     sh.Key,
			Quantity:   sh.Quantity,
			Revenue:    sh.Revenue,
			Percentage: sh.Percentage,
		})
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Period:              period,
		StartDate:           w.Start.Format(records.DateLayout),
		EndDate:             w.End.Format(records.DateLayout),
		KPI:                 kpi,
		TopProducts:         toProducts(common.RankBy(sales, common.GroupByItem, common.MetricRevenue, dashboardTopProducts)),
		PaymentDistribution: payments,
		RevenueTrend:        common.RecentTrend(daily, dashboardTrendDays),
	})
}
