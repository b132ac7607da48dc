package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"cafe-analytics/common"
	"cafe-analytics/records"

	"github.com/labstack/echo/v4"
)

const (
	defaultKPIWindow   = 1
	defaultTopProducts = 10
	legacyTopProducts  = 5
)

type kpiResponse struct {
	common.KPI
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

type productEntry struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type productPerformance struct {
	productEntry
	UnitCost    *float64 `json:"unit_cost,omitempty"`
	GrossMargin *float64 `json:"gross_margin,omitempty"`
	MarginPct   *float64 `json:"margin_pct,omitempty"`
}

type hourlyRevenue struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
}

func toProducts(rankings []common.Ranking) []productEntry {
	out := make([]productEntry, 0, len(rankings))
	for _, r := range rankings {
		out = append(out, productEntry{ItemName: r.Key, Quantity: r.Quantity, Revenue: r.Revenue})
	}
	return out
}

// intParam parses an optional integer query parameter.
func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", errInvalidParam, name, raw)
	}
	return v, nil
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"records":         s.snapshot.Counts(),
		"missing_sources": s.snapshot.Missing(),
	})
}

func (s *Server) kpi(c echo.Context) error {
	window, err := intParam(c, "window", defaultKPIWindow)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidWindow, err)
	}

	w, err := common.ResolveWindow(s.snapshot.DailyStats(), c.QueryParam("query_date"), window)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, kpiResponse{
		KPI:       common.ComputeKPI(w.Rows),
		StartDate: w.Start.Format(records.DateLayout),
		EndDate:   w.End.Format(records.DateLayout),
		Days:      len(w.Rows),
	})
}

func (s *Server) revenueTrends(c echo.Context) error {
	period := common.Period(c.QueryParam("period"))
	if period == "" {
		period = common.PeriodDaily
	}

	rows, err := common.FilterDaily(s.snapshot.DailyStats(), c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return err
	}
	points, err := common.RevenueByPeriod(rows, period)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"period": period,
		"data":   points,
	})
}

func (s *Server) productAnalytics(c echo.Context) error {
	top, err := intParam(c, "top", defaultTopProducts)
	if err != nil {
		return err
	}

	sales := common.FilterCategory(s.snapshot.Sales(), c.QueryParam("category"))
	rankings := common.RankBy(sales, common.GroupByItem, common.MetricRevenue, top)

	menu, err := s.snapshot.Menu()
	if errors.Is(err, records.ErrMissingSource) {
		menu = nil
	}

	products := make([]productPerformance, 0, len(rankings))
	for _, p := range common.WithMargins(rankings, menu) {
		products = append(products, productPerformance{
			productEntry: productEntry{ItemName: p.Key, Quantity: p.Quantity, Revenue: p.Revenue},
			UnitCost:     p.UnitCost,
			GrossMargin:  p.GrossMargin,
			MarginPct:    p.MarginPct,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"top_products": products})
}

func (s *Server) hourlyAnalysis(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"hourly_data": common.HourlyBuckets(s.snapshot.Sales()),
	})
}

func (s *Server) heatmap(c echo.Context) error {
	start, end := common.ParseBounds(c.QueryParam("start_date"), c.QueryParam("end_date"))
	sales := s.snapshot.SalesBetween(start, end)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"heatmap": common.Heatmap(sales),
	})
}

func (s *Server) feedbackSummary(c echo.Context) error {
	entries, err := s.snapshot.Feedback()
	if errors.Is(err, records.ErrMissingSource) {
		log.Debugf("Feedback source not loaded, returning empty summary")
		entries = nil
	}
	return c.JSON(http.StatusOK, common.SummarizeFeedback(entries))
}

func (s *Server) inventory(c echo.Context) error {
	items, err := s.snapshot.Inventory()
	if errors.Is(err, records.ErrMissingSource) || items == nil {
		items = []records.InventoryItem{}
	}
	return c.JSON(http.StatusOK, items)
}

func (s *Server) reorderAlerts(c echo.Context) error {
	items, err := s.snapshot.Inventory()
	if errors.Is(err, records.ErrMissingSource) {
		items = nil
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": common.ReorderAlerts(items),
	})
}

func (s *Server) legacyTotalRevenue(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]float64{
		"total_revenue": common.SalesTotal(s.snapshot.Sales()),
	})
}

func (s *Server) legacyTopProducts(c echo.Context) error {
	rankings := common.RankBy(s.snapshot.Sales(), common.GroupByItem, common.MetricQuantity, legacyTopProducts)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"top_products": toProducts(rankings),
	})
}

func (s *Server) legacySalesByHour(c echo.Context) error {
	buckets := common.HourlyBuckets(s.snapshot.Sales())
	out := make([]hourlyRevenue, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, hourlyRevenue{Hour: b.Hour, Revenue: b.Revenue})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"sales_by_hour": out})
}
