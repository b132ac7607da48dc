package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cafe-analytics/records"
	"cafe-analytics/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(records.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int { return &v }

func testCollections() records.Collections {
	return records.Collections{
		DailyStats: []records.DailyStat{
			{Date: date("2024-01-01"), TotalRevenue: 100, TotalCustomers: 10, AvgOrderValue: 10},
			{Date: date("2024-01-02"), TotalRevenue: 200, TotalCustomers: 10, AvgOrderValue: 20},
		},
		Sales: []records.SalesLine{
			{Date: date("2024-01-01"), Time: "09:10", ItemName: "Latte", Category: "Coffee", Quantity: 2, UnitPrice: 4, LineTotal: 8, PaymentMethod: "Card"},
			{Date: date("2024-01-01"), Time: "14:00", ItemName: "Scone", Category: "Bakery", Quantity: 1, UnitPrice: 3, LineTotal: 3, PaymentMethod: "Cash"},
			{Date: date("2024-01-02"), Time: "09:45", ItemName: "Mocha", Category: "Coffee", Quantity: 1, UnitPrice: 5, LineTotal: 5, PaymentMethod: "Card"},
			{Date: date("2024-01-02"), Time: "15:30", ItemName: "Latte", Category: "Coffee", Quantity: 1, UnitPrice: 4, LineTotal: 4, PaymentMethod: "Cash"},
		},
		Inventory: []records.InventoryItem{
			{ItemName: "Milk", Category: "Dairy", CurrentStock: intPtr(3), ReorderLevel: intPtr(5)},
			{ItemName: "Beans", Category: "Coffee", CurrentStock: intPtr(40)},
		},
		Menu: []records.MenuItem{
			{ItemName: "Latte", CostToMake: 1.5},
		},
		Missing: []string{records.SourceFeedback},
	}
}

func newTestServer() *server.Server {
	return server.New(records.NewSnapshot(testCollections()), []string{"http://localhost:5173"})
}

func get(t *testing.T, srv http.Handler, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestKPIEndpoint(t *testing.T) {
	rec, body := get(t, newTestServer(), "/kpi/?query_date=2024-01-02&window=2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 300.0, body["total_revenue"])
	assert.Equal(t, 20.0, body["total_transactions"])
	assert.Equal(t, 15.0, body["avg_order_value"])
	assert.Equal(t, "2024-01-01", body["start_date"])
	assert.Equal(t, "2024-01-02", body["end_date"])
	assert.Equal(t, 2.0, body["days"])
}

func TestKPIEndpointDefaultsToLatestDay(t *testing.T) {
	rec, body := get(t, newTestServer(), "/kpi/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200.0, body["total_revenue"])
	assert.Equal(t, "2024-01-02", body["start_date"])
}

func TestKPIEndpointErrors(t *testing.T) {
	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/kpi/?window=0", http.StatusBadRequest, "invalid_window"},
		{"/kpi/?window=31", http.StatusBadRequest, "invalid_window"},
		{"/kpi/?window=week", http.StatusBadRequest, "invalid_window"},
		{"/kpi/?query_date=02-01-2024", http.StatusBadRequest, "invalid_date"},
		{"/kpi/?query_date=2023-06-01&window=7", http.StatusNotFound, "no_data"},
	}
	srv := newTestServer()
	for _, tt := range tests {
		rec, body := get(t, srv, tt.target)
		assert.Equal(t, tt.status, rec.Code, tt.target)
		assert.Equal(t, tt.code, body["error"], tt.target)
		assert.NotEmpty(t, body["message"], tt.target)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	rec, body := get(t, newTestServer(), "/dashboard-data")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "7d", body["period"])
	assert.Equal(t, "2023-12-27", body["start_date"])

	kpi := body["kpi"].(map[string]interface{})
	assert.Equal(t, 300.0, kpi["total_revenue"])
	assert.Equal(t, 15.0, kpi["avg_order_value"])
	assert.Equal(t, "09:00", kpi["peak_hour"])
	assert.Equal(t, 13.0, kpi["peak_hour_revenue"])
	assert.Equal(t, 100.0, kpi["avg_order_delta"])

	products := body["top_products"].([]interface{})
	require.Len(t, products, 3)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Latte", first["item_name"])
	assert.Equal(t, 12.0, first["revenue"])
	assert.Equal(t, 3.0, first["quantity"])

	payments := body["payment_distribution"].([]interface{})
	require.Len(t, payments, 2)
	card := payments[0].(map[string]interface{})
	assert.Equal(t, "Card", card["method"])
	assert.Equal(t, 13.0, card["revenue"])
	assert.Equal(t, 65.0, card["percentage"])

	assert.Len(t, body["revenue_trend"], 2)
}

func TestDashboardEndpointSingleDay(t *testing.T) {
	rec, body := get(t, newTestServer(), "/dashboard-data?period=1d")
	require.Equal(t, http.StatusOK, rec.Code)

	kpi := body["kpi"].(map[string]interface{})
	assert.Equal(t, 200.0, kpi["total_revenue"])
	products := body["top_products"].([]interface{})
	assert.Equal(t, "Mocha", products[0].(map[string]interface{})["item_name"])
}

func TestDashboardEndpointRejectsBadPeriod(t *testing.T) {
	for _, period := range []string{"week", "0d", "366d", "7"} {
		rec, body := get(t, newTestServer(), "/dashboard-data?period="+period)
		assert.Equal(t, http.StatusBadRequest, rec.Code, period)
		assert.Equal(t, "invalid_period", body["error"], period)
	}
}

func TestRevenueTrendsEndpoint(t *testing.T) {
	srv := newTestServer()

	rec, body := get(t, srv, "/revenue-trends?period=daily&start_date=2024-01-02")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "daily", body["period"])
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "2024-01-02", data[0].(map[string]interface{})["date"])
	assert.Equal(t, 200.0, data[0].(map[string]interface{})["total_revenue"])

	rec, body = get(t, srv, "/revenue-trends?period=monthly")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"], 1)

	rec, body = get(t, srv, "/revenue-trends?period=hourly")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_period", body["error"])

	rec, body = get(t, srv, "/revenue-trends?start_date=yesterday")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_date", body["error"])
}

func TestProductAnalyticsEndpoint(t *testing.T) {
	srv := newTestServer()

	rec, body := get(t, srv, "/product-analytics?top=2")
	require.Equal(t, http.StatusOK, rec.Code)
	products := body["top_products"].([]interface{})
	require.Len(t, products, 2)
	latte := products[0].(map[string]interface{})
	assert.Equal(t, "Latte", latte["item_name"])
	assert.Equal(t, 1.5, latte["unit_cost"])
	assert.Equal(t, 7.5, latte["gross_margin"])
	_, hasMargin := products[1].(map[string]interface{})["gross_margin"]
	assert.False(t, hasMargin, "items missing from the menu carry no margin")

	rec, body = get(t, srv, "/product-analytics?category=bakery")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["top_products"], 1)

	rec, body = get(t, srv, "/product-analytics?top=many")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_parameter", body["error"])
}

func TestHourlyAndHeatmapEndpoints(t *testing.T) {
	srv := newTestServer()

	rec, body := get(t, srv, "/hourly-analysis")
	require.Equal(t, http.StatusOK, rec.Code)
	hourly := body["hourly_data"].([]interface{})
	require.Len(t, hourly, 3)
	assert.Equal(t, 9.0, hourly[0].(map[string]interface{})["hour"])

	rec, body = get(t, srv, "/heatmap")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["heatmap"], 168)

	rec, body = get(t, srv, "/heatmap?start_date=not-a-date&end_date=2023-01-01")
	require.Equal(t, http.StatusOK, rec.Code)
	cells := body["heatmap"].([]interface{})
	require.Len(t, cells, 168)
	for _, c := range cells {
		assert.Equal(t, 0.0, c.(map[string]interface{})["quantity"])
	}
}

func TestFeedbackSummaryWithMissingSource(t *testing.T) {
	rec, body := get(t, newTestServer(), "/feedback-summary")
	require.Equal(t, http.StatusOK, rec.Code)

	value, present := body["positive_pct"]
	assert.True(t, present)
	assert.Nil(t, value)
	assert.Equal(t, 0.0, body["count"])
	assert.Equal(t, "none", body["method"])
}

func TestInventoryEndpoints(t *testing.T) {
	srv := newTestServer()

	rec, _ := get(t, srv, "/inventory")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "", items[1]["reorder_level"])
	assert.Equal(t, 40.0, items[1]["current_stock"])

	rec, body := get(t, srv, "/inventory/reorder-alerts")
	require.Equal(t, http.StatusOK, rec.Code)
	alerts := body["alerts"].([]interface{})
	require.Len(t, alerts, 1)
	assert.Equal(t, 2.0, alerts[0].(map[string]interface{})["shortfall"])
}

func TestInventoryWhenSourceMissing(t *testing.T) {
	c := testCollections()
	c.Inventory = nil
	c.Missing = append(c.Missing, records.SourceInventory)
	srv := server.New(records.NewSnapshot(c), nil)

	rec, _ := get(t, srv, "/inventory")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestLegacyEndpoints(t *testing.T) {
	srv := newTestServer()

	_, body := get(t, srv, "/kpi/total_revenue")
	assert.Equal(t, 20.0, body["total_revenue"])

	_, body = get(t, srv, "/kpi/top_products")
	products := body["top_products"].([]interface{})
	assert.Equal(t, "Latte", products[0].(map[string]interface{})["item_name"])

	_, body = get(t, srv, "/kpi/sales_by_hour")
	assert.Len(t, body["sales_by_hour"], 3)
}

func TestHealthEndpoint(t *testing.T) {
	rec, body := get(t, newTestServer(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, []interface{}{records.SourceFeedback}, body["missing_sources"])
}

func TestRequestIDAndCORSHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	rec, body := get(t, newTestServer(), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", body["error"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
