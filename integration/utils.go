package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cafe-analytics/records"
	"cafe-analytics/server"
)

// Fixture files keyed by name, in the layout the CSV loader expects.
var Fixtures = map[string]string{
	"daily_stats.csv": "date,total_customers,total_revenue,avg_order_value,weather,peak_hour\n" +
		"2024-01-01,10,100,10,Sunny,09:00\n" +
		"2024-01-02,10,200,20,Rainy,14:00\n",
	"sales.csv": "date,time,item_name,category,quantity,price,total,payment_method,staff_name\n" +
		"2024-01-01,09:10,Latte,Coffee,2,4,8,Card,Ana\n" +
		"2024-01-01,14:00,Scone,Bakery,1,3,3,Cash,Ben\n" +
		"2024-01-02,09:45,Mocha,Coffee,1,5,5,Card,Ana\n" +
		"2024-01-02,15:30,Latte,Coffee,1,4,4,Cash,Ben\n",
	"feedback.csv": "date,rating,review,service_rating,food_rating\n" +
		"2024-01-01,5,great coffee,5,5\n" +
		"2024-01-01,5,,4,5\n" +
		"2024-01-02,1,terrible wait,1,2\n" +
		"2024-01-02,3,ok visit,3,3\n",
	"inventory.csv": "item_name,category,current_stock,reorder_level,unit_cost,last_updated\n" +
		"Milk,Dairy,3,5,0.8,2024-01-02\n" +
		"Beans,Coffee,40,,12.5,2024-01-02\n",
}

// WriteFixtures writes the given source files into a fresh temp dir.
func WriteFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write fixture %s: %v", name, err)
		}
	}
	return dir
}

// StartServer serves the collections on a local listener until the test ends.
func StartServer(t *testing.T, c records.Collections) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(server.New(records.NewSnapshot(c), []string{"http://localhost:5173"}))
	t.Cleanup(srv.Close)
	return srv
}

// GetJSON fetches url and decodes the body into out, returning the status code.
func GetJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode %s: %v", url, err)
	}
	return resp.StatusCode
}
