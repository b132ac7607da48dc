package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Reader loads one CSV source file into a slice of records. Columns are looked up
// by header name so reordered or extra columns are fine.
type Reader struct {
	FilePath string
}

type columns map[string]int

func (c columns) get(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ReadAll appends every parsable row of the file to v, which must be a pointer to
// one of the record slices. Rows that cannot be placed on a date are skipped.
func (r *Reader) ReadAll(v interface{}) error {
	file, err := os.Open(r.FilePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return readRows(file, v)
}

func readRows(src io.Reader, v interface{}) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := make(columns, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	line := 1
	skipped := 0
	for {
		row, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warningf("Skipping malformed CSV line %d: %v", line, err)
			skipped++
			continue
		}
		if !addRowToData(v, cols, row) {
			skipped++
		}
	}
	if skipped > 0 {
		log.Warningf("Skipped %d unusable rows", skipped)
	}
	return nil
}

func addRowToData(v interface{}, cols columns, row []string) bool {
	switch v := v.(type) {
	case *[]DailyStat:
		date, err := ParseDate(cols.get(row, "date"))
		if err != nil {
			return false
		}
		*v = append(*v, DailyStat{
			Date:           date,
			TotalCustomers: parseInt(cols.get(row, "total_customers")),
			TotalRevenue:   parseFloat(cols.get(row, "total_revenue")),
			AvgOrderValue:  parseFloat(cols.get(row, "avg_order_value")),
			Weather:        cols.get(row, "weather"),
			PeakHour:       cols.get(row, "peak_hour"),
		})
	case *[]SalesLine:
		date, err := ParseDate(cols.get(row, "date"))
		if err != nil {
			return false
		}
		quantity := parseInt(cols.get(row, "quantity"))
		price := parseFloat(cols.get(row, "price"))
		total := lineTotal(quantity, price)
		if t := parseOptionalFloat(cols.get(row, "total")); t != nil {
			total = *t
		}
		*v = append(*v, SalesLine{
			Date:          date,
			Time:          cols.get(row, "time"),
			ItemName:      cols.get(row, "item_name"),
			Category:      cols.get(row, "category"),
			Quantity:      quantity,
			UnitPrice:     price,
			LineTotal:     total,
			PaymentMethod: cols.get(row, "payment_method"),
			StaffName:     cols.get(row, "staff_name"),
		})
	case *[]FeedbackEntry:
		date, _ := ParseDate(cols.get(row, "date"))
		*v = append(*v, FeedbackEntry{
			Date:          date,
			Rating:        parseOptionalInt(cols.get(row, "rating")),
			Review:        parseOptionalString(cols.get(row, "review")),
			ServiceRating: parseOptionalInt(cols.get(row, "service_rating")),
			FoodRating:    parseOptionalInt(cols.get(row, "food_rating")),
		})
	case *[]InventoryItem:
		*v = append(*v, InventoryItem{
			ItemName:     cols.get(row, "item_name"),
			Category:     cols.get(row, "category"),
			CurrentStock: parseOptionalInt(cols.get(row, "current_stock")),
			ReorderLevel: parseOptionalInt(cols.get(row, "reorder_level")),
			UnitCost:     parseOptionalFloat(cols.get(row, "unit_cost")),
			LastUpdated:  cols.get(row, "last_updated"),
		})
	case *[]MenuItem:
		*v = append(*v, MenuItem{
			ItemName:     cols.get(row, "item_name"),
			Category:     cols.get(row, "category"),
			Price:        parseFloat(cols.get(row, "price")),
			CostToMake:   parseFloat(cols.get(row, "cost_to_make")),
			PrepTimeMins: parseInt(cols.get(row, "prep_time_mins")),
		})
	default:
		log.Errorf("Unsupported record type %T", v)
		return false
	}
	return true
}

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ParseDate accepts a calendar date, optionally followed by a time of day, and
// returns it truncated to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %q", s)
}

func lineTotal(quantity int, price float64) float64 {
	return math.Round(float64(quantity)*price*100) / 100
}

func parseFloat(s string) float64 {
	f := parseOptionalFloat(s)
	if f == nil {
		return 0
	}
	return *f
}

func parseInt(s string) int {
	i := parseOptionalInt(s)
	if i == nil {
		return 0
	}
	return *i
}

func parseOptionalFloat(s string) *float64 {
	if isMissing(s) {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseOptionalInt also accepts "4.0", which is how integer columns with gaps
// come out of most spreadsheet exports.
func parseOptionalInt(s string) *int {
	f := parseOptionalFloat(s)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}

func parseOptionalString(s string) *string {
	if isMissing(s) {
		return nil
	}
	return &s
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "n/a":
		return true
	}
	return false
}
