package records

import (
	"encoding/json"
	"time"
)

const DateLayout = "2006-01-02"

// DailyStat is one pre-aggregated day of the store.
type DailyStat struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	Date           time.Time `gorm:"uniqueIndex;not null" json:"date"`
	TotalCustomers int       `json:"total_customers"`
	TotalRevenue   float64   `json:"total_revenue"`
	AvgOrderValue  float64   `json:"avg_order_value"`
	Weather        string    `json:"weather"`
	PeakHour       string    `json:"peak_hour"`
}

// SalesLine is a single line item of a transaction.
type SalesLine struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Date          time.Time `gorm:"index;not null" json:"date"`
	Time          string    `json:"time"` // HH:MM
	ItemName      string    `gorm:"index" json:"item_name"`
	Category      string    `json:"category"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"price"`
	LineTotal     float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	StaffName     string    `json:"staff_name"`
}

// FeedbackEntry holds a customer review. Nil fields were missing in the source.
type FeedbackEntry struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Date          time.Time `json:"date"`
	Rating        *int      `json:"rating"`
	Review        *string   `json:"review"`
	ServiceRating *int      `json:"service_rating"`
	FoodRating    *int      `json:"food_rating"`
}

// InventoryItem is a row of the current stock snapshot.
type InventoryItem struct {
	ID           uint     `gorm:"primaryKey" json:"-"`
	ItemName     string   `json:"item_name"`
	Category     string   `json:"category"`
	CurrentStock *int     `json:"current_stock"`
	ReorderLevel *int     `json:"reorder_level"`
	UnitCost     *float64 `json:"unit_cost"`
	LastUpdated  string   `json:"last_updated"`
}

// MarshalJSON writes missing values as empty strings and present ones with their own type.
func (it InventoryItem) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"item_name":     it.ItemName,
		"category":      it.Category,
		"current_stock": orEmpty(it.CurrentStock),
		"reorder_level": orEmpty(it.ReorderLevel),
		"unit_cost":     orEmpty(it.UnitCost),
		"last_updated":  it.LastUpdated,
	}
	return json.Marshal(out)
}

func orEmpty[T int | float64](v *T) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// MenuItem is an entry of the optional menu catalogue.
type MenuItem struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	ItemName     string  `gorm:"uniqueIndex" json:"item_name"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	CostToMake   float64 `json:"cost_to_make"`
	PrepTimeMins int     `json:"prep_time_mins"`
}
