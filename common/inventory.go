package common

import "cafe-analytics/records"

// ReorderAlert is an inventory item at or below its reorder level.
type ReorderAlert struct {
	ItemName     string `json:"item_name"`
	Category     string `json:"category"`
	CurrentStock int    `json:"current_stock"`
	ReorderLevel int    `json:"reorder_level"`
	Shortfall    int    `json:"shortfall"`
}

// ReorderAlerts returns the items whose stock is at or below the reorder level.
// Items missing either value are skipped.
func ReorderAlerts(items []records.InventoryItem) []ReorderAlert {
	alerts := make([]ReorderAlert, 0)
	for _, it := range items {
		if it.CurrentStock == nil || it.ReorderLevel == nil {
			continue
		}
		if *it.CurrentStock > *it.ReorderLevel {
			continue
		}
		alerts = append(alerts, ReorderAlert{
			ItemName:     it.ItemName,
			Category:     it.Category,
			CurrentStock: *it.CurrentStock,
			ReorderLevel: *it.ReorderLevel,
			Shortfall:    *it.ReorderLevel - *it.CurrentStock,
		})
	}
	return alerts
}
