package models

import (
	"strconv"
	"strings"
	"time"
)

// Item is one tracked physical item type in the kitchen inventory.
type Item struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Quantity    float64   `bson:"quantity" json:"quantity"`
	Unit        string    `bson:"unit" json:"unit"`
	AddedDate   time.Time `bson:"added_date" json:"added_date"`
	ExpiryDate  time.Time `bson:"expiry_date" json:"expiry_date"`
	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
	Notes       string    `bson:"notes" json:"notes"`
}

// ItemDraft carries the caller-supplied fields for a new item. Pointer fields
// distinguish "absent" from zero values so validation can reject partial drafts.
type ItemDraft struct {
	Name       string
	Quantity   *float64
	Unit       string
	ExpiryDate *time.Time
	Notes      string
}

// InventorySnapshot renders a compact one-line textual view of the pantry for
// AI prompts: "Milk: 1 gallons (Expires: 2024-03-01), ...".
func InventorySnapshot(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		qty := strconv.FormatFloat(item.Quantity, 'f', -1, 64)
		parts = append(parts, item.Name+": "+qty+" "+item.Unit+" (Expires: "+item.ExpiryDate.Format("2006-01-02")+")")
	}
	return strings.Join(parts, ", ")
}

// ItemUpdate carries a partial edit; nil fields are left untouched.
type ItemUpdate struct {
	Name       *string
	Quantity   *float64
	Unit       *string
	ExpiryDate *time.Time
	Notes      *string
}
