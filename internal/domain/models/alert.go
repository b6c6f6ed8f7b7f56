package models

import "time"

// ExpiryStatus classifies how close an item is to its expiry date.
type ExpiryStatus string

const (
	StatusFresh    ExpiryStatus = "fresh"
	StatusExpiring ExpiryStatus = "expiring"
	StatusExpired  ExpiryStatus = "expired"
)

// AlertCategory enumerates supported alert kinds.
type AlertCategory string

const (
	AlertExpiring   AlertCategory = "expiring"
	AlertExpired    AlertCategory = "expired"
	AlertLowStock   AlertCategory = "low_stock"
	AlertInactivity AlertCategory = "inactivity"
)

// Alert is a derived, non-persisted fact about one inventory item at
// classification time. IDs are deterministic per (category, item) so repeated
// runs produce stable identities for client-side dismissal.
type Alert struct {
	ID          string        `json:"id"`
	Category    AlertCategory `json:"category"`
	ItemID      string        `json:"itemId"`
	ItemName    string        `json:"itemName"`
	Message     string        `json:"message"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// AlertEnrichment is the optional AI-written addition to an alert. Both
// fields are untrusted; absent or malformed values fall back to the
// deterministic message and an empty suggestion list.
type AlertEnrichment struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// AlertDigest is the persisted summary written by the scheduled daily scan.
type AlertDigest struct {
	Date          time.Time `bson:"date" json:"date"`
	TotalItems    int       `bson:"total_items" json:"total_items"`
	ExpiringCount int       `bson:"expiring_count" json:"expiring_count"`
	ExpiredCount  int       `bson:"expired_count" json:"expired_count"`
	LowStockCount int       `bson:"low_stock_count" json:"low_stock_count"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
