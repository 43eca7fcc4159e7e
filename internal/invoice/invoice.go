// Package invoice holds the fruit-invoice domain model, the draft editing
// session and the aggregation logic over saved invoices.
package invoice

import (
	"time"

	"github.com/google/uuid"
)

// PriceInputScale converts a price typed in the UI (thousands of đồng per kg)
// into the stored unit (đồng per kg). Persisted data depends on this factor;
// it must not change.
const PriceInputScale = 1000

// IDFunc produces a fresh opaque identifier on each call.
type IDFunc func() string

// NewID is the default IDFunc.
func NewID() string {
	return uuid.NewString()
}

// Item is one line of an invoice: a fruit, its price per kilogram in the
// smallest currency unit, and the weighed amount.
type Item struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PricePerKg int64   `json:"pricePerKg"`
	WeightKg   float64 `json:"weightKg"`
	// PresetID records which preset seeded this line, if any. The line keeps
	// its own copy of name and price, so deleting the preset is harmless.
	PresetID string `json:"presetId,omitempty"`
}

// Valid reports whether the line counts toward a saveable invoice.
func (it Item) Valid() bool {
	return it.Name != "" && it.PricePerKg > 0 && it.WeightKg > 0
}

// Invoice is a saved snapshot. Once persisted it is never updated in place;
// deletion is the only mutation.
type Invoice struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	Items     []Item `json:"items"`
	// TotalAmount is frozen at save time, not recomputed on read.
	TotalAmount int64  `json:"totalAmount"`
	Note        string `json:"note,omitempty"`
}

// Day returns the UTC calendar-day key of the invoice, the first 10
// characters of its RFC 3339 timestamp.
func (inv Invoice) Day() string {
	return DayKey(inv.CreatedAt)
}

// DayKey truncates an ISO timestamp to its calendar-day prefix.
func DayKey(createdAt string) string {
	if len(createdAt) < 10 {
		return createdAt
	}

	return createdAt[:10]
}

// Timestamp returns the current time formatted the way CreatedAt is stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
