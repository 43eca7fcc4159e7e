package invoice

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/minhvng/fruitbill/internal/preset"
)

// Field names accepted by UpdateField.
type Field string

const (
	FieldName   Field = "name"
	FieldPrice  Field = "pricePerKg"
	FieldWeight Field = "weightKg"
)

// ComputeTotal sums pricePerKg × weightKg over all items. Per-line products
// are computed exactly with decimals and the sum is rounded once, half away
// from zero, so fractional weights never produce fractional currency.
func ComputeTotal(items []Item) int64 {
	sum := decimal.Zero

	for _, it := range items {
		line := decimal.NewFromInt(it.PricePerKg).Mul(decimal.NewFromFloat(it.WeightKg))
		sum = sum.Add(line)
	}

	return sum.Round(0).IntPart()
}

// Valid reports whether a draft may be saved: the total must be positive and
// every line must be individually valid. The total is trusted as supplied by
// the caller, not recomputed.
func Valid(items []Item, totalAmount int64) bool {
	if totalAmount <= 0 {
		return false
	}

	for _, it := range items {
		if !it.Valid() {
			return false
		}
	}

	return true
}

// NewEmptyItem returns the default blank line used to seed and refill drafts.
func NewEmptyItem(newID IDFunc) Item {
	return Item{ID: newID()}
}

// NewItemFromPreset returns a fresh line seeded with the preset's name and
// price. Weight starts at zero; the user fills it in after weighing.
func NewItemFromPreset(p preset.FruitPreset, newID IDFunc) Item {
	return Item{
		ID:         newID(),
		Name:       p.Name,
		PricePerKg: p.PricePerKg,
		PresetID:   p.ID,
	}
}

// AddItem appends a blank line.
func AddItem(items []Item, newID IDFunc) []Item {
	return append(items, NewEmptyItem(newID))
}

// AddItemFromPreset appends a line seeded from the preset.
func AddItemFromPreset(items []Item, p preset.FruitPreset, newID IDFunc) []Item {
	return append(items, NewItemFromPreset(p, newID))
}

// RemoveItem drops the line with the given id. A draft always keeps at least
// one row: removing the last line yields a single fresh blank line instead of
// an empty draft.
func RemoveItem(items []Item, id string, newID IDFunc) []Item {
	out := make([]Item, 0, len(items))

	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}

	if len(out) == 0 {
		out = append(out, NewEmptyItem(newID))
	}

	return out
}

// ResetItems discards the draft, leaving a single blank line.
func ResetItems(newID IDFunc) []Item {
	return []Item{NewEmptyItem(newID)}
}

// ApplyPreset overwrites the target line's name, price and preset link with
// the preset's values, keeping its id and weight. An unknown target id is a
// no-op; the UI only offers ids that exist.
func ApplyPreset(items []Item, targetID string, p preset.FruitPreset) []Item {
	out := make([]Item, len(items))

	for i, it := range items {
		if it.ID == targetID {
			it.Name = p.Name
			it.PricePerKg = p.PricePerKg
			it.PresetID = p.ID
		}

		out[i] = it
	}

	return out
}

// UpdateField applies a raw user input to one field of the target line.
// Numeric inputs tolerate both "." and "," decimal separators; anything
// unparsable counts as zero rather than failing the keystroke. Prices are
// typed in thousands and scaled to the stored unit. An unknown target id
// leaves the draft unchanged.
func UpdateField(items []Item, targetID string, field Field, raw string) []Item {
	out := make([]Item, len(items))

	for i, it := range items {
		if it.ID == targetID {
			switch field {
			case FieldName:
				it.Name = raw
			case FieldPrice:
				it.PricePerKg = ScalePriceInput(raw)
			case FieldWeight:
				it.WeightKg = ParseDecimalInput(raw)
			}
		}

		out[i] = it
	}

	return out
}

// ParseDecimalInput parses a user-typed decimal, accepting both "." and ","
// separators. Empty, unparsable or negative input counts as zero.
func ParseDecimalInput(raw string) float64 {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || v < 0 {
		return 0
	}

	return v
}

// ScalePriceInput converts a typed price (thousands of đồng per kg) to the
// stored unit. The product is taken in decimal and rounded, because the
// float64 product of inputs like "4.015" lands just below the integer and a
// plain int64 conversion would lose one đồng.
func ScalePriceInput(raw string) int64 {
	v := decimal.NewFromFloat(ParseDecimalInput(raw))

	return v.Mul(decimal.NewFromInt(PriceInputScale)).Round(0).IntPart()
}
