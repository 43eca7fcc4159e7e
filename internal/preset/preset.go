// Package preset manages the reusable fruit templates used to speed up
// invoice entry.
package preset

// FruitPreset is a named (fruit, price) template. Prices are stored in the
// smallest currency unit per kilogram, like invoice lines.
type FruitPreset struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PricePerKg int64  `json:"pricePerKg"`
}

// Valid reports whether the preset is worth keeping: presets exist to
// pre-fill lines, so a blank name or zero price is useless.
func (p FruitPreset) Valid() bool {
	return p.Name != "" && p.PricePerKg > 0
}
