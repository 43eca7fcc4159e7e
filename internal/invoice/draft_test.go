package invoice_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvng/fruitbill/internal/invoice"
	"github.com/minhvng/fruitbill/internal/preset"
)

// sequentialID returns an IDFunc yielding "id-1", "id-2", ...
func sequentialID() invoice.IDFunc {
	n := 0

	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []invoice.Item
		want  int64
	}{
		{
			name:  "Empty",
			items: nil,
			want:  0,
		},
		{
			name: "SumsLineTotals",
			items: []invoice.Item{
				{ID: "1", Name: "A", PricePerKg: 10000, WeightKg: 2},
				{ID: "2", Name: "B", PricePerKg: 20000, WeightKg: 0.5},
			},
			want: 30000,
		},
		{
			name: "RoundsHalfAwayFromZeroAtSum",
			items: []invoice.Item{
				{ID: "1", Name: "A", PricePerKg: 3, WeightKg: 0.5},
			},
			want: 2,
		},
		{
			name: "FractionalWeightsNeverProduceFractionalCurrency",
			items: []invoice.Item{
				{ID: "1", Name: "A", PricePerKg: 33333, WeightKg: 0.333},
			},
			want: 11100, // 11099.889 rounds up
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoice.ComputeTotal(tt.items))
		})
	}
}

func TestValid(t *testing.T) {
	valid := invoice.Item{ID: "1", Name: "Táo", PricePerKg: 20000, WeightKg: 1}

	tests := []struct {
		name  string
		items []invoice.Item
		total int64
		want  bool
	}{
		{
			name:  "AllFilledPositiveTotal",
			items: []invoice.Item{valid},
			total: 20000,
			want:  true,
		},
		{
			name:  "ZeroTotalInvalidRegardlessOfItems",
			items: []invoice.Item{valid},
			total: 0,
			want:  false,
		},
		{
			name:  "NegativeTotalInvalid",
			items: []invoice.Item{valid},
			total: -1,
			want:  false,
		},
		{
			name:  "EmptyNameInvalidatesEvenWithPositiveTotal",
			items: []invoice.Item{{ID: "1", Name: "", PricePerKg: 20000, WeightKg: 1}},
			total: 20000,
			want:  false,
		},
		{
			name:  "ZeroPriceInvalidates",
			items: []invoice.Item{{ID: "1", Name: "Táo", PricePerKg: 0, WeightKg: 1}},
			total: 20000,
			want:  false,
		},
		{
			name:  "ZeroWeightInvalidates",
			items: []invoice.Item{{ID: "1", Name: "Táo", PricePerKg: 20000, WeightKg: 0}},
			total: 20000,
			want:  false,
		},
		{
			name: "OneBadItemSpoilsTheWholeDraft",
			items: []invoice.Item{
				valid,
				{ID: "2", Name: "Cam", PricePerKg: 15000, WeightKg: 0},
			},
			total: 20000,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoice.Valid(tt.items, tt.total))
		})
	}
}

func TestRemoveItem(t *testing.T) {
	t.Run("RemovesMatchingItem", func(t *testing.T) {
		items := []invoice.Item{
			{ID: "a", Name: "Táo"},
			{ID: "b", Name: "Cam"},
		}

		got := invoice.RemoveItem(items, "a", sequentialID())

		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].ID)
	})

	t.Run("LastItemIsReplacedWithFreshBlankRow", func(t *testing.T) {
		items := []invoice.Item{
			{ID: "a", Name: "Táo", PricePerKg: 20000, WeightKg: 1},
		}

		got := invoice.RemoveItem(items, "a", sequentialID())

		require.Len(t, got, 1)
		assert.Equal(t, "id-1", got[0].ID)
		assert.Empty(t, got[0].Name)
		assert.Zero(t, got[0].PricePerKg)
		assert.Zero(t, got[0].WeightKg)
	})

	t.Run("UnknownIDKeepsEverything", func(t *testing.T) {
		items := []invoice.Item{{ID: "a"}, {ID: "b"}}

		got := invoice.RemoveItem(items, "zzz", sequentialID())

		assert.Equal(t, items, got)
	})
}

func TestApplyPreset(t *testing.T) {
	p := preset.FruitPreset{ID: "p1", Name: "Xoài", PricePerKg: 35000}

	items := []invoice.Item{
		{ID: "a", Name: "Táo", PricePerKg: 20000, WeightKg: 1.5},
		{ID: "b", Name: "Cam", PricePerKg: 15000, WeightKg: 2},
	}

	t.Run("OverwritesNamePriceAndLinkKeepingWeight", func(t *testing.T) {
		got := invoice.ApplyPreset(items, "a", p)

		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "Xoài", got[0].Name)
		assert.Equal(t, int64(35000), got[0].PricePerKg)
		assert.Equal(t, 1.5, got[0].WeightKg)
		assert.Equal(t, "p1", got[0].PresetID)

		// The other row is untouched.
		assert.Equal(t, items[1], got[1])
	})

	t.Run("UnknownTargetIsNoOp", func(t *testing.T) {
		got := invoice.ApplyPreset(items, "zzz", p)
		assert.Equal(t, items, got)
	})
}

func TestNewItemFromPreset(t *testing.T) {
	p := preset.FruitPreset{ID: "p1", Name: "Xoài", PricePerKg: 35000}

	it := invoice.NewItemFromPreset(p, sequentialID())

	assert.Equal(t, "id-1", it.ID)
	assert.Equal(t, "Xoài", it.Name)
	assert.Equal(t, int64(35000), it.PricePerKg)
	assert.Zero(t, it.WeightKg)
	assert.Equal(t, "p1", it.PresetID)
}

func TestUpdateField(t *testing.T) {
	base := []invoice.Item{{ID: "a", Name: "Táo"}}

	tests := []struct {
		name  string
		field invoice.Field
		raw   string
		check func(t *testing.T, it invoice.Item)
	}{
		{
			name:  "PriceInputScaledByThousand",
			field: invoice.FieldPrice,
			raw:   "10",
			check: func(t *testing.T, it invoice.Item) {
				assert.Equal(t, int64(10000), it.PricePerKg)
			},
		},
		{
			name:  "PriceAcceptsCommaDecimal",
			field: invoice.FieldPrice,
			raw:   "12,5",
			check: func(t *testing.T, it invoice.Item) {
				assert.Equal(t, int64(12500), it.PricePerKg)
			},
		},
		{
			name:  "PriceScalingNeverLosesADong",
			field: invoice.FieldPrice,
			raw:   "4.015",
			check: func(t *testing.T, it invoice.Item) {
				assert.Equal(t, int64(4015), it.PricePerKg)
			},
		},
		{
			name:  "WeightStoredAsParsed",
			field: invoice.FieldWeight,
			raw:   "1,5",
			check: func(t *testing.T, it invoice.Item) {
				assert.Equal(t, 1.5, it.WeightKg)
			},
		},
		{
			name:  "GarbageNumericInputBecomesZero",
			field: invoice.FieldWeight,
			raw:   "abc",
			check: func(t *testing.T, it invoice.Item) {
				assert.Zero(t, it.WeightKg)
			},
		},
		{
			name:  "EmptyNumericInputBecomesZero",
			field: invoice.FieldPrice,
			raw:   "",
			check: func(t *testing.T, it invoice.Item) {
				assert.Zero(t, it.PricePerKg)
			},
		},
		{
			name:  "NameIsPassedThrough",
			field: invoice.FieldName,
			raw:   "Chuối",
			check: func(t *testing.T, it invoice.Item) {
				assert.Equal(t, "Chuối", it.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoice.UpdateField(base, "a", tt.field, tt.raw)

			require.Len(t, got, 1)
			tt.check(t, got[0])
		})
	}

	t.Run("UnknownTargetIsNoOp", func(t *testing.T) {
		got := invoice.UpdateField(base, "zzz", invoice.FieldName, "Cam")
		assert.Equal(t, base, got)
	})
}

func TestParseDecimalInput(t *testing.T) {
	assert.Equal(t, 1.5, invoice.ParseDecimalInput("1,5"))
	assert.Equal(t, 1.5, invoice.ParseDecimalInput("1.5"))
	assert.Equal(t, 2.0, invoice.ParseDecimalInput(" 2 "))
	assert.Zero(t, invoice.ParseDecimalInput(""))
	assert.Zero(t, invoice.ParseDecimalInput("x"))
	assert.Zero(t, invoice.ParseDecimalInput("-3"))
}

func TestScalePriceInput(t *testing.T) {
	assert.Equal(t, int64(20000), invoice.ScalePriceInput("20"))
	assert.Equal(t, int64(12500), invoice.ScalePriceInput("12,5"))
	assert.Zero(t, invoice.ScalePriceInput("x"))

	// 4.015×1000 and 1.005×1000 land just below the integer in float64;
	// the decimal product must still round to the exact price.
	assert.Equal(t, int64(4015), invoice.ScalePriceInput("4.015"))
	assert.Equal(t, int64(1005), invoice.ScalePriceInput("1,005"))
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2025-02-13", invoice.DayKey("2025-02-13T08:30:00Z"))
	assert.Equal(t, "short", invoice.DayKey("short"))
}
