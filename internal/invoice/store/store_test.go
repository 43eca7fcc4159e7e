package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvng/fruitbill/internal/invoice"
	"github.com/minhvng/fruitbill/internal/invoice/store"
	"github.com/minhvng/fruitbill/internal/kvstore"
)

func testInvoice(id, createdAt string, total int64) invoice.Invoice {
	return invoice.Invoice{
		ID:        id,
		CreatedAt: createdAt,
		Items: []invoice.Item{
			{ID: id + "-item", Name: "Táo", PricePerKg: total, WeightKg: 1},
		},
		TotalAmount: total,
	}
}

func TestStore_ListEmptyAndCorrupt(t *testing.T) {
	ctx := context.Background()

	t.Run("AbsentKeyYieldsEmptyList", func(t *testing.T) {
		s := store.New(kvstore.NewMemory())
		assert.Empty(t, s.List(ctx))
	})

	t.Run("CorruptValueYieldsEmptyList", func(t *testing.T) {
		kv := kvstore.NewMemory()
		require.NoError(t, kv.Set(ctx, "invoices", []byte("{not json")))

		s := store.New(kv)
		assert.Empty(t, s.List(ctx))
	})

	t.Run("NonArrayValueYieldsEmptyList", func(t *testing.T) {
		kv := kvstore.NewMemory()
		require.NoError(t, kv.Set(ctx, "invoices", []byte(`{"id":"x"}`)))

		s := store.New(kv)
		assert.Empty(t, s.List(ctx))
	})
}

func TestStore_SaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.New(kvstore.NewMemory())

	first := testInvoice("inv-1", "2025-02-13T08:00:00Z", 40000)
	second := testInvoice("inv-2", "2025-02-13T09:00:00Z", 10000)

	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	got := s.List(ctx)
	require.Len(t, got, 2)

	// Newest first, and the stored invoice round-trips exactly.
	assert.Equal(t, second, got[0])
	assert.Equal(t, first, got[1])
}

func TestStore_SaveWriteFailurePropagates(t *testing.T) {
	ctx := context.Background()

	kv := kvstore.NewMemory()
	kv.FailWrites = errors.New("disk full")

	s := store.New(kv)

	err := s.Save(ctx, testInvoice("inv-1", "2025-02-13T08:00:00Z", 40000))
	assert.Error(t, err)
}

func TestStore_DeleteByID(t *testing.T) {
	ctx := context.Background()
	s := store.New(kvstore.NewMemory())

	require.NoError(t, s.Save(ctx, testInvoice("inv-1", "2025-02-13T08:00:00Z", 40000)))
	require.NoError(t, s.Save(ctx, testInvoice("inv-2", "2025-02-13T09:00:00Z", 10000)))

	require.NoError(t, s.DeleteByID(ctx, "inv-1"))

	got := s.List(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "inv-2", got[0].ID)

	// Idempotent: deleting the same id again changes nothing.
	require.NoError(t, s.DeleteByID(ctx, "inv-1"))
	assert.Equal(t, got, s.List(ctx))
}

func TestStore_DeleteByDay(t *testing.T) {
	ctx := context.Background()
	s := store.New(kvstore.NewMemory())

	require.NoError(t, s.Save(ctx, testInvoice("inv-1", "2025-02-13T08:00:00Z", 40000)))
	require.NoError(t, s.Save(ctx, testInvoice("inv-2", "2025-02-13T17:00:00Z", 10000)))
	require.NoError(t, s.Save(ctx, testInvoice("inv-3", "2025-02-14T09:00:00Z", 5000)))

	require.NoError(t, s.DeleteByDay(ctx, "2025-02-13"))

	got := s.List(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "inv-3", got[0].ID)
}

func TestStore_ClearAll(t *testing.T) {
	ctx := context.Background()
	s := store.New(kvstore.NewMemory())

	require.NoError(t, s.Save(ctx, testInvoice("inv-1", "2025-02-13T08:00:00Z", 40000)))
	require.NoError(t, s.ClearAll(ctx))

	assert.Empty(t, s.List(ctx))
}
