package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/minhvng/fruitbill/internal/invoice"
)

func fixedClock() time.Time {
	return time.Date(2025, 2, 13, 8, 30, 0, 0, time.UTC)
}

func TestService_Save(t *testing.T) {
	items := []invoice.Item{
		{ID: "a", Name: "Táo", PricePerKg: 20000, WeightKg: 1},
	}

	t.Run("AssignsIdentityAndTimestamp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)

		var saved invoice.Invoice

		repo.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv invoice.Invoice) error {
				saved = inv
				return nil
			})

		svc := invoice.NewServiceWithClock(repo, sequentialID(), fixedClock)

		inv, err := svc.Save(context.Background(), invoice.SaveParams{
			Items:       items,
			TotalAmount: 20000,
			Note:        "chợ sáng",
		})
		require.NoError(t, err)

		assert.Equal(t, "id-1", inv.ID)
		assert.Equal(t, "2025-02-13T08:30:00Z", inv.CreatedAt)
		assert.Equal(t, int64(20000), inv.TotalAmount)
		assert.Equal(t, "chợ sáng", inv.Note)
		assert.Equal(t, *inv, saved)
	})

	t.Run("DoesNotRevalidate", func(t *testing.T) {
		// The storage layer trusts the caller: a zero total is stored as-is.
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		svc := invoice.NewServiceWithClock(repo, sequentialID(), fixedClock)

		inv, err := svc.Save(context.Background(), invoice.SaveParams{TotalAmount: 0})
		require.NoError(t, err)
		assert.Zero(t, inv.TotalAmount)
	})

	t.Run("WriteFailurePropagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := invoice.NewMockRepository(ctrl)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		svc := invoice.NewServiceWithClock(repo, sequentialID(), fixedClock)

		inv, err := svc.Save(context.Background(), invoice.SaveParams{Items: items, TotalAmount: 20000})
		assert.Error(t, err)
		assert.Nil(t, inv)
	})
}

func TestService_DayStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return([]invoice.Invoice{
		{ID: "1", CreatedAt: "2025-02-14T09:00:00Z", TotalAmount: 5000},
		{ID: "2", CreatedAt: "2025-02-13T09:00:00Z", TotalAmount: 40000},
	})

	svc := invoice.NewService(repo)

	stats := svc.DayStats(context.Background())

	require.Len(t, stats, 2)
	assert.Equal(t, "2025-02-14", stats[0].Date)
	assert.Equal(t, "2025-02-13", stats[1].Date)
}

func TestService_Deletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().DeleteByID(gomock.Any(), "inv-1").Return(nil)
	repo.EXPECT().DeleteByDay(gomock.Any(), "2025-02-13").Return(nil)
	repo.EXPECT().ClearAll(gomock.Any()).Return(errors.New("write failed"))

	svc := invoice.NewService(repo)

	assert.NoError(t, svc.DeleteByID(context.Background(), "inv-1"))
	assert.NoError(t, svc.DeleteByDay(context.Background(), "2025-02-13"))
	assert.Error(t, svc.ClearAll(context.Background()))
}
