package preset_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/minhvng/fruitbill/internal/preset"
)

func TestService_ReplaceAll_FiltersInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := preset.NewMockRepository(ctrl)

	var stored []preset.FruitPreset

	repo.EXPECT().
		ReplaceAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, presets []preset.FruitPreset) error {
			stored = presets
			return nil
		})

	svc := preset.NewService(repo)

	// The blank name and the zero price are dropped before storage.
	err := svc.ReplaceAll(context.Background(), []preset.FruitPreset{
		{ID: "p1", Name: "Táo", PricePerKg: 20000},
		{ID: "p2", Name: "", PricePerKg: 15000},
		{ID: "p3", Name: "Cam", PricePerKg: 0},
		{ID: "p4", Name: "Xoài", PricePerKg: 35000},
	})
	require.NoError(t, err)

	require.Len(t, stored, 2)
	assert.Equal(t, "p1", stored[0].ID)
	assert.Equal(t, "p4", stored[1].ID)
}

func TestService_ReplaceAll_WriteFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := preset.NewMockRepository(ctrl)
	repo.EXPECT().ReplaceAll(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := preset.NewService(repo)

	err := svc.ReplaceAll(context.Background(), []preset.FruitPreset{
		{ID: "p1", Name: "Táo", PricePerKg: 20000},
	})
	assert.Error(t, err)
}

func TestFruitPreset_Valid(t *testing.T) {
	assert.True(t, preset.FruitPreset{ID: "p", Name: "Táo", PricePerKg: 1}.Valid())
	assert.False(t, preset.FruitPreset{ID: "p", Name: "", PricePerKg: 1}.Valid())
	assert.False(t, preset.FruitPreset{ID: "p", Name: "Táo", PricePerKg: 0}.Valid())
}
