package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRepo struct{ got *dto.MovementFilters }

func (c *captureRepo) ListMovements(_ context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	c.got = f
	return []model.StockMovement{}, 0, nil
}

func TestListMovementsDefaults(t *testing.T) {
	repo := &captureRepo{}
	uc := NewInventoryUseCase(repo, logger.NewNop())

	_, _, err := uc.ListMovements(context.Background(), &dto.MovementFilters{})
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, _, err = uc.ListMovements(context.Background(), &dto.MovementFilters{StoreID: "s1", PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.got.Page)
	assert.Equal(t, 20, repo.got.PageSize)
}
