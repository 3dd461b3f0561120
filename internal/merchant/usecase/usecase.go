package usecase

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/merchant"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
)

var ErrStoreNotFound = errors.New("store not found")

type merchantUseCase struct {
	repo   merchant.Repository
	logger logger.ZapLogger
}

func NewMerchantUseCase(repo merchant.Repository, log logger.ZapLogger) merchant.UseCase {
	return &merchantUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *merchantUseCase) GetStore(ctx context.Context, id string) (*model.Store, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrStoreNotFound
	}
	return s, nil
}

func (uc *merchantUseCase) PaymentMethods(ctx context.Context, storeID string) ([]merchant.PaymentMethod, error) {
	s, err := uc.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return merchant.AvailablePaymentMethods(s), nil
}
