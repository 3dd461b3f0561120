package merchant

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	GetStore(ctx context.Context, id string) (*model.Store, error)
	PaymentMethods(ctx context.Context, storeID string) ([]PaymentMethod, error)
}
