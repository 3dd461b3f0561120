package merchant

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Store, error)
}
