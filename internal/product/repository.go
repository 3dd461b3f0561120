package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Repository reads catalog products. Stock is written only by order transitions.
type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}
