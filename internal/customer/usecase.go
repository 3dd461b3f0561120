package customer

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/customer/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.RegisterInput) (*dto.SessionResponse, error)
	Identify(ctx context.Context, token, storeID string) (*model.CustomerSession, error)
	SaveContact(ctx context.Context, browserSessionID string, c *model.Contact) error
	GetContact(ctx context.Context, browserSessionID string) (*model.Contact, error)
}
