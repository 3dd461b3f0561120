package checkout

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
)

type UseCase interface {
	Quote(ctx context.Context, input *dto.QuoteInput) (*dto.QuoteResult, error)
	Checkout(ctx context.Context, input *dto.CheckoutInput) (*dto.CheckoutResult, error)
}
