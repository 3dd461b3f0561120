package cart

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/cart/dto"
)

type UseCase interface {
	GetCart(ctx context.Context, storeID, sessionID string) (*dto.CartView, error)
	AddItem(ctx context.Context, input *dto.AddItemInput) (*dto.CartView, error)
	RemoveItem(ctx context.Context, input *dto.LineInput) (*dto.CartView, error)
	UpdateQuantity(ctx context.Context, input *dto.UpdateQuantityInput) (*dto.CartView, error)
	UpdateNotes(ctx context.Context, input *dto.UpdateNotesInput) (*dto.CartView, error)
	ClearCart(ctx context.Context, storeID, sessionID string) error
	// RemoveOrdered takes the given lines out of the cart. Lines added after
	// they were read stay.
	RemoveOrdered(ctx context.Context, storeID, sessionID string, lines []dto.LineView) error
}
