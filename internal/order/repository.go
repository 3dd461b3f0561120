package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
)

// Transition is one status change and the stock it moves.
type Transition struct {
	OrderID     string
	StoreID     string
	From        model.OrderStatus
	To          model.OrderStatus
	Adjustments []inventory.StockAdjustment
	At          time.Time
}

type Repository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindAllByStore(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	// TransitionStatus applies the status change only if the order is still in
	// t.From, together with every stock adjustment, atomically. It returns
	// ErrStatusConflict when the order moved on in the meantime.
	TransitionStatus(ctx context.Context, t *Transition) ([]model.StockMovement, error)
}
