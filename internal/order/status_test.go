package order

import (
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/assert"
)

var allStatuses = []model.OrderStatus{
	model.OrderStatusPending, model.OrderStatusConfirmed, model.OrderStatusPreparing,
	model.OrderStatusReady, model.OrderStatusDelivered, model.OrderStatusCancelled,
}

func TestTransitionTable(t *testing.T) {
	allowed := map[[2]model.OrderStatus]bool{
		{"pending", "confirmed"}:   true,
		{"pending", "cancelled"}:   true,
		{"confirmed", "preparing"}: true,
		{"confirmed", "cancelled"}: true,
		{"preparing", "ready"}:     true,
		{"preparing", "cancelled"}: true,
		{"ready", "delivered"}:     true,
		{"ready", "cancelled"}:     true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed[[2]model.OrderStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}

	assert.True(t, IsTerminal(model.OrderStatusDelivered))
	assert.True(t, IsTerminal(model.OrderStatusCancelled))
	assert.False(t, IsTerminal(model.OrderStatusReady))
	assert.False(t, IsTerminal("bogus"))
}

func TestStockEffect(t *testing.T) {
	tests := []struct {
		from, to model.OrderStatus
		want     inventory.Direction
	}{
		{model.OrderStatusPending, model.OrderStatusConfirmed, inventory.Decrement},
		{model.OrderStatusPending, model.OrderStatusCancelled, inventory.None},
		{model.OrderStatusConfirmed, model.OrderStatusCancelled, inventory.Restore},
		{model.OrderStatusPreparing, model.OrderStatusCancelled, inventory.Restore},
		{model.OrderStatusReady, model.OrderStatusCancelled, inventory.Restore},
		{model.OrderStatusConfirmed, model.OrderStatusPreparing, inventory.None},
		{model.OrderStatusPreparing, model.OrderStatusReady, inventory.None},
		{model.OrderStatusReady, model.OrderStatusDelivered, inventory.None},
		{model.OrderStatusConfirmed, model.OrderStatusConfirmed, inventory.None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StockEffect(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
