package inventory

import (
	"testing"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPlanAggregatesPerProduct(t *testing.T) {
	items := model.OrderItems{
		{ProductID: "b", Quantity: 2, Notes: "frango"},
		{ProductID: "a", Quantity: 1},
		{ProductID: "b", Quantity: 3, Notes: "palmito"},
		{ProductID: "c", Quantity: 0},
	}

	got := Plan(items, Decrement)
	assert.Equal(t, []StockAdjustment{
		{ProductID: "a", Quantity: 1, Direction: Decrement},
		{ProductID: "b", Quantity: 5, Direction: Decrement},
	}, got)

	assert.Nil(t, Plan(items, None))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		before    int
		adj       StockAdjustment
		after     int
		available bool
	}{
		{"decrement", 10, StockAdjustment{Quantity: 3, Direction: Decrement}, 7, true},
		{"decrement to zero", 3, StockAdjustment{Quantity: 3, Direction: Decrement}, 0, false},
		{"decrement floors at zero", 2, StockAdjustment{Quantity: 5, Direction: Decrement}, 0, false},
		{"restore", 0, StockAdjustment{Quantity: 4, Direction: Restore}, 4, true},
		{"none", 6, StockAdjustment{Quantity: 4}, 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after, available := Apply(tt.before, tt.adj)
			assert.Equal(t, tt.after, after)
			assert.Equal(t, tt.available, available)
		})
	}
}

func TestMovementType(t *testing.T) {
	assert.Equal(t, MovementOrderConfirm, Decrement.MovementType())
	assert.Equal(t, MovementOrderCancel, Restore.MovementType())
	assert.Equal(t, "restore", Restore.String())
}
