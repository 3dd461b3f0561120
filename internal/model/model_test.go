package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderItemsColumn(t *testing.T) {
	items := OrderItems{{ProductID: "p1", ProductName: "Coxinha", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50"), TotalPrice: decimal.RequireFromString("9.00")}}

	v, err := items.Value()
	require.NoError(t, err)

	var back OrderItems
	require.NoError(t, back.Scan([]byte(v.(string))))
	require.Len(t, back, 1)
	assert.Equal(t, "p1", back[0].ProductID)
	assert.True(t, back[0].TotalPrice.Equal(decimal.RequireFromString("9")))

	var empty OrderItems
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	assert.Error(t, back.Scan(42))
}

func TestProductHelpers(t *testing.T) {
	p := &Product{}
	assert.Equal(t, 1, p.MinQty())

	qty := 3
	p = &Product{MinQuantity: 6, StockEnabled: true, StockQuantity: &qty}
	assert.Equal(t, 6, p.MinQty())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, OrderStatusReady.Valid())
	assert.False(t, OrderStatus("shipped").Valid())
	assert.True(t, DeliveryTypePickup.Valid())
	assert.False(t, DeliveryType("drone").Valid())
}
