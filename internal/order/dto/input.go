package dto

import (
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

type CreateOrderInput struct {
	StoreID         string
	CustomerID      *string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress *string
	DeliveryType    model.DeliveryType
	PaymentMethod   string
	Items           model.OrderItems
	Subtotal        decimal.Decimal
	DeliveryFee     decimal.Decimal
	Total           decimal.Decimal
	Notes           *string
}

type UpdateStatusInput struct {
	StoreID string
	OrderID string
	Status  model.OrderStatus
	UserID  string
}
