package model

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

func (d DeliveryType) Valid() bool {
	return d == DeliveryTypeDelivery || d == DeliveryTypePickup
}

type Order struct {
	BaseModel
	StoreID         string          `db:"store_id" json:"store_id"`
	CustomerID      *string         `db:"customer_id" json:"customer_id,omitempty"`
	CustomerName    string          `db:"customer_name" json:"customer_name"`
	CustomerPhone   string          `db:"customer_phone" json:"customer_phone"`
	CustomerAddress *string         `db:"customer_address" json:"customer_address,omitempty"`
	DeliveryType    DeliveryType    `db:"delivery_type" json:"delivery_type"`
	PaymentMethod   string          `db:"payment_method" json:"payment_method"`
	Items           OrderItems      `db:"items" json:"items"`
	Subtotal        decimal.Decimal `db:"subtotal" json:"subtotal"`
	DeliveryFee     decimal.Decimal `db:"delivery_fee" json:"delivery_fee"`
	Total           decimal.Decimal `db:"total" json:"total"`
	Notes           *string         `db:"notes" json:"notes,omitempty"`
	Status          OrderStatus     `db:"status" json:"status"`
}

// OrderItem is a frozen snapshot taken at checkout.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Notes       string          `json:"notes,omitempty"`
}

// OrderItems is stored as a jsonb column.
type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		o = OrderItems{}
	}
	return jsonValue(o)
}

func (o *OrderItems) Scan(src interface{}) error {
	return jsonScan(src, o)
}
