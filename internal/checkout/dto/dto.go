package dto

import (
	"github.com/fekuna/omnipos-storefront-service/internal/merchant"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

type QuoteInput struct {
	StoreID      string
	SessionID    string
	DeliveryType model.DeliveryType
}

type QuoteResult struct {
	Subtotal       decimal.Decimal          `json:"subtotal"`
	DeliveryFee    decimal.Decimal          `json:"delivery_fee"`
	Total          decimal.Decimal          `json:"total"`
	TotalItems     int                      `json:"total_items"`
	PaymentMethods []merchant.PaymentMethod `json:"payment_methods"`
	StoreOpen      bool                     `json:"store_open"`
}

type CheckoutInput struct {
	StoreID       string
	SessionID     string
	CustomerToken string
	Name          string
	Phone         string
	Address       string
	DeliveryType  model.DeliveryType
	PaymentMethod string
	// AmountGiven is the cash the customer will pay with; zero means no change needed.
	AmountGiven decimal.Decimal
	Notes       string
	Lang        string
}

type CheckoutResult struct {
	Order         *model.Order     `json:"order"`
	Message       string           `json:"message"`
	WhatsAppURL   string           `json:"whatsapp_url"`
	ChangeToBring *decimal.Decimal `json:"change_to_bring,omitempty"`
	FlowState     string           `json:"flow_state"`
}
