package dto

import "github.com/shopspring/decimal"

type CartView struct {
	Items      []LineView      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalItems int             `json:"total_items"`
	Notices    []Notice        `json:"notices,omitempty"`
	// Rejected is set when an add was refused because the stock is exhausted.
	Rejected bool `json:"rejected,omitempty"`
}

type LineView struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	Notes       string          `json:"notes,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

type Notice struct {
	Code      string `json:"code"`
	ProductID string `json:"product_id"`
	Available int    `json:"available,omitempty"`
	Message   string `json:"message"`
}
