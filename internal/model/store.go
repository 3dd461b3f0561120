package model

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// Store is the merchant configuration consumed at checkout.
type Store struct {
	BaseModel
	Name             string          `db:"name" json:"name"`
	WhatsAppNumber   string          `db:"whatsapp_number" json:"whatsapp_number"`
	DeliveryFee      decimal.Decimal `db:"delivery_fee" json:"delivery_fee"`
	MessageTemplate  *string         `db:"message_template" json:"message_template,omitempty"`
	AcceptedPayments StringList      `db:"accepted_payments" json:"accepted_payments"` // empty = all
	CustomPayments   CustomPayments  `db:"custom_payments" json:"custom_payments"`
	PaymentLink      *string         `db:"payment_link" json:"payment_link,omitempty"`
	IsOpen           bool            `db:"is_open" json:"is_open"`
	Locale           string          `db:"locale" json:"locale"`
}

// CustomPayment is a merchant-defined payment option, referenced by Name.
type CustomPayment struct {
	Name string `json:"name"`
}

type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return jsonValue(s)
}

func (s *StringList) Scan(src interface{}) error {
	return jsonScan(src, s)
}

type CustomPayments []CustomPayment

func (c CustomPayments) Value() (driver.Value, error) {
	if c == nil {
		c = CustomPayments{}
	}
	return jsonValue(c)
}

func (c *CustomPayments) Scan(src interface{}) error {
	return jsonScan(src, c)
}
