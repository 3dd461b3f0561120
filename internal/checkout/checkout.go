// Package checkout turns a cart into an order plus the outbound WhatsApp message.
package checkout

import (
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

// FlowState is where the storefront checkout screen goes next.
type FlowState string

const (
	FlowForm               FlowState = "form"
	FlowRegistrationPrompt FlowState = "registration_prompt"
	FlowSuccess            FlowState = "success"
)

const (
	FieldName          = "customer_name"
	FieldPhone         = "customer_phone"
	FieldAddress       = "customer_address"
	FieldCart          = "cart"
	FieldDeliveryType  = "delivery_type"
	FieldPaymentMethod = "payment_method"
	FieldStore         = "store"
)

// ValidationError lists every field that blocked the checkout. Nothing is persisted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "checkout validation failed: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) add(field string) {
	e.Fields = append(e.Fields, field)
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

// Totals returns the delivery fee actually charged and the order total.
func Totals(subtotal decimal.Decimal, dt model.DeliveryType, storeFee decimal.Decimal) (fee, total decimal.Decimal) {
	fee = decimal.Zero
	if dt == model.DeliveryTypeDelivery {
		fee = storeFee
	}
	return fee, subtotal.Add(fee)
}

// ChangeToBring is max(0, given - total). ok is false when no amount was given.
func ChangeToBring(total, given decimal.Decimal) (change decimal.Decimal, ok bool) {
	if !given.IsPositive() {
		return decimal.Zero, false
	}
	change = given.Sub(total)
	if change.IsNegative() {
		change = decimal.Zero
	}
	return change, true
}

// Validate checks the checkout form. Address is only required for delivery.
func Validate(in Form, cartEmpty bool, store *model.Store, offered func(string) bool) error {
	verr := &ValidationError{}
	if !store.IsOpen {
		verr.add(FieldStore)
	}
	if cartEmpty {
		verr.add(FieldCart)
	}
	if strings.TrimSpace(in.Name) == "" {
		verr.add(FieldName)
	}
	if in.Phone == "" {
		verr.add(FieldPhone)
	}
	if !in.DeliveryType.Valid() {
		verr.add(FieldDeliveryType)
	} else if in.DeliveryType == model.DeliveryTypeDelivery && strings.TrimSpace(in.Address) == "" {
		verr.add(FieldAddress)
	}
	if !offered(in.PaymentMethod) {
		verr.add(FieldPaymentMethod)
	}
	if verr.empty() {
		return nil
	}
	return verr
}

// Form is the customer-entered part of a checkout, phone already reduced to digits.
type Form struct {
	Name          string
	Phone         string
	Address       string
	DeliveryType  model.DeliveryType
	PaymentMethod string
}
