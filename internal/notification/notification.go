// Package notification turns realtime order events into merchant alerts.
package notification

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Alert is raised once per genuinely new order of a subscribed store.
type Alert struct {
	OrderID      string          `json:"order_id"`
	StoreID      string          `json:"store_id"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	Title        string          `json:"title"`
	Body         string          `json:"body"`
	// Chime asks the client to play the audible cue.
	Chime bool `json:"chime"`
	// System is set only when OS-level notifications are allowed; the in-app alert is always produced.
	System    bool      `json:"system"`
	CreatedAt time.Time `json:"created_at"`
}

// Sink receives every alert after it has been queued on its subscription.
type Sink interface {
	Notify(ctx context.Context, a Alert) error
}

type Options struct {
	Locale                     string
	CurrencySymbol             string
	SystemNotificationsAllowed bool
	// Buffered alerts per subscription; extra alerts are dropped, the counter still moves.
	AlertBuffer int
}
