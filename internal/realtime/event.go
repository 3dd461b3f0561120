package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/google/uuid"
)

type EventType string

const (
	OrderCreated       EventType = "OrderCreated"
	OrderStatusChanged EventType = "OrderStatusChanged"
)

var ErrClosed = errors.New("realtime: subscriber closed")

type OrderEvent struct {
	EventID        string            `json:"event_id"`
	EventType      EventType         `json:"event_type"`
	StoreID        string            `json:"store_id"`
	Order          model.Order       `json:"payload"`
	PreviousStatus model.OrderStatus `json:"previous_status,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}

func NewOrderEvent(t EventType, o *model.Order, previous model.OrderStatus) *OrderEvent {
	return &OrderEvent{
		EventID:        uuid.New().String(),
		EventType:      t,
		StoreID:        o.StoreID,
		Order:          *o,
		PreviousStatus: previous,
		Timestamp:      time.Now(),
	}
}

func Marshal(e *OrderEvent) ([]byte, error) {
	return json.Marshal(e)
}

func Unmarshal(data []byte) (*OrderEvent, error) {
	var e OrderEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if e.StoreID == "" {
		e.StoreID = e.Order.StoreID
	}
	return &e, nil
}

type Publisher interface {
	Publish(ctx context.Context, e *OrderEvent) error
	Close() error
}

// Subscriber delivers order events one at a time. Next blocks until an event
// arrives or ctx is done.
type Subscriber interface {
	Next(ctx context.Context) (*OrderEvent, error)
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *OrderEvent) error { return nil }
func (NopPublisher) Close() error                               { return nil }
