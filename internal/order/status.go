package order

import (
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed: {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing: {model.OrderStatusReady, model.OrderStatusCancelled},
	model.OrderStatusReady:     {model.OrderStatusDelivered, model.OrderStatusCancelled},
	model.OrderStatusDelivered: {},
	model.OrderStatusCancelled: {},
}

// AllowedTransitions returns the statuses reachable from s in one step.
func AllowedTransitions(s model.OrderStatus) []model.OrderStatus {
	return transitions[s]
}

func CanTransition(from, to model.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s model.OrderStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// StockEffect decides the stock direction of a transition from the previous
// status alone. Only pending -> confirmed takes stock; cancelling after that
// point gives it back; cancelling a pending order never touched it.
func StockEffect(from, to model.OrderStatus) inventory.Direction {
	switch {
	case from == model.OrderStatusPending && to == model.OrderStatusConfirmed:
		return inventory.Decrement
	case to == model.OrderStatusCancelled && stockTaken(from):
		return inventory.Restore
	default:
		return inventory.None
	}
}

func stockTaken(s model.OrderStatus) bool {
	return s == model.OrderStatusConfirmed || s == model.OrderStatusPreparing || s == model.OrderStatusReady
}
