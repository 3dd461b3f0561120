package inventory

import (
	"sort"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Direction is the stock effect of one order event.
type Direction int

const (
	None Direction = iota
	Decrement
	Restore
)

func (d Direction) String() string {
	switch d {
	case Decrement:
		return "decrement"
	case Restore:
		return "restore"
	default:
		return "none"
	}
}

// Movement types written to stock_movements.
const (
	MovementOrderConfirm = "order_confirm"
	MovementOrderCancel  = "order_cancel"
)

func (d Direction) MovementType() string {
	if d == Restore {
		return MovementOrderCancel
	}
	return MovementOrderConfirm
}

// StockAdjustment is the total quantity of one product moved by an order event.
type StockAdjustment struct {
	ProductID string
	Quantity  int
	Direction Direction
}

// Plan folds the order items into one adjustment per product, sorted by
// product id so row locks are always taken in the same order.
func Plan(items model.OrderItems, dir Direction) []StockAdjustment {
	if dir == None {
		return nil
	}
	totals := map[string]int{}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			continue
		}
		totals[it.ProductID] += it.Quantity
	}

	out := make([]StockAdjustment, 0, len(totals))
	for id, qty := range totals {
		out = append(out, StockAdjustment{ProductID: id, Quantity: qty, Direction: dir})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Apply returns the stock after the adjustment. Decrements floor at zero and
// leave the product available only while stock remains; restores always make
// it available again.
func Apply(before int, adj StockAdjustment) (after int, available bool) {
	switch adj.Direction {
	case Decrement:
		after = before - adj.Quantity
		if after < 0 {
			after = 0
		}
		return after, after > 0
	case Restore:
		return before + adj.Quantity, true
	default:
		return before, before > 0
	}
}
