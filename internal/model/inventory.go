package model

import "time"

type StockMovement struct {
	ID             string    `db:"id" json:"id"`
	StoreID        string    `db:"store_id" json:"store_id"`
	ProductID      string    `db:"product_id" json:"product_id"`
	OrderID        string    `db:"order_id" json:"order_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int       `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
