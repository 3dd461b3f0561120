package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	// ErrStatusConflict means the order changed status between read and write.
	ErrStatusConflict    = errors.New("order status changed concurrently")
	ErrStockUpdateFailed = errors.New("stock update failed")
)
