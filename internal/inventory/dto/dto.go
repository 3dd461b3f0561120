package dto

type MovementFilters struct {
	StoreID      string
	ProductID    string
	OrderID      string
	MovementType string
	Page         int
	PageSize     int
}
