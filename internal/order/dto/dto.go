package dto

import "github.com/fekuna/omnipos-storefront-service/internal/model"

type OrderFilters struct {
	StoreID     string
	Status      model.OrderStatus
	SearchQuery string
	Page        int
	PageSize    int
}
