package model

import "github.com/shopspring/decimal"

// Product is owned by the catalog; the storefront core only reads it and,
// through order transitions, adjusts its stock.
type Product struct {
	BaseModel
	StoreID       string          `db:"store_id" json:"store_id"`
	Name          string          `db:"name" json:"name"`
	Price         decimal.Decimal `db:"price" json:"price"`
	MinQuantity   int             `db:"min_quantity" json:"min_quantity"`
	StockEnabled  bool            `db:"stock_enabled" json:"stock_enabled"`
	StockQuantity *int            `db:"stock_quantity" json:"stock_quantity"` // Nullable, nil = unlimited
	Available     bool            `db:"available" json:"available"`
	IsActive      bool            `db:"is_active" json:"is_active"`
}

// MinQty never returns less than 1.
func (p *Product) MinQty() int {
	if p.MinQuantity < 1 {
		return 1
	}
	return p.MinQuantity
}
