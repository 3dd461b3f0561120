package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const movementColumns = `id, store_id, product_id, order_id, movement_type, quantity_change, quantity_before, quantity_after, created_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	conditions := []string{"store_id = :store_id"}
	args := map[string]interface{}{"store_id": f.StoreID}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.OrderID != "" {
		conditions = append(conditions, "order_id = :order_id")
		args["order_id"] = f.OrderID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM stock_movements"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + movementColumns + " FROM stock_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}
	query, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}

	items := []model.StockMovement{}
	err = r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), listArgs...)
	return items, count, err
}

type stockRow struct {
	StockEnabled  bool `db:"stock_enabled"`
	StockQuantity *int `db:"stock_quantity"`
}

// ApplyAdjustments moves stock for every adjustment inside tx and logs one
// movement row per product touched. Products that are gone or not stock
// controlled are skipped. Any error leaves the caller's tx to be rolled back.
func ApplyAdjustments(ctx context.Context, tx *sqlx.Tx, storeID, orderID string, adjustments []inventory.StockAdjustment, now time.Time) ([]model.StockMovement, error) {
	movements := []model.StockMovement{}
	for _, adj := range adjustments {
		// 1. Lock the product row
		var row stockRow
		err := tx.GetContext(ctx, &row,
			`SELECT stock_enabled, stock_quantity FROM products WHERE id = $1 AND store_id = $2 FOR UPDATE`,
			adj.ProductID, storeID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, fmt.Errorf("lock product %s: %w", adj.ProductID, err)
		}
		if !row.StockEnabled || row.StockQuantity == nil {
			continue
		}

		// 2. Update stock
		before := *row.StockQuantity
		after, available := inventory.Apply(before, adj)
		_, err = tx.ExecContext(ctx,
			`UPDATE products SET stock_quantity = $1, available = $2, updated_at = $3 WHERE id = $4`,
			after, available, now, adj.ProductID)
		if err != nil {
			return nil, fmt.Errorf("update stock of %s: %w", adj.ProductID, err)
		}

		// 3. Log movement
		m := model.StockMovement{
			ID:             uuid.New().String(),
			StoreID:        storeID,
			ProductID:      adj.ProductID,
			OrderID:        orderID,
			MovementType:   adj.Direction.MovementType(),
			QuantityChange: after - before,
			QuantityBefore: before,
			QuantityAfter:  after,
			CreatedAt:      now,
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO stock_movements (`+movementColumns+`)
			VALUES (:id, :store_id, :product_id, :order_id, :movement_type, :quantity_change, :quantity_before, :quantity_after, :created_at)`, m)
		if err != nil {
			return nil, fmt.Errorf("log movement of %s: %w", adj.ProductID, err)
		}
		movements = append(movements, m)
	}
	return movements, nil
}
