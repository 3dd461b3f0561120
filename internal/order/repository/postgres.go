package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	invRepo "github.com/fekuna/omnipos-storefront-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/jmoiron/sqlx"
)

const orderColumns = `id, store_id, customer_id, customer_name, customer_phone, customer_address, delivery_type, payment_method, items, subtotal, delivery_fee, total, notes, status, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
        INSERT INTO orders (` + orderColumns + `)
        VALUES (
            :id, :store_id, :customer_id, :customer_name, :customer_phone, :customer_address,
            :delivery_type, :payment_method, :items, :subtotal, :delivery_fee, :total,
            :notes, :status, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, o)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &o, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// FindAllByStore lists newest first.
func (r *PGRepository) FindAllByStore(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	conditions := []string{"store_id = :store_id"}
	args := map[string]interface{}{"store_id": f.StoreID}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = string(f.Status)
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(customer_name ILIKE :q OR customer_phone LIKE :q)")
		args["q"] = "%" + f.SearchQuery + "%"
	}
	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM orders"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + orderColumns + " FROM orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}
	query, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}

	orders := []model.Order{}
	err = r.DB.SelectContext(ctx, &orders, r.DB.Rebind(query), listArgs...)
	return orders, count, err
}

func (r *PGRepository) TransitionStatus(ctx context.Context, t *order.Transition) ([]model.StockMovement, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Move the status only if nobody else did
	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND store_id = $4 AND status = $5`,
		string(t.To), t.At, t.OrderID, t.StoreID, string(t.From))
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, order.ErrStatusConflict
	}

	// 2. Stock, all or nothing
	movements, err := invRepo.ApplyAdjustments(ctx, tx, t.StoreID, t.OrderID, t.Adjustments, t.At)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", order.ErrStockUpdateFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return movements, nil
}
