package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-storefront-service/internal/inventory"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/order"
	"github.com/fekuna/omnipos-storefront-service/internal/order/dto"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{"id", "store_id", "customer_id", "customer_name", "customer_phone", "customer_address", "delivery_type", "payment_method", "items", "subtotal", "delivery_fee", "total", "notes", "status", "created_at", "updated_at"}

func newMock(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "pgx")), mock
}

var (
	transitionQuery = regexp.QuoteMeta(`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND store_id = $4 AND status = $5`)
	lockQuery       = regexp.QuoteMeta(`SELECT stock_enabled, stock_quantity FROM products WHERE id = $1 AND store_id = $2 FOR UPDATE`)
	stockQuery      = regexp.QuoteMeta(`UPDATE products SET stock_quantity = $1, available = $2, updated_at = $3 WHERE id = $4`)
)

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	o := &model.Order{
		BaseModel:     model.BaseModel{ID: "o1", CreatedAt: now, UpdatedAt: now},
		StoreID:       "s1",
		CustomerName:  "Ana",
		CustomerPhone: "5511999990000",
		DeliveryType:  model.DeliveryTypePickup,
		PaymentMethod: "pix",
		Items:         model.OrderItems{{ProductID: "p1", ProductName: "Coxinha", Quantity: 2, UnitPrice: decimal.RequireFromString("5"), TotalPrice: decimal.RequireFromString("10")}},
		Subtotal:      decimal.RequireFromString("10"),
		Total:         decimal.RequireFromString("10"),
		Status:        model.OrderStatusPending,
	}

	mock.ExpectExec(`INSERT INTO orders`).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), o))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDDecodesItems(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).WithArgs("o1").
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow(
			"o1", "s1", nil, "Ana", "5511999990000", "Rua A, 1", "delivery", "cash",
			`[{"product_id":"p1","product_name":"Coxinha","quantity":3,"unit_price":"5.00","total_price":"15.00","notes":"sem pimenta"}]`,
			"15.00", "5.00", "20.00", nil, "confirmed", now, now,
		))

	o, err := repo.FindByID(context.Background(), "o1")
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 3, o.Items[0].Quantity)
	assert.Equal(t, "sem pimenta", o.Items[0].Notes)
	assert.Equal(t, model.OrderStatusConfirmed, o.Status)
	assert.Equal(t, "Rua A, 1", *o.CustomerAddress)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("20")))
}

func TestFindAllByStoreNewestFirst(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM orders WHERE store_id = $1 AND status = $2`)).
		WithArgs("s1", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE store_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 20 OFFSET 20`)).
		WithArgs("s1", "pending").
		WillReturnRows(sqlmock.NewRows(orderCols))

	orders, count, err := repo.FindAllByStore(context.Background(), &dto.OrderFilters{StoreID: "s1", Status: model.OrderStatusPending, Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, orders)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatusConfirmDecrements(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(transitionQuery).WithArgs("confirmed", now, "o1", "s1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(lockQuery).WithArgs("p1", "s1").
		WillReturnRows(sqlmock.NewRows([]string{"stock_enabled", "stock_quantity"}).AddRow(true, 10))
	mock.ExpectExec(stockQuery).WithArgs(7, true, now, "p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO stock_movements`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	movements, err := repo.TransitionStatus(context.Background(), &order.Transition{
		OrderID: "o1", StoreID: "s1",
		From: model.OrderStatusPending, To: model.OrderStatusConfirmed,
		Adjustments: []inventory.StockAdjustment{{ProductID: "p1", Quantity: 3, Direction: inventory.Decrement}},
		At:          now,
	})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, 7, movements[0].QuantityAfter)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatusConflict(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(transitionQuery).WithArgs("confirmed", now, "o1", "s1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.TransitionStatus(context.Background(), &order.Transition{
		OrderID: "o1", StoreID: "s1",
		From: model.OrderStatusPending, To: model.OrderStatusConfirmed,
		Adjustments: []inventory.StockAdjustment{{ProductID: "p1", Quantity: 3, Direction: inventory.Decrement}},
		At:          now,
	})
	assert.ErrorIs(t, err, order.ErrStatusConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionStatusStockFailureRollsBack(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(transitionQuery).WithArgs("cancelled", now, "o1", "s1", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(lockQuery).WithArgs("p1", "s1").
		WillReturnRows(sqlmock.NewRows([]string{"stock_enabled", "stock_quantity"}).AddRow(true, 0))
	mock.ExpectExec(stockQuery).WithArgs(2, true, now, "p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO stock_movements`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(lockQuery).WithArgs("p2", "s1").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.TransitionStatus(context.Background(), &order.Transition{
		OrderID: "o1", StoreID: "s1",
		From: model.OrderStatusConfirmed, To: model.OrderStatusCancelled,
		Adjustments: []inventory.StockAdjustment{
			{ProductID: "p1", Quantity: 2, Direction: inventory.Restore},
			{ProductID: "p2", Quantity: 1, Direction: inventory.Restore},
		},
		At: now,
	})
	assert.ErrorIs(t, err, order.ErrStockUpdateFailed)
	require.NoError(t, mock.ExpectationsWereMet())
}
