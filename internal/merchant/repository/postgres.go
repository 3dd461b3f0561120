package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/jmoiron/sqlx"
)

const storeColumns = `id, name, whatsapp_number, delivery_fee, message_template, accepted_payments, custom_payments, payment_link, is_open, locale, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Store, error) {
	var s model.Store
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
