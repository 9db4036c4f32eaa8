package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/motorent/rental-service/internal/errs"
	"github.com/motorent/rental-service/internal/model"
)

var historyColumns = []string{
	"id", "rental_id", "vehicle_name", "vehicle_plate", "renter_name", "renter_phone",
	"admin_id", "start_at", "return_at", "completed_at", "classification",
	"duration_value", "rate_unit", "harga", "denda", "lateness_minutes",
	"collateral", "payment_method", "notes", "created_at",
}

// History rows are append-only; they are written exclusively by
// CompleteRental and never updated here.

func (r *repository) GetHistory(ctx context.Context, id int64) (model.History, error) {
	query, args, err := qb.Select(historyColumns...).
		From(historyTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.History{}, err
	}
	var hist model.History
	if err := r.db.GetContext(ctx, &hist, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.History{}, errs.ErrNotFound
		}
		return model.History{}, errors.Wrap(err, "get history")
	}
	return hist, nil
}

func (r *repository) ListHistory(ctx context.Context) ([]model.History, error) {
	query, args, err := qb.Select(historyColumns...).
		From(historyTableName).
		OrderBy("completed_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.History
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, errors.Wrap(err, "list history")
	}
	return items, nil
}
