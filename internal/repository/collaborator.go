package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/motorent/rental-service/internal/errs"
	"github.com/motorent/rental-service/internal/model"
)

// Vehicle and renter rows are owned by external collaborators; the engine
// reads them and writes only vehicles.status via the paired lifecycle
// transactions in rental.go.

func (r *repository) GetVehicle(ctx context.Context, id int64) (model.Vehicle, error) {
	query, args, err := qb.Select("id", "name", "plate_number", "status", "base_rate_per_day").
		From(vehicleTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Vehicle{}, err
	}
	var vehicle model.Vehicle
	if err := r.db.GetContext(ctx, &vehicle, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vehicle{}, errs.ErrNotFound
		}
		return model.Vehicle{}, errors.Wrap(err, "get vehicle")
	}
	return vehicle, nil
}

func (r *repository) GetRenter(ctx context.Context, id int64) (model.Renter, error) {
	query, args, err := qb.Select("id", "name", "phone", "blacklisted").
		From(renterTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Renter{}, err
	}
	var renter model.Renter
	if err := r.db.GetContext(ctx, &renter, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Renter{}, errs.ErrNotFound
		}
		return model.Renter{}, errors.Wrap(err, "get renter")
	}
	return renter, nil
}
