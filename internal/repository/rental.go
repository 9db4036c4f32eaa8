package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/motorent/rental-service/internal/errs"
	"github.com/motorent/rental-service/internal/model"
)

var rentalColumns = []string{
	"id", "vehicle_id", "renter_id", "admin_id", "start_at", "return_at",
	"duration_value", "rate_unit", "total_harga", "adjustments", "status",
	"is_overdue", "lateness_minutes", "last_overdue_calc", "extended_minutes",
	"collateral", "payment_method", "notes", "created_at", "updated_at",
}

// CreateRental runs the whole create transaction: the vehicle row is locked
// and re-checked inside the same transaction that inserts the rental and
// flips availability, closing the race between check and commit.
func (r *repository) CreateRental(ctx context.Context, rental model.Rental) (model.Rental, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Rental{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var vehicle model.Vehicle
	q := `select id, name, plate_number, status, base_rate_per_day from vehicles where id = $1 for update`
	if err := tx.GetContext(ctx, &vehicle, q, rental.VehicleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Rental{}, errs.ErrNotFound
		}
		return model.Rental{}, errors.Wrap(err, "lock vehicle")
	}
	if vehicle.Status != model.VehicleAvailable {
		return model.Rental{}, errs.ErrVehicleUnavailable
	}

	var renter model.Renter
	if err := tx.GetContext(ctx, &renter,
		`select id, name, phone, blacklisted from renters where id = $1`, rental.RenterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Rental{}, errs.ErrNotFound
		}
		return model.Rental{}, errors.Wrap(err, "get renter")
	}
	if renter.Blacklisted {
		return model.Rental{}, errs.ErrRenterBlacklisted
	}

	var active int
	if err := tx.GetContext(ctx, &active,
		`select count(*) from rentals where renter_id = $1`, rental.RenterID); err != nil {
		return model.Rental{}, errors.Wrap(err, "count renter rentals")
	}
	if active > 0 {
		return model.Rental{}, errs.ErrRenterHasActiveRent
	}

	query, args, err := qb.Insert(rentalTableName).
		Columns("vehicle_id", "renter_id", "admin_id", "start_at", "return_at",
			"duration_value", "rate_unit", "total_harga", "adjustments",
			"status", "extended_minutes", "collateral", "payment_method", "notes").
		Values(rental.VehicleID, rental.RenterID, rental.AdminID, rental.StartAt, rental.ReturnAt,
			rental.DurationValue, rental.RateUnit, rental.TotalHarga, rental.Adjustments,
			model.StatusActive, 0, rental.Collateral, rental.PaymentMethod, rental.Notes).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Rental{}, err
	}
	var created model.Rental
	if err := tx.GetContext(ctx, &created, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Rental{}, errs.ErrVehicleUnavailable
		}
		r.log.Error("CreateRental", zap.String("q", query), zap.Any("args", args))
		return model.Rental{}, errors.Wrap(err, "insert rental")
	}

	if err := setVehicleStatus(ctx, tx, rental.VehicleID, model.VehicleRented); err != nil {
		return model.Rental{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Rental{}, errors.Wrap(err, "commit")
	}
	return created, nil
}

func (r *repository) GetRental(ctx context.Context, id int64) (model.Rental, error) {
	query, args, err := qb.Select(rentalColumns...).
		From(rentalTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Rental{}, err
	}
	var rental model.Rental
	if err := r.db.GetContext(ctx, &rental, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Rental{}, errs.ErrNotFound
		}
		return model.Rental{}, errors.Wrap(err, "get rental")
	}
	return rental, nil
}

func (r *repository) ListRentals(ctx context.Context) ([]model.Rental, error) {
	query, args, err := qb.Select(rentalColumns...).
		From(rentalTableName).
		OrderBy("id asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Rental
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, errors.Wrap(err, "list rentals")
	}
	return items, nil
}

func (r *repository) UpdateRental(ctx context.Context, rental model.Rental) (model.Rental, error) {
	query, args, err := qb.Update(rentalTableName).
		Set("start_at", rental.StartAt).
		Set("return_at", rental.ReturnAt).
		Set("duration_value", rental.DurationValue).
		Set("rate_unit", rental.RateUnit).
		Set("total_harga", rental.TotalHarga).
		Set("adjustments", rental.Adjustments).
		Set("status", rental.Status).
		Set("is_overdue", rental.IsOverdue).
		Set("lateness_minutes", rental.LatenessMinutes).
		Set("last_overdue_calc", rental.LastOverdueCalc).
		Set("extended_minutes", rental.ExtendedMinutes).
		Set("collateral", rental.Collateral).
		Set("payment_method", rental.PaymentMethod).
		Set("notes", rental.Notes).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": rental.ID}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Rental{}, err
	}
	var updated model.Rental
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Rental{}, errs.ErrNotFound
		}
		r.log.Error("UpdateRental", zap.String("q", query), zap.Any("args", args))
		return model.Rental{}, errors.Wrap(err, "update rental")
	}
	return updated, nil
}

// SaveOverdueCalc persists a fresh lateness computation. Callers only invoke
// it when the derived values differ from the stored ones, keeping the lazy
// recalculation path idempotent.
func (r *repository) SaveOverdueCalc(ctx context.Context, id int64, status model.RentalStatus, latenessMinutes int64, calcAt time.Time) error {
	query, args, err := qb.Update(rentalTableName).
		Set("status", status).
		Set("is_overdue", status == model.StatusOverdue).
		Set("lateness_minutes", latenessMinutes).
		Set("last_overdue_calc", calcAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "save overdue calc")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) ListOverdueCandidates(ctx context.Context, ref time.Time) ([]model.Rental, error) {
	query, args, err := qb.Select(rentalColumns...).
		From(rentalTableName).
		Where(sq.Lt{"return_at": ref}).
		OrderBy("return_at asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Rental
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, errors.Wrap(err, "list overdue candidates")
	}
	return items, nil
}

// CompleteRental archives the rental into history, deletes the live row and
// restores vehicle availability in one transaction.
func (r *repository) CompleteRental(ctx context.Context, rental model.Rental, hist model.History) (model.History, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.History{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `delete from rentals where id = $1`, rental.ID)
	if err != nil {
		return model.History{}, errors.Wrap(err, "delete rental")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.History{}, errs.ErrAlreadyCompleted
	}

	query, args, err := qb.Insert(historyTableName).
		Columns("rental_id", "vehicle_name", "vehicle_plate", "renter_name", "renter_phone",
			"admin_id", "start_at", "return_at", "completed_at", "classification",
			"duration_value", "rate_unit", "harga", "denda", "lateness_minutes",
			"collateral", "payment_method", "notes").
		Values(hist.RentalID, hist.VehicleName, hist.VehiclePlate, hist.RenterName, hist.RenterPhone,
			hist.AdminID, hist.StartAt, hist.ReturnAt, hist.CompletedAt, hist.Classification,
			hist.DurationValue, hist.RateUnit, hist.Harga, hist.Denda, hist.LatenessMinutes,
			hist.Collateral, hist.PaymentMethod, hist.Notes).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.History{}, err
	}
	var created model.History
	if err := tx.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CompleteRental", zap.String("q", query), zap.Any("args", args))
		return model.History{}, errors.Wrap(err, "insert history")
	}

	if err := setVehicleStatus(ctx, tx, rental.VehicleID, model.VehicleAvailable); err != nil {
		return model.History{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.History{}, errors.Wrap(err, "commit")
	}
	return created, nil
}

// RemoveRental deletes without archival and releases the vehicle. Used for
// cancellations and erroneous entries.
func (r *repository) RemoveRental(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var vehicleID int64
	if err := tx.GetContext(ctx, &vehicleID,
		`delete from rentals where id = $1 returning vehicle_id`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrNotFound
		}
		return errors.Wrap(err, "delete rental")
	}

	if err := setVehicleStatus(ctx, tx, vehicleID, model.VehicleAvailable); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit")
}

func setVehicleStatus(ctx context.Context, tx *sqlx.Tx, vehicleID int64, status model.VehicleStatus) error {
	res, err := tx.ExecContext(ctx,
		`update vehicles set status = $2 where id = $1`, vehicleID, status)
	if err != nil {
		return errors.Wrap(err, "set vehicle status")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
