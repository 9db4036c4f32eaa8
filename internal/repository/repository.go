package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/motorent/rental-service/internal/model"
)

type Repository interface {
	GetVehicle(ctx context.Context, id int64) (model.Vehicle, error)
	GetRenter(ctx context.Context, id int64) (model.Renter, error)

	CreateRental(ctx context.Context, rental model.Rental) (model.Rental, error)
	GetRental(ctx context.Context, id int64) (model.Rental, error)
	ListRentals(ctx context.Context) ([]model.Rental, error)
	UpdateRental(ctx context.Context, rental model.Rental) (model.Rental, error)
	SaveOverdueCalc(ctx context.Context, id int64, status model.RentalStatus, latenessMinutes int64, calcAt time.Time) error
	ListOverdueCandidates(ctx context.Context, ref time.Time) ([]model.Rental, error)
	CompleteRental(ctx context.Context, rental model.Rental, hist model.History) (model.History, error)
	RemoveRental(ctx context.Context, id int64) error

	GetHistory(ctx context.Context, id int64) (model.History, error)
	ListHistory(ctx context.Context) ([]model.History, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	rentalTableName  = `rentals`
	vehicleTableName = `vehicles`
	renterTableName  = `renters`
	historyTableName = `rental_history`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
