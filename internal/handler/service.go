package handler

import (
	"context"
	"time"

	"github.com/motorent/rental-service/internal/model"
	"github.com/motorent/rental-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type RentalService interface {
	Create(ctx context.Context, req model.CreateRentalRequest) (model.Rental, error)
	Update(ctx context.Context, id int64, req model.UpdateRentalRequest) (model.Rental, error)
	Extend(ctx context.Context, id int64, req model.ExtendRentalRequest) (model.Rental, error)
	Complete(ctx context.Context, id int64, req model.CompleteRentalRequest, now time.Time) (service.CompletionResult, error)
	Remove(ctx context.Context, id int64) error
	FindOne(ctx context.Context, id int64, now time.Time) (model.Rental, error)
	FindAll(ctx context.Context, now time.Time) ([]model.Rental, error)
	FindOverdue(ctx context.Context, now time.Time) ([]service.OverdueRental, error)
	GetHistory(ctx context.Context, id int64) (model.History, error)
	ListHistory(ctx context.Context) ([]model.History, error)
}

var _ RentalService = (*service.Service)(nil)
