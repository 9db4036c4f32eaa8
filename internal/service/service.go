package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/motorent/rental-service/internal/errs"
	"github.com/motorent/rental-service/internal/model"
	"github.com/motorent/rental-service/internal/overdue"
	"github.com/motorent/rental-service/internal/pricing"
	"github.com/motorent/rental-service/internal/repository"
	"github.com/motorent/rental-service/pkg/datetime"
	"github.com/motorent/rental-service/pkg/kafka"
)

// EventPublisher leaves a record of each committed lifecycle operation on the
// event stream. Failures are logged, never propagated: the transaction has
// already committed.
type EventPublisher interface {
	Publish(ev kafka.RentalEvent) error
}

// Service is the rental lifecycle controller: the only writer of rental state
// and of the paired vehicle availability flag.
type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	events EventPublisher
	policy overdue.Policy
}

func NewService(repo repository.Repository, events EventPublisher, policy overdue.Policy, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		events: events,
		policy: policy,
	}
}

// OverdueRental pairs a live rental with its fresh fine computation.
type OverdueRental struct {
	model.Rental
	Fine overdue.Breakdown `json:"fine"`
}

// CompletionResult is what Complete hands back: the archived row plus the
// fine diagnostics that produced it.
type CompletionResult struct {
	History model.History     `json:"history"`
	Fine    overdue.Breakdown `json:"fine"`
}

func (s *Service) Create(ctx context.Context, req model.CreateRentalRequest) (model.Rental, error) {
	startAt, err := datetime.Parse(req.StartAt)
	if err != nil {
		return model.Rental{}, err
	}
	returnAt, err := datetime.Parse(req.ReturnAt)
	if err != nil {
		return model.Rental{}, err
	}
	if !returnAt.After(startAt) {
		return model.Rental{}, errs.ErrInvalidTemporalOrder
	}

	vehicle, err := s.repo.GetVehicle(ctx, req.VehicleID)
	if err != nil {
		return model.Rental{}, err
	}
	if vehicle.Status != model.VehicleAvailable {
		return model.Rental{}, errs.ErrVehicleUnavailable
	}

	duration, basePrice, err := pricing.Calculate(startAt, returnAt, req.RateUnit, vehicle.BaseRatePerDay)
	if err != nil {
		return model.Rental{}, err
	}
	total := pricing.NetPrice(basePrice, req.Adjustments)

	rental := model.Rental{
		VehicleID:     req.VehicleID,
		RenterID:      req.RenterID,
		AdminID:       req.AdminID,
		StartAt:       startAt,
		ReturnAt:      returnAt,
		DurationValue: duration,
		RateUnit:      req.RateUnit,
		TotalHarga:    total,
		Adjustments:   req.Adjustments,
		Status:        model.StatusActive,
		Collateral:    req.Collateral,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	created, err := s.repo.CreateRental(ctx, rental)
	if err != nil {
		return model.Rental{}, err
	}
	s.publish("rental.created", created, 0, 0)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, req model.UpdateRentalRequest) (model.Rental, error) {
	rental, err := s.repo.GetRental(ctx, id)
	if err != nil {
		return model.Rental{}, err
	}

	// Recover the stored base before the adjustment list is swapped.
	// Extensions bill each span separately, so the stored total can exceed a
	// price recomputed from the current timestamps; the base is only rebuilt
	// from timestamps when the return instant itself changes.
	basePrice := pricing.BasePrice(rental.TotalHarga, rental.Adjustments)

	returnChanged := false
	if req.ReturnAt != nil {
		newReturn, err := datetime.Parse(*req.ReturnAt)
		if err != nil {
			return model.Rental{}, err
		}
		if !newReturn.After(rental.StartAt) {
			return model.Rental{}, errs.ErrInvalidTemporalOrder
		}
		if !newReturn.Equal(rental.ReturnAt) {
			rental.ReturnAt = newReturn
			returnChanged = true
		}
	}

	adjChanged := false
	if req.Adjustments != nil {
		rental.Adjustments = *req.Adjustments
		adjChanged = true
	}

	// An explicit new return instant supersedes any prior lateness and any
	// accumulated extension spans.
	if returnChanged {
		vehicle, err := s.repo.GetVehicle(ctx, rental.VehicleID)
		if err != nil {
			return model.Rental{}, err
		}
		duration, recomputed, err := pricing.Calculate(rental.StartAt, rental.ReturnAt, rental.RateUnit, vehicle.BaseRatePerDay)
		if err != nil {
			return model.Rental{}, err
		}
		basePrice = recomputed
		rental.DurationValue = duration
		rental.Status = model.StatusActive
		rental.IsOverdue = false
		rental.LatenessMinutes = 0
		rental.LastOverdueCalc.Valid = false
	}
	if returnChanged || adjChanged {
		rental.TotalHarga = pricing.NetPrice(basePrice, rental.Adjustments)
	}

	if req.Collateral != nil {
		rental.Collateral = *req.Collateral
	}
	if req.PaymentMethod != nil {
		rental.PaymentMethod = *req.PaymentMethod
	}
	if req.Notes != nil {
		rental.Notes = *req.Notes
	}

	updated, err := s.repo.UpdateRental(ctx, rental)
	if err != nil {
		return model.Rental{}, err
	}
	s.publish("rental.updated", updated, 0, 0)
	return updated, nil
}

func (s *Service) Extend(ctx context.Context, id int64, req model.ExtendRentalRequest) (model.Rental, error) {
	rental, err := s.repo.GetRental(ctx, id)
	if err != nil {
		return model.Rental{}, err
	}
	newReturn, err := datetime.Parse(req.NewReturnAt)
	if err != nil {
		return model.Rental{}, err
	}
	if !newReturn.After(rental.ReturnAt) {
		return model.Rental{}, errs.ErrInvalidTemporalOrder
	}

	vehicle, err := s.repo.GetVehicle(ctx, rental.VehicleID)
	if err != nil {
		return model.Rental{}, err
	}
	fee, minutes, err := pricing.ExtensionFee(rental.ReturnAt, newReturn, rental.RateUnit, vehicle.BaseRatePerDay)
	if err != nil {
		return model.Rental{}, err
	}

	rental.ReturnAt = newReturn
	rental.TotalHarga += fee
	rental.ExtendedMinutes += minutes
	rental.Status = model.StatusActive
	rental.IsOverdue = false
	rental.LatenessMinutes = 0
	rental.LastOverdueCalc.Valid = false

	updated, err := s.repo.UpdateRental(ctx, rental)
	if err != nil {
		return model.Rental{}, err
	}
	s.publish("rental.extended", updated, 0, 0)
	return updated, nil
}

func (s *Service) Complete(ctx context.Context, id int64, req model.CompleteRentalRequest, now time.Time) (CompletionResult, error) {
	rental, err := s.repo.GetRental(ctx, id)
	if err != nil {
		return CompletionResult{}, err
	}

	completedAt := now
	if req.CompletedAt != "" {
		if completedAt, err = datetime.Parse(req.CompletedAt); err != nil {
			return CompletionResult{}, err
		}
	}

	lateness := overdue.LatenessMinutes(rental.ReturnAt, completedAt)
	durationHours := pricing.DurationHours(rental.DurationValue, rental.RateUnit)
	fine := overdue.Fine(s.policy, rental.TotalHarga, durationHours, lateness)
	if fine.Amount < 0 || durationHours < 1 {
		return CompletionResult{}, errs.ErrCalculationInvariant
	}
	classification := model.ReturnedOnTime
	if lateness > 0 {
		classification = model.ReturnedLate
	}

	vehicle, err := s.repo.GetVehicle(ctx, rental.VehicleID)
	if err != nil {
		return CompletionResult{}, err
	}
	renter, err := s.repo.GetRenter(ctx, rental.RenterID)
	if err != nil {
		return CompletionResult{}, err
	}

	notes := rental.Notes
	if req.Notes != "" {
		notes = req.Notes
	}
	hist := model.History{
		RentalID:        rental.ID,
		VehicleName:     vehicle.Name,
		VehiclePlate:    vehicle.PlateNumber,
		RenterName:      renter.Name,
		RenterPhone:     renter.Phone,
		AdminID:         rental.AdminID,
		StartAt:         rental.StartAt,
		ReturnAt:        rental.ReturnAt,
		CompletedAt:     completedAt,
		Classification:  classification,
		DurationValue:   rental.DurationValue,
		RateUnit:        rental.RateUnit,
		Harga:           rental.TotalHarga,
		Denda:           fine.Amount,
		LatenessMinutes: lateness,
		Collateral:      rental.Collateral,
		PaymentMethod:   rental.PaymentMethod,
		Notes:           notes,
	}

	archived, err := s.repo.CompleteRental(ctx, rental, hist)
	if err != nil {
		return CompletionResult{}, err
	}
	s.publish("rental.completed", rental, fine.Amount, lateness)
	return CompletionResult{History: archived, Fine: fine}, nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	rental, err := s.repo.GetRental(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.RemoveRental(ctx, id); err != nil {
		return err
	}
	s.publish("rental.removed", rental, 0, 0)
	return nil
}

// FindOne reads a rental and lazily refreshes its overdue bookkeeping with
// the supplied reference instant. Stored values are touched only when the
// derived ones differ, so repeated calls with the same instant are idempotent.
func (s *Service) FindOne(ctx context.Context, id int64, now time.Time) (model.Rental, error) {
	rental, err := s.repo.GetRental(ctx, id)
	if err != nil {
		return model.Rental{}, err
	}
	return s.refreshOverdue(ctx, rental, now)
}

func (s *Service) FindAll(ctx context.Context, now time.Time) ([]model.Rental, error) {
	rentals, err := s.repo.ListRentals(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rentals {
		if rentals[i], err = s.refreshOverdue(ctx, rentals[i], now); err != nil {
			return nil, err
		}
	}
	return rentals, nil
}

// FindOverdue is the batch counterpart of the lazy per-record recalculation:
// it scans rentals past their agreed return, persists fresh lateness, and
// returns them with the fine each would incur if completed now.
func (s *Service) FindOverdue(ctx context.Context, now time.Time) ([]OverdueRental, error) {
	candidates, err := s.repo.ListOverdueCandidates(ctx, now)
	if err != nil {
		return nil, err
	}
	out := make([]OverdueRental, 0, len(candidates))
	for _, rental := range candidates {
		refreshed, err := s.refreshOverdue(ctx, rental, now)
		if err != nil {
			return nil, err
		}
		durationHours := pricing.DurationHours(refreshed.DurationValue, refreshed.RateUnit)
		out = append(out, OverdueRental{
			Rental: refreshed,
			Fine:   overdue.Fine(s.policy, refreshed.TotalHarga, durationHours, refreshed.LatenessMinutes),
		})
	}
	return out, nil
}

func (s *Service) GetHistory(ctx context.Context, id int64) (model.History, error) {
	return s.repo.GetHistory(ctx, id)
}

func (s *Service) ListHistory(ctx context.Context) ([]model.History, error) {
	return s.repo.ListHistory(ctx)
}

func (s *Service) refreshOverdue(ctx context.Context, rental model.Rental, now time.Time) (model.Rental, error) {
	lateness := overdue.LatenessMinutes(rental.ReturnAt, now)
	status := model.StatusActive
	if lateness > 0 {
		status = model.StatusOverdue
	}
	if lateness == rental.LatenessMinutes && status == rental.Status {
		return rental, nil
	}
	if err := s.repo.SaveOverdueCalc(ctx, rental.ID, status, lateness, now); err != nil {
		return model.Rental{}, err
	}
	if status == model.StatusOverdue && rental.Status != model.StatusOverdue {
		s.publish("rental.overdue", rental, 0, lateness)
	}
	rental.Status = status
	rental.IsOverdue = status == model.StatusOverdue
	rental.LatenessMinutes = lateness
	rental.LastOverdueCalc.Time = now
	rental.LastOverdueCalc.Valid = true
	return rental, nil
}

func (s *Service) publish(op string, rental model.Rental, denda, lateness int64) {
	if s.events == nil {
		return
	}
	ev := kafka.RentalEvent{
		Operation:       op,
		RentalID:        rental.ID,
		VehicleID:       rental.VehicleID,
		RenterID:        rental.RenterID,
		TotalHarga:      rental.TotalHarga,
		Denda:           denda,
		LatenessMinutes: lateness,
		OccurredAt:      datetime.Now(),
	}
	if err := s.events.Publish(ev); err != nil {
		s.log.Warn("publish event", zap.String("op", op), zap.Error(err))
	}
}
