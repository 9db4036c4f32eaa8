package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/motorent/rental-service/internal/errs"
	"github.com/motorent/rental-service/internal/model"
	"github.com/motorent/rental-service/internal/overdue"
	"github.com/motorent/rental-service/internal/service"
	mock_service "github.com/motorent/rental-service/internal/service/mocks"
	"github.com/motorent/rental-service/pkg/datetime"
)

func newService(t *testing.T) (*service.Service, *mock_service.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mock_service.NewMockRepository(ctrl)
	svc := service.NewService(repo, nil, overdue.DefaultPolicy(), zap.NewNop())
	return svc, repo
}

var (
	avanza = model.Vehicle{
		ID:             3,
		Name:           "Toyota Avanza",
		PlateNumber:    "B 1771 SUV",
		Status:         model.VehicleAvailable,
		BaseRatePerDay: 240000,
	}
	budi = model.Renter{
		ID:    7,
		Name:  "Budi Santoso",
		Phone: "+62812000111",
	}
)

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	req := model.CreateRentalRequest{
		VehicleID:     3,
		RenterID:      7,
		AdminID:       2,
		StartAt:       "2024-03-01T09:00",
		ReturnAt:      "2024-03-03T09:00",
		RateUnit:      model.UnitDay,
		Collateral:    []model.CollateralKind{model.CollateralKTP},
		PaymentMethod: "cash",
	}

	t.Run("prices and persists a daily rental", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetVehicle(ctx, int64(3)).Return(avanza, nil)
		repo.EXPECT().CreateRental(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.Rental) (model.Rental, error) {
				require.Equal(t, int64(2), r.DurationValue)
				require.Equal(t, int64(480000), r.TotalHarga)
				require.Equal(t, model.StatusActive, r.Status)
				require.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, datetime.WIB), r.StartAt)
				require.Equal(t, time.Date(2024, 3, 3, 9, 0, 0, 0, datetime.WIB), r.ReturnAt)
				r.ID = 1
				return r, nil
			})

		created, err := svc.Create(ctx, req)
		require.NoError(t, err)
		require.Equal(t, int64(1), created.ID)
	})

	t.Run("adjustments shape the net price", func(t *testing.T) {
		svc, repo := newService(t)

		adjusted := req
		adjusted.Adjustments = []model.Adjustment{
			{Description: "helm", Amount: 15000, Kind: model.AdjustmentAdditional},
			{Description: "promo", Amount: 25000, Kind: model.AdjustmentDiscount},
		}

		repo.EXPECT().GetVehicle(ctx, int64(3)).Return(avanza, nil)
		repo.EXPECT().CreateRental(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.Rental) (model.Rental, error) {
				require.Equal(t, int64(470000), r.TotalHarga)
				return r, nil
			})

		_, err := svc.Create(ctx, adjusted)
		require.NoError(t, err)
	})

	t.Run("return before start is rejected before any read", func(t *testing.T) {
		svc, _ := newService(t)

		bad := req
		bad.StartAt = "2024-03-03T09:00"
		bad.ReturnAt = "2024-03-01T09:00"

		_, err := svc.Create(ctx, bad)
		require.ErrorIs(t, err, errs.ErrInvalidTemporalOrder)
	})

	t.Run("return equals start", func(t *testing.T) {
		svc, _ := newService(t)

		bad := req
		bad.ReturnAt = bad.StartAt

		_, err := svc.Create(ctx, bad)
		require.ErrorIs(t, err, errs.ErrInvalidTemporalOrder)
	})

	t.Run("unparseable start", func(t *testing.T) {
		svc, _ := newService(t)

		bad := req
		bad.StartAt = "03/01/2024"

		_, err := svc.Create(ctx, bad)
		require.ErrorIs(t, err, errs.ErrInvalidDateFormat)
	})

	t.Run("vehicle already rented", func(t *testing.T) {
		svc, repo := newService(t)

		rented := avanza
		rented.Status = model.VehicleRented
		repo.EXPECT().GetVehicle(ctx, int64(3)).Return(rented, nil)

		_, err := svc.Create(ctx, req)
		require.ErrorIs(t, err, errs.ErrVehicleUnavailable)
	})
}

func activeRental() model.Rental {
	return model.Rental{
		ID:            1,
		VehicleID:     3,
		RenterID:      7,
		AdminID:       2,
		StartAt:       time.Date(2024, 3, 1, 9, 0, 0, 0, datetime.WIB),
		ReturnAt:      time.Date(2024, 3, 3, 9, 0, 0, 0, datetime.WIB),
		DurationValue: 2,
		RateUnit:      model.UnitDay,
		TotalHarga:    480000,
		Status:        model.StatusActive,
	}
}

func TestService_Extend(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a day of fee and resets lateness", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()
		rental.Status = model.StatusOverdue
		rental.IsOverdue = true
		rental.LatenessMinutes = 45

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)
		repo.EXPECT().GetVehicle(ctx, int64(3)).Return(avanza, nil)
		repo.EXPECT().UpdateRental(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.Rental) (model.Rental, error) {
				require.Equal(t, time.Date(2024, 3, 4, 9, 0, 0, 0, datetime.WIB), r.ReturnAt)
				require.Equal(t, int64(720000), r.TotalHarga)
				require.Equal(t, int64(24*60), r.ExtendedMinutes)
				require.Equal(t, model.StatusActive, r.Status)
				require.False(t, r.IsOverdue)
				require.Zero(t, r.LatenessMinutes)
				return r, nil
			})

		updated, err := svc.Extend(ctx, 1, model.ExtendRentalRequest{NewReturnAt: "2024-03-04T09:00"})
		require.NoError(t, err)
		require.Equal(t, int64(720000), updated.TotalHarga)
	})

	t.Run("extensions accumulate", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()
		rental.ExtendedMinutes = 120
		rental.TotalHarga = 500000

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)
		repo.EXPECT().GetVehicle(ctx, int64(3)).Return(avanza, nil)
		repo.EXPECT().UpdateRental(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.Rental) (model.Rental, error) {
				require.Equal(t, int64(120+24*60), r.ExtendedMinutes)
				require.Equal(t, int64(740000), r.TotalHarga)
				return r, nil
			})

		_, err := svc.Extend(ctx, 1, model.ExtendRentalRequest{NewReturnAt: "2024-03-04T09:00"})
		require.NoError(t, err)
	})

	t.Run("new return equal to current is rejected", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetRental(ctx, int64(1)).Return(activeRental(), nil)

		_, err := svc.Extend(ctx, 1, model.ExtendRentalRequest{NewReturnAt: "2024-03-03T09:00"})
		require.ErrorIs(t, err, errs.ErrInvalidTemporalOrder)
	})

	t.Run("new return before current is rejected", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetRental(ctx, int64(1)).Return(activeRental(), nil)

		_, err := svc.Extend(ctx, 1, model.ExtendRentalRequest{NewReturnAt: "2024-03-02T09:00"})
		require.ErrorIs(t, err, errs.ErrInvalidTemporalOrder)
	})
}

func TestService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("late return carries the fine into history", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()
		now := rental.ReturnAt.Add(90 * time.Minute)

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)
		repo.EXPECT().GetVehicle(ctx, int64(3)).Return(avanza, nil)
		repo.EXPECT().GetRenter(ctx, int64(7)).Return(budi, nil)
		repo.EXPECT().CompleteRental(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ model.Rental, h model.History) (model.History, error) {
				require.Equal(t, model.ReturnedLate, h.Classification)
				require.Equal(t, int64(90), h.LatenessMinutes)
				require.Equal(t, int64(480000), h.Harga)
				require.Equal(t, int64(11250), h.Denda)
				require.Equal(t, "Toyota Avanza", h.VehicleName)
				require.Equal(t, "Budi Santoso", h.RenterName)
				h.ID = 9
				return h, nil
			})

		res, err := svc.Complete(ctx, 1, model.CompleteRentalRequest{}, now)
		require.NoError(t, err)
		require.Equal(t, int64(9), res.History.ID)
		require.Equal(t, overdue.MethodPerMinute, res.Fine.Method)
		require.Equal(t, int64(11250), res.Fine.Amount)
	})

	t.Run("on time return has zero fine", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()
		now := rental.ReturnAt.Add(-2 * time.Hour)

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)
		repo.EXPECT().GetVehicle(ctx, int64(3)).Return(avanza, nil)
		repo.EXPECT().GetRenter(ctx, int64(7)).Return(budi, nil)
		repo.EXPECT().CompleteRental(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ model.Rental, h model.History) (model.History, error) {
				require.Equal(t, model.ReturnedOnTime, h.Classification)
				require.Zero(t, h.Denda)
				require.Zero(t, h.LatenessMinutes)
				return h, nil
			})

		res, err := svc.Complete(ctx, 1, model.CompleteRentalRequest{}, now)
		require.NoError(t, err)
		require.Equal(t, overdue.MethodNone, res.Fine.Method)
	})

	t.Run("explicit completion instant overrides now", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)
		repo.EXPECT().GetVehicle(ctx, int64(3)).Return(avanza, nil)
		repo.EXPECT().GetRenter(ctx, int64(7)).Return(budi, nil)
		repo.EXPECT().CompleteRental(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ model.Rental, h model.History) (model.History, error) {
				require.Equal(t, int64(300), h.LatenessMinutes)
				require.Equal(t, int64(37500), h.Denda)
				return h, nil
			})

		// 2024-03-03T14:00 is 300 minutes past the agreed return; the now
		// argument points elsewhere and must be ignored.
		req := model.CompleteRentalRequest{CompletedAt: "2024-03-03T14:00"}
		res, err := svc.Complete(ctx, 1, req, rental.ReturnAt)
		require.NoError(t, err)
		require.Equal(t, overdue.MethodPerHour, res.Fine.Method)
	})

	t.Run("already completed", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()
		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)
		repo.EXPECT().GetVehicle(ctx, int64(3)).Return(avanza, nil)
		repo.EXPECT().GetRenter(ctx, int64(7)).Return(budi, nil)
		repo.EXPECT().CompleteRental(ctx, gomock.Any(), gomock.Any()).
			Return(model.History{}, errs.ErrAlreadyCompleted)

		_, err := svc.Complete(ctx, 1, model.CompleteRentalRequest{}, rental.ReturnAt)
		require.ErrorIs(t, err, errs.ErrAlreadyCompleted)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("new return reprices and clears lateness", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()
		rental.Status = model.StatusOverdue
		rental.IsOverdue = true
		rental.LatenessMinutes = 200

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)
		repo.EXPECT().GetVehicle(ctx, int64(3)).Return(avanza, nil)
		repo.EXPECT().UpdateRental(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.Rental) (model.Rental, error) {
				require.Equal(t, int64(4), r.DurationValue)
				require.Equal(t, int64(960000), r.TotalHarga)
				require.Equal(t, model.StatusActive, r.Status)
				require.False(t, r.IsOverdue)
				require.Zero(t, r.LatenessMinutes)
				return r, nil
			})

		newReturn := "2024-03-05T09:00"
		_, err := svc.Update(ctx, 1, model.UpdateRentalRequest{ReturnAt: &newReturn})
		require.NoError(t, err)
	})

	t.Run("adjustments only keeps the stored base after an extension", func(t *testing.T) {
		svc, repo := newService(t)

		// Hourly rental 09:00-10:12 billed as 2 hours (20000), then extended
		// to 11:24 for 2 more billed hours. The stored 40000 carries the
		// per-span ceiling; recomputing 09:00-11:24 would bill only 3 hours.
		rental := activeRental()
		rental.RateUnit = model.UnitHour
		rental.ReturnAt = rental.StartAt.Add(2*time.Hour + 24*time.Minute)
		rental.DurationValue = 2
		rental.TotalHarga = 40000
		rental.ExtendedMinutes = 72

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)
		repo.EXPECT().UpdateRental(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.Rental) (model.Rental, error) {
				require.Equal(t, int64(45000), r.TotalHarga)
				return r, nil
			})

		adj := []model.Adjustment{
			{Description: "helm", Amount: 5000, Kind: model.AdjustmentAdditional},
		}
		got, err := svc.Update(ctx, 1, model.UpdateRentalRequest{Adjustments: &adj})
		require.NoError(t, err)
		require.Equal(t, int64(45000), got.TotalHarga)
	})

	t.Run("replacing adjustments reverses the old list first", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()
		rental.Adjustments = model.AdjustmentList{
			{Description: "promo", Amount: 30000, Kind: model.AdjustmentDiscount},
		}
		rental.TotalHarga = 450000 // base 480000 minus the promo

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)
		repo.EXPECT().UpdateRental(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.Rental) (model.Rental, error) {
				require.Equal(t, int64(470000), r.TotalHarga)
				return r, nil
			})

		adj := []model.Adjustment{
			{Description: "voucher", Amount: 10000, Kind: model.AdjustmentDiscount},
		}
		_, err := svc.Update(ctx, 1, model.UpdateRentalRequest{Adjustments: &adj})
		require.NoError(t, err)
	})

	t.Run("notes only change skips repricing", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetRental(ctx, int64(1)).Return(activeRental(), nil)
		repo.EXPECT().UpdateRental(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, r model.Rental) (model.Rental, error) {
				require.Equal(t, "ganti helm", r.Notes)
				require.Equal(t, int64(480000), r.TotalHarga)
				return r, nil
			})

		notes := "ganti helm"
		_, err := svc.Update(ctx, 1, model.UpdateRentalRequest{Notes: &notes})
		require.NoError(t, err)
	})

	t.Run("return not after start", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetRental(ctx, int64(1)).Return(activeRental(), nil)

		bad := "2024-03-01T09:00"
		_, err := svc.Update(ctx, 1, model.UpdateRentalRequest{ReturnAt: &bad})
		require.ErrorIs(t, err, errs.ErrInvalidTemporalOrder)
	})
}

func TestService_FindOne(t *testing.T) {
	ctx := context.Background()

	t.Run("flips to overdue past the agreed return", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()
		now := rental.ReturnAt.Add(90 * time.Minute)

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)
		repo.EXPECT().SaveOverdueCalc(ctx, int64(1), model.StatusOverdue, int64(90), now).Return(nil)

		got, err := svc.FindOne(ctx, 1, now)
		require.NoError(t, err)
		require.Equal(t, model.StatusOverdue, got.Status)
		require.True(t, got.IsOverdue)
		require.Equal(t, int64(90), got.LatenessMinutes)
		require.True(t, got.LastOverdueCalc.Valid)
	})

	t.Run("unchanged computation writes nothing", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()
		rental.Status = model.StatusOverdue
		rental.IsOverdue = true
		rental.LatenessMinutes = 90
		now := rental.ReturnAt.Add(90 * time.Minute)

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)

		got, err := svc.FindOne(ctx, 1, now)
		require.NoError(t, err)
		require.Equal(t, rental.LatenessMinutes, got.LatenessMinutes)
	})

	t.Run("before the agreed return stays active", func(t *testing.T) {
		svc, repo := newService(t)

		rental := activeRental()
		now := rental.ReturnAt.Add(-time.Hour)

		repo.EXPECT().GetRental(ctx, int64(1)).Return(rental, nil)

		got, err := svc.FindOne(ctx, 1, now)
		require.NoError(t, err)
		require.Equal(t, model.StatusActive, got.Status)
		require.False(t, got.IsOverdue)
	})
}

func TestService_FindOverdue(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)

	rental := activeRental()
	now := rental.ReturnAt.Add(90 * time.Minute)

	repo.EXPECT().ListOverdueCandidates(ctx, now).Return([]model.Rental{rental}, nil)
	repo.EXPECT().SaveOverdueCalc(ctx, int64(1), model.StatusOverdue, int64(90), now).Return(nil)

	out, err := svc.FindOverdue(ctx, now)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, model.StatusOverdue, out[0].Status)
	require.Equal(t, int64(11250), out[0].Fine.Amount)
}

func TestService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the rental", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetRental(ctx, int64(1)).Return(activeRental(), nil)
		repo.EXPECT().RemoveRental(ctx, int64(1)).Return(nil)

		require.NoError(t, svc.Remove(ctx, 1))
	})

	t.Run("missing rental", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().GetRental(ctx, int64(99)).Return(model.Rental{}, errs.ErrNotFound)

		require.ErrorIs(t, svc.Remove(ctx, 99), errs.ErrNotFound)
	})
}
