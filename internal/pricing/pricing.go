// Package pricing derives billable duration, base price, net price and
// extension fees from rental instants and the vehicle's daily base rate.
// Every function is pure: same inputs, same outputs.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/motorent/rental-service/internal/errs"
	"github.com/motorent/rental-service/internal/model"
)

const hoursPerDay = 24

// CeilHoursBetween returns the span start..end expressed in whole hours,
// rounding any fraction up.
func CeilHoursBetween(start, end time.Time) int64 {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	mins := int64((d + time.Minute - 1) / time.Minute)
	return (mins + 59) / 60
}

// Calculate maps (start, end, unit, baseRatePerDay) to the billable duration
// value and base price.
//
//	hour unit: duration = max(1, ceil(hours)), price = ceil(rate/24 * duration)
//	day unit:  duration = max(1, ceil(hours/24)), price = rate * duration
func Calculate(start, end time.Time, unit model.RateUnit, baseRatePerDay int64) (int64, int64, error) {
	if !end.After(start) {
		return 0, 0, errs.ErrCalculationInvariant
	}
	hours := CeilHoursBetween(start, end)

	switch unit {
	case model.UnitHour:
		duration := maxInt64(1, hours)
		// rate/24*duration with the division last, so decimal precision
		// cannot push the ceiling over by one
		price := decimal.NewFromInt(baseRatePerDay).
			Mul(decimal.NewFromInt(duration)).
			Div(decimal.NewFromInt(hoursPerDay)).
			Ceil().IntPart()
		return duration, price, nil
	case model.UnitDay:
		duration := maxInt64(1, (hours+hoursPerDay-1)/hoursPerDay)
		return duration, baseRatePerDay * duration, nil
	default:
		return 0, 0, errs.ErrCalculationInvariant
	}
}

// DurationHours expresses a billed duration in hours for penalty math.
func DurationHours(durationValue int64, unit model.RateUnit) int64 {
	if unit == model.UnitDay {
		return durationValue * hoursPerDay
	}
	return durationValue
}

// NetPrice applies adjustment line items to the base price. The result is
// clamped at zero, never negative.
func NetPrice(basePrice int64, adjustments []model.Adjustment) int64 {
	net := basePrice
	for _, a := range adjustments {
		switch a.Kind {
		case model.AdjustmentDiscount:
			net -= a.Amount
		case model.AdjustmentAdditional:
			net += a.Amount
		}
	}
	if net < 0 {
		return 0
	}
	return net
}

// BasePrice reverses NetPrice: it recovers the pre-adjustment price from a
// stored net total and the adjustment list that produced it. Clamped at zero
// like its counterpart.
func BasePrice(netPrice int64, adjustments []model.Adjustment) int64 {
	base := netPrice
	for _, a := range adjustments {
		switch a.Kind {
		case model.AdjustmentDiscount:
			base += a.Amount
		case model.AdjustmentAdditional:
			base -= a.Amount
		}
	}
	if base < 0 {
		return 0
	}
	return base
}

// ExtensionFee prices the span between the old and new agreed-return instants
// with the same per-hour/per-day base-rate logic as Calculate. It is a price
// top-up, not a fine. Returns the fee and the minutes added to the rental's
// extension counter.
func ExtensionFee(oldReturn, newReturn time.Time, unit model.RateUnit, baseRatePerDay int64) (int64, int64, error) {
	if !newReturn.After(oldReturn) {
		return 0, 0, errs.ErrInvalidTemporalOrder
	}
	_, fee, err := Calculate(oldReturn, newReturn, unit, baseRatePerDay)
	if err != nil {
		return 0, 0, err
	}
	d := newReturn.Sub(oldReturn)
	mins := int64((d + time.Minute - 1) / time.Minute)
	return fee, mins, nil
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
