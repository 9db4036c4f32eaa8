// Package overdue detects lateness against the agreed-return instant and
// converts it into a tiered, penalty-weighted fine. Both pieces are pure;
// the lifecycle service owns every side effect.
package overdue

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy holds the penalty business constants. The thresholds and rates are
// literal business policy; they are configurable but deliberately not
// reinterpreted.
type Policy struct {
	DendaRate  float64 // penalty fraction of the base rate
	Multiplier float64 // escalation multiplier applied on top of DendaRate
	MinuteTier int64   // lateness up to this many minutes bills per minute
	HourTier   int64   // lateness up to this many minutes bills per hour
}

func DefaultPolicy() Policy {
	return Policy{
		DendaRate:  0.5,
		Multiplier: 1.5,
		MinuteTier: 120,
		HourTier:   480,
	}
}

// Method labels which tier produced the fine.
type Method string

const (
	MethodNone      Method = "no lateness"
	MethodPerMinute Method = "per-minute"
	MethodPerHour   Method = "per-hour"
	MethodPerDay    Method = "per-day"
)

// Breakdown is the diagnostic record of one fine computation.
type Breakdown struct {
	Method          Method `json:"method"`
	LatenessMinutes int64  `json:"latenessMinutes"`
	HourlyRate      int64  `json:"hourlyRate"`
	PerDayRate      int64  `json:"perDayRate"`
	Candidate       int64  `json:"candidate"`
	Floor           int64  `json:"floor"`
	FloorApplied    bool   `json:"floorApplied"`
	Amount          int64  `json:"amount"`
}

// LatenessMinutes compares a reference instant (now, or the completion
// instant) with the agreed return. Result is ceil of the millisecond
// difference in minutes, clamped at zero.
func LatenessMinutes(agreedReturn, reference time.Time) int64 {
	d := reference.Sub(agreedReturn)
	if d <= 0 {
		return 0
	}
	ms := d.Milliseconds()
	return (ms + 60_000 - 1) / 60_000
}

// Fine derives the monetary penalty for latenessMinutes of lateness on a
// rental billed totalPrice over durationHours.
//
// The base hourly rate is ceil(totalPrice/durationHours); lateness up to the
// minute tier bills per minute at hourly/60, up to the hour tier per ceil'd
// hour, beyond that per ceil'd day. A floor of one hour's penalized rate
// always applies.
func Fine(p Policy, totalPrice, durationHours, latenessMinutes int64) Breakdown {
	if latenessMinutes <= 0 {
		return Breakdown{Method: MethodNone}
	}
	if durationHours < 1 {
		durationHours = 1
	}

	weight := decimal.NewFromFloat(p.DendaRate).Mul(decimal.NewFromFloat(p.Multiplier))

	total := decimal.NewFromInt(totalPrice)
	hourlyRate := total.Div(decimal.NewFromInt(durationHours)).Ceil()
	// total/(durationHours/24) rearranged to a single division, so decimal
	// precision cannot push the ceiling over by one.
	perDayRate := total.Mul(decimal.NewFromInt(24)).Div(decimal.NewFromInt(durationHours)).Ceil()

	br := Breakdown{
		LatenessMinutes: latenessMinutes,
		HourlyRate:      hourlyRate.IntPart(),
		PerDayRate:      perDayRate.IntPart(),
	}

	var candidate decimal.Decimal
	switch {
	case latenessMinutes <= p.MinuteTier:
		br.Method = MethodPerMinute
		// per-minute rate is hourly/60; dividing last keeps the ceiling exact
		candidate = hourlyRate.Mul(weight).Mul(decimal.NewFromInt(latenessMinutes)).
			Div(decimal.NewFromInt(60)).Ceil()
	case latenessMinutes <= p.HourTier:
		br.Method = MethodPerHour
		hoursLate := (latenessMinutes + 59) / 60
		candidate = hourlyRate.Mul(weight).Mul(decimal.NewFromInt(hoursLate)).Ceil()
	default:
		br.Method = MethodPerDay
		daysLate := (latenessMinutes + 24*60 - 1) / (24 * 60)
		candidate = perDayRate.Mul(weight).Mul(decimal.NewFromInt(daysLate)).Ceil()
	}
	br.Candidate = candidate.IntPart()

	floor := hourlyRate.Mul(weight).Ceil()
	br.Floor = floor.IntPart()

	if candidate.LessThan(floor) {
		br.FloorApplied = true
		br.Amount = br.Floor
	} else {
		br.Amount = br.Candidate
	}
	return br
}
