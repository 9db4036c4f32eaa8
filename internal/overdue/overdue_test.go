package overdue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/motorent/rental-service/internal/overdue"
	"github.com/motorent/rental-service/pkg/datetime"
)

func TestLatenessMinutes(t *testing.T) {
	t.Parallel()

	agreed := time.Date(2024, 3, 10, 12, 0, 0, 0, datetime.WIB)

	tests := []struct {
		name string
		ref  time.Time
		want int64
	}{
		{"on time", agreed, 0},
		{"early", agreed.Add(-time.Hour), 0},
		{"ninety minutes late", agreed.Add(90 * time.Minute), 90},
		{"one second late rounds up", agreed.Add(time.Second), 1},
		{"partial minute rounds up", agreed.Add(2*time.Minute + 30*time.Second), 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, overdue.LatenessMinutes(agreed, tt.ref))
		})
	}
}

func TestLatenessIdempotent(t *testing.T) {
	t.Parallel()
	agreed := time.Date(2024, 3, 10, 12, 0, 0, 0, datetime.WIB)
	ref := agreed.Add(37 * time.Minute)
	first := overdue.LatenessMinutes(agreed, ref)
	second := overdue.LatenessMinutes(agreed, ref)
	require.Equal(t, first, second)
}

func TestFine(t *testing.T) {
	t.Parallel()

	policy := overdue.DefaultPolicy()

	// rate 240000/day, day unit, 2 days: total 480000, 48 billable hours,
	// hourly rate 10000.
	const (
		total    = int64(480000)
		durHours = int64(48)
	)

	t.Run("no lateness", func(t *testing.T) {
		t.Parallel()
		br := overdue.Fine(policy, total, durHours, 0)
		require.Equal(t, overdue.MethodNone, br.Method)
		require.Equal(t, int64(0), br.Amount)
	})

	t.Run("minute tier, 90 minutes", func(t *testing.T) {
		t.Parallel()
		br := overdue.Fine(policy, total, durHours, 90)
		require.Equal(t, overdue.MethodPerMinute, br.Method)
		require.Equal(t, int64(10000), br.HourlyRate)
		// ceil((240000/24/60) * 0.5 * 1.5 * 90) = 11250
		require.Equal(t, int64(11250), br.Amount)
		require.False(t, br.FloorApplied)
	})

	t.Run("hour tier, 300 minutes", func(t *testing.T) {
		t.Parallel()
		br := overdue.Fine(policy, total, durHours, 300)
		require.Equal(t, overdue.MethodPerHour, br.Method)
		// ceil(10000 * 0.75 * ceil(300/60)) = 37500
		require.Equal(t, int64(37500), br.Amount)
	})

	t.Run("day tier, 500 minutes", func(t *testing.T) {
		t.Parallel()
		br := overdue.Fine(policy, total, durHours, 500)
		require.Equal(t, overdue.MethodPerDay, br.Method)
		require.Equal(t, int64(240000), br.PerDayRate)
		// one ceil'd day late: ceil(240000 * 0.75 * 1)
		require.Equal(t, int64(180000), br.Amount)
	})

	t.Run("floor applies to tiny lateness", func(t *testing.T) {
		t.Parallel()
		br := overdue.Fine(policy, total, durHours, 1)
		require.Equal(t, overdue.MethodPerMinute, br.Method)
		require.True(t, br.FloorApplied)
		// never less than one hour's penalized rate: ceil(10000 * 0.75)
		require.Equal(t, int64(7500), br.Amount)
	})

	t.Run("tier boundaries", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, overdue.MethodPerMinute, overdue.Fine(policy, total, durHours, 120).Method)
		require.Equal(t, overdue.MethodPerHour, overdue.Fine(policy, total, durHours, 121).Method)
		require.Equal(t, overdue.MethodPerHour, overdue.Fine(policy, total, durHours, 480).Method)
		require.Equal(t, overdue.MethodPerDay, overdue.Fine(policy, total, durHours, 481).Method)
	})
}

func TestFineFloorProperty(t *testing.T) {
	t.Parallel()
	policy := overdue.DefaultPolicy()
	for _, lateness := range []int64{1, 5, 30, 90, 120, 121, 300, 480, 481, 1440, 5000} {
		br := overdue.Fine(policy, 480000, 48, lateness)
		require.GreaterOrEqual(t, br.Amount, int64(7500),
			"lateness=%d fine below floor", lateness)
	}
}

func TestFineMonotonic(t *testing.T) {
	t.Parallel()
	policy := overdue.DefaultPolicy()
	var prev int64
	for lateness := int64(0); lateness <= 2000; lateness += 7 {
		br := overdue.Fine(policy, 480000, 48, lateness)
		require.GreaterOrEqual(t, br.Amount, prev,
			"fine decreased at lateness=%d", lateness)
		prev = br.Amount
	}
}

func TestFineShortRental(t *testing.T) {
	t.Parallel()
	policy := overdue.DefaultPolicy()
	// 1 billable hour, total 10000: hourly rate 10000, per-day rate 240000.
	br := overdue.Fine(policy, 10000, 1, 60)
	require.Equal(t, overdue.MethodPerMinute, br.Method)
	require.Equal(t, int64(7500), br.Amount)
	require.Equal(t, int64(240000), br.PerDayRate)
}
