// Package datetime normalizes client-supplied date strings into instants
// anchored to the business time zone. All rental date math runs in WIB
// (UTC+7) no matter what the host machine is configured with.
package datetime

import (
	"time"

	"github.com/motorent/rental-service/internal/errs"
)

// WIB is Waktu Indonesia Barat, fixed UTC+7. No DST.
var WIB = time.FixedZone("WIB", 7*60*60)

const (
	layoutDate       = "2006-01-02"
	layoutDateMinute = "2006-01-02T15:04"
)

// Parse accepts exactly three shapes:
//   - "2006-01-02"        -> local midnight WIB
//   - "2006-01-02T15:04"  -> that wall-clock time WIB
//   - full RFC3339        -> reinterpreted in WIB
//
// Anything else, including impossible dates, yields errs.ErrInvalidDateFormat.
func Parse(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(layoutDate, s, WIB); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutDateMinute, s, WIB); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(WIB), nil
	}
	return time.Time{}, errs.ErrInvalidDateFormat
}

// Format renders an instant for responses and archive rows in WIB.
func Format(t time.Time) string {
	return t.In(WIB).Format("2006-01-02 15:04:05 -07:00")
}

// Now is the injectable wall clock. Handlers call it once per request and pass
// the instant down, so calculations stay deterministic under test.
func Now() time.Time {
	return time.Now().In(WIB)
}
