package model

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type RateUnit string

const (
	UnitHour RateUnit = "hour"
	UnitDay  RateUnit = "day"
)

type RentalStatus string

const (
	StatusActive  RentalStatus = "active"
	StatusOverdue RentalStatus = "overdue"
)

type VehicleStatus string

const (
	VehicleAvailable VehicleStatus = "available"
	VehicleRented    VehicleStatus = "rented"
	VehicleInRepair  VehicleStatus = "in_repair"
)

type AdjustmentKind string

const (
	AdjustmentDiscount   AdjustmentKind = "discount"
	AdjustmentAdditional AdjustmentKind = "additional"
)

// Adjustment is a named price line item. Amount is always non-negative;
// Kind decides the sign when the net price is derived.
type Adjustment struct {
	Description string         `json:"description" validate:"required"`
	Amount      int64          `json:"amount" validate:"gte=0"`
	Kind        AdjustmentKind `json:"kind" validate:"required,oneof=discount additional"`
}

// AdjustmentList is JSONB at the persistence boundary only; business logic
// always sees the typed slice.
type AdjustmentList []Adjustment

func (a AdjustmentList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (a *AdjustmentList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.Errorf("adjustments: cannot scan %T", src)
	}
}

type CollateralKind string

const (
	CollateralKTP      CollateralKind = "KTP"
	CollateralSIM      CollateralKind = "SIM"
	CollateralPassport CollateralKind = "PASSPORT"
	CollateralKK       CollateralKind = "KK"
)

// CollateralList is an ordered set of collateral documents held for the
// rental. Stored as a comma-joined string, never carried that way in memory.
type CollateralList []CollateralKind

func (c CollateralList) Value() (driver.Value, error) {
	items := make([]string, 0, len(c))
	for _, k := range c {
		items = append(items, string(k))
	}
	return strings.Join(items, ","), nil
}

func (c *CollateralList) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return errors.Errorf("collateral: cannot scan %T", src)
	}
	if s == "" {
		*c = nil
		return nil
	}
	parts := strings.Split(s, ",")
	out := make(CollateralList, 0, len(parts))
	for _, p := range parts {
		out = append(out, CollateralKind(strings.TrimSpace(p)))
	}
	*c = out
	return nil
}

type Rental struct {
	ID              int64          `json:"id" db:"id"`
	VehicleID       int64          `json:"vehicleId" db:"vehicle_id"`
	RenterID        int64          `json:"renterId" db:"renter_id"`
	AdminID         int64          `json:"adminId" db:"admin_id"`
	StartAt         time.Time      `json:"startAt" db:"start_at"`
	ReturnAt        time.Time      `json:"returnAt" db:"return_at"`
	DurationValue   int64          `json:"durationValue" db:"duration_value"`
	RateUnit        RateUnit       `json:"rateUnit" db:"rate_unit"`
	TotalHarga      int64          `json:"totalHarga" db:"total_harga"`
	Adjustments     AdjustmentList `json:"adjustments" db:"adjustments"`
	Status          RentalStatus   `json:"status" db:"status"`
	IsOverdue       bool           `json:"isOverdue" db:"is_overdue"`
	LatenessMinutes int64          `json:"latenessMinutes" db:"lateness_minutes"`
	LastOverdueCalc sql.NullTime   `json:"lastOverdueCalc" db:"last_overdue_calc"`
	ExtendedMinutes int64          `json:"extendedMinutes" db:"extended_minutes"`
	Collateral      CollateralList `json:"collateral" db:"collateral"`
	PaymentMethod   string         `json:"paymentMethod" db:"payment_method"`
	Notes           string         `json:"notes" db:"notes"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

type Classification string

const (
	ReturnedOnTime Classification = "on time"
	ReturnedLate   Classification = "late"
)

// History is the immutable archive row a rental turns into on completion.
// Vehicle/renter/admin display fields are denormalized because the live rows
// they reference may later change or be deleted.
type History struct {
	ID              int64          `json:"id" db:"id"`
	RentalID        int64          `json:"rentalId" db:"rental_id"`
	VehicleName     string         `json:"vehicleName" db:"vehicle_name"`
	VehiclePlate    string         `json:"vehiclePlate" db:"vehicle_plate"`
	RenterName      string         `json:"renterName" db:"renter_name"`
	RenterPhone     string         `json:"renterPhone" db:"renter_phone"`
	AdminID         int64          `json:"adminId" db:"admin_id"`
	StartAt         time.Time      `json:"startAt" db:"start_at"`
	ReturnAt        time.Time      `json:"returnAt" db:"return_at"`
	CompletedAt     time.Time      `json:"completedAt" db:"completed_at"`
	Classification  Classification `json:"classification" db:"classification"`
	DurationValue   int64          `json:"durationValue" db:"duration_value"`
	RateUnit        RateUnit       `json:"rateUnit" db:"rate_unit"`
	Harga           int64          `json:"harga" db:"harga"`
	Denda           int64          `json:"denda" db:"denda"`
	LatenessMinutes int64          `json:"latenessMinutes" db:"lateness_minutes"`
	Collateral      CollateralList `json:"collateral" db:"collateral"`
	PaymentMethod   string         `json:"paymentMethod" db:"payment_method"`
	Notes           string         `json:"notes" db:"notes"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
}

type Vehicle struct {
	ID             int64         `json:"id" db:"id"`
	Name           string        `json:"name" db:"name"`
	PlateNumber    string        `json:"plateNumber" db:"plate_number"`
	Status         VehicleStatus `json:"status" db:"status"`
	BaseRatePerDay int64         `json:"baseRatePerDay" db:"base_rate_per_day"`
}

type Renter struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Phone       string `json:"phone" db:"phone"`
	Blacklisted bool   `json:"blacklisted" db:"blacklisted"`
}

type CreateRentalRequest struct {
	VehicleID     int64            `json:"vehicleId" validate:"required,gt=0"`
	RenterID      int64            `json:"renterId" validate:"required,gt=0"`
	AdminID       int64            `json:"-" validate:"required,gt=0"`
	StartAt       string           `json:"startAt" validate:"required"`
	ReturnAt      string           `json:"returnAt" validate:"required"`
	RateUnit      RateUnit         `json:"rateUnit" validate:"required,oneof=hour day"`
	Collateral    []CollateralKind `json:"collateral" validate:"dive,oneof=KTP SIM PASSPORT KK"`
	PaymentMethod string           `json:"paymentMethod"`
	Adjustments   []Adjustment     `json:"adjustments" validate:"dive"`
	Notes         string           `json:"notes"`
}

// UpdateRentalRequest carries partial fields; nil means "leave as is".
type UpdateRentalRequest struct {
	ReturnAt      *string           `json:"returnAt"`
	Adjustments   *[]Adjustment     `json:"adjustments" validate:"omitempty,dive"`
	Collateral    *[]CollateralKind `json:"collateral" validate:"omitempty,dive,oneof=KTP SIM PASSPORT KK"`
	PaymentMethod *string           `json:"paymentMethod"`
	Notes         *string           `json:"notes"`
}

type ExtendRentalRequest struct {
	NewReturnAt string `json:"newReturnAt" validate:"required"`
}

type CompleteRentalRequest struct {
	CompletedAt string `json:"completedAt"`
	Notes       string `json:"notes"`
}
