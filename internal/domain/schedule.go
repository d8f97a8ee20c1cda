package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/pkg/types"
)

// OpeningHourRule is the recurring weekly open/close window for one
// weekday. Weekday uses the 0=Monday..6=Sunday convention. A salon has at
// most one rule per weekday; the whole set is replaced on write.
type OpeningHourRule struct {
	ID      uuid.UUID
	SalonID uuid.UUID
	Weekday int // 0=Monday .. 6=Sunday

	// OpenTime and CloseTime are nil when IsClosed is true.
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
	IsClosed  bool
}

// ProducesSlots reports whether the rule describes a non-empty open
// window. A closed rule, absent boundaries or open >= close never
// produce slots.
func (r *OpeningHourRule) ProducesSlots() bool {
	if r.IsClosed || r.OpenTime == nil || r.CloseTime == nil {
		return false
	}
	return r.OpenTime.IsBefore(*r.CloseTime)
}

// ClosedDay is a specific calendar date overriding the weekly rules to
// force full closure (holiday, vacation).
type ClosedDay struct {
	ID      uuid.UUID
	SalonID uuid.UUID
	Date    time.Time // calendar date, time part is zero
	Reason  *string
}

// WeeklySchedule bundles what slot generation needs for one salon.
type WeeklySchedule struct {
	OpeningHours []OpeningHourRule
	ClosedDays   []ClosedDay
}
