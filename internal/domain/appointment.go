package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a client visit occupying one workstation for one
// time interval on one calendar day. Times are salon-local wall clock.
type Appointment struct {
	ID            uuid.UUID
	SalonID       uuid.UUID
	WorkstationID uuid.UUID
	ServiceID     *uuid.UUID // nil when the service was deleted afterwards

	Date            time.Time // calendar date, time part is zero
	StartTime       types.TimeString
	DurationMinutes int

	ClientName  string
	ClientPhone *string
	ClientEmail *string
	Notes       *string

	Status AppointmentStatus

	// Denormalized service data captured at booking time, so history
	// survives service edits and deletions.
	ServiceName  string
	ServicePrice float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the exclusive end of the occupied interval.
// Intervals are validated to fit the day on write; an interval that
// would cross midnight is clamped to the end-of-day boundary.
func (a *Appointment) EndTime() types.TimeString {
	end, err := a.StartTime.AddMinutes(a.DurationMinutes)
	if err != nil {
		return types.TimeString("24:00")
	}
	return end
}

// OccupiesSlot reports whether the appointment blocks its workstation.
// Cancellation frees the slot; completed and no_show appointments keep
// occupying their historical interval.
func (a *Appointment) OccupiesSlot() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled
}

// CanBeRescheduled returns true if the appointment interval may change.
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusScheduled
}

// ValidStatuses lists every status accepted on write.
var ValidStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// IsValidStatus reports whether s is a known appointment status.
func IsValidStatus(s AppointmentStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// AppointmentsFilter filters salon appointments on read.
// Zero optional fields are ignored.
type AppointmentsFilter struct {
	SalonID          uuid.UUID          // required
	WorkstationID    *uuid.UUID         // only this workstation
	Date             *time.Time         // only this calendar day
	Status           *AppointmentStatus // only this status
	IncludeCancelled bool               // also return cancelled appointments
}
