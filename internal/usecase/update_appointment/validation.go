package update_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ID == uuid.Nil {
		return fmt.Errorf("%w: appointment id is required", ErrInvalidInput)
	}

	if req.WorkstationID != nil && *req.WorkstationID == uuid.Nil {
		return fmt.Errorf("%w: workstationID must not be empty", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID must not be empty", ErrInvalidInput)
	}

	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be empty", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.ClientName != nil {
		name := strings.TrimSpace(*req.ClientName)
		if name == "" {
			return fmt.Errorf("%w: clientName must not be empty", ErrInvalidInput)
		}
		if len(name) > domain.MaxClientNameLength {
			return fmt.Errorf("%w: clientName must not exceed %d characters", ErrInvalidInput, domain.MaxClientNameLength)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	if req.Status != nil && !domain.IsValidStatus(domain.AppointmentStatus(*req.Status)) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	return nil
}

// validateDate проверяет, что дата переноса не в прошлом
func validateDate(date time.Time, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateStatusTransition проверяет допустимость смены статуса.
// Терминальные статусы (completed, cancelled, no_show) не меняются.
func validateStatusTransition(current, next domain.AppointmentStatus) error {
	if current == next {
		return nil
	}
	if current != domain.StatusScheduled {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current, next)
	}
	return nil
}

// intervalMoved проверяет, изменился ли занимаемый интервал:
// рабочее место, дата, время начала или длительность
func intervalMoved(current, updated *domain.Appointment) bool {
	if current.WorkstationID != updated.WorkstationID {
		return true
	}
	if !sameDay(current.Date, updated.Date) {
		return true
	}
	if !current.StartTime.Equal(updated.StartTime) {
		return true
	}
	return current.DurationMinutes != updated.DurationMinutes
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
