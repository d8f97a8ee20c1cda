package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable offering of a salon.
type Service struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	Name            string
	Description     *string
	DurationMinutes int // positive multiple of SlotDurationMinutes
	Price           float64
	Currency        string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasValidDuration reports whether the duration is a positive multiple
// of the slot granularity. Enforced at write time and assumed by the
// scheduling core.
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes > 0 && s.DurationMinutes%SlotDurationMinutes == 0
}
