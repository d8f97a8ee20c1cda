package domain

import (
	"time"

	"github.com/google/uuid"
)

// Salon is the tenant owning workstations, services and the schedule.
// Timezone is the fixed IANA zone all wall-clock times of the salon are
// interpreted in; it is informational for display and notifications, the
// scheduling core never converts zones.
type Salon struct {
	ID            uuid.UUID
	OwnerUserID   string
	Name          string
	Email         *string
	Phone         *string
	Timezone      string
	DefaultLocale string
	Currency      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
