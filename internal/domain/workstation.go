package domain

import (
	"time"

	"github.com/google/uuid"
)

// Workstation is a bookable physical resource (chair/station).
// Collision checks are scoped per workstation: two appointments on
// different workstations never conflict.
type Workstation struct {
	ID         uuid.UUID
	SalonID    uuid.UUID
	Name       string
	OrderIndex int
	CreatedAt  time.Time
}
