package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
	"github.com/salonhub/salon-booking-service/internal/integrations/mailer"
)

type AppointmentRepository interface {
	ListScheduledOnDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

type SalonRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error)
}

type Mailer interface {
	SendReminder(ctx context.Context, email mailer.AppointmentEmail) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
