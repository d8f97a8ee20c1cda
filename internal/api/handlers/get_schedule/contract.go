package get_schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeeklySchedule(ctx context.Context, salonID uuid.UUID) (*models.WeeklyScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
