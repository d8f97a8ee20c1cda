package delete_closed_day

import (
	"context"

	"github.com/google/uuid"
)

type ScheduleService interface {
	DeleteClosedDay(ctx context.Context, salonID, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
