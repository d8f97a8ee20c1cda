package add_closed_day

import (
	"context"

	"github.com/salonhub/salon-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	AddClosedDay(ctx context.Context, req *models.AddClosedDayRequest) (*models.ClosedDayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
