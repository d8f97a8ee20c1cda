package get_salon_appointments

import (
	"context"

	"github.com/salonhub/salon-booking-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	ListForSalon(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
