package create_workstation

import (
	"context"

	"github.com/salonhub/salon-booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	CreateWorkstation(ctx context.Context, req *models.CreateWorkstationRequest) (*models.WorkstationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
