package get_salon_catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	GetSalonCatalog(ctx context.Context, salonID uuid.UUID) (*models.CatalogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
