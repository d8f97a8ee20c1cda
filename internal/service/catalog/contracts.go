package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListServices(ctx context.Context, salonID uuid.UUID, activeOnly bool) ([]*domain.Service, error)
	CreateWorkstation(ctx context.Context, workstation *domain.Workstation) (*domain.Workstation, error)
	ListWorkstations(ctx context.Context, salonID uuid.UUID) ([]*domain.Workstation, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
