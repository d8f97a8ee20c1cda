package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	catalogRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/catalog"
	salonRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/salon"

	"github.com/salonhub/salon-booking-service/internal/domain"
	"github.com/salonhub/salon-booking-service/internal/service/catalog/models"
)

// Service сервис каталога: услуги и рабочие места салона
type Service struct {
	catalogRepo CatalogRepository
	salonRepo   SalonRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, salonRepo SalonRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		salonRepo:   salonRepo,
		logger:      logger,
	}
}

// GetSalonCatalog собирает публичный каталог салона: информация о салоне,
// активные услуги и рабочие места
func (s *Service) GetSalonCatalog(ctx context.Context, salonID uuid.UUID) (*models.CatalogResponse, error) {
	s.logger.Info("GetSalonCatalog: fetching catalog for salon=%s", salonID)

	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("GetSalonCatalog: salon=%s not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetSalonCatalog: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetSalonCatalog - repository error: %v", ErrInternal, err)
	}

	services, err := s.catalogRepo.ListServices(ctx, salonID, true)
	if err != nil {
		s.logger.Error("GetSalonCatalog: failed to list services for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetSalonCatalog - repository error: %v", ErrInternal, err)
	}

	workstations, err := s.catalogRepo.ListWorkstations(ctx, salonID)
	if err != nil {
		s.logger.Error("GetSalonCatalog: failed to list workstations for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetSalonCatalog - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonCatalog: salon=%s has %d active services, %d workstations",
		salonID, len(services), len(workstations))
	return models.FromDomainCatalog(salon, services, workstations), nil
}

// CreateService создает услугу салона. Длительность обязана быть
// положительной и кратной длительности слота.
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service %q for salon=%s", req.Name, req.SalonID)

	salon, err := s.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		s.logger.Error("CreateService: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	service := &domain.Service{
		SalonID:         req.SalonID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Currency:        salon.Currency,
		IsActive:        true,
	}
	if req.Currency != nil {
		service.Currency = *req.Currency
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if !service.HasValidDuration() {
		s.logger.Warn("CreateService: invalid duration=%d for salon=%s", req.DurationMinutes, req.SalonID)
		return nil, ErrInvalidDuration
	}
	if service.DurationMinutes > domain.MaxServiceDurationMinutes {
		return nil, fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	created, err := s.catalogRepo.CreateService(ctx, service)
	if err != nil {
		s.logger.Error("CreateService: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%s for salon=%s", created.ID, req.SalonID)
	return models.FromDomainService(created), nil
}

// UpdateService обновляет услугу салона. Изменение длительности не
// затрагивает уже созданные записи: их длительность денормализована.
func (s *Service) UpdateService(ctx context.Context, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: updating service id=%s for salon=%s", req.ServiceID, req.SalonID)

	existing, err := s.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}
	if existing.SalonID != req.SalonID {
		return nil, ErrServiceNotFound
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	service := &domain.Service{
		ID:              req.ServiceID,
		SalonID:         req.SalonID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Currency:        existing.Currency,
		IsActive:        req.IsActive,
	}
	if req.Currency != nil {
		service.Currency = *req.Currency
	}

	if !service.HasValidDuration() {
		s.logger.Warn("UpdateService: invalid duration=%d for service id=%s", req.DurationMinutes, req.ServiceID)
		return nil, ErrInvalidDuration
	}
	if service.DurationMinutes > domain.MaxServiceDurationMinutes {
		return nil, fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	updated, err := s.catalogRepo.UpdateService(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: successfully updated service id=%s", req.ServiceID)
	return models.FromDomainService(updated), nil
}

// CreateWorkstation создает рабочее место салона
func (s *Service) CreateWorkstation(ctx context.Context, req *models.CreateWorkstationRequest) (*models.WorkstationResponse, error) {
	s.logger.Info("CreateWorkstation: creating workstation %q for salon=%s", req.Name, req.SalonID)

	if _, err := s.salonRepo.GetByID(ctx, req.SalonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		s.logger.Error("CreateWorkstation: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: CreateWorkstation - repository error: %v", ErrInternal, err)
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	workstation := &domain.Workstation{
		SalonID:    req.SalonID,
		Name:       strings.TrimSpace(req.Name),
		OrderIndex: req.OrderIndex,
	}

	created, err := s.catalogRepo.CreateWorkstation(ctx, workstation)
	if err != nil {
		s.logger.Error("CreateWorkstation: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: CreateWorkstation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWorkstation: successfully created workstation id=%s for salon=%s", created.ID, req.SalonID)
	return models.FromDomainWorkstation(created), nil
}
