package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	appointmentRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/appointment"
	"github.com/salonhub/salon-booking-service/internal/service/appointments/models"
)

// Service сервис для чтения записей.
// Создание, перенос и смена статуса живут в отдельных usecase-ах,
// потому что требуют сериализуемой транзакции с проверкой коллизий.
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListForSalon получает записи салона с фильтрацией по рабочему месту,
// дате и статусу. Отменённые записи исключаются, если явно не запрошены.
func (s *Service) ListForSalon(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListForSalon: fetching appointments for salon=%s", req.SalonID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListForSalon: invalid status=%v for salon=%s", req.Status, req.SalonID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForSalon: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: ListForSalon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForSalon: successfully fetched %d appointments for salon=%s", len(appointments), req.SalonID)
	return models.FromDomainAppointmentList(appointments), nil
}
