package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/salonhub/salon-booking-service/internal/domain"
	catalogRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/catalog"
	salonRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/salon"
	"github.com/salonhub/salon-booking-service/internal/integrations/mailer"
	"github.com/salonhub/salon-booking-service/internal/scheduling"
	"github.com/salonhub/salon-booking-service/pkg/ptr"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	salonRepo       SalonRepository
	mailerClient    Mailer
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	salonRepo SalonRepository,
	mailerClient Mailer,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		salonRepo:       salonRepo,
		mailerClient:    mailerClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка слота и коллизий и вставка выполняются в сериализуемой
// транзакции: два параллельных запроса на одно время не могут оба
// пройти проверку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: salon=%s, workstation=%s, service=%s, date=%s, time=%s",
		req.SalonID, req.WorkstationID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Проверяем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateAppointment: salon=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Рабочее место принадлежит салону
	workstation, err := uc.catalogRepo.GetWorkstationByID(ctx, req.WorkstationID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrWorkstationNotFound) {
			uc.logger.Warn("CreateAppointment: workstation=%s not found", req.WorkstationID)
			return nil, ErrWorkstationNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get workstation=%s: %v", req.WorkstationID, err)
		return nil, fmt.Errorf("%w: failed to get workstation: %v", ErrInternal, err)
	}
	if workstation.SalonID != req.SalonID {
		uc.logger.Warn("CreateAppointment: workstation=%s does not belong to salon=%s", req.WorkstationID, req.SalonID)
		return nil, ErrWorkstationNotFound
	}

	// 5. Услуга принадлежит салону и активна
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.SalonID != req.SalonID {
		uc.logger.Warn("CreateAppointment: service=%s does not belong to salon=%s", req.ServiceID, req.SalonID)
		return nil, ErrServiceNotFound
	}
	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service=%s is not active", req.ServiceID)
		return nil, ErrServiceInactive
	}

	var result *domain.Appointment

	// 6. Проверка слота, коллизий и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Время начала должно входить в сетку доступных слотов.
		// Закрытый день даёт пустую сетку и отсекается здесь же.
		schedule, err := uc.scheduleRepo.GetWeeklySchedule(txCtx, req.SalonID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get schedule for salon=%s: %v", req.SalonID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		slots := scheduling.GenerateDailySlots(req.Date, schedule.OpeningHours, schedule.ClosedDays)
		if !scheduling.ContainsSlot(slots, req.StartTime) {
			uc.logger.Warn("CreateAppointment: time %s is not an available slot on %s",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 6.2. Активные записи рабочего места на эту дату с блокировкой (FOR UPDATE)
		filter := domain.AppointmentsFilter{
			SalonID:       req.SalonID,
			WorkstationID: ptr.Ptr(req.WorkstationID),
			Date:          ptr.Ptr(req.Date),
		}

		existing, err := uc.appointmentRepo.ListWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 6.3. Проверяем пересечение интервалов
		candidate := scheduling.Candidate{
			WorkstationID:   req.WorkstationID,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
		}
		if conflict := scheduling.CheckCollision(candidate, existing, nil); conflict != nil {
			uc.logger.Warn("CreateAppointment: conflict with appointment id=%s", conflict.AppointmentID)
			return &ConflictError{ConflictingID: conflict.AppointmentID}
		}

		// 6.4. Создаем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			SalonID:         req.SalonID,
			WorkstationID:   req.WorkstationID,
			ServiceID:       ptr.Ptr(req.ServiceID),
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusScheduled,
			ClientName:      strings.TrimSpace(req.ClientName),
			ClientPhone:     req.ClientPhone,
			ClientEmail:     req.ClientEmail,
			Notes:           req.Notes,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	// 7. Подтверждение на почту клиента, best-effort
	uc.sendConfirmation(ctx, salon, result)

	return &Response{
		ID:              result.ID,
		SalonID:         result.SalonID,
		WorkstationID:   result.WorkstationID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime(),
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ClientName:      result.ClientName,
		ClientPhone:     result.ClientPhone,
		ClientEmail:     result.ClientEmail,
		Notes:           result.Notes,
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// sendConfirmation отправляет подтверждение записи, если у клиента есть email.
// Ошибка отправки логируется и не влияет на результат.
func (uc *UseCase) sendConfirmation(ctx context.Context, salon *domain.Salon, appointment *domain.Appointment) {
	if appointment.ClientEmail == nil {
		return
	}

	email := mailer.AppointmentEmail{
		RecipientEmail: *appointment.ClientEmail,
		RecipientName:  appointment.ClientName,
		SalonName:      salon.Name,
		ServiceName:    appointment.ServiceName,
		Date:           appointment.Date.Format(domain.DateFormat),
		StartTime:      appointment.StartTime,
		DurationMin:    appointment.DurationMinutes,
	}

	if err := uc.mailerClient.SendConfirmation(ctx, email); err != nil {
		uc.logger.Warn("CreateAppointment: failed to send confirmation for appointment id=%s: %v",
			appointment.ID, err)
	}
}
