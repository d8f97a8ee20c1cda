package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/salonhub/salon-booking-service/internal/domain"
	appointmentRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/catalog"
	"github.com/salonhub/salon-booking-service/internal/integrations/mailer"
	"github.com/salonhub/salon-booking-service/internal/scheduling"
	"github.com/salonhub/salon-booking-service/pkg/ptr"
)

// UseCase use case для обновления записи: перенос, смена услуги,
// контактных данных и статуса
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

// Execute выполняет use case обновления записи.
// Проверка коллизий выполняется всегда с исключением самой записи:
// правка имени клиента без переноса никогда не конфликтует сама с собой.
// Сетка слотов перепроверяется только если интервал действительно
// сдвинулся.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%s", req.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	var (
		result    *domain.Appointment
		moved     bool
		cancelled bool
	)

	// 2. Чтение, проверки и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%s not found", req.ID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%s: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.1. Смена статуса
		newStatus := current.Status
		if req.Status != nil {
			newStatus = domain.AppointmentStatus(*req.Status)
			if err := validateStatusTransition(current.Status, newStatus); err != nil {
				uc.logger.Warn("UpdateAppointment: id=%s: %v", req.ID, err)
				return err
			}
		}

		// 2.2. Отмена обрабатывается отдельно: запись освобождает слот,
		// проверки сетки и коллизий не нужны
		if newStatus == domain.StatusCancelled && current.Status != domain.StatusCancelled {
			if hasFieldChanges(req) {
				return fmt.Errorf("%w: cannot combine cancellation with other changes", ErrInvalidInput)
			}
			if err := uc.appointmentRepo.Cancel(txCtx, req.ID, req.CancellationReason); err != nil {
				uc.logger.Error("UpdateAppointment: failed to cancel appointment id=%s: %v", req.ID, err)
				return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
			}
			cancelled = true

			result, err = uc.appointmentRepo.GetByID(txCtx, req.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to reload appointment: %v", ErrInternal, err)
			}
			return nil
		}

		// 2.3. Смена статуса без других изменений: интервал не двигается,
		// перепроверка сетки и коллизий не нужна
		if newStatus != current.Status && !hasFieldChanges(req) {
			if err := uc.appointmentRepo.UpdateStatus(txCtx, req.ID, newStatus); err != nil {
				uc.logger.Error("UpdateAppointment: failed to update status for id=%s: %v", req.ID, err)
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}

			result, err = uc.appointmentRepo.GetByID(txCtx, req.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to reload appointment: %v", ErrInternal, err)
			}
			return nil
		}

		// 2.4. Собираем обновленную запись
		merged := *current
		merged.Status = newStatus
		if err := uc.applyChanges(txCtx, &merged, req); err != nil {
			return err
		}

		// 2.5. Если интервал сдвинулся, перепроверяем дату и сетку слотов
		moved = intervalMoved(current, &merged)
		if moved {
			if !current.CanBeRescheduled() {
				uc.logger.Warn("UpdateAppointment: appointment id=%s cannot be rescheduled, status=%s",
					req.ID, current.Status)
				return ErrCannotReschedule
			}

			if err := validateDate(merged.Date, uc.timeProvider.Now()); err != nil {
				uc.logger.Warn("UpdateAppointment: date %s is in the past", merged.Date.Format(domain.DateFormat))
				return err
			}

			schedule, err := uc.scheduleRepo.GetWeeklySchedule(txCtx, merged.SalonID)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to get schedule for salon=%s: %v", merged.SalonID, err)
				return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
			}

			slots := scheduling.GenerateDailySlots(merged.Date, schedule.OpeningHours, schedule.ClosedDays)
			if !scheduling.ContainsSlot(slots, merged.StartTime) {
				uc.logger.Warn("UpdateAppointment: time %s is not an available slot on %s",
					merged.StartTime, merged.Date.Format(domain.DateFormat))
				return ErrSlotNotAvailable
			}
		}

		// 2.6. Проверка коллизий всегда, с исключением самой записи
		if merged.OccupiesSlot() {
			filter := domain.AppointmentsFilter{
				SalonID:       merged.SalonID,
				WorkstationID: ptr.Ptr(merged.WorkstationID),
				Date:          ptr.Ptr(merged.Date),
			}

			existing, err := uc.appointmentRepo.ListWithFilter(txCtx, filter)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to list appointments: %v", err)
				return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
			}

			candidate := scheduling.Candidate{
				WorkstationID:   merged.WorkstationID,
				StartTime:       merged.StartTime,
				DurationMinutes: merged.DurationMinutes,
			}
			if conflict := scheduling.CheckCollision(candidate, existing, ptr.Ptr(req.ID)); conflict != nil {
				uc.logger.Warn("UpdateAppointment: conflict with appointment id=%s", conflict.AppointmentID)
				return &ConflictError{ConflictingID: conflict.AppointmentID}
			}
		}

		// 2.7. Сохраняем
		updated, err := uc.appointmentRepo.Update(txCtx, &merged)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%s: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%s", result.ID)

	// 3. Уведомление клиента, best-effort
	uc.notifyClient(ctx, result, moved, cancelled)

	return &Response{
		ID:                 result.ID,
		SalonID:            result.SalonID,
		WorkstationID:      result.WorkstationID,
		ServiceID:          result.ServiceID,
		Date:               result.Date,
		StartTime:          result.StartTime,
		EndTime:            result.EndTime(),
		DurationMinutes:    result.DurationMinutes,
		Status:             string(result.Status),
		ClientName:         result.ClientName,
		ClientPhone:        result.ClientPhone,
		ClientEmail:        result.ClientEmail,
		Notes:              result.Notes,
		ServiceName:        result.ServiceName,
		ServicePrice:       result.ServicePrice,
		CancellationReason: result.CancellationReason,
		CancelledAt:        result.CancelledAt,
		CreatedAt:          result.CreatedAt,
		UpdatedAt:          result.UpdatedAt,
	}, nil
}

// applyChanges накладывает изменения запроса на запись. Смена услуги
// обновляет длительность и денормализованные название и цену.
func (uc *UseCase) applyChanges(ctx context.Context, merged *domain.Appointment, req *Request) error {
	if req.WorkstationID != nil && *req.WorkstationID != merged.WorkstationID {
		workstation, err := uc.catalogRepo.GetWorkstationByID(ctx, *req.WorkstationID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrWorkstationNotFound) {
				uc.logger.Warn("UpdateAppointment: workstation=%s not found", *req.WorkstationID)
				return ErrWorkstationNotFound
			}
			return fmt.Errorf("%w: failed to get workstation: %v", ErrInternal, err)
		}
		if workstation.SalonID != merged.SalonID {
			uc.logger.Warn("UpdateAppointment: workstation=%s does not belong to salon=%s",
				*req.WorkstationID, merged.SalonID)
			return ErrWorkstationNotFound
		}
		merged.WorkstationID = *req.WorkstationID
	}

	if req.ServiceID != nil && (merged.ServiceID == nil || *req.ServiceID != *merged.ServiceID) {
		service, err := uc.catalogRepo.GetServiceByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				uc.logger.Warn("UpdateAppointment: service=%s not found", *req.ServiceID)
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.SalonID != merged.SalonID {
			uc.logger.Warn("UpdateAppointment: service=%s does not belong to salon=%s",
				*req.ServiceID, merged.SalonID)
			return ErrServiceNotFound
		}
		if !service.IsActive {
			uc.logger.Warn("UpdateAppointment: service=%s is not active", *req.ServiceID)
			return ErrServiceInactive
		}
		merged.ServiceID = ptr.Ptr(service.ID)
		merged.DurationMinutes = service.DurationMinutes
		merged.ServiceName = service.Name
		merged.ServicePrice = service.Price
	}

	if req.Date != nil {
		merged.Date = *req.Date
	}
	if req.StartTime != nil {
		merged.StartTime = *req.StartTime
	}
	if req.ClientName != nil {
		merged.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.ClientPhone != nil {
		merged.ClientPhone = req.ClientPhone
	}
	if req.ClientEmail != nil {
		merged.ClientEmail = req.ClientEmail
	}
	if req.Notes != nil {
		merged.Notes = req.Notes
	}

	return nil
}

// hasFieldChanges проверяет, что кроме статуса запрос меняет и другие поля
func hasFieldChanges(req *Request) bool {
	return req.WorkstationID != nil ||
		req.ServiceID != nil ||
		req.Date != nil ||
		req.StartTime != nil ||
		req.ClientName != nil ||
		req.ClientPhone != nil ||
		req.ClientEmail != nil ||
		req.Notes != nil
}

// notifyClient отправляет письмо о переносе или отмене, если у клиента
// есть email. Ошибка отправки логируется и не влияет на результат.
func (uc *UseCase) notifyClient(ctx context.Context, appointment *domain.Appointment, moved, cancelled bool) {
	if appointment.ClientEmail == nil || (!moved && !cancelled) {
		return
	}

	salon, err := uc.salonRepo.GetByID(ctx, appointment.SalonID)
	if err != nil {
		uc.logger.Warn("UpdateAppointment: failed to get salon=%s for notification: %v",
			appointment.SalonID, err)
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

	if cancelled {
		err = uc.mailerClient.SendCancellation(ctx, email)
	} else {
		err = uc.mailerClient.SendReschedule(ctx, email)
	}
	if err != nil {
		uc.logger.Warn("UpdateAppointment: failed to send notification for appointment id=%s: %v",
			appointment.ID, err)
	}
}
