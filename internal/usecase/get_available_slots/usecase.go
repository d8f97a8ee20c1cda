package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/salon-booking-service/internal/domain"
	salonRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/salon"
	"github.com/salonhub/salon-booking-service/internal/scheduling"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	scheduleRepo ScheduleRepository
	salonRepo    SalonRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleRepo ScheduleRepository, salonRepo SalonRepository, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		salonRepo:    salonRepo,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов. День без правила,
// закрытый день недели и закрытая дата дают пустой список слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%s, date=%s", req.SalonID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем салон
	if _, err := uc.salonRepo.GetByID(ctx, req.SalonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Получаем расписание и генерируем слоты
	schedule, err := uc.scheduleRepo.GetWeeklySchedule(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	slots := scheduling.GenerateDailySlots(req.Date, schedule.OpeningHours, schedule.ClosedDays)

	uc.logger.Info("GetAvailableSlots: salon=%s has %d slots on %s",
		req.SalonID, len(slots), req.Date.Format(domain.DateFormat))

	resp := &Response{
		Date:  req.Date.Format(domain.DateFormat),
		Slots: make([]string, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, slot.String())
	}

	return resp, nil
}
