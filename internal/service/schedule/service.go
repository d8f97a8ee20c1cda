package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
	scheduleRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/schedule"
	"github.com/salonhub/salon-booking-service/internal/service/schedule/models"
)

// Service сервис для управления недельным расписанием и закрытыми датами
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWeeklySchedule получает недельное расписание салона вместе с закрытыми датами
func (s *Service) GetWeeklySchedule(ctx context.Context, salonID uuid.UUID) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("GetWeeklySchedule: fetching schedule for salon=%s", salonID)

	schedule, err := s.scheduleRepo.GetWeeklySchedule(ctx, salonID)
	if err != nil {
		s.logger.Error("GetWeeklySchedule: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetWeeklySchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// ReplaceSchedule целиком заменяет недельное расписание салона.
// Замена атомарна: удаление старых правил и вставка новых выполняются
// в одной транзакции, параллельный генератор слотов видит либо старое
// расписание, либо новое.
func (s *Service) ReplaceSchedule(ctx context.Context, req *models.ReplaceScheduleRequest) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("ReplaceSchedule: replacing schedule for salon=%s with %d rules", req.SalonID, len(req.OpeningHours))

	rules := req.ToDomainRules()
	if err := validateRules(rules); err != nil {
		s.logger.Warn("ReplaceSchedule: invalid rules for salon=%s: %v", req.SalonID, err)
		return nil, err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.scheduleRepo.ReplaceOpeningHours(ctx, req.SalonID, rules)
	})
	if err != nil {
		s.logger.Error("ReplaceSchedule: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: ReplaceSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceSchedule: successfully replaced schedule for salon=%s", req.SalonID)
	return s.GetWeeklySchedule(ctx, req.SalonID)
}

// AddClosedDay добавляет закрытую дату салона
func (s *Service) AddClosedDay(ctx context.Context, req *models.AddClosedDayRequest) (*models.ClosedDayResponse, error) {
	s.logger.Info("AddClosedDay: adding closed day %s for salon=%s", req.Date, req.SalonID)

	date, err := models.ParseDate(req.Date)
	if err != nil {
		s.logger.Warn("AddClosedDay: invalid date=%s for salon=%s", req.Date, req.SalonID)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	day := &domain.ClosedDay{
		SalonID: req.SalonID,
		Date:    date,
		Reason:  req.Reason,
	}

	created, err := s.scheduleRepo.AddClosedDay(ctx, day)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrClosedDayExists) {
			s.logger.Warn("AddClosedDay: date %s already closed for salon=%s", req.Date, req.SalonID)
			return nil, ErrClosedDayExists
		}
		s.logger.Error("AddClosedDay: repository error for salon=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: AddClosedDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddClosedDay: successfully added closed day id=%s for salon=%s", created.ID, req.SalonID)
	resp := models.FromDomainClosedDay(created)
	return &resp, nil
}

// DeleteClosedDay удаляет закрытую дату салона
func (s *Service) DeleteClosedDay(ctx context.Context, salonID, id uuid.UUID) error {
	s.logger.Info("DeleteClosedDay: deleting closed day id=%s for salon=%s", id, salonID)

	if err := s.scheduleRepo.DeleteClosedDay(ctx, salonID, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrClosedDayNotFound) {
			s.logger.Warn("DeleteClosedDay: closed day id=%s not found for salon=%s", id, salonID)
			return ErrClosedDayNotFound
		}
		s.logger.Error("DeleteClosedDay: repository error for salon=%s: %v", salonID, err)
		return fmt.Errorf("%w: DeleteClosedDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteClosedDay: successfully deleted closed day id=%s for salon=%s", id, salonID)
	return nil
}

// validateRules проверяет недельное расписание перед записью:
// день недели в диапазоне 0..6, не больше одного правила на день,
// у рабочего дня заданы оба времени и открытие строго раньше закрытия
func validateRules(rules []domain.OpeningHourRule) error {
	seen := make(map[int]bool, len(rules))

	for _, rule := range rules {
		if rule.Weekday < domain.MinWeekday || rule.Weekday > domain.MaxWeekday {
			return fmt.Errorf("%w: weekday=%d", ErrInvalidWeekday, rule.Weekday)
		}
		if seen[rule.Weekday] {
			return fmt.Errorf("%w: weekday=%d", ErrDuplicateWeekday, rule.Weekday)
		}
		seen[rule.Weekday] = true

		if rule.IsClosed {
			continue
		}

		if rule.OpenTime == nil || rule.CloseTime == nil {
			return fmt.Errorf("%w: weekday=%d", ErrMissingTimes, rule.Weekday)
		}
		if err := rule.OpenTime.Validate(); err != nil {
			return fmt.Errorf("%w: weekday=%d: invalid open time %q", ErrInvalidInput, rule.Weekday, *rule.OpenTime)
		}
		if err := rule.CloseTime.Validate(); err != nil {
			return fmt.Errorf("%w: weekday=%d: invalid close time %q", ErrInvalidInput, rule.Weekday, *rule.CloseTime)
		}
		if !rule.OpenTime.IsBefore(*rule.CloseTime) {
			return fmt.Errorf("%w: weekday=%d", ErrInvalidTimeRange, rule.Weekday)
		}
	}

	return nil
}
