package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ReplaceOpeningHours(ctx context.Context, salonID uuid.UUID, rules []domain.OpeningHourRule) error
	ListOpeningHours(ctx context.Context, salonID uuid.UUID) ([]domain.OpeningHourRule, error)
	AddClosedDay(ctx context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error)
	DeleteClosedDay(ctx context.Context, salonID, id uuid.UUID) error
	ListClosedDays(ctx context.Context, salonID uuid.UUID, from *time.Time) ([]domain.ClosedDay, error)
	GetWeeklySchedule(ctx context.Context, salonID uuid.UUID) (*domain.WeeklySchedule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
