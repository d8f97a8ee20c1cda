package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/salonhub/salon-booking-service/internal/domain"
	"github.com/salonhub/salon-booking-service/pkg/dbmetrics"
	"github.com/salonhub/salon-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания и закрытых дней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ReplaceOpeningHours целиком заменяет недельное расписание салона:
// старые правила удаляются, новые вставляются одним запросом. Частичное
// обновление по дням недели не поддерживается — семантика "сохранить
// неделю целиком", как в форме настроек. Вызывается внутри транзакции.
func (r *Repository) ReplaceOpeningHours(ctx context.Context, salonID uuid.UUID, rules []domain.OpeningHourRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("opening_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - execute delete: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("opening_hours").
		Columns("id", "salon_id", "weekday", "open_time", "close_time", "is_closed")

	for _, rule := range rules {
		id := rule.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		// У закрытого дня время открытия/закрытия не хранится
		openTime := rule.OpenTime
		closeTime := rule.CloseTime
		if rule.IsClosed {
			openTime = nil
			closeTime = nil
		}
		insertBuilder = insertBuilder.Values(id, salonID, rule.Weekday, openTime, closeTime, rule.IsClosed)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceOpeningHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListOpeningHours получает недельное расписание салона
func (r *Repository) ListOpeningHours(ctx context.Context, salonID uuid.UUID) ([]domain.OpeningHourRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"weekday",
		"open_time",
		"close_time",
		"is_closed",
	).
		From("opening_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOpeningHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpeningHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.OpeningHourRule, 0, 7)
	for rows.Next() {
		var rule domain.OpeningHourRule
		if err := rows.Scan(
			&rule.ID,
			&rule.SalonID,
			&rule.Weekday,
			&rule.OpenTime,
			&rule.CloseTime,
			&rule.IsClosed,
		); err != nil {
			return nil, fmt.Errorf("%w: ListOpeningHours - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpeningHours - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// AddClosedDay добавляет закрытую дату салона
func (r *Repository) AddClosedDay(ctx context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if day.ID == uuid.Nil {
		day.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("closed_days").
		Columns("id", "salon_id", "date", "reason").
		Values(day.ID, day.SalonID, day.Date, day.Reason).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddClosedDay - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrClosedDayExists
		}
		return nil, fmt.Errorf("%w: AddClosedDay - execute insert: %v", ErrExecQuery, err)
	}

	return day, nil
}

// DeleteClosedDay удаляет закрытую дату. salonID входит в условие,
// чтобы нельзя было удалить чужую дату по известному id.
func (r *Repository) DeleteClosedDay(ctx context.Context, salonID, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("closed_days").
		Where(squirrel.Eq{"id": id, "salon_id": salonID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteClosedDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteClosedDay - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteClosedDay - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClosedDayNotFound
	}

	return nil
}

// ListClosedDays получает закрытые даты салона начиная с указанной даты
// (nil — все даты)
func (r *Repository) ListClosedDays(ctx context.Context, salonID uuid.UUID, from *time.Time) ([]domain.ClosedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "salon_id", "date", "reason").
		From("closed_days").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *from})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListClosedDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClosedDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.ClosedDay, 0)
	for rows.Next() {
		var day domain.ClosedDay
		var reason sql.NullString
		if err := rows.Scan(&day.ID, &day.SalonID, &day.Date, &reason); err != nil {
			return nil, fmt.Errorf("%w: ListClosedDays - scan row: %v", ErrScanRow, err)
		}
		if reason.Valid {
			day.Reason = &reason.String
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClosedDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// GetWeeklySchedule получает всё, что нужно генератору слотов:
// недельные правила и закрытые даты салона
func (r *Repository) GetWeeklySchedule(ctx context.Context, salonID uuid.UUID) (*domain.WeeklySchedule, error) {
	rules, err := r.ListOpeningHours(ctx, salonID)
	if err != nil {
		return nil, err
	}

	days, err := r.ListClosedDays(ctx, salonID, nil)
	if err != nil {
		return nil, err
	}

	return &domain.WeeklySchedule{
		OpeningHours: rules,
		ClosedDays:   days,
	}, nil
}
