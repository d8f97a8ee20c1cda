package salon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
	"github.com/salonhub/salon-booking-service/pkg/dbmetrics"
	"github.com/salonhub/salon-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий салонов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var salonColumns = []string{
	"id",
	"owner_user_id",
	"name",
	"email",
	"phone",
	"timezone",
	"default_locale",
	"currency",
	"created_at",
	"updated_at",
}

// GetByID получает салон по идентификатору
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	return scanSalon(row.Scan)
}

// scanSalon сканирует салон из строки результата запроса
func scanSalon(scan func(dest ...interface{}) error) (*domain.Salon, error) {
	var salon domain.Salon
	var email, phone sql.NullString

	if err := scan(
		&salon.ID,
		&salon.OwnerUserID,
		&salon.Name,
		&email,
		&phone,
		&salon.Timezone,
		&salon.DefaultLocale,
		&salon.Currency,
		&salon.CreatedAt,
		&salon.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSalonNotFound
		}
		return nil, fmt.Errorf("%w: scan salon: %v", ErrScanRow, err)
	}

	if email.Valid {
		salon.Email = &email.String
	}
	if phone.Valid {
		salon.Phone = &phone.String
	}

	return &salon, nil
}
