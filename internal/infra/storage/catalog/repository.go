package catalog

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

// Repository репозиторий каталога: услуги и рабочие места салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var serviceColumns = []string{
	"id",
	"salon_id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"currency",
	"is_active",
	"created_at",
	"updated_at",
}

// CreateService создает услугу салона
func (r *Repository) CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("services").
		Columns("id", "salon_id", "name", "description", "duration_minutes", "price", "currency", "is_active").
		Values(
			service.ID,
			service.SalonID,
			service.Name,
			service.Description,
			service.DurationMinutes,
			service.Price,
			service.Currency,
			service.IsActive,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&service.CreatedAt, &service.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	return service, nil
}

// UpdateService обновляет услугу. salonID входит в условие, чтобы нельзя
// было изменить чужую услугу по известному id.
func (r *Repository) UpdateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", service.Name).
		Set("description", service.Description).
		Set("duration_minutes", service.DurationMinutes).
		Set("price", service.Price).
		Set("currency", service.Currency).
		Set("is_active", service.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": service.ID, "salon_id": service.SalonID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateService - build update query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&service.CreatedAt, &service.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: UpdateService - execute update: %v", ErrExecQuery, err)
	}

	return service, nil
}

// GetServiceByID получает услугу по идентификатору
func (r *Repository) GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	service, err := scanService(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: GetServiceByID - scan row: %v", ErrScanRow, err)
	}

	return service, nil
}

// ListServices получает услуги салона. activeOnly — только активные,
// для выдачи публичного каталога.
func (r *Repository) ListServices(ctx context.Context, salonID uuid.UUID, activeOnly bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// CreateWorkstation создает рабочее место салона
func (r *Repository) CreateWorkstation(ctx context.Context, workstation *domain.Workstation) (*domain.Workstation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if workstation.ID == uuid.Nil {
		workstation.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("workstations").
		Columns("id", "salon_id", "name", "order_index").
		Values(workstation.ID, workstation.SalonID, workstation.Name, workstation.OrderIndex).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWorkstation - build insert query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&workstation.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateWorkstation - execute insert: %v", ErrExecQuery, err)
	}

	return workstation, nil
}

// GetWorkstationByID получает рабочее место по идентификатору
func (r *Repository) GetWorkstationByID(ctx context.Context, id uuid.UUID) (*domain.Workstation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "order_index", "created_at").
		From("workstations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkstationByID - build select query: %v", ErrBuildQuery, err)
	}

	var workstation domain.Workstation
	row := executor.QueryRowContext(ctx, query, args...)
	if err := row.Scan(
		&workstation.ID,
		&workstation.SalonID,
		&workstation.Name,
		&workstation.OrderIndex,
		&workstation.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkstationNotFound
		}
		return nil, fmt.Errorf("%w: GetWorkstationByID - scan row: %v", ErrScanRow, err)
	}

	return &workstation, nil
}

// ListWorkstations получает рабочие места салона в порядке отображения
func (r *Repository) ListWorkstations(ctx context.Context, salonID uuid.UUID) ([]*domain.Workstation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "order_index", "created_at").
		From("workstations").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("order_index ASC", "created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkstations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkstations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	workstations := make([]*domain.Workstation, 0)
	for rows.Next() {
		var workstation domain.Workstation
		if err := rows.Scan(
			&workstation.ID,
			&workstation.SalonID,
			&workstation.Name,
			&workstation.OrderIndex,
			&workstation.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListWorkstations - scan row: %v", ErrScanRow, err)
		}
		workstations = append(workstations, &workstation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWorkstations - rows error: %v", ErrScanRow, err)
	}

	return workstations, nil
}

// scanService сканирует услугу из строки результата запроса
func scanService(scan func(dest ...interface{}) error) (*domain.Service, error) {
	var service domain.Service
	var description sql.NullString

	if err := scan(
		&service.ID,
		&service.SalonID,
		&service.Name,
		&description,
		&service.DurationMinutes,
		&service.Price,
		&service.Currency,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if description.Valid {
		service.Description = &description.String
	}

	return &service, nil
}
