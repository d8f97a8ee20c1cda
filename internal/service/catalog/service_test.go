package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/salon-booking-service/internal/domain"
	catalogRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/catalog"
	salonRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/salon"
	"github.com/salonhub/salon-booking-service/internal/service/catalog/models"
	"github.com/salonhub/salon-booking-service/pkg/ptr"
)

type fakeCatalogRepo struct {
	services     map[uuid.UUID]*domain.Service
	workstations []*domain.Workstation
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{services: make(map[uuid.UUID]*domain.Service)}
}

func (f *fakeCatalogRepo) CreateService(_ context.Context, service *domain.Service) (*domain.Service, error) {
	created := *service
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.services[created.ID] = &created
	return &created, nil
}

func (f *fakeCatalogRepo) UpdateService(_ context.Context, service *domain.Service) (*domain.Service, error) {
	existing, ok := f.services[service.ID]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	updated := *service
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	f.services[updated.ID] = &updated
	return &updated, nil
}

func (f *fakeCatalogRepo) GetServiceByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return service, nil
}

func (f *fakeCatalogRepo) ListServices(_ context.Context, salonID uuid.UUID, activeOnly bool) ([]*domain.Service, error) {
	var result []*domain.Service
	for _, service := range f.services {
		if service.SalonID != salonID {
			continue
		}
		if activeOnly && !service.IsActive {
			continue
		}
		result = append(result, service)
	}
	return result, nil
}

func (f *fakeCatalogRepo) CreateWorkstation(_ context.Context, workstation *domain.Workstation) (*domain.Workstation, error) {
	created := *workstation
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	f.workstations = append(f.workstations, &created)
	return &created, nil
}

func (f *fakeCatalogRepo) ListWorkstations(_ context.Context, salonID uuid.UUID) ([]*domain.Workstation, error) {
	var result []*domain.Workstation
	for _, workstation := range f.workstations {
		if workstation.SalonID == salonID {
			result = append(result, workstation)
		}
	}
	return result, nil
}

type fakeSalonRepo struct {
	salons map[uuid.UUID]*domain.Salon
}

func (f *fakeSalonRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Salon, error) {
	salon, ok := f.salons[id]
	if !ok {
		return nil, salonRepo.ErrSalonNotFound
	}
	return salon, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(salonID uuid.UUID) (*Service, *fakeCatalogRepo) {
	repo := newFakeCatalogRepo()
	salons := &fakeSalonRepo{salons: map[uuid.UUID]*domain.Salon{
		salonID: {ID: salonID, Name: "Studio Uno", Currency: "EUR"},
	}}
	return NewService(repo, salons, nopLogger{}), repo
}

func TestCreateService_Defaults(t *testing.T) {
	salonID := uuid.New()
	svc, _ := newTestService(salonID)

	resp, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
		SalonID:         salonID,
		Name:            "  Haircut ",
		DurationMinutes: 60,
		Price:           35,
	})
	require.NoError(t, err)

	assert.Equal(t, "Haircut", resp.Name)
	assert.Equal(t, "EUR", resp.Currency) // валюта салона по умолчанию
	assert.True(t, resp.IsActive)
}

func TestCreateService_ExplicitCurrencyAndInactive(t *testing.T) {
	salonID := uuid.New()
	svc, _ := newTestService(salonID)

	resp, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
		SalonID:         salonID,
		Name:            "Massage",
		DurationMinutes: 90,
		Price:           50,
		Currency:        ptr.Ptr("USD"),
		IsActive:        ptr.Ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", resp.Currency)
	assert.False(t, resp.IsActive)
}

func TestCreateService_InvalidDuration(t *testing.T) {
	salonID := uuid.New()
	svc, _ := newTestService(salonID)

	for _, duration := range []int{0, -30, 45} {
		_, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
			SalonID:         salonID,
			Name:            "Haircut",
			DurationMinutes: duration,
			Price:           35,
		})
		assert.ErrorIs(t, err, ErrInvalidDuration, "duration=%d", duration)
	}
}

func TestCreateService_DurationAboveCap(t *testing.T) {
	salonID := uuid.New()
	svc, _ := newTestService(salonID)

	_, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
		SalonID:         salonID,
		Name:            "Marathon",
		DurationMinutes: domain.MaxServiceDurationMinutes + 30,
		Price:           100,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateService_SalonNotFound(t *testing.T) {
	svc, _ := newTestService(uuid.New())

	_, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
		SalonID:         uuid.New(),
		Name:            "Haircut",
		DurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestUpdateService_Success(t *testing.T) {
	salonID := uuid.New()
	svc, _ := newTestService(salonID)

	created, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{
		SalonID:         salonID,
		Name:            "Haircut",
		DurationMinutes: 30,
		Price:           35,
	})
	require.NoError(t, err)

	serviceID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	resp, err := svc.UpdateService(context.Background(), &models.UpdateServiceRequest{
		SalonID:         salonID,
		ServiceID:       serviceID,
		Name:            "Haircut & Style",
		DurationMinutes: 60,
		Price:           45,
		IsActive:        false,
	})
	require.NoError(t, err)

	assert.Equal(t, "Haircut & Style", resp.Name)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.False(t, resp.IsActive)
}

func TestUpdateService_WrongSalonIsNotFound(t *testing.T) {
	salonID := uuid.New()
	svc, repo := newTestService(salonID)

	created, err := repo.CreateService(context.Background(), &domain.Service{
		SalonID:         salonID,
		Name:            "Haircut",
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	// Услуга существует, но принадлежит другому салону
	_, err = svc.UpdateService(context.Background(), &models.UpdateServiceRequest{
		SalonID:         uuid.New(),
		ServiceID:       created.ID,
		Name:            "Haircut",
		DurationMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateWorkstation_Success(t *testing.T) {
	salonID := uuid.New()
	svc, repo := newTestService(salonID)

	resp, err := svc.CreateWorkstation(context.Background(), &models.CreateWorkstationRequest{
		SalonID:    salonID,
		Name:       "Chair 1",
		OrderIndex: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "Chair 1", resp.Name)
	assert.Len(t, repo.workstations, 1)
}

func TestCreateWorkstation_EmptyName(t *testing.T) {
	salonID := uuid.New()
	svc, _ := newTestService(salonID)

	_, err := svc.CreateWorkstation(context.Background(), &models.CreateWorkstationRequest{
		SalonID: salonID,
		Name:    "   ",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSalonCatalog_FiltersInactiveServices(t *testing.T) {
	salonID := uuid.New()
	svc, repo := newTestService(salonID)

	_, err := repo.CreateService(context.Background(), &domain.Service{
		SalonID: salonID, Name: "Active", DurationMinutes: 30, IsActive: true,
	})
	require.NoError(t, err)
	_, err = repo.CreateService(context.Background(), &domain.Service{
		SalonID: salonID, Name: "Retired", DurationMinutes: 30, IsActive: false,
	})
	require.NoError(t, err)

	resp, err := svc.GetSalonCatalog(context.Background(), salonID)
	require.NoError(t, err)

	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Active", resp.Services[0].Name)
	assert.Equal(t, "Studio Uno", resp.Salon.Name)
}

func TestGetSalonCatalog_SalonNotFound(t *testing.T) {
	svc, _ := newTestService(uuid.New())

	_, err := svc.GetSalonCatalog(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSalonNotFound)
}
