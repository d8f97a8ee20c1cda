package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/salon-booking-service/internal/domain"
	catalogRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/catalog"
	salonRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/salon"
	"github.com/salonhub/salon-booking-service/internal/integrations/mailer"
	"github.com/salonhub/salon-booking-service/pkg/ptr"
	"github.com/salonhub/salon-booking-service/pkg/types"
)

// In-memory fakes

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	appt.ID = uuid.New()
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.appointments = append(f.appointments, appt)
	return appt, nil
}

func (f *fakeAppointmentRepo) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.SalonID != filter.SalonID {
			continue
		}
		if filter.WorkstationID != nil && a.WorkstationID != *filter.WorkstationID {
			continue
		}
		if filter.Date != nil && !a.Date.Equal(*filter.Date) {
			continue
		}
		if !filter.IncludeCancelled && a.IsCancelled() {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeCatalogRepo struct {
	services     map[uuid.UUID]*domain.Service
	workstations map[uuid.UUID]*domain.Workstation
}

func (f *fakeCatalogRepo) GetServiceByID(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) GetWorkstationByID(_ context.Context, id uuid.UUID) (*domain.Workstation, error) {
	w, ok := f.workstations[id]
	if !ok {
		return nil, catalogRepo.ErrWorkstationNotFound
	}
	return w, nil
}

type fakeScheduleRepo struct {
	schedule *domain.WeeklySchedule
}

func (f *fakeScheduleRepo) GetWeeklySchedule(_ context.Context, _ uuid.UUID) (*domain.WeeklySchedule, error) {
	return f.schedule, nil
}

type fakeSalonRepo struct {
	salons map[uuid.UUID]*domain.Salon
}

func (f *fakeSalonRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Salon, error) {
	s, ok := f.salons[id]
	if !ok {
		return nil, salonRepo.ErrSalonNotFound
	}
	return s, nil
}

type fakeMailer struct {
	confirmations []mailer.AppointmentEmail
}

func (f *fakeMailer) SendConfirmation(_ context.Context, email mailer.AppointmentEmail) error {
	f.confirmations = append(f.confirmations, email)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// racingTxManager воспроизводит гонку двух одновременных записей:
// первая попытка работает со снимком без соперника, на коммите
// обрывается (как SQLSTATE 40001 в Postgres), изменения откатываются,
// соперник коммитит свою запись, и колбэк выполняется повторно.
type racingTxManager struct {
	repo         *fakeAppointmentRepo
	rivalCommits func()
	attempts     int
}

func (m *racingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	for {
		m.attempts++
		snapshot := append([]*domain.Appointment(nil), m.repo.appointments...)

		err := fn(ctx)
		if m.attempts == 1 {
			m.repo.appointments = snapshot
			if m.rivalCommits != nil {
				m.rivalCommits()
			}
			continue
		}
		return err
	}
}

type fixedTime struct{ now time.Time }

func (t fixedTime) Now() time.Time { return t.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Test fixture

type fixture struct {
	uc            *UseCase
	apptRepo      *fakeAppointmentRepo
	mail          *fakeMailer
	salonID       uuid.UUID
	workstationID uuid.UUID
	serviceID     uuid.UUID
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func openRule(salonID uuid.UUID, weekday int, open, close types.TimeString) domain.OpeningHourRule {
	return domain.OpeningHourRule{
		ID:        uuid.New(),
		SalonID:   salonID,
		Weekday:   weekday,
		OpenTime:  &open,
		CloseTime: &close,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	salonID := uuid.New()
	workstationID := uuid.New()
	serviceID := uuid.New()

	// Понедельник - суббота 09:00-17:00
	rules := make([]domain.OpeningHourRule, 0, 6)
	for weekday := 0; weekday <= 5; weekday++ {
		rules = append(rules, openRule(salonID, weekday, "09:00", "17:00"))
	}

	apptRepo := &fakeAppointmentRepo{}
	mail := &fakeMailer{}

	uc := NewUseCase(
		apptRepo,
		&fakeCatalogRepo{
			services: map[uuid.UUID]*domain.Service{
				serviceID: {
					ID:              serviceID,
					SalonID:         salonID,
					Name:            "Haircut",
					DurationMinutes: 60,
					Price:           35,
					Currency:        "EUR",
					IsActive:        true,
				},
			},
			workstations: map[uuid.UUID]*domain.Workstation{
				workstationID: {ID: workstationID, SalonID: salonID, Name: "Chair 1"},
			},
		},
		&fakeScheduleRepo{schedule: &domain.WeeklySchedule{
			OpeningHours: rules,
			ClosedDays: []domain.ClosedDay{
				{ID: uuid.New(), SalonID: salonID, Date: date(2025, time.December, 25)},
			},
		}},
		&fakeSalonRepo{salons: map[uuid.UUID]*domain.Salon{
			salonID: {ID: salonID, Name: "Studio Uno", Timezone: "Europe/Madrid", Currency: "EUR"},
		}},
		mail,
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: date(2025, time.December, 1)}

	return &fixture{
		uc:            uc,
		apptRepo:      apptRepo,
		mail:          mail,
		salonID:       salonID,
		workstationID: workstationID,
		serviceID:     serviceID,
	}
}

func (f *fixture) request() *Request {
	return &Request{
		SalonID:       f.salonID,
		WorkstationID: f.workstationID,
		ServiceID:     f.serviceID,
		Date:          date(2025, time.December, 8), // понедельник
		StartTime:     "10:00",
		ClientName:    "Ana Torres",
	}
}

// Tests

func TestCreateAppointment_HappyPath(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.ClientEmail = ptr.Ptr("ana@example.com")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 35.0, resp.ServicePrice)

	require.Len(t, f.mail.confirmations, 1)
	assert.Equal(t, "ana@example.com", f.mail.confirmations[0].RecipientEmail)
}

func TestCreateAppointment_NoEmailNoConfirmation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Empty(t, f.mail.confirmations)
}

func TestCreateAppointment_ConflictReturnsBlockingID(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// Пересечение: [10:30, 11:30) против [10:00, 11:00)
	req := f.request()
	req.StartTime = "10:30"
	_, err = f.uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrTimeConflict)
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, first.ID, conflict.ConflictingID)
}

func TestCreateAppointment_BackToBackAccepted(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// Встык: [11:00, 12:00) сразу после [10:00, 11:00)
	req := f.request()
	req.StartTime = "11:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateAppointment_CancelledFreesSlot(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	// Отменяем вручную в хранилище
	for _, a := range f.apptRepo.appointments {
		if a.ID == first.ID {
			a.Status = domain.StatusCancelled
		}
	}

	// Тот же интервал снова свободен
	_, err = f.uc.Execute(context.Background(), f.request())
	assert.NoError(t, err)
}

func TestCreateAppointment_OffGridTimeRejected(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.StartTime = "10:15"
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateAppointment_ClosedDayRejected(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.Date = date(2025, time.December, 25) // закрытая дата
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateAppointment_ClosedWeekdayRejected(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.Date = date(2025, time.December, 14) // воскресенье, правила нет
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestCreateAppointment_InactiveServiceRejected(t *testing.T) {
	f := newFixture(t)

	inactiveID := uuid.New()
	catalog := f.uc.catalogRepo.(*fakeCatalogRepo)
	catalog.services[inactiveID] = &domain.Service{
		ID:              inactiveID,
		SalonID:         f.salonID,
		Name:            "Retired treatment",
		DurationMinutes: 30,
		IsActive:        false,
	}

	req := f.request()
	req.ServiceID = inactiveID
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestCreateAppointment_UnknownWorkstationRejected(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.WorkstationID = uuid.New()
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrWorkstationNotFound)
}

func TestCreateAppointment_PastDateRejected(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.Date = date(2025, time.November, 24)
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCreateAppointment_MissingClientNameRejected(t *testing.T) {
	f := newFixture(t)

	req := f.request()
	req.ClientName = "   "
	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateAppointment_ConcurrentRivalWinsSameSlot(t *testing.T) {
	f := newFixture(t)

	// Соперник успевает закоммитить тот же интервал между нашей первой
	// попыткой и повтором
	var rivalID uuid.UUID
	txm := &racingTxManager{repo: f.apptRepo, rivalCommits: func() {
		created, err := f.apptRepo.Create(context.Background(), &domain.Appointment{
			SalonID:         f.salonID,
			WorkstationID:   f.workstationID,
			ServiceID:       ptr.Ptr(f.serviceID),
			Date:            date(2025, time.December, 8),
			StartTime:       "10:00",
			DurationMinutes: 60,
			Status:          domain.StatusScheduled,
			ClientName:      "Marta Ruiz",
			ServiceName:     "Haircut",
			ServicePrice:    35,
		})
		require.NoError(t, err)
		rivalID = created.ID
	}}
	f.uc.txManager = txm

	_, err := f.uc.Execute(context.Background(), f.request())

	require.ErrorIs(t, err, ErrTimeConflict)
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, rivalID, conflict.ConflictingID)
	assert.Equal(t, 2, txm.attempts)

	// Двойного бронирования нет: осталась только запись соперника
	require.Len(t, f.apptRepo.appointments, 1)
	assert.Equal(t, rivalID, f.apptRepo.appointments[0].ID)
}

func TestCreateAppointment_RetrySucceedsWhenRivalTakesOtherSlot(t *testing.T) {
	f := newFixture(t)

	txm := &racingTxManager{repo: f.apptRepo, rivalCommits: func() {
		_, err := f.apptRepo.Create(context.Background(), &domain.Appointment{
			SalonID:         f.salonID,
			WorkstationID:   f.workstationID,
			ServiceID:       ptr.Ptr(f.serviceID),
			Date:            date(2025, time.December, 8),
			StartTime:       "14:00",
			DurationMinutes: 60,
			Status:          domain.StatusScheduled,
			ClientName:      "Marta Ruiz",
			ServiceName:     "Haircut",
			ServicePrice:    35,
		})
		require.NoError(t, err)
	}}
	f.uc.txManager = txm

	resp, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, 2, txm.attempts)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Len(t, f.apptRepo.appointments, 2)
}

func TestCreateAppointment_DifferentWorkstationNoConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request())
	require.NoError(t, err)

	otherWorkstation := uuid.New()
	catalog := f.uc.catalogRepo.(*fakeCatalogRepo)
	catalog.workstations[otherWorkstation] = &domain.Workstation{
		ID:      otherWorkstation,
		SalonID: f.salonID,
		Name:    "Chair 2",
	}

	// То же время, другое рабочее место
	req := f.request()
	req.WorkstationID = otherWorkstation
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}
