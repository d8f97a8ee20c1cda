package update_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/salon-booking-service/internal/domain"
	appointmentRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/catalog"
	salonRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/salon"
	"github.com/salonhub/salon-booking-service/internal/integrations/mailer"
	"github.com/salonhub/salon-booking-service/pkg/ptr"
	"github.com/salonhub/salon-booking-service/pkg/types"
)

// In-memory fakes

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	clone := *a
	return &clone, nil
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
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if _, ok := f.appointments[appt.ID]; !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	appt.UpdatedAt = time.Now()
	clone := *appt
	f.appointments[appt.ID] = &clone
	return appt, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	a, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id uuid.UUID, reason *string) error {
	a, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = domain.StatusCancelled
	a.CancellationReason = reason
	a.CancelledAt = ptr.Ptr(time.Now())
	return nil
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
	reschedules   []mailer.AppointmentEmail
	cancellations []mailer.AppointmentEmail
}

func (f *fakeMailer) SendReschedule(_ context.Context, email mailer.AppointmentEmail) error {
	f.reschedules = append(f.reschedules, email)
	return nil
}

func (f *fakeMailer) SendCancellation(_ context.Context, email mailer.AppointmentEmail) error {
	f.cancellations = append(f.cancellations, email)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
	appointmentID uuid.UUID
	otherID       uuid.UUID
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	salonID := uuid.New()
	workstationID := uuid.New()
	serviceID := uuid.New()
	appointmentID := uuid.New()
	otherID := uuid.New()

	rules := make([]domain.OpeningHourRule, 0, 6)
	for weekday := 0; weekday <= 5; weekday++ {
		open := types.TimeString("09:00")
		close := types.TimeString("17:00")
		rules = append(rules, domain.OpeningHourRule{
			ID:        uuid.New(),
			SalonID:   salonID,
			Weekday:   weekday,
			OpenTime:  &open,
			CloseTime: &close,
		})
	}

	monday := date(2025, time.December, 8)

	apptRepo := &fakeAppointmentRepo{appointments: map[uuid.UUID]*domain.Appointment{
		appointmentID: {
			ID:              appointmentID,
			SalonID:         salonID,
			WorkstationID:   workstationID,
			ServiceID:       ptr.Ptr(serviceID),
			Date:            monday,
			StartTime:       "10:00",
			DurationMinutes: 60,
			Status:          domain.StatusScheduled,
			ClientName:      "Ana Torres",
			ClientEmail:     ptr.Ptr("ana@example.com"),
			ServiceName:     "Haircut",
			ServicePrice:    35,
		},
		otherID: {
			ID:              otherID,
			SalonID:         salonID,
			WorkstationID:   workstationID,
			ServiceID:       ptr.Ptr(serviceID),
			Date:            monday,
			StartTime:       "12:00",
			DurationMinutes: 60,
			Status:          domain.StatusScheduled,
			ClientName:      "Luis Vega",
			ServiceName:     "Haircut",
			ServicePrice:    35,
		},
	}}

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
					IsActive:        true,
				},
			},
			workstations: map[uuid.UUID]*domain.Workstation{
				workstationID: {ID: workstationID, SalonID: salonID, Name: "Chair 1"},
			},
		},
		&fakeScheduleRepo{schedule: &domain.WeeklySchedule{OpeningHours: rules}},
		&fakeSalonRepo{salons: map[uuid.UUID]*domain.Salon{
			salonID: {ID: salonID, Name: "Studio Uno"},
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
		appointmentID: appointmentID,
		otherID:       otherID,
	}
}

// Tests

func TestUpdateAppointment_EditNameWithoutMoveNeverSelfConflicts(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID:         f.appointmentID,
		ClientName: ptr.Ptr("Ana M. Torres"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana M. Torres", resp.ClientName)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Empty(t, f.mail.reschedules, "no move, no reschedule email")
}

func TestUpdateAppointment_RescheduleToFreeSlot(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID:        f.appointmentID,
		StartTime: ptr.Ptr(types.TimeString("14:00")),
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("15:00"), resp.EndTime)
	require.Len(t, f.mail.reschedules, 1)
	assert.Equal(t, "ana@example.com", f.mail.reschedules[0].RecipientEmail)
}

func TestUpdateAppointment_RescheduleIntoConflictRejected(t *testing.T) {
	f := newFixture(t)

	// Перенос в [11:30, 12:30), пересекается с other [12:00, 13:00)
	_, err := f.uc.Execute(context.Background(), &Request{
		ID:        f.appointmentID,
		StartTime: ptr.Ptr(types.TimeString("11:30")),
	})

	require.ErrorIs(t, err, ErrTimeConflict)
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, f.otherID, conflict.ConflictingID)
}

func TestUpdateAppointment_RescheduleOffGridRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:        f.appointmentID,
		StartTime: ptr.Ptr(types.TimeString("14:10")),
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUpdateAppointment_RescheduleToClosedWeekdayRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:   f.appointmentID,
		Date: ptr.Ptr(date(2025, time.December, 14)), // воскресенье
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUpdateAppointment_CancelSendsEmailAndFreesSlot(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID:                 f.appointmentID,
		Status:             ptr.Ptr(string(domain.StatusCancelled)),
		CancellationReason: ptr.Ptr("client request"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "client request", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
	require.Len(t, f.mail.cancellations, 1)

	// Слот освободился: other переносится на бывшее время записи
	moved, err := f.uc.Execute(context.Background(), &Request{
		ID:        f.otherID,
		StartTime: ptr.Ptr(types.TimeString("10:00")),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), moved.StartTime)
}

func TestUpdateAppointment_CancelCombinedWithMoveRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:        f.appointmentID,
		Status:    ptr.Ptr(string(domain.StatusCancelled)),
		StartTime: ptr.Ptr(types.TimeString("14:00")),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateAppointment_CompletedIsStatusOnlyFastPath(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID:     f.appointmentID,
		Status: ptr.Ptr(string(domain.StatusCompleted)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
}

func TestUpdateAppointment_RescheduleTerminalStatusRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:     f.appointmentID,
		Status: ptr.Ptr(string(domain.StatusCompleted)),
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{
		ID:        f.appointmentID,
		StartTime: ptr.Ptr(types.TimeString("14:00")),
	})
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestUpdateAppointment_ReviveCancelledRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:     f.appointmentID,
		Status: ptr.Ptr(string(domain.StatusCancelled)),
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{
		ID:     f.appointmentID,
		Status: ptr.Ptr(string(domain.StatusScheduled)),
	})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateAppointment_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		ID:         uuid.New(),
		ClientName: ptr.Ptr("Nobody"),
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUpdateAppointment_ChangeServiceUpdatesDurationAndPrice(t *testing.T) {
	f := newFixture(t)

	longID := uuid.New()
	catalog := f.uc.catalogRepo.(*fakeCatalogRepo)
	catalog.services[longID] = &domain.Service{
		ID:              longID,
		SalonID:         f.salonID,
		Name:            "Color treatment",
		DurationMinutes: 90,
		Price:           80,
		IsActive:        true,
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		ID:        f.appointmentID,
		ServiceID: ptr.Ptr(longID),
	})
	require.NoError(t, err)

	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, "Color treatment", resp.ServiceName)
	assert.Equal(t, 80.0, resp.ServicePrice)
	assert.Equal(t, types.TimeString("11:30"), resp.EndTime)
	// Длительность выросла - интервал сдвинулся, письмо о переносе
	assert.Len(t, f.mail.reschedules, 1)
}
