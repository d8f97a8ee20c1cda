package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/salonhub/salon-booking-service/internal/domain"
	"github.com/salonhub/salon-booking-service/internal/integrations/mailer"
	"github.com/salonhub/salon-booking-service/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) ListScheduledOnDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeSalonRepo struct {
	salon *domain.Salon
	calls int
}

func (f *fakeSalonRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Salon, error) {
	f.calls++
	if f.salon == nil {
		return nil, errors.New("salon not found")
	}
	return f.salon, nil
}

type fakeMailer struct {
	sent    []mailer.AppointmentEmail
	sendErr error
}

func (f *fakeMailer) SendReminder(_ context.Context, email mailer.AppointmentEmail) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, email)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func scheduledAppointment(salonID uuid.UUID, email *string) *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		SalonID:         salonID,
		WorkstationID:   uuid.New(),
		Date:            time.Now().AddDate(0, 0, 1),
		StartTime:       "10:00",
		DurationMinutes: 30,
		ClientName:      "Ana",
		ClientEmail:     email,
		Status:          domain.StatusScheduled,
		ServiceName:     "Haircut",
	}
}

func TestReminderJob_SendsOnlyWithEmail(t *testing.T) {
	salonID := uuid.New()
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		scheduledAppointment(salonID, ptr.Ptr("ana@example.com")),
		scheduledAppointment(salonID, nil),
		scheduledAppointment(salonID, ptr.Ptr("")),
	}}
	salons := &fakeSalonRepo{salon: &domain.Salon{ID: salonID, Name: "Studio Uno"}}
	mail := &fakeMailer{}

	NewJob(repo, salons, mail, nopLogger{}).Run()

	assert.Len(t, mail.sent, 1)
	assert.Equal(t, "ana@example.com", mail.sent[0].RecipientEmail)
	assert.Equal(t, "Studio Uno", mail.sent[0].SalonName)
	assert.Equal(t, "Haircut", mail.sent[0].ServiceName)
}

func TestReminderJob_CachesSalonLookups(t *testing.T) {
	salonID := uuid.New()
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		scheduledAppointment(salonID, ptr.Ptr("a@example.com")),
		scheduledAppointment(salonID, ptr.Ptr("b@example.com")),
		scheduledAppointment(salonID, ptr.Ptr("c@example.com")),
	}}
	salons := &fakeSalonRepo{salon: &domain.Salon{ID: salonID, Name: "Studio Uno"}}
	mail := &fakeMailer{}

	NewJob(repo, salons, mail, nopLogger{}).Run()

	assert.Len(t, mail.sent, 3)
	assert.Equal(t, 1, salons.calls)
}

func TestReminderJob_SendErrorDoesNotStopRun(t *testing.T) {
	salonID := uuid.New()
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		scheduledAppointment(salonID, ptr.Ptr("a@example.com")),
		scheduledAppointment(salonID, ptr.Ptr("b@example.com")),
	}}
	salons := &fakeSalonRepo{salon: &domain.Salon{ID: salonID, Name: "Studio Uno"}}
	mail := &fakeMailer{sendErr: mailer.ErrSendFailed}

	// Не должно паниковать и не должно прерываться
	NewJob(repo, salons, mail, nopLogger{}).Run()

	assert.Empty(t, mail.sent)
}
