package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/salon-booking-service/internal/domain"
	salonRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/salon"
	"github.com/salonhub/salon-booking-service/pkg/types"
)

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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newUseCase(salonID uuid.UUID, schedule *domain.WeeklySchedule) *UseCase {
	return NewUseCase(
		&fakeScheduleRepo{schedule: schedule},
		&fakeSalonRepo{salons: map[uuid.UUID]*domain.Salon{
			salonID: {ID: salonID, Name: "Studio Uno"},
		}},
		nopLogger{},
	)
}

func weekdaySchedule(salonID uuid.UUID, open, close types.TimeString) *domain.WeeklySchedule {
	rules := make([]domain.OpeningHourRule, 0, 5)
	for weekday := 0; weekday <= 4; weekday++ {
		o, c := open, close
		rules = append(rules, domain.OpeningHourRule{
			ID:        uuid.New(),
			SalonID:   salonID,
			Weekday:   weekday,
			OpenTime:  &o,
			CloseTime: &c,
		})
	}
	return &domain.WeeklySchedule{OpeningHours: rules}
}

func TestGetAvailableSlots_OpenDay(t *testing.T) {
	salonID := uuid.New()
	uc := newUseCase(salonID, weekdaySchedule(salonID, "09:00", "12:00"))

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: salonID,
		Date:    date(2025, time.December, 8), // понедельник
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-12-08", resp.Date)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, resp.Slots)
}

func TestGetAvailableSlots_ClosedWeekdayEmptyListNotError(t *testing.T) {
	salonID := uuid.New()
	uc := newUseCase(salonID, weekdaySchedule(salonID, "09:00", "17:00"))

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: salonID,
		Date:    date(2025, time.December, 13), // суббота, правила нет
	})
	require.NoError(t, err)

	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestGetAvailableSlots_ClosedDateEmptyListNotError(t *testing.T) {
	salonID := uuid.New()
	schedule := weekdaySchedule(salonID, "09:00", "17:00")
	schedule.ClosedDays = []domain.ClosedDay{
		{ID: uuid.New(), SalonID: salonID, Date: date(2025, time.December, 8)},
	}
	uc := newUseCase(salonID, schedule)

	resp, err := uc.Execute(context.Background(), &Request{
		SalonID: salonID,
		Date:    date(2025, time.December, 8),
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
}

func TestGetAvailableSlots_UnknownSalon(t *testing.T) {
	salonID := uuid.New()
	uc := newUseCase(salonID, weekdaySchedule(salonID, "09:00", "17:00"))

	_, err := uc.Execute(context.Background(), &Request{
		SalonID: uuid.New(),
		Date:    date(2025, time.December, 8),
	})

	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestGetAvailableSlots_MissingDateRejected(t *testing.T) {
	salonID := uuid.New()
	uc := newUseCase(salonID, weekdaySchedule(salonID, "09:00", "17:00"))

	_, err := uc.Execute(context.Background(), &Request{SalonID: salonID})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
