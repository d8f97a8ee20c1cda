package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhub/salon-booking-service/internal/domain"
	scheduleRepo "github.com/salonhub/salon-booking-service/internal/infra/storage/schedule"
	"github.com/salonhub/salon-booking-service/internal/service/schedule/models"
	"github.com/salonhub/salon-booking-service/pkg/ptr"
)

type fakeScheduleRepo struct {
	rules      []domain.OpeningHourRule
	closedDays []domain.ClosedDay

	addClosedDayErr    error
	deleteClosedDayErr error
}

func (f *fakeScheduleRepo) ReplaceOpeningHours(_ context.Context, salonID uuid.UUID, rules []domain.OpeningHourRule) error {
	f.rules = make([]domain.OpeningHourRule, len(rules))
	copy(f.rules, rules)
	for i := range f.rules {
		f.rules[i].ID = uuid.New()
		f.rules[i].SalonID = salonID
	}
	return nil
}

func (f *fakeScheduleRepo) ListOpeningHours(_ context.Context, _ uuid.UUID) ([]domain.OpeningHourRule, error) {
	return f.rules, nil
}

func (f *fakeScheduleRepo) AddClosedDay(_ context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error) {
	if f.addClosedDayErr != nil {
		return nil, f.addClosedDayErr
	}
	created := *day
	created.ID = uuid.New()
	f.closedDays = append(f.closedDays, created)
	return &created, nil
}

func (f *fakeScheduleRepo) DeleteClosedDay(_ context.Context, _, id uuid.UUID) error {
	if f.deleteClosedDayErr != nil {
		return f.deleteClosedDayErr
	}
	for i, day := range f.closedDays {
		if day.ID == id {
			f.closedDays = append(f.closedDays[:i], f.closedDays[i+1:]...)
			return nil
		}
	}
	return scheduleRepo.ErrClosedDayNotFound
}

func (f *fakeScheduleRepo) ListClosedDays(_ context.Context, _ uuid.UUID, _ *time.Time) ([]domain.ClosedDay, error) {
	return f.closedDays, nil
}

func (f *fakeScheduleRepo) GetWeeklySchedule(_ context.Context, _ uuid.UUID) (*domain.WeeklySchedule, error) {
	return &domain.WeeklySchedule{OpeningHours: f.rules, ClosedDays: f.closedDays}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeScheduleRepo) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{})
}

func rule(weekday int, open, close string) models.OpeningHourRuleRequest {
	return models.OpeningHourRuleRequest{
		Weekday:   weekday,
		OpenTime:  ptr.Ptr(open),
		CloseTime: ptr.Ptr(close),
	}
}

func TestReplaceSchedule_Success(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newService(repo)

	resp, err := svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
		SalonID: uuid.New(),
		OpeningHours: []models.OpeningHourRuleRequest{
			rule(0, "09:00", "17:00"),
			rule(1, "09:00", "17:00"),
			{Weekday: 6, IsClosed: true},
		},
	})
	require.NoError(t, err)

	assert.Len(t, resp.OpeningHours, 3)
	assert.Len(t, repo.rules, 3)
	assert.Equal(t, "09:00", *resp.OpeningHours[0].OpenTime)
	assert.True(t, resp.OpeningHours[2].IsClosed)
	assert.Nil(t, resp.OpeningHours[2].OpenTime)
}

func TestReplaceSchedule_DuplicateWeekday(t *testing.T) {
	svc := newService(&fakeScheduleRepo{})

	_, err := svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
		SalonID: uuid.New(),
		OpeningHours: []models.OpeningHourRuleRequest{
			rule(2, "09:00", "17:00"),
			rule(2, "10:00", "18:00"),
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateWeekday)
}

func TestReplaceSchedule_WeekdayOutOfRange(t *testing.T) {
	svc := newService(&fakeScheduleRepo{})

	_, err := svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
		SalonID:      uuid.New(),
		OpeningHours: []models.OpeningHourRuleRequest{rule(7, "09:00", "17:00")},
	})
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestReplaceSchedule_MissingTimes(t *testing.T) {
	svc := newService(&fakeScheduleRepo{})

	_, err := svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
		SalonID: uuid.New(),
		OpeningHours: []models.OpeningHourRuleRequest{
			{Weekday: 0, OpenTime: ptr.Ptr("09:00")}, // нет close_time
		},
	})
	assert.ErrorIs(t, err, ErrMissingTimes)
}

func TestReplaceSchedule_OpenNotBeforeClose(t *testing.T) {
	svc := newService(&fakeScheduleRepo{})

	_, err := svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
		SalonID:      uuid.New(),
		OpeningHours: []models.OpeningHourRuleRequest{rule(0, "17:00", "09:00")},
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
		SalonID:      uuid.New(),
		OpeningHours: []models.OpeningHourRuleRequest{rule(0, "09:00", "09:00")},
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestReplaceSchedule_InvalidTimeFormat(t *testing.T) {
	svc := newService(&fakeScheduleRepo{})

	_, err := svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
		SalonID:      uuid.New(),
		OpeningHours: []models.OpeningHourRuleRequest{rule(0, "9am", "17:00")},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReplaceSchedule_ClosedDayWithoutTimesIsValid(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newService(repo)

	resp, err := svc.ReplaceSchedule(context.Background(), &models.ReplaceScheduleRequest{
		SalonID:      uuid.New(),
		OpeningHours: []models.OpeningHourRuleRequest{{Weekday: 0, IsClosed: true}},
	})
	require.NoError(t, err)
	assert.True(t, resp.OpeningHours[0].IsClosed)
}

func TestAddClosedDay_Success(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newService(repo)

	resp, err := svc.AddClosedDay(context.Background(), &models.AddClosedDayRequest{
		SalonID: uuid.New(),
		Date:    "2025-12-25",
		Reason:  ptr.Ptr("holiday"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-12-25", resp.Date)
	assert.Equal(t, "holiday", *resp.Reason)
	assert.Len(t, repo.closedDays, 1)
}

func TestAddClosedDay_InvalidDate(t *testing.T) {
	svc := newService(&fakeScheduleRepo{})

	_, err := svc.AddClosedDay(context.Background(), &models.AddClosedDayRequest{
		SalonID: uuid.New(),
		Date:    "25.12.2025",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddClosedDay_AlreadyExists(t *testing.T) {
	repo := &fakeScheduleRepo{addClosedDayErr: scheduleRepo.ErrClosedDayExists}
	svc := newService(repo)

	_, err := svc.AddClosedDay(context.Background(), &models.AddClosedDayRequest{
		SalonID: uuid.New(),
		Date:    "2025-12-25",
	})
	assert.ErrorIs(t, err, ErrClosedDayExists)
}

func TestDeleteClosedDay_Success(t *testing.T) {
	salonID := uuid.New()
	repo := &fakeScheduleRepo{}
	svc := newService(repo)

	created, err := svc.AddClosedDay(context.Background(), &models.AddClosedDayRequest{
		SalonID: salonID,
		Date:    "2025-12-25",
	})
	require.NoError(t, err)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteClosedDay(context.Background(), salonID, id))
	assert.Empty(t, repo.closedDays)
}

func TestDeleteClosedDay_NotFound(t *testing.T) {
	svc := newService(&fakeScheduleRepo{})

	err := svc.DeleteClosedDay(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrClosedDayNotFound)
}
