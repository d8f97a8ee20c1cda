package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
	"github.com/salonhub/salon-booking-service/internal/integrations/mailer"
)

const runTimeout = 5 * time.Minute

// Job рассылает напоминания о записях на завтра.
// Запускается по cron расписанию, письма уходят только клиентам,
// оставившим email при записи.
type Job struct {
	appointmentRepo AppointmentRepository
	salonRepo       SalonRepository
	mailer          Mailer
	logger          Logger
}

func NewJob(appointmentRepo AppointmentRepository, salonRepo SalonRepository, mailer Mailer, logger Logger) *Job {
	return &Job{
		appointmentRepo: appointmentRepo,
		salonRepo:       salonRepo,
		mailer:          mailer,
		logger:          logger,
	}
}

// Run выбирает все scheduled записи на завтрашнюю дату и отправляет
// напоминания. Ошибка отправки одного письма не прерывает рассылку.
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	tomorrow := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)

	appointments, err := j.appointmentRepo.ListScheduledOnDate(ctx, tomorrow)
	if err != nil {
		j.logger.Error("reminder job: failed to list appointments for %s: %v",
			tomorrow.Format(domain.DateFormat), err)
		return
	}

	j.logger.Info("reminder job: found %d scheduled appointments for %s",
		len(appointments), tomorrow.Format(domain.DateFormat))

	// Кэшируем названия салонов, чтобы не ходить в базу на каждую запись
	salonNames := make(map[uuid.UUID]string)
	sent := 0

	for _, appointment := range appointments {
		if appointment.ClientEmail == nil || *appointment.ClientEmail == "" {
			continue
		}

		salonName, ok := salonNames[appointment.SalonID]
		if !ok {
			salon, err := j.salonRepo.GetByID(ctx, appointment.SalonID)
			if err != nil {
				j.logger.Warn("reminder job: failed to fetch salon %s: %v", appointment.SalonID, err)
				continue
			}
			salonName = salon.Name
			salonNames[appointment.SalonID] = salonName
		}

		email := mailer.AppointmentEmail{
			RecipientEmail: *appointment.ClientEmail,
			RecipientName:  appointment.ClientName,
			SalonName:      salonName,
			ServiceName:    appointment.ServiceName,
			Date:           appointment.Date.Format(domain.DateFormat),
			StartTime:      appointment.StartTime,
			DurationMin:    appointment.DurationMinutes,
		}

		if err := j.mailer.SendReminder(ctx, email); err != nil {
			j.logger.Warn("reminder job: failed to send reminder for appointment %s: %v",
				appointment.ID, err)
			continue
		}
		sent++
	}

	j.logger.Info("reminder job: sent %d reminders for %s", sent, tomorrow.Format(domain.DateFormat))
}
