package update_schedule

import (
	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	OpeningHours []models.OpeningHourRuleRequest `json:"openingHours"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(salonID uuid.UUID) *models.ReplaceScheduleRequest {
	return &models.ReplaceScheduleRequest{
		SalonID:      salonID,
		OpeningHours: r.OpeningHours,
	}
}
