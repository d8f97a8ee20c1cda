package update_schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/salonhub/salon-booking-service/internal/api/handlers"
	"github.com/salonhub/salon-booking-service/internal/service/schedule"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWeekday     = "день недели должен быть в диапазоне от 0 (понедельник) до 6 (воскресенье)"
	msgDuplicateWeekday   = "на день недели задано больше одного правила"
	msgInvalidTimeRange   = "время открытия должно быть раньше времени закрытия"
	msgMissingTimes       = "для рабочего дня нужны время открытия и закрытия"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := uuid.Parse(vars["salonId"])
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/schedule - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceSchedule(r.Context(), req.ToServiceRequest(salonID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidWeekday):
			h.logger.Warn("PUT /salons/{id}/schedule - Invalid weekday: salon_id=%s", salonID)
			handlers.RespondBadRequest(w, msgInvalidWeekday)

		case errors.Is(err, schedule.ErrDuplicateWeekday):
			h.logger.Warn("PUT /salons/{id}/schedule - Duplicate weekday: salon_id=%s", salonID)
			handlers.RespondBadRequest(w, msgDuplicateWeekday)

		case errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("PUT /salons/{id}/schedule - Invalid time range: salon_id=%s", salonID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrMissingTimes):
			h.logger.Warn("PUT /salons/{id}/schedule - Missing times: salon_id=%s", salonID)
			handlers.RespondBadRequest(w, msgMissingTimes)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/schedule - Invalid input: salon_id=%s, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /salons/{id}/schedule - Failed: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/schedule - Schedule replaced: salon_id=%s, rules=%d",
		salonID, len(result.OpeningHours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
