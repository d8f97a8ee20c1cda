package delete_closed_day

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
	msgInvalidClosedDayID = "некорректный ID закрытой даты"
	msgNotFound           = "закрытая дата не найдена"
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

// Handle DELETE /api/v1/salons/{salonId}/closed-days/{closedDayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := uuid.Parse(vars["salonId"])
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/closed-days/{dayId} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	closedDayID, err := uuid.Parse(vars["closedDayId"])
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/closed-days/{dayId} - Invalid closed day ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClosedDayID)
		return
	}

	if err := h.service.DeleteClosedDay(r.Context(), salonID, closedDayID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrClosedDayNotFound):
			h.logger.Warn("DELETE /salons/{id}/closed-days/{dayId} - Not found: salon_id=%s, closed_day_id=%s",
				salonID, closedDayID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /salons/{id}/closed-days/{dayId} - Failed: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /salons/{id}/closed-days/{dayId} - Closed day deleted: salon_id=%s, closed_day_id=%s",
		salonID, closedDayID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
