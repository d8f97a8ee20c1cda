package add_closed_day

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/salonhub/salon-booking-service/internal/api/handlers"
	"github.com/salonhub/salon-booking-service/internal/service/schedule"
	"github.com/salonhub/salon-booking-service/internal/service/schedule/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAlreadyClosed      = "эта дата уже закрыта"
)

type AddClosedDayRequest struct {
	Date   string  `json:"date"` // "2025-12-25"
	Reason *string `json:"reason,omitempty"`
}

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

// Handle POST /api/v1/salons/{salonId}/closed-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := uuid.Parse(vars["salonId"])
	if err != nil {
		h.logger.Warn("POST /salons/{id}/closed-days - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req AddClosedDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/closed-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddClosedDay(r.Context(), &models.AddClosedDayRequest{
		SalonID: salonID,
		Date:    req.Date,
		Reason:  req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrClosedDayExists):
			h.logger.Warn("POST /salons/{id}/closed-days - Already closed: salon_id=%s, date=%s", salonID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyClosed)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/closed-days - Invalid input: salon_id=%s, error=%v", salonID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /salons/{id}/closed-days - Failed: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/closed-days - Closed day added: salon_id=%s, date=%s", salonID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
