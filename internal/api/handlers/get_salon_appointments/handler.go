package get_salon_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/salonhub/salon-booking-service/internal/api/handlers"
	"github.com/salonhub/salon-booking-service/internal/domain"
	"github.com/salonhub/salon-booking-service/internal/service/appointments"
	"github.com/salonhub/salon-booking-service/internal/service/appointments/models"
)

const (
	msgInvalidSalonID       = "некорректный ID салона"
	msgInvalidWorkstationID = "некорректный ID рабочего места"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus        = "некорректный статус записи"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/appointments?workstationId=&date=&status=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := uuid.Parse(vars["salonId"])
	if err != nil {
		h.logger.Warn("GET /salons/{id}/appointments - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	req := &models.ListAppointmentsRequest{
		SalonID: salonID,
	}

	query := r.URL.Query()

	if workstationStr := query.Get("workstationId"); workstationStr != "" {
		workstationID, err := uuid.Parse(workstationStr)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/appointments - Invalid workstation ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWorkstationID)
			return
		}
		req.WorkstationID = &workstationID
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/appointments - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	req.IncludeCancelled = query.Get("includeCancelled") == "true"

	result, err := h.service.ListForSalon(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/appointments - Invalid status filter: salon_id=%s", salonID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /salons/{id}/appointments - Failed: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/appointments - Fetched %d appointments: salon_id=%s",
		len(result.Appointments), salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
