package create_workstation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/salonhub/salon-booking-service/internal/api/handlers"
	"github.com/salonhub/salon-booking-service/internal/service/catalog"
	"github.com/salonhub/salon-booking-service/internal/service/catalog/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSalonNotFound      = "салон не найден"
)

type CreateWorkstationHTTPRequest struct {
	Name       string `json:"name"`
	OrderIndex int    `json:"orderIndex"`
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/workstations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := uuid.Parse(vars["salonId"])
	if err != nil {
		h.logger.Warn("POST /salons/{id}/workstations - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req CreateWorkstationHTTPRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/workstations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateWorkstation(r.Context(), &models.CreateWorkstationRequest{
		SalonID:    salonID,
		Name:       req.Name,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/workstations - Salon not found: salon_id=%s", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/workstations - Invalid input: salon_id=%s, error=%v", salonID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /salons/{id}/workstations - Failed: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/workstations - Workstation created: salon_id=%s, workstation_id=%s",
		salonID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
