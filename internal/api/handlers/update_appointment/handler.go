package update_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/salonhub/salon-booking-service/internal/api/handlers"
	updateAppointment "github.com/salonhub/salon-booking-service/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID    = "некорректный ID записи"
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgInvalidRequestData      = "некорректный формат даты, времени или идентификаторов"
	msgAppointmentNotFound     = "запись не найдена"
	msgWorkstationNotFound     = "рабочее место не найдено"
	msgServiceNotFound         = "услуга не найдена"
	msgServiceInactive         = "услуга недоступна для записи"
	msgInvalidDate             = "некорректная дата записи"
	msgSlotNotAvailable        = "выбранное время недоступно для записи"
	msgTimeConflict            = "время пересекается с существующей записью"
	msgCannotReschedule        = "запись в текущем статусе нельзя перенести"
	msgInvalidStatusTransition = "недопустимая смена статуса записи"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом UUID, даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Failed to parse request: appointment_id=%s, error=%v",
			appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestData)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, updateAppointment.ErrTimeConflict):
			var conflict *updateAppointment.ConflictError
			conflictingID := ""
			if errors.As(err, &conflict) {
				conflictingID = conflict.ConflictingID.String()
			}
			h.logger.Warn("PUT /appointments/{id} - Time conflict: appointment_id=%s, conflicting_id=%s",
				appointmentID, conflictingID)
			handlers.RespondConflict(w, msgTimeConflict, conflictingID)

		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrWorkstationNotFound):
			h.logger.Warn("PUT /appointments/{id} - Workstation not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgWorkstationNotFound)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/{id} - Service not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrServiceInactive):
			h.logger.Warn("PUT /appointments/{id} - Service inactive: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, updateAppointment.ErrInvalidDate):
			h.logger.Warn("PUT /appointments/{id} - Invalid date: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, updateAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PUT /appointments/{id} - Slot not available: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, updateAppointment.ErrCannotReschedule):
			h.logger.Warn("PUT /appointments/{id} - Cannot reschedule: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, updateAppointment.ErrInvalidStatusTransition):
			h.logger.Warn("PUT /appointments/{id} - Invalid status transition: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidStatusTransition)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid input: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to update appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("PUT /appointments/{id} - Appointment updated successfully: appointment_id=%s, status=%s",
		result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, response)
}
