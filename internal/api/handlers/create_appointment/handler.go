package create_appointment

import (
	"errors"
	"net/http"

	"github.com/salonhub/salon-booking-service/internal/api/handlers"
	createAppointment "github.com/salonhub/salon-booking-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidRequestData  = "некорректный формат даты, времени или идентификаторов"
	msgSalonNotFound       = "салон не найден"
	msgWorkstationNotFound = "рабочее место не найдено"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceInactive     = "услуга недоступна для записи"
	msgInvalidDate         = "некорректная дата записи"
	msgSlotNotAvailable    = "выбранное время недоступно для записи"
	msgTimeConflict        = "время пересекается с существующей записью"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом UUID, даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestData)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createAppointment.ErrTimeConflict):
			var conflict *createAppointment.ConflictError
			conflictingID := ""
			if errors.As(err, &conflict) {
				conflictingID = conflict.ConflictingID.String()
			}
			h.logger.Warn("POST /appointments - Time conflict: salon_id=%s, workstation_id=%s, conflicting_id=%s",
				req.SalonID, req.WorkstationID, conflictingID)
			handlers.RespondConflict(w, msgTimeConflict, conflictingID)

		case errors.Is(err, createAppointment.ErrSalonNotFound):
			h.logger.Warn("POST /appointments - Salon not found: salon_id=%s", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createAppointment.ErrWorkstationNotFound):
			h.logger.Warn("POST /appointments - Workstation not found: salon_id=%s, workstation_id=%s",
				req.SalonID, req.WorkstationID)
			handlers.RespondNotFound(w, msgWorkstationNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: salon_id=%s, service_id=%s",
				req.SalonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: salon_id=%s, service_id=%s",
				req.SalonID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: salon_id=%s, date=%s", req.SalonID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: salon_id=%s, date=%s, start_time=%s",
				req.SalonID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: salon_id=%s, error=%v", req.SalonID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: salon_id=%s, error=%v",
				req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, salon_id=%s",
		result.ID, req.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
