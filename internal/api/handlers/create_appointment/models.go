package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
	createAppointment "github.com/salonhub/salon-booking-service/internal/usecase/create_appointment"
	"github.com/salonhub/salon-booking-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SalonID       string  `json:"salonId"`
	WorkstationID string  `json:"workstationId"`
	ServiceID     string  `json:"serviceId"`
	Date          string  `json:"date"`      // "2025-12-08"
	StartTime     string  `json:"startTime"` // "10:00"
	ClientName    string  `json:"clientName"`
	ClientPhone   *string `json:"clientPhone,omitempty"`
	ClientEmail   *string `json:"clientEmail,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              string  `json:"id"`
	SalonID         string  `json:"salonId"`
	WorkstationID   string  `json:"workstationId"`
	ServiceID       *string `json:"serviceId,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ClientName      string  `json:"clientName"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	ClientEmail     *string `json:"clientEmail,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	salonID, err := uuid.Parse(r.SalonID)
	if err != nil {
		return nil, err
	}

	workstationID, err := uuid.Parse(r.WorkstationID)
	if err != nil {
		return nil, err
	}

	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, err
	}

	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		SalonID:       salonID,
		WorkstationID: workstationID,
		ServiceID:     serviceID,
		Date:          date,
		StartTime:     startTime,
		ClientName:    r.ClientName,
		ClientPhone:   r.ClientPhone,
		ClientEmail:   r.ClientEmail,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	var serviceID *string
	if resp.ServiceID != nil {
		s := resp.ServiceID.String()
		serviceID = &s
	}

	return &AppointmentResponse{
		ID:              resp.ID.String(),
		SalonID:         resp.SalonID.String(),
		WorkstationID:   resp.WorkstationID.String(),
		ServiceID:       serviceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ClientName:      resp.ClientName,
		ClientPhone:     resp.ClientPhone,
		ClientEmail:     resp.ClientEmail,
		Notes:           resp.Notes,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
