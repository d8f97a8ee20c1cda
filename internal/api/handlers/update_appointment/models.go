package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
	updateAppointment "github.com/salonhub/salon-booking-service/internal/usecase/update_appointment"
	"github.com/salonhub/salon-booking-service/pkg/types"
)

// UpdateAppointmentRequest HTTP request model.
// Все поля опциональны, отсутствующее поле не меняется.
type UpdateAppointmentRequest struct {
	WorkstationID *string `json:"workstationId,omitempty"`
	ServiceID     *string `json:"serviceId,omitempty"`
	Date          *string `json:"date,omitempty"`      // "2025-12-08"
	StartTime     *string `json:"startTime,omitempty"` // "10:00"

	ClientName  *string `json:"clientName,omitempty"`
	ClientPhone *string `json:"clientPhone,omitempty"`
	ClientEmail *string `json:"clientEmail,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	Status             *string `json:"status,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
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

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID uuid.UUID) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		ID:                 appointmentID,
		ClientName:         r.ClientName,
		ClientPhone:        r.ClientPhone,
		ClientEmail:        r.ClientEmail,
		Notes:              r.Notes,
		Status:             r.Status,
		CancellationReason: r.CancellationReason,
	}

	if r.WorkstationID != nil {
		workstationID, err := uuid.Parse(*r.WorkstationID)
		if err != nil {
			return nil, err
		}
		req.WorkstationID = &workstationID
	}

	if r.ServiceID != nil {
		serviceID, err := uuid.Parse(*r.ServiceID)
		if err != nil {
			return nil, err
		}
		req.ServiceID = &serviceID
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	var serviceID *string
	if resp.ServiceID != nil {
		s := resp.ServiceID.String()
		serviceID = &s
	}

	var cancelledAt *string
	if resp.CancelledAt != nil {
		s := resp.CancelledAt.Format(time.RFC3339)
		cancelledAt = &s
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

		CancellationReason: resp.CancellationReason,
		CancelledAt:        cancelledAt,

		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
