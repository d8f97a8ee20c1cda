package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	SalonID         uuid.UUID
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Currency        *string `json:"currency,omitempty"` // По умолчанию валюта салона
	IsActive        *bool   `json:"isActive,omitempty"` // По умолчанию true
}

// UpdateServiceRequest запрос на обновление услуги
type UpdateServiceRequest struct {
	SalonID         uuid.UUID
	ServiceID       uuid.UUID
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Currency        *string `json:"currency,omitempty"`
	IsActive        bool    `json:"isActive"`
}

// CreateWorkstationRequest запрос на создание рабочего места
type CreateWorkstationRequest struct {
	SalonID    uuid.UUID
	Name       string `json:"name"`
	OrderIndex int    `json:"orderIndex"`
}

// Response модели

// ServiceResponse услуга в ответе API
type ServiceResponse struct {
	ID              string    `json:"id"`
	SalonID         string    `json:"salonId"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	Currency        string    `json:"currency"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// WorkstationResponse рабочее место в ответе API
type WorkstationResponse struct {
	ID         string    `json:"id"`
	SalonID    string    `json:"salonId"`
	Name       string    `json:"name"`
	OrderIndex int       `json:"orderIndex"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SalonInfoResponse краткая информация о салоне в каталоге
type SalonInfoResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Timezone string  `json:"timezone"`
	Currency string  `json:"currency"`
}

// CatalogResponse публичный каталог салона: активные услуги и рабочие места
type CatalogResponse struct {
	Salon        SalonInfoResponse     `json:"salon"`
	Services     []ServiceResponse     `json:"services"`
	Workstations []WorkstationResponse `json:"workstations"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель услуги в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID.String(),
		SalonID:         s.SalonID.String(),
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Currency:        s.Currency,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainWorkstation конвертирует domain модель рабочего места в DTO
func FromDomainWorkstation(w *domain.Workstation) *WorkstationResponse {
	if w == nil {
		return nil
	}
	return &WorkstationResponse{
		ID:         w.ID.String(),
		SalonID:    w.SalonID.String(),
		Name:       w.Name,
		OrderIndex: w.OrderIndex,
		CreatedAt:  w.CreatedAt,
	}
}

// FromDomainCatalog собирает публичный каталог салона
func FromDomainCatalog(salon *domain.Salon, services []*domain.Service, workstations []*domain.Workstation) *CatalogResponse {
	resp := &CatalogResponse{
		Salon: SalonInfoResponse{
			ID:       salon.ID.String(),
			Name:     salon.Name,
			Email:    salon.Email,
			Phone:    salon.Phone,
			Timezone: salon.Timezone,
			Currency: salon.Currency,
		},
		Services:     make([]ServiceResponse, 0, len(services)),
		Workstations: make([]WorkstationResponse, 0, len(workstations)),
	}

	for _, service := range services {
		if serviceResp := FromDomainService(service); serviceResp != nil {
			resp.Services = append(resp.Services, *serviceResp)
		}
	}
	for _, workstation := range workstations {
		if workstationResp := FromDomainWorkstation(workstation); workstationResp != nil {
			resp.Workstations = append(resp.Workstations, *workstationResp)
		}
	}

	return resp
}
