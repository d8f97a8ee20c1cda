package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	SalonID       uuid.UUID        // ID салона
	WorkstationID uuid.UUID        // ID рабочего места
	ServiceID     uuid.UUID        // ID услуги из каталога
	Date          time.Time        // Дата записи (без времени)
	StartTime     types.TimeString // Время начала слота (например, "10:00")
	ClientName    string           // Имя клиента
	ClientPhone   *string          // Телефон клиента (опционально)
	ClientEmail   *string          // Email клиента (опционально)
	Notes         *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              uuid.UUID        // ID созданной записи
	SalonID         uuid.UUID        // ID салона
	WorkstationID   uuid.UUID        // ID рабочего места
	ServiceID       *uuid.UUID       // ID услуги
	Date            time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи

	ClientName  string  // Имя клиента
	ClientPhone *string // Телефон клиента
	ClientEmail *string // Email клиента
	Notes       *string // Заметки

	// Денормализованные данные услуги на момент записи
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
