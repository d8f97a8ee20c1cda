package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/pkg/types"
)

// Request модель запроса на обновление записи.
// nil-поле означает "оставить без изменений".
type Request struct {
	ID uuid.UUID // ID записи

	WorkstationID *uuid.UUID        // Перенос на другое рабочее место
	ServiceID     *uuid.UUID        // Смена услуги (обновляет длительность и цену)
	Date          *time.Time        // Перенос на другую дату
	StartTime     *types.TimeString // Перенос на другое время

	ClientName  *string // Имя клиента
	ClientPhone *string // Телефон клиента
	ClientEmail *string // Email клиента
	Notes       *string // Заметки

	Status             *string // Новый статус (completed, cancelled, no_show)
	CancellationReason *string // Причина отмены (со статусом cancelled)
}

// Response модель ответа с обновленной записью
type Response struct {
	ID              uuid.UUID        // ID записи
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

	CancellationReason *string    // Причина отмены
	CancelledAt        *time.Time // Время отмены

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
