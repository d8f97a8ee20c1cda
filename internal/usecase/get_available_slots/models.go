package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса доступных слотов
type Request struct {
	SalonID uuid.UUID // ID салона
	Date    time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов.
// Закрытый день — пустой список, не ошибка.
type Response struct {
	Date  string   `json:"date"`  // "2025-10-15"
	Slots []string `json:"slots"` // ["09:00", "09:30", ...]
}
