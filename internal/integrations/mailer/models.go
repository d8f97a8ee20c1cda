package mailer

import (
	"github.com/salonhub/salon-booking-service/pkg/types"
)

// AppointmentEmail данные для письма о записи
type AppointmentEmail struct {
	RecipientEmail string
	RecipientName  string
	SalonName      string
	ServiceName    string
	Date           string // YYYY-MM-DD
	StartTime      types.TimeString
	DurationMin    int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
