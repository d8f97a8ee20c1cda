package update_appointment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrWorkstationNotFound возвращается, когда рабочее место не найдено в салоне
	ErrWorkstationNotFound = errors.New("update_appointment: workstation not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("update_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга выключена из каталога
	ErrServiceInactive = errors.New("update_appointment: service is not active")

	// ErrInvalidDate возвращается при некорректной дате переноса
	ErrInvalidDate = errors.New("update_appointment: invalid appointment date")

	// ErrSlotNotAvailable возвращается, когда новое время начала не входит
	// в список доступных слотов на эту дату
	ErrSlotNotAvailable = errors.New("update_appointment: start time is not an available slot")

	// ErrTimeConflict возвращается, когда новый интервал пересекается
	// с другой записью на том же рабочем месте
	ErrTimeConflict = errors.New("update_appointment: time conflict with an existing appointment")

	// ErrCannotReschedule возвращается при попытке перенести запись
	// в терминальном статусе
	ErrCannotReschedule = errors.New("update_appointment: appointment cannot be rescheduled")

	// ErrInvalidStatusTransition возвращается при недопустимой смене статуса
	ErrInvalidStatusTransition = errors.New("update_appointment: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)

// ConflictError ошибка пересечения интервалов. Несёт ID мешающей записи,
// который уходит клиенту в теле 409 ответа.
type ConflictError struct {
	ConflictingID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: appointment id=%s", ErrTimeConflict, e.ConflictingID)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrTimeConflict)
func (e *ConflictError) Is(target error) bool {
	return target == ErrTimeConflict
}
