package create_appointment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_appointment: salon not found")

	// ErrWorkstationNotFound возвращается, когда рабочее место не найдено в салоне
	ErrWorkstationNotFound = errors.New("create_appointment: workstation not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга выключена из каталога
	ErrServiceInactive = errors.New("create_appointment: service is not active")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrSlotNotAvailable возвращается, когда время начала не входит
	// в список доступных слотов на эту дату (салон закрыт или время вне сетки)
	ErrSlotNotAvailable = errors.New("create_appointment: start time is not an available slot")

	// ErrTimeConflict возвращается, когда интервал записи пересекается
	// с существующей записью на том же рабочем месте
	ErrTimeConflict = errors.New("create_appointment: time conflict with an existing appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
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
