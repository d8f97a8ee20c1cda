package scheduling

import (
	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
	"github.com/salonhub/salon-booking-service/pkg/types"
)

// Candidate описывает проверяемый интервал записи.
type Candidate struct {
	WorkstationID   uuid.UUID
	StartTime       types.TimeString
	DurationMinutes int
}

// Conflict описывает найденное пересечение.
type Conflict struct {
	// AppointmentID — запись, с которой пересёкся кандидат.
	AppointmentID uuid.UUID
}

// CheckCollision проверяет кандидата на пересечение с существующими
// записями того же рабочего места. Возвращает nil, если интервал
// свободен, иначе — первый найденный конфликт в порядке обхода existing.
//
// Пропускаются:
//   - записи других рабочих мест (места не конфликтуют между собой);
//   - запись с идентификатором excludeID (повторная валидация при
//     редактировании не должна конфликтовать сама с собой);
//   - записи, не занимающие место (отменённые — отмена освобождает слот).
//
// Интервалы полуоткрытые: [start, end) пересекаются тогда и только
// тогда, когда start < otherEnd && otherStart < end. Записи "впритык"
// (end одного == start другого) не конфликтуют.
func CheckCollision(
	candidate Candidate,
	existing []*domain.Appointment,
	excludeID *uuid.UUID,
) *Conflict {
	candidateEnd, err := candidate.StartTime.AddMinutes(candidate.DurationMinutes)
	if err != nil {
		// Интервал выходит за пределы суток — пересечений быть не может,
		// такая запись отбрасывается валидацией раньше.
		return nil
	}

	for _, other := range existing {
		if other.WorkstationID != candidate.WorkstationID {
			continue
		}
		if excludeID != nil && other.ID == *excludeID {
			continue
		}
		if !other.OccupiesSlot() {
			continue
		}

		if candidate.StartTime.IsBefore(other.EndTime()) && other.StartTime.IsBefore(candidateEnd) {
			return &Conflict{AppointmentID: other.ID}
		}
	}

	return nil
}
