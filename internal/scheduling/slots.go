// Package scheduling содержит ядро бронирования: генерацию слотов по
// недельному расписанию и проверку пересечения интервалов на
// рабочем месте. Все функции чистые — никакого I/O, вся информация
// передаётся аргументами.
package scheduling

import (
	"time"

	"github.com/salonhub/salon-booking-service/internal/domain"
	"github.com/salonhub/salon-booking-service/pkg/types"
)

// WeekdayIndex переводит time.Weekday (0=воскресенье) в принятую в
// расписании нумерацию 0=понедельник..6=воскресенье.
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// GenerateDailySlots вычисляет упорядоченный список времён начала слотов
// для салона на указанную дату.
//
// Правила:
//   - дата из closedDays полностью закрывает день, независимо от
//     недельного расписания;
//   - отсутствие правила для дня недели, флаг IsClosed или отсутствие
//     времени открытия/закрытия дают пустой список;
//   - open >= close — некорректное окно, пустой список;
//   - иначе слоты идут от OpenTime с шагом 30 минут, строго до CloseTime.
//     Последний слот не обязан целиком помещаться до закрытия —
//     проверяется только его начало, в соответствии с полуоткрытой
//     моделью интервалов [start, end).
//
// Время открытия не выравнивается по получасу: окно 09:15–11:00 даёт
// слоты 09:15, 09:45, 10:15, 10:45.
//
// Функция никогда не возвращает ошибку: некорректные входные данные
// (например, weekday вне [0,6] или нечитаемое время в правиле)
// приводят к пустому списку.
func GenerateDailySlots(
	date time.Time,
	openingHours []domain.OpeningHourRule,
	closedDays []domain.ClosedDay,
) []types.TimeString {
	slots := make([]types.TimeString, 0)

	// Закрытый день перекрывает всё остальное.
	dateStr := date.Format(domain.DateFormat)
	for _, cd := range closedDays {
		if cd.Date.Format(domain.DateFormat) == dateStr {
			return slots
		}
	}

	// Ищем правило для дня недели (0=понедельник..6=воскресенье).
	// Отсутствующее правило означает закрытый день.
	weekday := WeekdayIndex(date)
	var rule *domain.OpeningHourRule
	for i := range openingHours {
		if openingHours[i].Weekday == weekday {
			rule = &openingHours[i]
			break
		}
	}

	if rule == nil || !rule.ProducesSlots() {
		return slots
	}

	open := *rule.OpenTime
	close := *rule.CloseTime
	if open.Validate() != nil || close.Validate() != nil {
		return slots
	}

	for cursor := open; cursor.IsBefore(close); {
		slots = append(slots, cursor)

		next, err := cursor.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			// Дошли до конца суток.
			break
		}
		cursor = next
	}

	return slots
}

// ContainsSlot проверяет, что start совпадает с одним из слотов.
// Используется при строгой валидации времени начала записи.
func ContainsSlot(slots []types.TimeString, start types.TimeString) bool {
	for _, s := range slots {
		if s.Equal(start) {
			return true
		}
	}
	return false
}
