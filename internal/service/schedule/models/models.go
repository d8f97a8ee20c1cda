package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhub/salon-booking-service/internal/domain"
	"github.com/salonhub/salon-booking-service/pkg/types"
)

// Request модели

// OpeningHourRuleRequest правило работы на один день недели
type OpeningHourRuleRequest struct {
	Weekday   int     `json:"weekday"` // 0 = понедельник .. 6 = воскресенье
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
	IsClosed  bool    `json:"isClosed"`
}

// ReplaceScheduleRequest запрос на замену недельного расписания целиком
type ReplaceScheduleRequest struct {
	SalonID      uuid.UUID
	OpeningHours []OpeningHourRuleRequest `json:"openingHours"`
}

// AddClosedDayRequest запрос на добавление закрытой даты
type AddClosedDayRequest struct {
	SalonID uuid.UUID
	Date    string  `json:"date"` // "2025-12-25"
	Reason  *string `json:"reason,omitempty"`
}

// Response модели

// OpeningHourRuleResponse правило работы в ответе API
type OpeningHourRuleResponse struct {
	ID        string  `json:"id"`
	Weekday   int     `json:"weekday"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
	IsClosed  bool    `json:"isClosed"`
}

// ClosedDayResponse закрытая дата в ответе API
type ClosedDayResponse struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// WeeklyScheduleResponse недельное расписание с закрытыми датами
type WeeklyScheduleResponse struct {
	OpeningHours []OpeningHourRuleResponse `json:"openingHours"`
	ClosedDays   []ClosedDayResponse       `json:"closedDays"`
}

// Методы конвертации

// ToDomainRules конвертирует правила запроса в domain модели
func (r *ReplaceScheduleRequest) ToDomainRules() []domain.OpeningHourRule {
	rules := make([]domain.OpeningHourRule, 0, len(r.OpeningHours))
	for _, rule := range r.OpeningHours {
		domainRule := domain.OpeningHourRule{
			SalonID:  r.SalonID,
			Weekday:  rule.Weekday,
			IsClosed: rule.IsClosed,
		}
		if rule.OpenTime != nil {
			openTime := types.TimeString(*rule.OpenTime)
			domainRule.OpenTime = &openTime
		}
		if rule.CloseTime != nil {
			closeTime := types.TimeString(*rule.CloseTime)
			domainRule.CloseTime = &closeTime
		}
		rules = append(rules, domainRule)
	}
	return rules
}

// FromDomainSchedule конвертирует недельное расписание в DTO
func FromDomainSchedule(schedule *domain.WeeklySchedule) *WeeklyScheduleResponse {
	resp := &WeeklyScheduleResponse{
		OpeningHours: make([]OpeningHourRuleResponse, 0, len(schedule.OpeningHours)),
		ClosedDays:   make([]ClosedDayResponse, 0, len(schedule.ClosedDays)),
	}

	for _, rule := range schedule.OpeningHours {
		ruleResp := OpeningHourRuleResponse{
			ID:       rule.ID.String(),
			Weekday:  rule.Weekday,
			IsClosed: rule.IsClosed,
		}
		if rule.OpenTime != nil {
			openTime := rule.OpenTime.String()
			ruleResp.OpenTime = &openTime
		}
		if rule.CloseTime != nil {
			closeTime := rule.CloseTime.String()
			ruleResp.CloseTime = &closeTime
		}
		resp.OpeningHours = append(resp.OpeningHours, ruleResp)
	}

	for _, day := range schedule.ClosedDays {
		resp.ClosedDays = append(resp.ClosedDays, FromDomainClosedDay(&day))
	}

	return resp
}

// FromDomainClosedDay конвертирует закрытую дату в DTO
func FromDomainClosedDay(day *domain.ClosedDay) ClosedDayResponse {
	return ClosedDayResponse{
		ID:     day.ID.String(),
		Date:   day.Date.Format(domain.DateFormat),
		Reason: day.Reason,
	}
}

// ParseDate разбирает дату формата YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	return time.Parse(domain.DateFormat, value)
}
