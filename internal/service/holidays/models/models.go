package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// CreateHolidayRequest запрос на создание переопределения календаря
// Если StartTime и EndTime не указаны, день закрывается полностью
type CreateHolidayRequest struct {
	Date      time.Time `json:"date"`
	StartTime *string   `json:"startTime,omitempty"` // "13:00"
	EndTime   *string   `json:"endTime,omitempty"`   // "15:00"
	Reason    *string   `json:"reason,omitempty"`
}

// ListHolidaysRequest запрос на получение переопределений за период
type ListHolidaysRequest struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Response модели

// HolidayResponse ответ с данными переопределения
type HolidayResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // "2025-10-15"
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	FullDay   bool      `json:"fullDay"`
	CreatedAt time.Time `json:"createdAt"`
}

// HolidayListResponse ответ со списком переопределений
type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// Методы конвертации

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.HolidayOverride) *HolidayResponse {
	if o == nil {
		return nil
	}

	resp := &HolidayResponse{
		ID:        o.ID,
		Date:      o.Date.Format(domain.DateFormat),
		Reason:    o.Reason,
		FullDay:   o.IsFullDay(),
		CreatedAt: o.CreatedAt,
	}

	if o.StartTime != nil {
		start := o.StartTime.String()
		resp.StartTime = &start
	}
	if o.EndTime != nil {
		end := o.EndTime.String()
		resp.EndTime = &end
	}

	return resp
}

// FromDomainOverrideList конвертирует список domain моделей в DTO
func FromDomainOverrideList(overrides []domain.HolidayOverride) *HolidayListResponse {
	resp := &HolidayListResponse{
		Holidays: make([]HolidayResponse, 0, len(overrides)),
	}

	for i := range overrides {
		if r := FromDomainOverride(&overrides[i]); r != nil {
			resp.Holidays = append(resp.Holidays, *r)
		}
	}

	return resp
}
