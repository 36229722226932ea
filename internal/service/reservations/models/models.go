package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetUserReservationsRequest запрос на получение бронирований пользователя
type GetUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ListByDateRequest запрос на получение бронирований на дату
type ListByDateRequest struct {
	Date            time.Time `json:"date"`
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отменённые и no-show
}

// Response модели

// ReservationLineResponse позиция бронирования
type ReservationLineResponse struct {
	ServiceID       int64  `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	DurationMinutes int    `json:"durationMinutes"`
	OrderIndex      int    `json:"orderIndex"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64                     `json:"id"`
	UserID          int64                     `json:"userId"`
	Date            string                    `json:"date"`      // "2025-10-15"
	StartTime       string                    `json:"startTime"` // "10:00"
	EndTime         string                    `json:"endTime"`   // "11:30"
	DurationMinutes int                       `json:"durationMinutes"`
	Status          string                    `json:"status"`
	Lines           []ReservationLineResponse `json:"services"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	lines := make([]ReservationLineResponse, len(r.Lines))
	for i, line := range r.Lines {
		lines[i] = ReservationLineResponse{
			ServiceID:       line.ServiceID,
			ServiceName:     line.ServiceName,
			DurationMinutes: line.DurationMinutes,
			OrderIndex:      line.OrderIndex,
		}
	}

	return &ReservationResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		Lines:           lines,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		if r := FromDomainReservation(reservation); r != nil {
			resp.Reservations[i] = *r
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s, ok := domain.ParseReservationStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
