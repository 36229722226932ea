package change_reservation_status

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на смену статуса бронирования
type Request struct {
	UserID        int64  // Инициатор, должен быть владельцем бронирования
	ReservationID int64  // ID бронирования
	TargetStatus  string // Целевой статус: confirmed | cancelled | no_show
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64
	UserID          int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// fromDomain конвертирует доменное бронирование в ответ use case
func fromDomain(reservation *domain.Reservation) *Response {
	return &Response{
		ID:              reservation.ID,
		UserID:          reservation.UserID,
		Date:            reservation.Date,
		StartTime:       reservation.StartTime,
		EndTime:         reservation.EndTime,
		DurationMinutes: reservation.DurationMinutes,
		Status:          string(reservation.Status),
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}
}
