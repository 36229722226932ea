package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64            // ID клиента
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала ("10:00")
	ServiceIDs []int64          // Услуги в порядке выполнения
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	UserID          int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	Lines           []Line
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Line позиция бронирования в ответе
type Line struct {
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	OrderIndex      int
}

// fromDomain конвертирует доменное бронирование в ответ use case
func fromDomain(reservation *domain.Reservation) *Response {
	lines := make([]Line, 0, len(reservation.Lines))
	for _, line := range reservation.Lines {
		lines = append(lines, Line{
			ServiceID:       line.ServiceID,
			ServiceName:     line.ServiceName,
			DurationMinutes: line.DurationMinutes,
			OrderIndex:      line.OrderIndex,
		})
	}

	return &Response{
		ID:              reservation.ID,
		UserID:          reservation.UserID,
		Date:            reservation.Date,
		StartTime:       reservation.StartTime,
		EndTime:         reservation.EndTime,
		DurationMinutes: reservation.DurationMinutes,
		Status:          string(reservation.Status),
		Lines:           lines,
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}
}
