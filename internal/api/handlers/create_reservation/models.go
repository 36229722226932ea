package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	ServiceIDs []int64 `json:"serviceIds"`
}

// LineResponse позиция бронирования в HTTP ответе
type LineResponse struct {
	ServiceID       int64  `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	DurationMinutes int    `json:"durationMinutes"`
	OrderIndex      int    `json:"orderIndex"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"userId"`
	Date            string         `json:"date"`
	StartTime       string         `json:"startTime"`
	EndTime         string         `json:"endTime"`
	DurationMinutes int            `json:"durationMinutes"`
	Status          string         `json:"status"`
	Lines           []LineResponse `json:"services"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:     userID,
		Date:       date,
		StartTime:  startTime,
		ServiceIDs: r.ServiceIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	lines := make([]LineResponse, len(resp.Lines))
	for i, line := range resp.Lines {
		lines[i] = LineResponse{
			ServiceID:       line.ServiceID,
			ServiceName:     line.ServiceName,
			DurationMinutes: line.DurationMinutes,
			OrderIndex:      line.OrderIndex,
		}
	}

	return &ReservationResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Lines:           lines,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
