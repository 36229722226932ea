package update_reservation_status

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	changeStatus "github.com/m04kA/SMC-ReservationService/internal/usecase/change_reservation_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // confirmed | cancelled | no_show
}

// ReservationStatusResponse HTTP response model
type ReservationStatusResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response) *ReservationStatusResponse {
	return &ReservationStatusResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
