package create_holiday

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/holidays/models"
)

// CreateHolidayRequest HTTP request model
// Без startTime и endTime день закрывается полностью
type CreateHolidayRequest struct {
	Date      string  `json:"date"`                // "2025-10-15"
	StartTime *string `json:"startTime,omitempty"` // "13:00"
	EndTime   *string `json:"endTime,omitempty"`   // "15:00"
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateHolidayRequest) ToServiceRequest() (*models.CreateHolidayRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateHolidayRequest{
		Date:      date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Reason:    r.Reason,
	}, nil
}
