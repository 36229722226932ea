package get_availability

import (
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

// SlotResponse слот в HTTP ответе
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:30"
	Available bool   `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date                 string         `json:"date"` // "2025-10-15"
	DayOfWeek            string         `json:"dayOfWeek"`
	IsClosed             bool           `json:"isClosed"`
	TotalDurationMinutes int            `json:"totalDurationMinutes"`
	Slots                []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из query параметров
func ToUseCaseRequest(dateStr, serviceIDsStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	// serviceIds передаются списком через запятую: "1,5,12"
	parts := strings.Split(serviceIDsStr, ",")
	serviceIDs := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		serviceIDs = append(serviceIDs, id)
	}

	return &getAvailability.Request{
		Date:       date,
		ServiceIDs: serviceIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
		}
	}

	return &AvailabilityResponse{
		Date:                 resp.Date.Format(domain.DateFormat),
		DayOfWeek:            resp.DayOfWeek,
		IsClosed:             resp.IsClosed,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		Slots:                slots,
	}
}
