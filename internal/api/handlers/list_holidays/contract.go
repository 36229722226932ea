package list_holidays

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/holidays/models"
)

type HolidayService interface {
	List(ctx context.Context, req *models.ListHolidaysRequest) (*models.HolidayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
