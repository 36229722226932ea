package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// ListWithFilter получает бронирования по фильтру (для проверки занятости)
	ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// HolidayRepository интерфейс репозитория внеплановых закрытий
type HolidayRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]domain.HolidayOverride, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
