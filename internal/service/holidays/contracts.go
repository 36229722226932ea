package holidays

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// HolidayRepository интерфейс репозитория переопределений календаря
type HolidayRepository interface {
	Create(ctx context.Context, override *domain.HolidayOverride) (*domain.HolidayOverride, error)
	ListByRange(ctx context.Context, from, to *time.Time) ([]domain.HolidayOverride, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
