package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case получения доступных слотов на дату.
// Результат - снимок-рекомендация: к моменту создания бронирования
// занятость может измениться, поэтому при записи проверка повторяется
// в транзакции (см. usecase create_reservation).
type UseCase struct {
	reservationRepo ReservationRepository
	holidayRepo     HolidayRepository
	catalogClient   CatalogServiceClient
	calendar        domain.BusinessCalendar
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	holidayRepo HolidayRepository,
	catalogClient CatalogServiceClient,
	calendar domain.BusinessCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		holidayRepo:     holidayRepo,
		catalogClient:   catalogClient,
		calendar:        calendar,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s, services=%v",
		req.Date.Format(domain.DateFormat), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем политику дня: недельный выходной + внеплановые закрытия
	overrides, err := uc.holidayRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get holiday overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get holiday overrides: %v", ErrInternal, err)
	}

	policy := uc.calendar.Resolve(req.Date, overrides)
	if policy.Closed {
		uc.logger.Info("GetAvailability: salon is closed on %s", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			DayOfWeek: req.Date.Weekday().String(),
			IsClosed:  true,
			Slots:     []Slot{},
		}, nil
	}

	// 3. Загружаем выбранные услуги и агрегируем длительность и cutoff
	services, err := fetchSelectedServices(ctx, uc.catalogClient, req.ServiceIDs)
	if err != nil {
		uc.logger.Warn("GetAvailability: failed to fetch selection: %v", err)
		return nil, err
	}

	selection, err := domain.AggregateSelection(services)
	if err != nil {
		uc.logger.Warn("GetAvailability: failed to aggregate selection: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	// 4. Генерируем сетку кандидатов в пределах рабочих часов
	candidates, err := generateCandidateStarts(
		uc.calendar.OpenTime,
		uc.calendar.CloseTime,
		selection.TotalDurationMinutes,
		uc.calendar.SlotGranularityMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	// 5. Получаем подтвержденные бронирования на дату (без блокировки -
	// результат рекомендательный)
	reservations, err := uc.reservationRepo.ListWithFilter(ctx, domain.ReservationsFilter{
		Date:   ptr.Ptr(req.Date),
		Status: ptr.Ptr(domain.StatusConfirmed),
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Вычисляем доступность каждого кандидата
	slots, err := buildSlots(candidates, selection, reservations, policy.Windows)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: generated %d slots for date=%s, totalDuration=%d",
		len(slots), req.Date.Format(domain.DateFormat), selection.TotalDurationMinutes)

	return &Response{
		Date:                 req.Date,
		DayOfWeek:            req.Date.Weekday().String(),
		IsClosed:             false,
		TotalDurationMinutes: selection.TotalDurationMinutes,
		Slots:                slots,
	}, nil
}
