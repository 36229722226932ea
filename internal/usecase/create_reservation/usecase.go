package create_reservation

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case создания бронирования.
// Рекомендательная проверка доступности (usecase get_availability) может
// устареть к моменту записи, поэтому проверка конфликта повторяется здесь,
// в той же сериализуемой транзакции, что и вставка. Проигравший гонку
// запрос получает ErrSlotConflict, частичных записей не остается.
type UseCase struct {
	reservationRepo ReservationRepository
	holidayRepo     HolidayRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	calendar        domain.BusinessCalendar
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	holidayRepo HolidayRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	calendar domain.BusinessCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		holidayRepo:     holidayRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		calendar:        calendar,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, date=%s, time=%s, services=%v",
		req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем услуги из каталога и агрегируем выбор.
	// Снимок каталога берется до транзакции: каталог внешний и в
	// транзакцию БД не входит.
	services, err := fetchSelectedServices(ctx, uc.catalogClient, req.ServiceIDs)
	if err != nil {
		uc.logger.Warn("CreateReservation: failed to fetch selection: %v", err)
		return nil, err
	}

	selection, err := domain.AggregateSelection(services)
	if err != nil {
		uc.logger.Warn("CreateReservation: failed to aggregate selection: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}

	// 3. Проверяем сетку и рабочие часы до транзакции - эти проверки
	// не зависят от состояния БД
	if err := validateStartTime(req.StartTime, selection.TotalDurationMinutes, uc.calendar); err != nil {
		uc.logger.Warn("CreateReservation: start time validation failed: %v", err)
		return nil, err
	}

	// 4. Cutoff: выбор ограничен самой строгой услугой, сравнение включительное
	if req.StartTime.IsAfter(selection.BindingCutoff) {
		uc.logger.Warn("CreateReservation: start=%s is after cutoff=%s", req.StartTime, selection.BindingCutoff)
		return nil, fmt.Errorf("%w: start=%s, cutoff=%s", ErrCutoffExceeded, req.StartTime, selection.BindingCutoff)
	}

	var result *domain.Reservation

	// 5. Проверка занятости и вставка - одна атомарная единица.
	// Сериализуемая изоляция + FOR UPDATE в ListWithFilter закрывают
	// гонку "оба увидели свободный слот".
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Политика дня: выходной или закрытие на весь день
		overrides, err := uc.holidayRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get holiday overrides: %v", err)
			return fmt.Errorf("%w: failed to get holiday overrides: %v", ErrInternal, err)
		}

		policy := uc.calendar.Resolve(req.Date, overrides)
		if policy.Closed {
			uc.logger.Warn("CreateReservation: salon is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrClosedDay
		}

		// 5.2. Текущее зафиксированное состояние занятости с блокировкой строк
		reservations, err := uc.reservationRepo.ListWithFilter(txCtx, domain.ReservationsFilter{
			Date: ptr.Ptr(req.Date),
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		blocked, err := domain.IsBlocked(req.StartTime, selection.TotalDurationMinutes, reservations, policy.Windows)
		if err != nil {
			uc.logger.Error("CreateReservation: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if blocked {
			uc.logger.Warn("CreateReservation: slot %s is blocked on %s",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotConflict
		}

		// 5.3. Собираем бронирование: endTime = startTime + суммарная
		// длительность, позиции в порядке выбора
		endTime, err := req.StartTime.AddMinutes(selection.TotalDurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
		}

		lines := make([]domain.ReservationLine, 0, len(selection.Services))
		for i, svc := range selection.Services {
			lines = append(lines, domain.ReservationLine{
				ServiceID:       svc.ID,
				ServiceName:     svc.Name,
				DurationMinutes: svc.DurationMinutes,
				OrderIndex:      i,
			})
		}

		reservation := &domain.Reservation{
			UserID:          req.UserID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: selection.TotalDurationMinutes,
			Status:          domain.StatusConfirmed,
			Lines:           lines,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d (%s-%s)",
		result.ID, result.StartTime, result.EndTime)

	return fromDomain(result), nil
}
