package change_reservation_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case смены статуса бронирования.
// Отмена и no-show не чувствительны к гонкам и идемпотентны.
// Восстановление возвращает бронирование в занятость, поэтому выполняется
// в сериализуемой транзакции с повторной проверкой конфликтов: освобожденный
// слот могли успеть занять.
type UseCase struct {
	reservationRepo ReservationRepository
	holidayRepo     HolidayRepository
	txManager       TransactionManager
	calendar        domain.BusinessCalendar
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	holidayRepo HolidayRepository,
	txManager TransactionManager,
	calendar domain.BusinessCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		holidayRepo:     holidayRepo,
		txManager:       txManager,
		calendar:        calendar,
		logger:          logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeReservationStatus: reservation=%d, target=%s, user=%d",
		req.ReservationID, req.TargetStatus, req.UserID)

	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	target, ok := domain.ParseReservationStatus(req.TargetStatus)
	if !ok {
		uc.logger.Warn("ChangeReservationStatus: unknown status %q", req.TargetStatus)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.TargetStatus)
	}

	reservation, err := uc.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	// Менять статус может только владелец бронирования
	if reservation.UserID != req.UserID {
		uc.logger.Warn("ChangeReservationStatus: access denied for user=%d to reservation id=%d",
			req.UserID, reservation.ID)
		return nil, ErrAccessDenied
	}

	// Переход в текущий статус - идемпотентный no-op
	if reservation.Status == target {
		uc.logger.Info("ChangeReservationStatus: reservation id=%d already %s", reservation.ID, target)
		return fromDomain(reservation), nil
	}

	if !reservation.Status.CanTransitionTo(target) {
		uc.logger.Warn("ChangeReservationStatus: transition %s -> %s not allowed for id=%d",
			reservation.Status, target, reservation.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, target)
	}

	if reservation.Status.IsRestore(target) {
		if err := uc.restore(ctx, reservation); err != nil {
			return nil, err
		}
	} else {
		// Выход из занятости: конфликтов создать не может
		if err := uc.updateStatus(ctx, reservation.ID, target); err != nil {
			return nil, err
		}
	}

	// Смена статуса не трогает интервал и позиции
	reservation.Status = target

	uc.logger.Info("ChangeReservationStatus: reservation id=%d is now %s", reservation.ID, target)
	return fromDomain(reservation), nil
}

// restore возвращает бронирование в статус confirmed, предварительно убедившись
// в той же транзакции, что исходный интервал все еще свободен
func (uc *UseCase) restore(ctx context.Context, reservation *domain.Reservation) error {
	return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Текущая занятость даты с блокировкой строк
		others, err := uc.reservationRepo.ListWithFilter(txCtx, domain.ReservationsFilter{
			Date: ptr.Ptr(reservation.Date),
		})
		if err != nil {
			uc.logger.Error("ChangeReservationStatus: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// Само восстанавливаемое бронирование из проверки исключаем
		occupying := make([]*domain.Reservation, 0, len(others))
		for _, other := range others {
			if other.ID != reservation.ID {
				occupying = append(occupying, other)
			}
		}

		overrides, err := uc.holidayRepo.ListByDate(txCtx, reservation.Date)
		if err != nil {
			uc.logger.Error("ChangeReservationStatus: failed to get holiday overrides: %v", err)
			return fmt.Errorf("%w: failed to get holiday overrides: %v", ErrInternal, err)
		}

		// Закрытие, появившееся после исходного бронирования, тоже занимает интервал
		policy := uc.calendar.Resolve(reservation.Date, overrides)
		if policy.Closed {
			uc.logger.Warn("ChangeReservationStatus: date %s is now closed, cannot restore id=%d",
				reservation.Date.Format(domain.DateFormat), reservation.ID)
			return ErrSlotConflict
		}

		blocked, err := domain.IsBlocked(reservation.StartTime, reservation.DurationMinutes, occupying, policy.Windows)
		if err != nil {
			uc.logger.Error("ChangeReservationStatus: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if blocked {
			uc.logger.Warn("ChangeReservationStatus: interval %s-%s on %s is occupied, cannot restore id=%d",
				reservation.StartTime, reservation.EndTime,
				reservation.Date.Format(domain.DateFormat), reservation.ID)
			return ErrSlotConflict
		}

		return uc.updateStatus(txCtx, reservation.ID, domain.StatusConfirmed)
	})
}

func (uc *UseCase) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ChangeReservationStatus: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ChangeReservationStatus: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	return reservation, nil
}

func (uc *UseCase) updateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	if err := uc.reservationRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		uc.logger.Error("ChangeReservationStatus: failed to update status id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}
	return nil
}
