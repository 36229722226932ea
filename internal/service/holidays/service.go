package holidays

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	holidayRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-ReservationService/internal/service/holidays/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service сервис для управления переопределениями календаря
type Service struct {
	holidayRepo HolidayRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса переопределений
func NewService(holidayRepo HolidayRepository, logger Logger) *Service {
	return &Service{
		holidayRepo: holidayRepo,
		logger:      logger,
	}
}

// Create создает новое переопределение календаря
// Без startTime и endTime день закрывается полностью,
// с обоими полями закрывается только указанное окно
func (s *Service) Create(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("Create: creating holiday override for date=%s", req.Date.Format(domain.DateFormat))

	override, err := s.toDomainOverride(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.holidayRepo.Create(ctx, override)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created holiday override id=%d", created.ID)
	return models.FromDomainOverride(created), nil
}

// List получает переопределения календаря за период
// Без границ возвращает все переопределения
func (s *Service) List(ctx context.Context, req *models.ListHolidaysRequest) (*models.HolidayListResponse, error) {
	s.logger.Info("List: fetching holiday overrides, from=%v, to=%v", formatDate(req.From), formatDate(req.To))

	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		s.logger.Warn("List: invalid range, to is before from")
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	overrides, err := s.holidayRepo.ListByRange(ctx, req.From, req.To)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d holiday overrides", len(overrides))
	return models.FromDomainOverrideList(overrides), nil
}

// Delete удаляет переопределение календаря по ID
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting holiday override id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("Delete: holiday override id=%d not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("Delete: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted holiday override id=%d", id)
	return nil
}

// toDomainOverride валидирует запрос и собирает domain модель
func (s *Service) toDomainOverride(req *models.CreateHolidayRequest) (*domain.HolidayOverride, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Частичное окно задаётся только обоими временами сразу
	if (req.StartTime == nil) != (req.EndTime == nil) {
		return nil, fmt.Errorf("%w: startTime and endTime must be provided together", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	override := &domain.HolidayOverride{
		Date:   req.Date,
		Reason: req.Reason,
	}

	if req.StartTime != nil {
		start, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		end, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
		}
		override.StartTime = &start
		override.EndTime = &end
	}

	return override, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "<nil>"
	}
	return t.Format(domain.DateFormat)
}
