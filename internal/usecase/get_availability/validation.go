package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	catalogClient "github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidSelection)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerReservation {
		return fmt.Errorf("%w: too many services selected", ErrInvalidSelection)
	}

	seen := make(map[int64]bool, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidSelection)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate serviceID %d", ErrInvalidSelection, id)
		}
		seen[id] = true
	}

	return nil
}

// fetchSelectedServices загружает выбранные услуги из каталога и конвертирует
// их в доменный снимок. Неизвестная или неактивная услуга делает весь выбор
// некорректным.
func fetchSelectedServices(
	ctx context.Context,
	client CatalogServiceClient,
	serviceIDs []int64,
) ([]domain.SelectedService, error) {
	selected := make([]domain.SelectedService, 0, len(serviceIDs))

	for _, id := range serviceIDs {
		service, err := client.GetService(ctx, id)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				return nil, fmt.Errorf("%w: unknown service id=%d", ErrInvalidSelection, id)
			}
			return nil, fmt.Errorf("%w: failed to get service id=%d: %v", ErrInternal, id, err)
		}

		if !service.Active {
			return nil, fmt.Errorf("%w: service id=%d is inactive", ErrInvalidSelection, id)
		}

		cutoff, err := types.NewTimeStringFromString(service.LastBookableStartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: service id=%d has invalid cutoff: %v", ErrInternal, id, err)
		}

		selected = append(selected, domain.SelectedService{
			ID:                service.ID,
			Name:              service.Name,
			DurationMinutes:   service.DurationMinutes,
			LastBookableStart: cutoff,
		})
	}

	return selected, nil
}
