package get_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// generateCandidateStarts генерирует сетку кандидатов времени начала:
// от открытия с фиксированным шагом, пока интервал целиком помещается
// до закрытия. Фильтрации по cutoff и занятости здесь нет - это только
// физически возможные времена начала.
func generateCandidateStarts(
	openTime, closeTime types.TimeString,
	totalDurationMinutes int,
	granularityMinutes int,
) ([]types.TimeString, error) {
	candidates := make([]types.TimeString, 0)
	current := openTime

	for {
		end, err := current.AddMinutes(totalDurationMinutes)
		if err != nil {
			// Интервал вышел за пределы суток - сетка закончилась
			break
		}
		if end.IsAfter(closeTime) {
			break
		}

		candidates = append(candidates, current)

		next, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return candidates, nil
}

// buildSlots вычисляет доступность каждого кандидата.
// Слот доступен, если его начало не позже binding cutoff (включительно)
// и интервал не пересекается ни с одним подтвержденным бронированием
// и ни с одним окном частичного закрытия.
func buildSlots(
	candidates []types.TimeString,
	selection *domain.ServiceSelection,
	reservations []*domain.Reservation,
	windows []domain.ClosedWindow,
) ([]Slot, error) {
	slots := make([]Slot, 0, len(candidates))

	for _, start := range candidates {
		available := !start.IsAfter(selection.BindingCutoff)

		if available {
			blocked, err := domain.IsBlocked(start, selection.TotalDurationMinutes, reservations, windows)
			if err != nil {
				return nil, err
			}
			available = !blocked
		}

		slots = append(slots, Slot{StartTime: start, Available: available})
	}

	return slots, nil
}
