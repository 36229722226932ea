package domain

import (
	"errors"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ErrEmptySelection возвращается при попытке агрегировать пустой набор услуг
var ErrEmptySelection = errors.New("domain: empty service selection")

// SelectedService is a snapshot of one catalog service at selection time
type SelectedService struct {
	ID                int64
	Name              string
	DurationMinutes   int
	LastBookableStart types.TimeString
}

// ServiceSelection is the aggregate of a multi-service selection: the total
// back-to-back duration and the binding booking cutoff. The selection is only
// as permissive as its most restrictive member.
type ServiceSelection struct {
	Services             []SelectedService
	TotalDurationMinutes int
	BindingCutoff        types.TimeString
}

// AggregateSelection sums the durations of the selected services and derives
// the binding cutoff as the minimum of their last-bookable start times.
// Pure function over the given catalog snapshot.
func AggregateSelection(services []SelectedService) (*ServiceSelection, error) {
	if len(services) == 0 {
		return nil, ErrEmptySelection
	}

	total := 0
	cutoff := services[0].LastBookableStart
	for _, svc := range services {
		total += svc.DurationMinutes
		if svc.LastBookableStart.IsBefore(cutoff) {
			cutoff = svc.LastBookableStart
		}
	}

	return &ServiceSelection{
		Services:             services,
		TotalDurationMinutes: total,
		BindingCutoff:        cutoff,
	}, nil
}
