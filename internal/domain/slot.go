package domain

import (
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Slot is a candidate reservation start time within business hours
type Slot struct {
	StartTime types.TimeString
	Available bool
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not count as overlap:
// a reservation ending at 12:00 does not conflict with one starting at 12:00.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// IsBlocked tests a candidate interval against all reservations on the date
// and the day's partial closure windows. Cancelled and no-show reservations
// are excluded from the occupancy set by ConflictsWith.
func IsBlocked(start types.TimeString, durationMinutes int, reservations []*Reservation, windows []ClosedWindow) (bool, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false, err
	}

	for _, window := range windows {
		if Overlaps(start, end, window.Start, window.End) {
			return true, nil
		}
	}

	for _, reservation := range reservations {
		if reservation.ConflictsWith(start, end) {
			return true, nil
		}
	}

	return false, nil
}
