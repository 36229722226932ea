package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

// ParseReservationStatus converts a caller-supplied string into a known status.
// Returns false for anything outside the closed enum.
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusConfirmed, StatusCancelled, StatusNoShow:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// IsValid reports whether the status belongs to the closed enum
func (s ReservationStatus) IsValid() bool {
	_, ok := ParseReservationStatus(string(s))
	return ok
}

// allowedTransitions таблица переходов статусов.
// Переходы в самого себя обрабатываются вызывающим кодом как идемпотентные no-op.
var allowedTransitions = map[ReservationStatus]map[ReservationStatus]bool{
	StatusConfirmed: {StatusCancelled: true, StatusNoShow: true},
	StatusCancelled: {StatusConfirmed: true},
	StatusNoShow:    {StatusConfirmed: true},
}

// CanTransitionTo reports whether the transition s -> target is listed
// in the transition table. Self transitions are not part of the table.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	return allowedTransitions[s][target]
}

// IsRestore reports whether the transition s -> target returns a reservation
// to the occupancy set and therefore requires a conflict re-check.
func (s ReservationStatus) IsRestore(target ReservationStatus) bool {
	return s != StatusConfirmed && target == StatusConfirmed
}

// Reservation represents a confirmed time interval on a date with the
// ordered list of services performed back-to-back within it
type Reservation struct {
	ID              int64
	UserID          int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString // StartTime + суммарная длительность всех позиций
	DurationMinutes int
	Status          ReservationStatus
	Lines           []ReservationLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReservationLine is one service within a reservation, in execution order.
// Lines are created atomically with the reservation and are immutable.
type ReservationLine struct {
	ID              int64
	ReservationID   int64
	ServiceID       int64
	ServiceName     string
	DurationMinutes int
	OrderIndex      int
}

// Occupies reports whether the reservation blocks time in the schedule.
// Only confirmed reservations belong to the occupancy set.
func (r *Reservation) Occupies() bool {
	return r.Status == StatusConfirmed
}

// ConflictsWith reports whether the half-open interval [start, end) overlaps
// this reservation's interval, provided the reservation occupies its slot
func (r *Reservation) ConflictsWith(start, end types.TimeString) bool {
	return r.Occupies() && Overlaps(start, end, r.StartTime, r.EndTime)
}

// LinesDuration returns the total duration of all lines in minutes
func (r *Reservation) LinesDuration() int {
	total := 0
	for _, line := range r.Lines {
		total += line.DurationMinutes
	}
	return total
}

// ReservationsFilter фильтр выборки бронирований
type ReservationsFilter struct {
	Date            *time.Time         // Конкретная дата (опционально)
	UserID          *int64             // Фильтр по пользователю (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и no-show
}
