package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReservationStatus(t *testing.T) {
	for _, valid := range []string{"confirmed", "cancelled", "no_show"} {
		status, ok := ParseReservationStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, ReservationStatus(valid), status)
	}

	_, ok := ParseReservationStatus("pending")
	assert.False(t, ok)

	_, ok = ParseReservationStatus("")
	assert.False(t, ok)
}

func TestReservationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusCancelled, StatusConfirmed, true},
		{StatusNoShow, StatusConfirmed, true},
		// Между неактивными статусами переходов нет
		{StatusCancelled, StatusNoShow, false},
		{StatusNoShow, StatusCancelled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestReservationStatus_IsRestore(t *testing.T) {
	assert.True(t, StatusCancelled.IsRestore(StatusConfirmed))
	assert.True(t, StatusNoShow.IsRestore(StatusConfirmed))
	assert.False(t, StatusConfirmed.IsRestore(StatusCancelled))
	assert.False(t, StatusConfirmed.IsRestore(StatusConfirmed))
}

func TestReservation_Occupies(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusConfirmed}).Occupies())
	assert.False(t, (&Reservation{Status: StatusCancelled}).Occupies())
	assert.False(t, (&Reservation{Status: StatusNoShow}).Occupies())
}

func TestReservation_ConflictsWith(t *testing.T) {
	reservation := &Reservation{
		Status:    StatusConfirmed,
		StartTime: "12:00",
		EndTime:   "13:30",
	}

	// Пересечение интервалов
	assert.True(t, reservation.ConflictsWith("12:30", "13:00"))
	assert.True(t, reservation.ConflictsWith("11:00", "12:30"))
	assert.True(t, reservation.ConflictsWith("13:00", "14:00"))

	// Полуоткрытые интервалы: касание границ не конфликт
	assert.False(t, reservation.ConflictsWith("13:30", "14:30"))
	assert.False(t, reservation.ConflictsWith("11:00", "12:00"))

	// Отмененное бронирование не занимает время
	cancelled := &Reservation{Status: StatusCancelled, StartTime: "12:00", EndTime: "13:30"}
	assert.False(t, cancelled.ConflictsWith("12:30", "13:00"))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps("10:00", "11:00", "10:30", "11:30"))
	assert.True(t, Overlaps("10:30", "11:30", "10:00", "11:00"))
	assert.True(t, Overlaps("10:00", "12:00", "10:30", "11:00"))
	assert.False(t, Overlaps("10:00", "11:00", "11:00", "12:00"))
	assert.False(t, Overlaps("11:00", "12:00", "10:00", "11:00"))
}

func TestIsBlocked(t *testing.T) {
	reservations := []*Reservation{
		{Status: StatusConfirmed, StartTime: "12:00", EndTime: "13:00"},
		{Status: StatusCancelled, StartTime: "15:00", EndTime: "16:00"},
	}
	windows := []ClosedWindow{{Start: "17:00", End: "18:00"}}

	t.Run("free interval", func(t *testing.T) {
		blocked, err := IsBlocked("10:00", 60, reservations, windows)
		assert.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("conflicts with confirmed reservation", func(t *testing.T) {
		blocked, err := IsBlocked("12:30", 60, reservations, windows)
		assert.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("cancelled reservation does not block", func(t *testing.T) {
		blocked, err := IsBlocked("15:00", 60, reservations, windows)
		assert.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("conflicts with closed window", func(t *testing.T) {
		blocked, err := IsBlocked("16:30", 60, reservations, windows)
		assert.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("touching a window boundary is allowed", func(t *testing.T) {
		blocked, err := IsBlocked("16:00", 60, reservations, windows)
		assert.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("interval past midnight is an error", func(t *testing.T) {
		_, err := IsBlocked("23:30", 60, reservations, windows)
		assert.Error(t, err)
	})
}
