package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 10
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 60
	MaxReasonLength           = 500
	MaxServicesPerReservation = 10
)

// InactiveStatuses статусы, при которых бронирование не занимает время
// в расписании. Используется при проверке конфликтов.
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusNoShow,
}
