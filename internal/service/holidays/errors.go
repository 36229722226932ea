package holidays

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда переопределение не найдено
	ErrHolidayNotFound = errors.New("holiday override not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
