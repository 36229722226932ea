package get_availability

import "errors"

var (
	// ErrInvalidSelection возвращается при пустом наборе услуг или
	// неизвестной/неактивной услуге
	ErrInvalidSelection = errors.New("get_availability: invalid service selection")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
