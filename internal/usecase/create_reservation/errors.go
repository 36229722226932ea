package create_reservation

import "errors"

var (
	// ErrInvalidSelection возвращается при пустом наборе услуг или
	// неизвестной/неактивной услуге
	ErrInvalidSelection = errors.New("create_reservation: invalid service selection")

	// ErrClosedDay возвращается, когда дата приходится на недельный выходной
	// или закрыта на весь день
	ErrClosedDay = errors.New("create_reservation: salon is closed on this date")

	// ErrCutoffExceeded возвращается, когда время начала позже binding cutoff
	// выбранных услуг
	ErrCutoffExceeded = errors.New("create_reservation: start time is after booking cutoff")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим
	// подтвержденным бронированием или окном частичного закрытия
	ErrSlotConflict = errors.New("create_reservation: slot conflicts with existing reservation")

	// ErrInvalidTimeSlot возвращается, когда время начала вне рабочих часов
	// или не кратно шагу сетки слотов
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
