package change_reservation_status

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("change_reservation_status: reservation not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("change_reservation_status: access denied")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("change_reservation_status: invalid target status")

	// ErrInvalidTransition возвращается при переходе, отсутствующем в таблице переходов
	ErrInvalidTransition = errors.New("change_reservation_status: transition not allowed")

	// ErrSlotConflict возвращается при восстановлении, когда исходный интервал
	// уже занят другим подтвержденным бронированием или закрытием
	ErrSlotConflict = errors.New("change_reservation_status: original slot is no longer free")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("change_reservation_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_reservation_status: internal error")
)
