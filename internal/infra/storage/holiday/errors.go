package holiday

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда закрытие не найдено
	ErrHolidayNotFound = errors.New("holiday.repository: holiday override not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("holiday.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("holiday.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("holiday.repository: failed to scan row")
)
