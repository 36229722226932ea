package catalogservice

// Service модель услуги из каталога.
// Каталог - внешний сервис: здесь он доступен только на чтение.
type Service struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	DurationMinutes       int    `json:"duration_minutes"`
	LastBookableStartTime string `json:"last_bookable_start_time"` // "HH:MM"
	Active                bool   `json:"active"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
