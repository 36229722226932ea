package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	Date       time.Time // Дата, на которую запрашивается доступность
	ServiceIDs []int64   // Выбранные услуги (порядок сохраняется)
}

// Response модель ответа со списком слотов
type Response struct {
	Date                 time.Time // Дата запроса
	DayOfWeek            string    // День недели
	IsClosed             bool      // Закрыт ли салон в эту дату целиком
	TotalDurationMinutes int       // Суммарная длительность выбранных услуг
	Slots                []Slot    // Слоты в хронологическом порядке
}

// Slot кандидат времени начала с флагом доступности
type Slot struct {
	StartTime types.TimeString
	Available bool
}
