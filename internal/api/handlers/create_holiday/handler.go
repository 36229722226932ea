package create_holiday

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/holidays"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidOverride    = "некорректное переопределение календаря"
)

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/holidays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /holidays - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, holidays.ErrInvalidInput):
			h.logger.Warn("POST /holidays - Invalid override: date=%s, error=%v", req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidOverride)

		default:
			h.logger.Error("POST /holidays - Failed to create holiday override: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /holidays - Holiday override created successfully: holiday_id=%d, date=%s",
		result.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
