package list_holidays

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/holidays"
	"github.com/m04kA/SMC-ReservationService/internal/service/holidays/models"
)

const (
	msgInvalidFrom  = "некорректный формат from, ожидается YYYY-MM-DD"
	msgInvalidTo    = "некорректный формат to, ожидается YYYY-MM-DD"
	msgInvalidRange = "некорректный период"
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

// Handle GET /api/v1/holidays
// Query params: from (optional, YYYY-MM-DD), to (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListHolidaysRequest{}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /holidays - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		req.From = &from
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /holidays - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
		req.To = &to
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, holidays.ErrInvalidInput):
			h.logger.Warn("GET /holidays - Invalid range: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /holidays - Failed to list holiday overrides: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /holidays - Holiday overrides retrieved successfully: count=%d", len(result.Holidays))
	handlers.RespondJSON(w, http.StatusOK, result)
}
