package list_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	msgMissingDate            = "дата обязательна"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidIncludeInactive = "некорректное значение includeInactive, ожидается true или false"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Query params: date (required, YYYY-MM-DD), includeInactive (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /reservations - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	includeInactive := false
	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		includeInactive, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /reservations - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidIncludeInactive)
			return
		}
	}

	result, err := h.service.ListByDate(r.Context(), &models.ListByDateRequest{
		Date:            date,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid input: date=%s, error=%v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations retrieved successfully: date=%s, count=%d",
		dateStr, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
