package delete_holiday

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/holidays"
)

const (
	msgInvalidHolidayID = "некорректный ID переопределения"
	msgNotFound         = "переопределение календаря не найдено"
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

// Handle DELETE /api/v1/holidays/{holidayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	holidayIDStr := vars["holidayId"]

	holidayID, err := strconv.ParseInt(holidayIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /holidays/{id} - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	if err := h.service.Delete(r.Context(), holidayID); err != nil {
		switch {
		case errors.Is(err, holidays.ErrHolidayNotFound):
			h.logger.Warn("DELETE /holidays/{id} - Holiday override not found: holiday_id=%d", holidayID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, holidays.ErrInvalidInput):
			h.logger.Warn("DELETE /holidays/{id} - Invalid holiday ID: holiday_id=%d", holidayID)
			handlers.RespondBadRequest(w, msgInvalidHolidayID)

		default:
			h.logger.Error("DELETE /holidays/{id} - Failed to delete holiday override: holiday_id=%d, error=%v",
				holidayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /holidays/{id} - Holiday override deleted successfully: holiday_id=%d", holidayID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
