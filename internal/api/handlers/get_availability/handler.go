package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

const (
	msgMissingDate       = "дата обязательна"
	msgMissingServiceIDs = "список услуг обязателен"
	msgInvalidQuery      = "некорректные параметры запроса, ожидается date=YYYY-MM-DD и serviceIds=1,2,3"
	msgInvalidSelection  = "некорректный набор услуг"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), serviceIds (required, "1,2,3")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	serviceIDsStr := r.URL.Query().Get("serviceIds")
	if serviceIDsStr == "" {
		h.logger.Warn("GET /availability - Missing service IDs")
		handlers.RespondBadRequest(w, msgMissingServiceIDs)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, serviceIDsStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidSelection):
			h.logger.Warn("GET /availability - Invalid selection: date=%s, serviceIds=%s, error=%v",
				dateStr, serviceIDsStr, err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: date=%s, serviceIds=%s, error=%v",
				dateStr, serviceIDsStr, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /availability - Failed to get availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Availability retrieved successfully: date=%s, closed=%v, slots_count=%d",
		dateStr, result.IsClosed, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
