package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidSelection   = "некорректный набор услуг"
	msgClosedDay          = "салон закрыт в выбранную дату"
	msgCutoffExceeded     = "время начала позже последнего доступного для выбранных услуг"
	msgSlotConflict       = "выбранный интервал уже занят"
	msgInvalidTimeSlot    = "некорректное время начала"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, date=%s, start=%s",
				userID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createReservation.ErrClosedDay):
			h.logger.Warn("POST /reservations - Closed day: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondConflict(w, msgClosedDay)

		case errors.Is(err, createReservation.ErrCutoffExceeded):
			h.logger.Warn("POST /reservations - Cutoff exceeded: user_id=%d, date=%s, start=%s",
				userID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgCutoffExceeded)

		case errors.Is(err, createReservation.ErrInvalidSelection):
			h.logger.Warn("POST /reservations - Invalid selection: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: user_id=%d, start=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, date=%s, start=%s",
		result.ID, userID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
