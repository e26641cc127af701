package reschedule_booking

import (
	"net/http"

	"github.com/tutorly/booking-engine/internal/api/handlers"
	"github.com/tutorly/booking-engine/internal/api/middleware"
)

// Handler serves "PATCH bookings/{id}/reschedule".
type Handler struct {
	useCase  UseCase
	userRepo handlers.UserRepository
	logger   Logger
}

// NewHandler builds a Handler.
func NewHandler(useCase UseCase, userRepo handlers.UserRepository, logger Logger) *Handler {
	return &Handler{useCase: useCase, userRepo: userRepo, logger: logger}
}

// Handle decodes the request, resolves the actor, runs the usecase and
// writes its outcome.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing actor")
		return
	}

	bookingID, ok := handlers.PathInt64(r, "bookingId")
	if !ok {
		handlers.RespondBadRequest(w, "invalid bookingId")
		return
	}

	var req httpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%d/reschedule: invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}

	currentUser, err := handlers.LoadActor(r.Context(), h.userRepo, userID)
	if err != nil {
		handlers.RespondUnauthorized(w, "unknown actor")
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.toUseCaseRequest(bookingID, currentUser))
	if err != nil {
		handlers.RespondAppError(w, h.logger, "PATCH /bookings/{id}/reschedule", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, httpResponse{Status: result.Status})
}
