package create_booking

import (
	"net/http"

	"github.com/tutorly/booking-engine/internal/api/handlers"
	"github.com/tutorly/booking-engine/internal/api/middleware"
)

// Handler serves "POST bookings".
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

	var req httpRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings: invalid request body: %v", err)
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}

	currentUser, err := handlers.LoadActor(r.Context(), h.userRepo, userID)
	if err != nil {
		handlers.RespondUnauthorized(w, "unknown actor")
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.toUseCaseRequest(currentUser))
	if err != nil {
		handlers.RespondAppError(w, h.logger, "POST /bookings", err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, httpResponse{ID: result.ID})
}
