package list_bookings

import (
	"net/http"

	"github.com/tutorly/booking-engine/internal/api/handlers"
	"github.com/tutorly/booking-engine/internal/api/middleware"
)

// Handler serves "GET bookings".
type Handler struct {
	useCase  UseCase
	userRepo handlers.UserRepository
	logger   Logger
}

// NewHandler builds a Handler.
func NewHandler(useCase UseCase, userRepo handlers.UserRepository, logger Logger) *Handler {
	return &Handler{useCase: useCase, userRepo: userRepo, logger: logger}
}

// Handle resolves the actor, parses the query string's declarative
// schema and writes the paginated page.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing actor")
		return
	}

	currentUser, err := handlers.LoadActor(r.Context(), h.userRepo, userID)
	if err != nil {
		handlers.RespondUnauthorized(w, "unknown actor")
		return
	}

	req, err := requestFromQuery(r, currentUser)
	if err != nil {
		handlers.RespondAppError(w, h.logger, "GET /bookings", err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		handlers.RespondAppError(w, h.logger, "GET /bookings", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}
