package create_recurring

import (
	"encoding/json"
	"net/http"

	"github.com/tutorly/booking-engine/internal/api/handlers"
	"github.com/tutorly/booking-engine/internal/api/middleware"
	"github.com/tutorly/booking-engine/internal/apperr"
)

// Handler serves "POST bookings/recurring".
type Handler struct {
	useCase  UseCase
	userRepo handlers.UserRepository
	logger   Logger
}

// NewHandler builds a Handler.
func NewHandler(useCase UseCase, userRepo handlers.UserRepository, logger Logger) *Handler {
	return &Handler{useCase: useCase, userRepo: userRepo, logger: logger}
}

// Handle resolves the actor, decodes the template body and either
// creates the template or reports the conflicts that blocked it.
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

	var body httpRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondAppError(w, h.logger, "POST /bookings/recurring", apperr.Wrap(apperr.CodeInvalidInput, "malformed request body", err))
		return
	}

	req, err := body.toUseCaseRequest(currentUser)
	if err != nil {
		handlers.RespondAppError(w, h.logger, "POST /bookings/recurring", err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		handlers.RespondAppError(w, h.logger, "POST /bookings/recurring", err)
		return
	}

	resp := fromUseCaseResponse(result)
	if len(resp.Conflicts) > 0 {
		handlers.RespondJSON(w, http.StatusConflict, resp)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
