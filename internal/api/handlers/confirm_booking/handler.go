package confirm_booking

import (
	"net/http"

	"github.com/tutorly/booking-engine/internal/api/handlers"
	"github.com/tutorly/booking-engine/internal/api/middleware"
	"github.com/tutorly/booking-engine/internal/domain"
	confirmBooking "github.com/tutorly/booking-engine/internal/usecase/confirm_booking"
)

type httpResponse struct {
	Status domain.BookingStatus `json:"status"`
}

// Handler serves "PATCH bookings/{id}/confirm".
type Handler struct {
	useCase  UseCase
	userRepo handlers.UserRepository
	logger   Logger
}

// NewHandler builds a Handler.
func NewHandler(useCase UseCase, userRepo handlers.UserRepository, logger Logger) *Handler {
	return &Handler{useCase: useCase, userRepo: userRepo, logger: logger}
}

// Handle resolves the actor and booking id, runs the usecase and
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

	currentUser, err := handlers.LoadActor(r.Context(), h.userRepo, userID)
	if err != nil {
		handlers.RespondUnauthorized(w, "unknown actor")
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{BookingID: bookingID, CurrentUser: currentUser})
	if err != nil {
		handlers.RespondAppError(w, h.logger, "PATCH /bookings/{id}/confirm", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, httpResponse{Status: result.Status})
}
