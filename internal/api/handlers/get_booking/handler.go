package get_booking

import (
	"net/http"

	"github.com/tutorly/booking-engine/internal/api/handlers"
	"github.com/tutorly/booking-engine/internal/api/middleware"
	getBooking "github.com/tutorly/booking-engine/internal/usecase/get_booking"
)

// Handler serves "GET bookings/{id}".
type Handler struct {
	useCase  UseCase
	userRepo handlers.UserRepository
	logger   Logger
}

// NewHandler builds a Handler.
func NewHandler(useCase UseCase, userRepo handlers.UserRepository, logger Logger) *Handler {
	return &Handler{useCase: useCase, userRepo: userRepo, logger: logger}
}

// Handle resolves the actor and booking id and writes the denormalized
// booking view.
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

	result, err := h.useCase.Execute(r.Context(), &getBooking.Request{BookingID: bookingID, CurrentUser: currentUser})
	if err != nil {
		handlers.RespondAppError(w, h.logger, "GET /bookings/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}
