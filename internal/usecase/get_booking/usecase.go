package get_booking

import (
	"context"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
)

// UseCase implements "GET bookings/{id}".
type UseCase struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	logger      Logger
}

// NewUseCase builds a UseCase.
func NewUseCase(bookingRepo BookingRepository, userRepo UserRepository, logger Logger) *UseCase {
	return &UseCase{bookingRepo: bookingRepo, userRepo: userRepo, logger: logger}
}

// Execute loads booking id, denormalized with host/participants.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		uc.logger.Warn("GetBooking: booking=%d not found", req.BookingID)
		return nil, apperr.Wrap(apperr.CodeBookingNotFound, "booking not found", err)
	}

	if !booking.IsHostOrParticipant(req.CurrentUser.ID) {
		return nil, apperr.New(apperr.CodeUnauthorized, "actor is neither host nor participant")
	}

	host, err := uc.userRepo.GetByID(ctx, booking.HostID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternalServerError, "failed to load host", err)
	}

	participants := make([]*domain.User, 0, len(booking.Participants))
	for _, id := range booking.Participants {
		p, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternalServerError, "failed to load participant", err)
		}
		participants = append(participants, p)
	}

	return &Response{Booking: booking, Host: host, Participants: participants}, nil
}
