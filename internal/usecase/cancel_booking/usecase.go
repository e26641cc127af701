package cancel_booking

import (
	"context"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/infra/events"
	"github.com/tutorly/booking-engine/internal/statemachine"
)

// UseCase implements the Cancel Booking command.
type UseCase struct {
	bookingRepo BookingRepository
	gateway     Gateway
	txManager   TransactionManager
	events      EventPublisher
	logger      Logger
}

// NewUseCase builds a UseCase.
func NewUseCase(bookingRepo BookingRepository, gateway Gateway, txManager TransactionManager, events EventPublisher, logger Logger) *UseCase {
	return &UseCase{bookingRepo: bookingRepo, gateway: gateway, txManager: txManager, events: events, logger: logger}
}

// Execute checks the actor and status, expires any pending checkout
// session at the gateway, and cancels the booking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d user=%d", req.BookingID, req.CurrentUser.ID)

	var hostID int64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return apperr.Wrap(apperr.CodeBookingNotFound, "booking not found", err)
		}

		if !booking.IsHostOrParticipant(req.CurrentUser.ID) {
			return apperr.New(apperr.CodeUnauthorized, "actor is neither host nor participant")
		}

		if !statemachine.CanCancel(booking.Status) {
			return apperr.New(apperr.CodeInvalidStatus, "booking is not in a cancelable status")
		}

		if booking.Status == domain.StatusAwaitingPayment {
			if booking.Payment == nil || booking.Payment.SessionID == nil {
				return apperr.New(apperr.CodeNoPaymentInfo, "booking has no payment session to cancel")
			}
			if err := uc.gateway.ExpireCheckoutSession(txCtx, *booking.Payment.SessionID); err != nil {
				return apperr.Wrap(apperr.CodePaymentCancellationFailed, "failed to expire checkout session", err)
			}
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusCanceled); err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to persist cancellation", err)
		}

		hostID = booking.HostID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking=%d canceled", req.BookingID)

	if err := uc.events.Publish(ctx, events.RoutingKeyCanceled,
		events.NewBookingEvent(req.BookingID, string(domain.StatusCanceled), hostID)); err != nil {
		uc.logger.Warn("CancelBooking: failed to publish booking event: %v", err)
	}

	return &Response{Status: domain.StatusCanceled}, nil
}
