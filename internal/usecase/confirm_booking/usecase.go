package confirm_booking

import (
	"context"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/infra/events"
	"github.com/tutorly/booking-engine/internal/statemachine"
)

// UseCase implements the Confirm Booking command.
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

// Execute checks the actor and status, opens a checkout session for a
// paid lesson, and moves the booking to its confirmed status.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking=%d user=%d", req.BookingID, req.CurrentUser.ID)

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return apperr.Wrap(apperr.CodeBookingNotFound, "booking not found", err)
		}

		actor, authorized := actorFor(booking, req.CurrentUser.ID)
		if !authorized {
			return apperr.New(apperr.CodeUnauthorized, "actor is neither host nor participant")
		}

		switch booking.Status {
		case domain.StatusAwaitingTutorConfirmation, domain.StatusAwaitingStudentConfirmation:
			if !statemachine.CanActorTransition(booking.Status, statemachine.EventConfirm, actor) {
				return apperr.New(apperr.CodeInvalidStatus, "it is not this actor's turn to confirm")
			}
		default:
			return apperr.New(apperr.CodeInvalidStatus, "booking is not awaiting confirmation")
		}

		target := statemachine.ConfirmTarget(booking.Type)

		if booking.Type == domain.TypeLesson {
			session, err := uc.gateway.CreateOrRefreshCheckoutSession(txCtx, booking)
			if err != nil {
				return apperr.Wrap(apperr.CodePaymentSessionCreationFailed, "failed to create checkout session", err)
			}

			payment := &domain.Payment{
				BookingID:  booking.ID,
				SessionID:  &session.SessionID,
				SessionURL: &session.SessionURL,
			}
			if err := uc.bookingRepo.UpsertPayment(txCtx, payment); err != nil {
				return apperr.Wrap(apperr.CodeInternalServerError, "failed to persist payment session", err)
			}
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, target); err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to persist confirmed status", err)
		}

		booking.Status = target
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: booking=%d new status=%s", result.ID, result.Status)

	if err := uc.events.Publish(ctx, events.RoutingKeyConfirmed,
		events.NewBookingEvent(result.ID, string(result.Status), result.HostID)); err != nil {
		uc.logger.Warn("ConfirmBooking: failed to publish booking event: %v", err)
	}

	return &Response{Status: result.Status}, nil
}

func actorFor(booking *domain.Booking, userID int64) (statemachine.Actor, bool) {
	if booking.HostID == userID {
		return statemachine.ActorTutor, true
	}
	if booking.HasParticipant(userID) {
		return statemachine.ActorStudent, true
	}
	return "", false
}
