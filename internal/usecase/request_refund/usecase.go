package request_refund

import (
	"context"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/infra/events"
)

// UseCase implements the Request Refund command.
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

// Execute checks the booking's status and payment, requests the
// gateway refund, and moves the booking to AWAITING_REFUND.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestRefund: booking=%d user=%d", req.BookingID, req.CurrentUser.ID)

	var hostID int64

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return apperr.Wrap(apperr.CodeBookingNotFound, "booking not found", err)
		}

		if !booking.IsHostOrParticipant(req.CurrentUser.ID) {
			return apperr.New(apperr.CodeUnauthorized, "actor is neither host nor participant")
		}

		if booking.Status != domain.StatusScheduled {
			return apperr.New(apperr.CodeInvalidStatus, "only a scheduled booking can have a refund requested")
		}

		if booking.Payment == nil || booking.Payment.PaymentIntentID == nil {
			return apperr.New(apperr.CodeNoPaymentInfo, "booking has no payment intent to refund")
		}

		if err := uc.gateway.CreateRefund(txCtx, *booking.Payment.PaymentIntentID, booking.ID); err != nil {
			return apperr.Wrap(apperr.CodeRefundProcessingFailed, "failed to create refund at the gateway", err)
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusAwaitingRefund); err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to persist refund request", err)
		}

		hostID = booking.HostID
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RequestRefund: booking=%d now awaiting refund", req.BookingID)

	if err := uc.events.Publish(ctx, events.RoutingKeyRefundRequested,
		events.NewBookingEvent(req.BookingID, string(domain.StatusAwaitingRefund), hostID)); err != nil {
		uc.logger.Warn("RequestRefund: failed to publish booking event: %v", err)
	}

	return &Response{Status: domain.StatusAwaitingRefund}, nil
}
