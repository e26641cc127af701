package reschedule_booking

import (
	"context"
	"time"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/conflict"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/infra/events"
	"github.com/tutorly/booking-engine/internal/statemachine"
)

// UseCase implements the Reschedule Booking command.
type UseCase struct {
	bookingRepo  BookingRepository
	conflictRepo ConflictRepository
	txManager    TransactionManager
	clock        Clock
	events       EventPublisher
	logger       Logger
}

// NewUseCase builds a UseCase.
func NewUseCase(bookingRepo BookingRepository, conflictRepo ConflictRepository, txManager TransactionManager, clock Clock, events EventPublisher, logger Logger) *UseCase {
	return &UseCase{bookingRepo: bookingRepo, conflictRepo: conflictRepo, txManager: txManager, clock: clock, events: events, logger: logger}
}

// Execute validates the new start time, checks the actor and status,
// re-checks for conflicts, and persists the reschedule.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d user=%d startTime=%s", req.BookingID, req.CurrentUser.ID, req.StartTime)

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		startTime, err = time.Parse("2006-01-02T15:04:05.000Z", req.StartTime)
		if err != nil {
			return nil, apperr.New(apperr.CodeInvalidDate, "startTime is not a valid ISO-8601 UTC timestamp")
		}
	}
	startTime = startTime.UTC()

	now := uc.clock.Now()
	if startTime.Before(now) {
		return nil, apperr.New(apperr.CodePastTime, "reschedule target is in the past")
	}

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return apperr.Wrap(apperr.CodeBookingNotFound, "booking not found", err)
		}

		if startTime.Equal(booking.StartTime) {
			return apperr.New(apperr.CodeSameTime, "reschedule target equals the current start time")
		}

		actor, authorized := actorFor(booking, req.CurrentUser.ID)
		if !authorized {
			return apperr.New(apperr.CodeUnauthorized, "actor is neither host nor participant")
		}

		if err := checkStatus(booking.Status, actor); err != nil {
			return err
		}

		endTime := startTime.Add(time.Duration(booking.Type.DurationMinutes()) * time.Minute)

		conflicting, err := uc.conflictRepo.FindOverlapping(txCtx, conflict.Query{
			HostID:     booking.HostID,
			Candidates: []conflict.Candidate{{Start: startTime, End: endTime}},
		})
		if err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to check for conflicts", err)
		}
		for _, other := range conflicting {
			if other.ID == booking.ID {
				continue
			}
			if other.Status.IsActive() && other.Overlaps(startTime, endTime) {
				return apperr.New(apperr.CodeBookingConflict, "new time overlaps another active booking for this host")
			}
		}

		target, _ := statemachine.RescheduleTarget(booking.Status)
		if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, startTime, endTime, target); err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to persist reschedule", err)
		}

		booking.StartTime, booking.EndTime, booking.Status = startTime, endTime, target
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking=%d new status=%s", result.ID, result.Status)

	if err := uc.events.Publish(ctx, events.RoutingKeyRescheduled,
		events.NewBookingEvent(result.ID, string(result.Status), result.HostID)); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to publish booking event: %v", err)
	}

	return &Response{Status: result.Status}, nil
}

// actorFor resolves which role req.CurrentUser plays on booking.
func actorFor(booking *domain.Booking, userID int64) (statemachine.Actor, bool) {
	if booking.HostID == userID {
		return statemachine.ActorTutor, true
	}
	if booking.HasParticipant(userID) {
		return statemachine.ActorStudent, true
	}
	return "", false
}

// checkStatus applies the status/actor matrix: the two
// awaiting-confirmation statuses require the matching actor
// (INVALID_STATUS_TUTOR/INVALID_STATUS_STUDENT on mismatch); every
// other status is simply not reschedulable (INVALID_STATUS).
func checkStatus(status domain.BookingStatus, actor statemachine.Actor) error {
	switch status {
	case domain.StatusAwaitingTutorConfirmation, domain.StatusAwaitingStudentConfirmation:
		if statemachine.CanActorTransition(status, statemachine.EventReschedule, actor) {
			return nil
		}
		if actor == statemachine.ActorTutor {
			return apperr.New(apperr.CodeInvalidStatusTutor, "tutor cannot reschedule while awaiting the student's confirmation")
		}
		return apperr.New(apperr.CodeInvalidStatusStudent, "student cannot reschedule while awaiting the tutor's confirmation")
	default:
		return apperr.New(apperr.CodeInvalidStatus, "booking is not in a reschedulable status")
	}
}
