package create_booking

import (
	"context"
	"time"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/infra/events"
)

// UseCase implements the Create Booking command.
type UseCase struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	txManager   TransactionManager
	clock       Clock
	events      EventPublisher
	logger      Logger
}

// NewUseCase builds a UseCase.
func NewUseCase(bookingRepo BookingRepository, userRepo UserRepository, txManager TransactionManager, clock Clock, events EventPublisher, logger Logger) *UseCase {
	return &UseCase{bookingRepo: bookingRepo, userRepo: userRepo, txManager: txManager, clock: clock, events: events, logger: logger}
}

// Execute validates the request, resolves the counter-party, checks
// for conflicts and the free-trial rule, and persists the booking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: currentUser=%d toUser=%d startTime=%s", req.CurrentUser.ID, req.ToUserID, req.StartTime)

	startTime, err := parseStartTime(req.StartTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid startTime %q", req.StartTime)
		return nil, err
	}

	now := uc.clock.Now()
	if err := validateWindow(startTime, now); err != nil {
		return nil, err
	}

	if req.CurrentUser.ID == req.ToUserID {
		return nil, apperr.New(apperr.CodeYourselfBooking, "cannot book yourself")
	}

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		toUser, err := uc.userRepo.GetByID(txCtx, req.ToUserID)
		if err != nil {
			uc.logger.Warn("CreateBooking: toUser %d not found", req.ToUserID)
			return apperr.Wrap(apperr.CodeUserNotFound, "counter-party user not found", err)
		}

		isTutor := req.CurrentUser.IsTutor()
		if isTutor && toUser.IsTutor() {
			return apperr.New(apperr.CodeInvalidBookingCombination, "both parties are tutors")
		}

		tutorID, studentID := resolveRoles(isTutor, req.CurrentUser.ID, req.ToUserID)

		candidateEnd := startTime.Add(domain.LessonDurationMinutes * time.Minute)
		between, err := uc.bookingRepo.FindBetweenUsers(txCtx, tutorID, studentID, startTime, candidateEnd)
		if err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to load bookings between parties", err)
		}

		if hasActiveOverlap(between, startTime, candidateEnd) {
			return apperr.New(apperr.CodeBookingConflict, "an active booking already occupies this time")
		}
		if hasOngoingFreeMeeting(between) {
			return apperr.New(apperr.CodeOngoingFreeMeeting, "a free meeting between these parties is already pending")
		}
		if isTutor && !hasPriorMeeting(between) {
			return apperr.New(apperr.CodeNoPreviousMeeting, "tutor cannot initiate before any prior meeting")
		}

		bookingType := domain.TypeFreeMeeting
		if hasCompletedFreeMeeting(between) {
			bookingType = domain.TypeLesson
		}
		if bookingType == domain.TypeFreeMeeting && isTutor {
			return apperr.New(apperr.CodeFreeMeetingTutor, "tutor cannot initiate a free meeting")
		}

		endTime := startTime.Add(time.Duration(bookingType.DurationMinutes()) * time.Minute)

		status := domain.StatusAwaitingTutorConfirmation
		if isTutor {
			status = domain.StatusAwaitingStudentConfirmation
		}

		booking := &domain.Booking{
			Title:        defaultTitle(bookingType),
			StartTime:    startTime,
			EndTime:      endTime,
			Type:         bookingType,
			Status:       status,
			HostID:       tutorID,
			Participants: []int64{studentID},
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to persist booking", err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d type=%s status=%s", result.ID, result.Type, result.Status)

	if err := uc.events.Publish(ctx, events.RoutingKeyScheduled,
		events.NewBookingEvent(result.ID, string(result.Status), result.HostID)); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish booking event: %v", err)
	}

	return &Response{ID: result.ID}, nil
}

func resolveRoles(isTutor bool, currentUserID, toUserID int64) (tutorID, studentID int64) {
	if isTutor {
		return currentUserID, toUserID
	}
	return toUserID, currentUserID
}

func hasActiveOverlap(bookings []*domain.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if b.Status.IsActive() && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func hasOngoingFreeMeeting(bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.Status.IsActive() && b.Type == domain.TypeFreeMeeting {
			return true
		}
	}
	return false
}

func hasPriorMeeting(bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.Status == domain.StatusCompleted || b.Status == domain.StatusScheduled {
			return true
		}
	}
	return false
}

func hasCompletedFreeMeeting(bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.Status == domain.StatusCompleted && b.Type == domain.TypeFreeMeeting {
			return true
		}
	}
	return false
}

func defaultTitle(t domain.BookingType) string {
	if t == domain.TypeFreeMeeting {
		return "Free trial meeting"
	}
	return "Lesson"
}
