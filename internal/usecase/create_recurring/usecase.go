package create_recurring

import (
	"context"
	"time"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	recurringstore "github.com/tutorly/booking-engine/internal/infra/storage/recurring"
	"github.com/tutorly/booking-engine/internal/recurrence"
)

// UseCase implements the recurring booking command.
type UseCase struct {
	bookingRepo   BookingRepository
	recurringRepo RecurringRepository
	detector      Detector
	txManager     TransactionManager
	clock         Clock
	logger        Logger
}

// NewUseCase builds a UseCase.
func NewUseCase(bookingRepo BookingRepository, recurringRepo RecurringRepository, detector Detector, txManager TransactionManager, clock Clock, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		recurringRepo: recurringRepo,
		detector:      detector,
		txManager:     txManager,
		clock:         clock,
		logger:        logger,
	}
}

// Execute validates pre-conditions, expands and resolves the requested
// pattern, and persists the template and its child bookings
// atomically.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurring: host=%d student=%d pattern=%s", req.HostID, req.CurrentUser.ID, req.RecurrencePattern)

	if req.CurrentUser.IsTutor() {
		return nil, apperr.New(apperr.CodeInvalidInput, "only a student may initiate a recurring template")
	}
	if req.HostID == req.CurrentUser.ID {
		return nil, apperr.New(apperr.CodeInvalidInput, "cannot book a recurring template with yourself")
	}

	if err := recurrence.ValidateTimeSlots(req.TimeSlots); err != nil {
		return nil, err
	}

	now := floorToDayUTC(uc.clock.Now())
	horizonEnd := now.AddDate(0, 1, 0)

	var response *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		between, err := uc.bookingRepo.FindBetweenUsers(txCtx, req.HostID, req.CurrentUser.ID, now, now)
		if err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to load prior bookings", err)
		}
		if !hasPriorMeeting(between) {
			return apperr.New(apperr.CodeNoPriorBooking, "student has no prior completed or scheduled booking with this tutor")
		}

		activeSlots, err := uc.recurringRepo.FindActiveSlotsForHost(txCtx, req.HostID)
		if err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to load active template slots", err)
		}
		if err := checkTemplateConflict(req.TimeSlots, activeSlots); err != nil {
			return err
		}

		expandReq := recurrence.Request{
			HostID:     req.HostID,
			StudentID:  req.CurrentUser.ID,
			Pattern:    req.RecurrencePattern,
			TimeSlots:  req.TimeSlots,
			Overrides:  req.Overrides,
			Now:        now,
			HorizonEnd: horizonEnd,
		}

		instances := recurrence.Generate(expandReq)
		result, err := recurrence.Resolve(txCtx, expandReq, instances, uc.detector)
		if err != nil {
			return err
		}

		if len(result.Conflicts) > 0 {
			response = &Response{Conflicts: result.Conflicts}
			return nil
		}

		tpl := &domain.RecurringTemplate{
			HostID:            req.HostID,
			RecurrencePattern: req.RecurrencePattern,
			DurationMinutes:   domain.LessonDurationMinutes,
			Status:            domain.RecurringTemplateActive,
			TimeSlots:         toTimeSlots(req.TimeSlots),
		}
		created, err := uc.recurringRepo.Create(txCtx, tpl)
		if err != nil {
			return apperr.Wrap(apperr.CodeInternalServerError, "failed to persist recurring template", err)
		}

		for _, inst := range result.Instances {
			booking := &domain.Booking{
				Title:        "Lesson",
				StartTime:    inst.Start,
				EndTime:      inst.End,
				Type:         domain.TypeLesson,
				Status:       domain.StatusAwaitingStudentConfirmation,
				HostID:       req.HostID,
				Participants: []int64{req.CurrentUser.ID},
			}
			if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
				return apperr.Wrap(apperr.CodeInternalServerError, "failed to persist recurring child booking", err)
			}
		}

		response = &Response{TemplateID: created.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if response.TemplateID != 0 {
		uc.logger.Info("CreateRecurring: host=%d student=%d created template=%d", req.HostID, req.CurrentUser.ID, response.TemplateID)
	}
	return response, nil
}

func floorToDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func hasPriorMeeting(bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.Status == domain.StatusCompleted || b.Status == domain.StatusScheduled {
			return true
		}
	}
	return false
}

// checkTemplateConflict rejects a requested time slot that overlaps
// any ACTIVE template's 60-minute window for the same host on the
// same weekday.
func checkTemplateConflict(requested []recurrence.TimeSlotInput, active []recurringstore.ActiveSlot) error {
	for _, r := range requested {
		for _, a := range active {
			if r.Weekday != a.Weekday {
				continue
			}
			rEnd := r.TimeOfDay.AddMinutes(domain.LessonDurationMinutes)
			aEnd := a.TimeOfDay.AddMinutes(domain.LessonDurationMinutes)
			if r.TimeOfDay.IsBefore(aEnd) && a.TimeOfDay.IsBefore(rEnd) {
				return apperr.New(apperr.CodeRecurringTemplateConflict, "requested time slot overlaps an existing active template")
			}
		}
	}
	return nil
}

func toTimeSlots(inputs []recurrence.TimeSlotInput) []domain.RecurringTimeSlot {
	slots := make([]domain.RecurringTimeSlot, len(inputs))
	for i, in := range inputs {
		slots[i] = domain.RecurringTimeSlot{Weekday: in.Weekday, TimeOfDay: in.TimeOfDay}
	}
	return slots
}
