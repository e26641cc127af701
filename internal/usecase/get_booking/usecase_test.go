package get_booking_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/apperr"
	"github.com/tutorly/booking-engine/internal/domain"
	"github.com/tutorly/booking-engine/internal/usecase/get_booking"
)

type fakeBookingRepo struct {
	booking *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, apperr.New(apperr.CodeBookingNotFound, "not found")
	}
	return f.booking, nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.New(apperr.CodeUserNotFound, "not found")
	}
	return u, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestExecute_ReturnsDenormalizedBooking(t *testing.T) {
	tutor := &domain.User{ID: 20, Name: "Tutor"}
	student := &domain.User{ID: 10, Name: "Student"}
	booking := &domain.Booking{ID: 1, HostID: 20, Participants: []int64{10}, Status: domain.StatusScheduled}

	bookingRepo := &fakeBookingRepo{booking: booking}
	userRepo := &fakeUserRepo{users: map[int64]*domain.User{20: tutor, 10: student}}

	uc := get_booking.NewUseCase(bookingRepo, userRepo, noopLogger{})
	resp, err := uc.Execute(context.Background(), &get_booking.Request{BookingID: 1, CurrentUser: student})
	require.NoError(t, err)
	assert.Same(t, booking, resp.Booking)
	assert.Same(t, tutor, resp.Host)
	require.Len(t, resp.Participants, 1)
	assert.Same(t, student, resp.Participants[0])
}

func TestExecute_RejectsUnrelatedUser(t *testing.T) {
	outsider := &domain.User{ID: 99}
	booking := &domain.Booking{ID: 1, HostID: 20, Participants: []int64{10}, Status: domain.StatusScheduled}

	bookingRepo := &fakeBookingRepo{booking: booking}
	userRepo := &fakeUserRepo{users: map[int64]*domain.User{20: {ID: 20}, 10: {ID: 10}}}

	uc := get_booking.NewUseCase(bookingRepo, userRepo, noopLogger{})
	_, err := uc.Execute(context.Background(), &get_booking.Request{BookingID: 1, CurrentUser: outsider})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
}

func TestExecute_BookingNotFound(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	userRepo := &fakeUserRepo{users: map[int64]*domain.User{}}

	uc := get_booking.NewUseCase(bookingRepo, userRepo, noopLogger{})
	_, err := uc.Execute(context.Background(), &get_booking.Request{BookingID: 1, CurrentUser: &domain.User{ID: 1}})
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeBookingNotFound))
}
