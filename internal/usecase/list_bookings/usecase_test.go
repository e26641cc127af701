package list_bookings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorly/booking-engine/internal/domain"
	booking "github.com/tutorly/booking-engine/internal/infra/storage/booking"
	"github.com/tutorly/booking-engine/internal/usecase/list_bookings"
)

type fakeBookingRepo struct {
	gotFilter booking.ListFilter
	result    *booking.ListResult
}

func (f *fakeBookingRepo) List(_ context.Context, filter booking.ListFilter) (*booking.ListResult, error) {
	f.gotFilter = filter
	return f.result, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestExecute_DefaultsPageAndLimit(t *testing.T) {
	repo := &fakeBookingRepo{result: &booking.ListResult{Items: nil, Total: 0}}
	uc := list_bookings.NewUseCase(repo, noopLogger{})

	resp, err := uc.Execute(context.Background(), &list_bookings.Request{CurrentUser: &domain.User{ID: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gotFilter.Page)
	assert.Equal(t, 10, repo.gotFilter.Limit)
	assert.Equal(t, 0, resp.Metadata.Pages)
}

func TestExecute_ComputesPageCount(t *testing.T) {
	items := []*domain.Booking{{ID: 1}, {ID: 2}}
	repo := &fakeBookingRepo{result: &booking.ListResult{Items: items, Total: 25}}
	uc := list_bookings.NewUseCase(repo, noopLogger{})

	resp, err := uc.Execute(context.Background(), &list_bookings.Request{CurrentUser: &domain.User{ID: 1}, Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.gotFilter.Page)
	assert.Equal(t, 3, resp.Metadata.Pages)
	assert.Equal(t, 25, resp.Metadata.Total)
	assert.Len(t, resp.Items, 2)
}

func TestExecute_ClampsOutOfRangeLimit(t *testing.T) {
	repo := &fakeBookingRepo{result: &booking.ListResult{Total: 0}}
	uc := list_bookings.NewUseCase(repo, noopLogger{})

	_, err := uc.Execute(context.Background(), &list_bookings.Request{CurrentUser: &domain.User{ID: 1}, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 10, repo.gotFilter.Limit)
}
