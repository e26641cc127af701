// Package engine assembles the BookingEngine: the repository, clock,
// gateway port and transaction manager are constructed once at startup
// and handed to every usecase. internal/api/handlers call the usecases
// only through this package's Engine; they import the usecase packages
// for their Request and Response types.
package engine

import (
	"context"

	"github.com/tutorly/booking-engine/internal/conflict"
	"github.com/tutorly/booking-engine/internal/gatewayport"
	bookingstore "github.com/tutorly/booking-engine/internal/infra/storage/booking"
	recurringstore "github.com/tutorly/booking-engine/internal/infra/storage/recurring"
	userstore "github.com/tutorly/booking-engine/internal/infra/storage/user"
	"github.com/tutorly/booking-engine/internal/usecase/cancel_booking"
	"github.com/tutorly/booking-engine/internal/usecase/confirm_booking"
	"github.com/tutorly/booking-engine/internal/usecase/create_booking"
	"github.com/tutorly/booking-engine/internal/usecase/create_recurring"
	"github.com/tutorly/booking-engine/internal/usecase/get_booking"
	"github.com/tutorly/booking-engine/internal/usecase/list_bookings"
	"github.com/tutorly/booking-engine/internal/usecase/process_webhook"
	"github.com/tutorly/booking-engine/internal/usecase/request_refund"
	"github.com/tutorly/booking-engine/internal/usecase/reschedule_booking"
	"github.com/tutorly/booking-engine/internal/webhook"
)

// TransactionManager is the shape every usecase's own TransactionManager
// interface structurally matches; *pkg/txmanager.TransactionManager and
// *pkg/simpletxmanager.TransactionManager both satisfy it.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the narrow logging dependency threaded into every usecase.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Engine owns every usecase the API layer dispatches to.
type Engine struct {
	CreateBooking     *create_booking.UseCase
	RescheduleBooking *reschedule_booking.UseCase
	ConfirmBooking    *confirm_booking.UseCase
	CancelBooking     *cancel_booking.UseCase
	RequestRefund     *request_refund.UseCase
	GetBooking        *get_booking.UseCase
	ListBookings      *list_bookings.UseCase
	CreateRecurring   *create_recurring.UseCase
	ProcessWebhook    *process_webhook.UseCase
}

// Dependencies groups what New needs to build an Engine, so wiring
// code in cmd/bookingengine only has to construct the repositories,
// the gateway binding, the clock and the transaction manager once.
type Dependencies struct {
	BookingRepo   *bookingstore.Repository
	RecurringRepo *recurringstore.Repository
	UserRepo      *userstore.Repository
	Gateway       gatewayport.Port
	TxManager     TransactionManager
	Clock         create_booking.Clock
	Events        Publisher
	Logger        Logger
}

// Publisher is the shape every usecase's own EventPublisher interface
// structurally matches; *events.Publisher and events.NoopPublisher
// both satisfy it.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// New builds an Engine over deps, constructing the conflict detector
// and webhook reducer internally since nothing outside this package
// needs to hold them directly.
func New(deps Dependencies) *Engine {
	detector := conflict.New(deps.BookingRepo)
	reducer := webhook.New(deps.BookingRepo, deps.Logger)

	return &Engine{
		CreateBooking: create_booking.NewUseCase(
			deps.BookingRepo, deps.UserRepo, deps.TxManager, deps.Clock, deps.Events, deps.Logger,
		),
		RescheduleBooking: reschedule_booking.NewUseCase(
			deps.BookingRepo, deps.BookingRepo, deps.TxManager, deps.Clock, deps.Events, deps.Logger,
		),
		ConfirmBooking: confirm_booking.NewUseCase(
			deps.BookingRepo, deps.Gateway, deps.TxManager, deps.Events, deps.Logger,
		),
		CancelBooking: cancel_booking.NewUseCase(
			deps.BookingRepo, deps.Gateway, deps.TxManager, deps.Events, deps.Logger,
		),
		RequestRefund: request_refund.NewUseCase(
			deps.BookingRepo, deps.Gateway, deps.TxManager, deps.Events, deps.Logger,
		),
		GetBooking: get_booking.NewUseCase(
			deps.BookingRepo, deps.UserRepo, deps.Logger,
		),
		ListBookings: list_bookings.NewUseCase(
			deps.BookingRepo, deps.Logger,
		),
		CreateRecurring: create_recurring.NewUseCase(
			deps.BookingRepo, deps.RecurringRepo, detector, deps.TxManager, deps.Clock, deps.Logger,
		),
		ProcessWebhook: process_webhook.NewUseCase(
			deps.Gateway, reducer, deps.TxManager, deps.Events, deps.Logger,
		),
	}
}
