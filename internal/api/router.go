// Package api assembles the HTTP surface: one gorilla/mux router, the
// public webhook route, and every booking/recurring-template route
// behind middleware.Auth.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tutorly/booking-engine/internal/api/handlers"
	cancelBookingHandler "github.com/tutorly/booking-engine/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/tutorly/booking-engine/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/tutorly/booking-engine/internal/api/handlers/create_booking"
	createRecurringHandler "github.com/tutorly/booking-engine/internal/api/handlers/create_recurring"
	getBookingHandler "github.com/tutorly/booking-engine/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/tutorly/booking-engine/internal/api/handlers/list_bookings"
	processWebhookHandler "github.com/tutorly/booking-engine/internal/api/handlers/process_webhook"
	requestRefundHandler "github.com/tutorly/booking-engine/internal/api/handlers/request_refund"
	rescheduleBookingHandler "github.com/tutorly/booking-engine/internal/api/handlers/reschedule_booking"
	"github.com/tutorly/booking-engine/internal/api/middleware"
	"github.com/tutorly/booking-engine/internal/engine"
	"github.com/tutorly/booking-engine/pkg/metrics"
)

// Logger is the narrow logging dependency every handler constructor needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics controls whether the router installs the metrics middleware
// and exposes the /metrics endpoint.
type Metrics struct {
	Enabled     bool
	Collector   *metrics.Metrics
	ServiceName string
	Path        string
}

// NewRouter builds the full mux.Router over eng's usecases, userRepo
// for actor resolution, and m for the optional metrics surface.
func NewRouter(eng *engine.Engine, userRepo handlers.UserRepository, logger Logger, m Metrics) *mux.Router {
	r := mux.NewRouter()

	if m.Enabled {
		r.Use(middleware.MetricsMiddleware(m.Collector, m.ServiceName))
		r.Handle(m.Path, promhttp.Handler()).Methods(http.MethodGet)
	}

	r.Use(middleware.RequestID)

	api := r.PathPrefix("/api/v1").Subrouter()

	createBooking := createBookingHandler.NewHandler(eng.CreateBooking, userRepo, logger)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(eng.RescheduleBooking, userRepo, logger)
	confirmBooking := confirmBookingHandler.NewHandler(eng.ConfirmBooking, userRepo, logger)
	cancelBooking := cancelBookingHandler.NewHandler(eng.CancelBooking, userRepo, logger)
	requestRefund := requestRefundHandler.NewHandler(eng.RequestRefund, userRepo, logger)
	getBooking := getBookingHandler.NewHandler(eng.GetBooking, userRepo, logger)
	listBookings := listBookingsHandler.NewHandler(eng.ListBookings, userRepo, logger)
	createRecurring := createRecurringHandler.NewHandler(eng.CreateRecurring, userRepo, logger)
	processWebhook := processWebhookHandler.NewHandler(eng.ProcessWebhook, logger)

	// Public: the payment gateway authenticates itself with a signature
	// header, not an X-User-ID actor.
	api.HandleFunc("/payments/webhook", processWebhook.Handle).Methods(http.MethodPost)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/recurring", createRecurring.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel/refund", requestRefund.Handle).Methods(http.MethodPatch)

	return r
}
