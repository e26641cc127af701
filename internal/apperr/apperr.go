// Package apperr defines stable, machine-readable error codes: every
// usecase and the webhook reducer return one of these instead of an
// ad-hoc error string, so HTTP handlers can map any of them to a status
// with errors.As and (*Error).HTTPStatus.
package apperr

import (
	"errors"
	"net/http"
)

// Code is one of the stable error codes the engine's external
// interface exposes.
type Code string

const (
	// Validation
	CodeInvalidDate          Code = "INVALID_DATE"
	CodeInvalidTimeSlot      Code = "INVALID_TIME_SLOT"
	CodeOverlappingTimeSlots Code = "OVERLAPPING_TIME_SLOTS"
	CodeInvalidInput         Code = "INVALID_INPUT"

	// Business rule
	CodePastBooking               Code = "PAST_BOOKING"
	CodePastTime                  Code = "PAST_TIME"
	CodeSameTime                  Code = "SAME_TIME"
	CodeAdvanceBookingLimit       Code = "ADVANCE_BOOKING_LIMIT"
	CodeYourselfBooking           Code = "YOURSELF_BOOKING"
	CodeInvalidBookingCombination Code = "INVALID_BOOKING_COMBINATION"
	CodeFreeMeetingTutor          Code = "FREE_MEETING_TUTOR"
	CodeNoPreviousMeeting         Code = "NO_PREVIOUS_MEETING"
	CodeOngoingFreeMeeting        Code = "ONGOING_FREE_MEETING"
	CodeNoPriorBooking            Code = "NO_PRIOR_BOOKING"
	CodeBookingConflict           Code = "BOOKING_CONFLICT"
	CodeRecurringTemplateConflict Code = "RECURRING_TEMPLATE_CONFLICT"
	CodeOverrideConflict          Code = "OVERRIDE_CONFLICT"
	CodeInvalidOverrideTime       Code = "INVALID_OVERRIDE_TIME"

	// State
	CodeInvalidStatus        Code = "INVALID_STATUS"
	CodeInvalidStatusTutor   Code = "INVALID_STATUS_TUTOR"
	CodeInvalidStatusStudent Code = "INVALID_STATUS_STUDENT"

	// Authorization
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeUserNotFound       Code = "USER_NOT_FOUND"
	CodeInvalidHost        Code = "INVALID_HOST"
	CodeInvalidParticipant Code = "INVALID_PARTICIPANT"
	CodeBookingNotFound    Code = "BOOKING_NOT_FOUND"

	// Payment
	CodeNoPaymentInfo                Code = "NO_PAYMENT_INFO"
	CodePaymentSessionCreationFailed Code = "PAYMENT_SESSION_CREATION_FAILED"
	CodePaymentCancellationFailed    Code = "PAYMENT_CANCELLATION_FAILED"
	CodeRefundProcessingFailed       Code = "REFUND_PROCESSING_FAILED"
	CodeInvalidMetadata              Code = "INVALID_METADATA"
	CodeInvalidSignature             Code = "INVALID_SIGNATURE"

	// Infrastructure
	CodeInternalServerError Code = "INTERNAL_SERVER_ERROR"
)

// Error is a tagged error value carrying a stable Code and a
// human-readable Message, replacing the exception-as-control-flow
// style of the source system.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New builds an *Error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds an *Error that also records cause for logging, without
// exposing cause to callers comparing with errors.Is against a Code.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Code, so
// errors.Is(err, apperr.New(apperr.CodeBookingNotFound, "")) style
// checks work, and so a package can declare its own
// var ErrBookingNotFound = apperr.New(apperr.CodeBookingNotFound, "...")
// for use with errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// IsCode reports whether err is an *Error carrying code.
func IsCode(err error, code Code) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// httpStatusByCode maps every stable Code to the 4xx/5xx status it
// carries on the wire. HTTPStatus falls back to 500 for a Code missing
// from this table.
var httpStatusByCode = map[Code]int{
	CodeInvalidDate:          http.StatusBadRequest,
	CodeInvalidTimeSlot:      http.StatusBadRequest,
	CodeOverlappingTimeSlots: http.StatusBadRequest,
	CodeInvalidInput:         http.StatusBadRequest,

	CodePastBooking:               http.StatusBadRequest,
	CodePastTime:                  http.StatusBadRequest,
	CodeSameTime:                  http.StatusBadRequest,
	CodeAdvanceBookingLimit:       http.StatusBadRequest,
	CodeYourselfBooking:           http.StatusBadRequest,
	CodeInvalidBookingCombination: http.StatusBadRequest,
	CodeFreeMeetingTutor:          http.StatusBadRequest,
	CodeNoPreviousMeeting:         http.StatusBadRequest,
	CodeOngoingFreeMeeting:        http.StatusConflict,
	CodeNoPriorBooking:            http.StatusBadRequest,
	CodeBookingConflict:           http.StatusConflict,
	CodeRecurringTemplateConflict: http.StatusConflict,
	CodeOverrideConflict:          http.StatusConflict,
	CodeInvalidOverrideTime:       http.StatusBadRequest,

	CodeInvalidStatus:        http.StatusConflict,
	CodeInvalidStatusTutor:   http.StatusConflict,
	CodeInvalidStatusStudent: http.StatusConflict,

	CodeUnauthorized:       http.StatusForbidden,
	CodeUserNotFound:       http.StatusNotFound,
	CodeInvalidHost:        http.StatusBadRequest,
	CodeInvalidParticipant: http.StatusBadRequest,
	CodeBookingNotFound:    http.StatusNotFound,

	CodeNoPaymentInfo:                http.StatusConflict,
	CodePaymentSessionCreationFailed: http.StatusBadGateway,
	CodePaymentCancellationFailed:    http.StatusBadGateway,
	CodeRefundProcessingFailed:       http.StatusBadGateway,
	CodeInvalidMetadata:              http.StatusBadRequest,
	CodeInvalidSignature:             http.StatusUnauthorized,

	CodeInternalServerError: http.StatusInternalServerError,
}

// HTTPStatus returns the 4xx/5xx-equivalent status for e.Code, falling
// back to 500 for a code this table doesn't know about.
func (e *Error) HTTPStatus() int {
	if status, ok := httpStatusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsInfrastructure reports whether e should be logged at error
// severity, true only for CodeInternalServerError. The gateway-failure
// codes still map to 502 through HTTPStatus but are not infrastructure
// errors by this test.
func (e *Error) IsInfrastructure() bool {
	return e.Code == CodeInternalServerError
}
