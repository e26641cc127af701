// Package handlers holds the small set of helpers every handler
// package under internal/api/handlers uses to decode requests and
// write JSON responses, so each operation's own package only has to
// hold its request/response shapes; RespondAppError maps every error
// to its status.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tutorly/booking-engine/internal/apperr"
)

// errorBody is the JSON envelope every non-2xx response uses.
type errorBody struct {
	Error string `json:"error"`
}

// DecodeJSON decodes r's body into v, rejecting unknown fields so a
// typo'd request field fails loudly instead of being silently ignored.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// RespondJSON writes v as a JSON body with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes a JSON error body with the given status code.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, errorBody{Error: message})
}

// RespondBadRequest writes a 400 with message.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized writes a 401 with message.
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden writes a 403 with message.
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound writes a 404 with message.
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict writes a 409 with message.
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError writes a generic 500, never leaking the
// underlying error to the client.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "internal server error")
}

// PathInt64 parses the mux path variable name as an int64, the way
// every {bookingId}/{recurringTemplateId} route needs it decoded
// before it can be handed to a usecase Request.
func PathInt64(r *http.Request, name string) (int64, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ErrorLogger is the narrow logging dependency RespondAppError needs;
// every handler package's own Logger interface satisfies it.
type ErrorLogger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// codeBody is the JSON envelope returned for an *apperr.Error: the
// stable machine-readable code alongside the human message, so a
// caller can dispatch on Code without string-matching Error.
type codeBody struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

// RespondAppError writes err as its mapped status/body pair. A
// validation or business error is logged at warn severity and never
// retried; an infrastructure error is logged at error severity and its
// cause is never leaked to the client.
func RespondAppError(w http.ResponseWriter, logger ErrorLogger, route string, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logger.Error("%s: unexpected error: %v", route, err)
		RespondInternalError(w)
		return
	}

	if appErr.IsInfrastructure() {
		logger.Error("%s: %s: %v", route, appErr.Code, err)
	} else {
		logger.Warn("%s: %s: %s", route, appErr.Code, appErr.Message)
	}

	RespondJSON(w, appErr.HTTPStatus(), codeBody{Code: string(appErr.Code), Message: appErr.Message})
}
