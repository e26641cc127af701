package process_webhook

import (
	"io"
	"net/http"

	"github.com/tutorly/booking-engine/internal/api/handlers"
	"github.com/tutorly/booking-engine/internal/apperr"
	processWebhook "github.com/tutorly/booking-engine/internal/usecase/process_webhook"
)

// Handler serves "POST payments/webhook".
type Handler struct {
	useCase UseCase
	logger  Logger
}

// NewHandler builds a Handler.
func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle reads the raw body, pairs it with the signature header and
// hands both to the usecase unparsed, verification happens on the
// exact bytes the gateway signed.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		handlers.RespondAppError(w, h.logger, "POST /payments/webhook", apperr.Wrap(apperr.CodeInvalidInput, "could not read webhook body", err))
		return
	}

	req := &processWebhook.Request{
		RawBody:   raw,
		Signature: r.Header.Get(signatureHeader),
	}

	if _, err := h.useCase.Execute(r.Context(), req); err != nil {
		handlers.RespondAppError(w, h.logger, "POST /payments/webhook", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, nil)
}
