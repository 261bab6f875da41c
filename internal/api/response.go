package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/parsererror"
	"fjacquet/fintrack/internal/store"

	"github.com/go-chi/chi/v5/middleware"
)

// ResponseHandler writes JSON envelopes and maps errors to status codes.
type ResponseHandler interface {
	WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any)
	WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string)
	HandleError(w http.ResponseWriter, r *http.Request, err error)
}

// SuccessEnvelope wraps every successful payload.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type responseHandler struct {
	logger logging.Logger
}

// NewResponseHandler returns the default ResponseHandler.
func NewResponseHandler(logger logging.Logger) ResponseHandler {
	return &responseHandler{logger: logger}
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(SuccessEnvelope{Success: true, Data: data}); err != nil {
		h.requestLogger(r).WithError(err).Error("Failed to encode success response")
	}
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: message}); err != nil {
		h.requestLogger(r).WithError(err).Error("Failed to encode error response",
			logging.F(logging.FieldStatus, status))
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := h.requestLogger(r).WithError(err)

	switch {
	case errors.Is(err, parsererror.ErrUnsupportedFormat):
		log.Warn("Unsupported statement format")
		h.WriteError(w, r, http.StatusUnsupportedMediaType, "unsupported_format", err.Error())

	case errors.Is(err, parsererror.ErrEmptyResult):
		log.Warn("Statement had no usable transactions")
		h.WriteError(w, r, http.StatusUnprocessableEntity, "empty_result", err.Error())

	case errors.Is(err, parsererror.ErrStructuralParse):
		log.Warn("Malformed statement")
		h.WriteError(w, r, http.StatusUnprocessableEntity, "malformed_statement", err.Error())

	case errors.Is(err, parsererror.ErrValidation):
		log.Warn("Validation failed")
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", err.Error())

	case errors.Is(err, store.ErrNotFound):
		log.Warn("Resource not found")
		h.WriteError(w, r, http.StatusNotFound, "not_found", err.Error())

	default:
		log.Error("Unexpected error", logging.F("type", fmt.Sprintf("%T", err)))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func (h *responseHandler) requestLogger(r *http.Request) logging.Logger {
	return h.logger.WithFields(
		logging.F(logging.FieldMethod, r.Method),
		logging.F(logging.FieldPath, r.URL.Path),
		logging.F("request_id", middleware.GetReqID(r.Context())),
	)
}

// badRequest reports a malformed request body or form.
func badRequest(reason string) error {
	return &parsererror.ValidationError{Entity: "request", Reason: reason}
}
