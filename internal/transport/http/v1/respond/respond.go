// Package respond writes JSON responses and maps service errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/corray333/backend-labs/store/internal/transport/http/v1/decode"
)

// ErrorBody is the payload of every non-2xx response.
type ErrorBody struct {
	Error   string           `json:"error"`
	Message string           `json:"message,omitempty"`
	Fields  []errs.FieldError `json:"fields,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// NoContent writes 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error maps err to a status and error body. Unexpected errors are logged and
// their text is not sent to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := errs.AsValidation(err); ok {
		JSON(w, http.StatusBadRequest, ErrorBody{Error: "validation_failed", Fields: ve.Fields})

		return
	}

	status, code := classify(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Error handling request",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		JSON(w, status, ErrorBody{Error: code, Message: http.StatusText(status)})

		return
	}

	slog.DebugContext(r.Context(), "Request rejected", "status", status, "error", err)
	JSON(w, status, ErrorBody{Error: code, Message: err.Error()})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, decode.ErrBadRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrInvalidReference):
		return http.StatusUnprocessableEntity, "invalid_reference"
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errs.ErrInUse):
		return http.StatusConflict, "in_use"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
