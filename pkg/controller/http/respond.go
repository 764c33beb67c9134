package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teranga-immo/teranga/pkg/domain/types"
	"github.com/teranga-immo/teranga/pkg/utils/errutil"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		errutil.Handle(ctx, err, "failed to encode response")
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses. The
// envelope never carries internal detail, only the public message.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
		msg = "not found"
	case errors.Is(err, types.ErrForbidden):
		status = http.StatusForbidden
		msg = "forbidden"
	case errors.Is(err, types.ErrConflict):
		status = http.StatusConflict
		msg = "conflict, retry with fresh data"
	case errors.Is(err, types.ErrInvalidTransition):
		status = http.StatusConflict
		msg = "operation not allowed in the current state"
	case errors.Is(err, types.ErrValidation), errors.Is(err, types.ErrCapabilityMismatch):
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	default:
		errutil.Handle(ctx, err, "request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(envelope{Success: false, Error: msg}); encErr != nil {
		errutil.Handle(ctx, encErr, "failed to encode error response")
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
