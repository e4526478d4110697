package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"penpals_server/services"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps service errors onto HTTP statuses. Infra failures become a
// generic 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidDomain),
		errors.Is(err, services.ErrNoPendingCode),
		errors.Is(err, services.ErrCodeExpired),
		errors.Is(err, services.ErrCodeMismatch),
		errors.Is(err, services.ErrSelfMatch),
		errors.Is(err, services.ErrAlreadyMatched),
		errors.Is(err, services.ErrIntroTooShort),
		errors.Is(err, services.ErrNotMatched),
		errors.Is(err, services.ErrMessageTooShort):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrEmailSend):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to send email"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UnixMilli(),
	})
}
