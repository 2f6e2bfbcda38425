package util

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"resultportal/internal/observability"
	"resultportal/internal/shared"
)

// JSONResponse structure for successful responses
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// JSONError structure for error responses
type JSONError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON is a helper to write JSON success responses
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := JSONResponse{Success: true, Data: payload}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

// WriteJSONError is a helper to write standardized error JSON responses
func WriteJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorResponse := JSONError{
		Success: false,
		Message: message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("Error writing JSON error response: %v", err)
	}
}

// HandleServiceError translates service-layer errors to HTTP responses.
// This is the single place the error taxonomy meets status codes. Caller
// faults map to 4xx and stay local; storage outages and unclassified errors
// map to 5xx and are captured for error reporting.
func HandleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrDuplicateSeatNumber):
		WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, shared.ErrAuthenticationFailed):
		// Deliberately generic: never leaks which credential was wrong.
		WriteJSONError(w, http.StatusUnauthorized, "authentication failed")
	case errors.Is(err, shared.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, shared.ErrRepositoryUnavailable):
		observability.CaptureErr("repository", err)
		WriteJSONError(w, http.StatusServiceUnavailable, "storage is temporarily unavailable")
	default:
		observability.CaptureErr("internal", err)
		WriteJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ExtractToken extracts the token from the Authorization header (Bearer <token>)
func ExtractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	// Expect header: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
