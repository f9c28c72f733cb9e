package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wordbuilder/internal/security"
	"wordbuilder/internal/service"
	"wordbuilder/internal/validation"
)

// apiResponse is the envelope every JSON endpoint answers with. Data is
// set on success, Error on failure, never both.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// respondJSON writes a success envelope
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data}); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError writes a failure envelope
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// respondServiceError maps service-layer errors onto HTTP responses.
// Validation problems and known sentinels carry their message to the
// client; anything else logs the detail and answers with a generic 500.
func respondServiceError(w http.ResponseWriter, err error, logContext string) {
	var validationErr validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusConflict, "email is already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrInvalidSetupCode):
		respondError(w, http.StatusForbidden, "invalid setup code")
	case errors.Is(err, security.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "invalid or expired token")
	default:
		log.Printf("%s: %v", logContext, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
