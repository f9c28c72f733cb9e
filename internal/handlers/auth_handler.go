package handlers

import (
	"net/http"
	"time"

	"wordbuilder/internal/models"
	"wordbuilder/internal/service"
)

// AuthHandler handles teacher account registration and login
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// loginResponse carries the bearer token the dashboard stores for
// subsequent requests
type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Teacher   *models.Teacher `json:"teacher"`
}

// Register handles POST /api/teacher/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Name      string `json:"name"`
		SetupCode string `json:"setup_code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	teacher, err := h.authService.Register(req.Email, req.Password, req.Name, req.SetupCode)
	if err != nil {
		respondServiceError(w, err, "Failed to register teacher")
		return
	}

	respondJSON(w, http.StatusCreated, teacher)
}

// Login handles POST /api/teacher/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, expiresAt, teacher, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err, "Failed to log in")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Teacher:   teacher,
	})
}
