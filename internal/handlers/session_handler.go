package handlers

import (
	"net/http"

	"wordbuilder/internal/models"
	"wordbuilder/internal/service"
)

// SessionHandler handles learner session endpoints
type SessionHandler struct {
	sessionService  *service.SessionService
	progressService *service.ProgressService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService, progressService *service.ProgressService) *SessionHandler {
	return &SessionHandler{
		sessionService:  sessionService,
		progressService: progressService,
	}
}

// sessionDetail is the GET response: the session row plus everything
// the game needs to restore its state
type sessionDetail struct {
	Session  *models.Session        `json:"session"`
	Progress []models.Progress      `json:"progress"`
	Summary  models.ProgressSummary `json:"summary"`
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionService.Create(req.DisplayName)
	if err != nil {
		respondServiceError(w, err, "Failed to create session")
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// Get handles GET /api/sessions/{sessionID}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	session, err := h.sessionService.Get(sessionID)
	if err != nil {
		respondServiceError(w, err, "Failed to load session")
		return
	}

	progress, err := h.progressService.GetBySession(sessionID)
	if err != nil {
		respondServiceError(w, err, "Failed to load session progress")
		return
	}

	respondJSON(w, http.StatusOK, sessionDetail{
		Session:  session,
		Progress: progress,
		Summary:  models.Summarize(progress),
	})
}
