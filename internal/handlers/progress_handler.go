package handlers

import (
	"net/http"
	"strconv"

	"wordbuilder/internal/service"
)

// ProgressHandler handles attempt recording and progress reads
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// RecordAttempt handles POST /api/attempts. The response carries the
// updated progress row for the attempt's level so the game can refresh
// its scoreboard without a second request.
func (h *ProgressHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	var input service.AttemptInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.progressService.RecordAttempt(input)
	if err != nil {
		respondServiceError(w, err, "Failed to record attempt")
		return
	}

	respondJSON(w, http.StatusCreated, progress)
}

// GetProgress handles GET /api/progress?session_id=&level=. Without a
// level it returns every per-level row for the session; with one it
// returns that single row, zeroed when the level is unplayed.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	levelParam := r.URL.Query().Get("level")
	if levelParam == "" {
		rows, err := h.progressService.GetBySession(sessionID)
		if err != nil {
			respondServiceError(w, err, "Failed to load progress")
			return
		}
		respondJSON(w, http.StatusOK, rows)
		return
	}

	level, err := strconv.Atoi(levelParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, "level must be a number")
		return
	}

	row, err := h.progressService.GetBySessionLevel(sessionID, level)
	if err != nil {
		respondServiceError(w, err, "Failed to load progress")
		return
	}
	respondJSON(w, http.StatusOK, row)
}
