package handlers

import (
	"net/http"
	"strconv"

	"wordbuilder/internal/service"
)

// WordHandler serves the word catalog
type WordHandler struct {
	wordService *service.WordService
}

// NewWordHandler creates a new word handler
func NewWordHandler(wordService *service.WordService) *WordHandler {
	return &WordHandler{wordService: wordService}
}

// GetWords handles GET /api/words?level=N
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	levelParam := r.URL.Query().Get("level")
	if levelParam == "" {
		respondError(w, http.StatusBadRequest, "level is required")
		return
	}

	level, err := strconv.Atoi(levelParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, "level must be a number")
		return
	}

	words, err := h.wordService.GetByLevel(level)
	if err != nil {
		respondServiceError(w, err, "Failed to load words")
		return
	}

	respondJSON(w, http.StatusOK, words)
}
