package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wordbuilder/internal/models"
)

func TestGetWordsEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	rec := httptest.NewRecorder()
	env.words.GetWords(rec, httptest.NewRequest(http.MethodGet, "/api/words?level=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var words []models.Word
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &words); err != nil {
		t.Fatalf("failed to decode words: %v", err)
	}
	if len(words) == 0 {
		t.Fatal("no words returned for level 1")
	}
	for _, word := range words {
		if word.Level != 1 {
			t.Errorf("word %q has level %d, want 1", word.Word, word.Level)
		}
		if word.Hint == "" {
			t.Errorf("word %q has no hint", word.Word)
		}
	}
}

func TestGetWordsEndpointRejectsBadLevel(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing level", query: ""},
		{name: "not a number", query: "?level=abc"},
		{name: "out of range", query: "?level=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.words.GetWords(rec, httptest.NewRequest(http.MethodGet, "/api/words"+tt.query, nil))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}
