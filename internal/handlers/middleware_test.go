package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wordbuilder/internal/security"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{name: "valid", header: "Bearer abc123", want: "abc123", wantOK: true},
		{name: "missing", header: "", wantOK: false},
		{name: "wrong scheme", header: "Basic abc123", wantOK: false},
		{name: "bare scheme", header: "Bearer ", wantOK: false},
		{name: "no scheme", header: "abc123", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			got, ok := bearerToken(r)
			if ok != tt.wantOK {
				t.Errorf("bearerToken() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("bearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireTeacherMissingHeader(t *testing.T) {
	mw := NewMiddleware(nil, nil, "*")
	handler := mw.RequireTeacher(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran without credentials")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/teacher/sessions", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if env := decodeEnvelope(t, rec); env.Success {
		t.Error("success = true, want false")
	}
}

func TestRateLimit(t *testing.T) {
	mw := NewMiddleware(nil, security.NewRateLimiter(2, time.Minute), "*")

	var served int
	handler := mw.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		served++
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/teacher/login", nil)
		r.RemoteAddr = "10.0.0.1:9999"
		handler(rec, r)

		if i < 2 && rec.Code != http.StatusOK {
			t.Errorf("request %d status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
		if i == 2 && rec.Code != http.StatusTooManyRequests {
			t.Errorf("request %d status = %d, want %d", i+1, rec.Code, http.StatusTooManyRequests)
		}
	}

	if served != 2 {
		t.Errorf("served = %d, want 2", served)
	}

	// A different client is not affected by the first client's window
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/teacher/login", nil)
	r.RemoteAddr = "10.0.0.2:9999"
	handler(rec, r)
	if rec.Code != http.StatusOK {
		t.Errorf("other client status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestCORSPreflight(t *testing.T) {
	mw := NewMiddleware(nil, nil, "http://localhost:5173")

	handler := mw.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran on a preflight request")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/sessions", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:5173")
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Error("Access-Control-Allow-Headers not set")
	}
}

func TestCORSPassesThrough(t *testing.T) {
	mw := NewMiddleware(nil, nil, "*")

	handler := mw.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
}
