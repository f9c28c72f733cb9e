package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wordbuilder/internal/models"
)

func registerTeacher(t *testing.T, env *testEnv, email, password, name string) {
	t.Helper()
	body := `{"email": "` + email + `", "password": "` + password + `", "name": "` + name + `"}`
	rec := httptest.NewRecorder()
	env.auth.Register(rec, httptest.NewRequest(http.MethodPost, "/api/teacher/register", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestRegisterEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	body := `{"email": "Ms.Lopez@School.org", "password": "correct-horse", "name": "Ms Lopez"}`
	rec := httptest.NewRecorder()
	env.auth.Register(rec, httptest.NewRequest(http.MethodPost, "/api/teacher/register", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var teacher models.Teacher
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &teacher); err != nil {
		t.Fatalf("failed to decode teacher: %v", err)
	}
	if teacher.Email != "ms.lopez@school.org" {
		t.Errorf("email = %q, want lowercased %q", teacher.Email, "ms.lopez@school.org")
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response leaks password material")
	}

	// Same email again conflicts
	rec = httptest.NewRecorder()
	env.auth.Register(rec, httptest.NewRequest(http.MethodPost, "/api/teacher/register",
		strings.NewReader(`{"email": "ms.lopez@school.org", "password": "another-pass", "name": "Imposter"}`)))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"email":`},
		{name: "bad email", body: `{"email": "not-an-email", "password": "correct-horse", "name": "Ms Lopez"}`},
		{name: "short password", body: `{"email": "a@b.org", "password": "short", "name": "Ms Lopez"}`},
		{name: "missing name", body: `{"email": "a@b.org", "password": "correct-horse"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.auth.Register(rec, httptest.NewRequest(http.MethodPost, "/api/teacher/register", strings.NewReader(tt.body)))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	registerTeacher(t, env, "ms.lopez@school.org", "correct-horse", "Ms Lopez")

	// Wrong password
	rec := httptest.NewRecorder()
	env.auth.Login(rec, httptest.NewRequest(http.MethodPost, "/api/teacher/login",
		strings.NewReader(`{"email": "ms.lopez@school.org", "password": "wrong"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// Correct credentials
	rec = httptest.NewRecorder()
	env.auth.Login(rec, httptest.NewRequest(http.MethodPost, "/api/teacher/login",
		strings.NewReader(`{"email": "ms.lopez@school.org", "password": "correct-horse"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var login loginResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &login); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if login.Token == "" {
		t.Error("token is empty")
	}
	if login.Teacher == nil || login.Teacher.Email != "ms.lopez@school.org" {
		t.Errorf("teacher = %+v, want ms.lopez@school.org", login.Teacher)
	}
	if login.ExpiresAt.IsZero() {
		t.Error("expires_at is zero")
	}
}

func TestRequireTeacherWithLoginToken(t *testing.T) {
	env := setupTestEnv(t)
	registerTeacher(t, env, "ms.lopez@school.org", "correct-horse", "Ms Lopez")

	rec := httptest.NewRecorder()
	env.auth.Login(rec, httptest.NewRequest(http.MethodPost, "/api/teacher/login",
		strings.NewReader(`{"email": "ms.lopez@school.org", "password": "correct-horse"}`)))
	var login loginResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &login); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	probe := env.mw.RequireTeacher(func(w http.ResponseWriter, r *http.Request) {
		teacher := GetTeacherFromContext(r.Context())
		if teacher == nil {
			t.Fatal("teacher missing from context")
		}
		respondJSON(w, http.StatusOK, teacher.Email)
	})

	// Valid token reaches the handler
	rec = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/teacher/sessions", nil)
	r.Header.Set("Authorization", "Bearer "+login.Token)
	probe(rec, r)
	if rec.Code != http.StatusOK {
		t.Errorf("status with token = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	// Garbage token is rejected
	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodGet, "/api/teacher/sessions", nil)
	r.Header.Set("Authorization", "Bearer not-a-real-token")
	probe(rec, r)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status with garbage token = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
