package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"wordbuilder/internal/models"
	"wordbuilder/internal/security"
	"wordbuilder/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const TeacherContextKey ContextKey = "teacher"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService   *service.AuthService
	limiter       *security.RateLimiter
	allowedOrigin string
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter, allowedOrigin string) *Middleware {
	return &Middleware{
		authService:   authService,
		limiter:       limiter,
		allowedOrigin: allowedOrigin,
	}
}

// RequireTeacher guards dashboard routes behind a Bearer token. The
// authenticated teacher is added to the request context.
func (m *Middleware) RequireTeacher(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "missing or malformed authorization header")
			return
		}

		teacher, err := m.authService.Authenticate(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), TeacherContextKey, teacher)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit applies the per-client limiter, keyed by client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.GetClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}
		next(w, r)
	}
}

// CORS sets cross-origin headers and short-circuits preflight requests.
// The game frontend is served from the same origin in production, but
// local development runs it from a separate dev server.
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", m.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer ..."
// header
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// GetTeacherFromContext retrieves the authenticated teacher from the
// request context
func GetTeacherFromContext(ctx context.Context) *models.Teacher {
	teacher, ok := ctx.Value(TeacherContextKey).(*models.Teacher)
	if !ok {
		return nil
	}
	return teacher
}
