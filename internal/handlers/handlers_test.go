package handlers

import (
	"path/filepath"
	"testing"
	"time"

	"wordbuilder/internal/database"
	"wordbuilder/internal/models"
	"wordbuilder/internal/repository"
	"wordbuilder/internal/security"
	"wordbuilder/internal/service"
)

// testEnv wires the full handler stack over a fresh sqlite database.
// The email service runs in disabled mode so no test touches AWS.
type testEnv struct {
	db       *database.DB
	sessions *SessionHandler
	progress *ProgressHandler
	words    *WordHandler
	auth     *AuthHandler
	teacher  *TeacherHandler
	health   *HealthHandler
	mw       *Middleware

	sessionService  *service.SessionService
	progressService *service.ProgressService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	sessionRepo := repository.NewSessionRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)

	tokens := security.NewTokenService("test-secret", time.Hour)
	sessionService := service.NewSessionService(sessionRepo)
	progressService := service.NewProgressService(db, sessionRepo)
	teacherService := service.NewTeacherService(sessionRepo, progressRepo, attemptRepo)
	authService := service.NewAuthService(teacherRepo, tokens, "")
	wordService := service.NewWordService(db)
	reportService := service.NewReportService(teacherService)

	emailService, err := service.NewEmailService("eu-west-1", "", "Word Builder", "http://localhost:8080")
	if err != nil {
		t.Fatalf("failed to create email service: %v", err)
	}

	if err := wordService.Seed(); err != nil {
		t.Fatalf("failed to seed words: %v", err)
	}

	return &testEnv{
		db:       db,
		sessions: NewSessionHandler(sessionService, progressService),
		progress: NewProgressHandler(progressService),
		words:    NewWordHandler(wordService),
		auth:     NewAuthHandler(authService),
		teacher:  NewTeacherHandler(sessionService, teacherService, reportService, emailService),
		health:   NewHealthHandler(db),
		mw:       NewMiddleware(authService, security.NewRateLimiter(100, time.Minute), "*"),

		sessionService:  sessionService,
		progressService: progressService,
	}
}

func (e *testEnv) createSession(t *testing.T, displayName string) *models.Session {
	t.Helper()
	session, err := e.sessionService.Create(displayName)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}

func (e *testEnv) recordAttempt(t *testing.T, input service.AttemptInput) {
	t.Helper()
	if _, err := e.progressService.RecordAttempt(input); err != nil {
		t.Fatalf("failed to record attempt: %v", err)
	}
}
