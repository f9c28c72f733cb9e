package scheduler

import (
	"errors"
	"path/filepath"
	"testing"

	"wordbuilder/internal/database"
	"wordbuilder/internal/repository"
	"wordbuilder/internal/service"
)

func setupSessionService(t *testing.T) (*database.DB, *service.SessionService) {
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

	return db, service.NewSessionService(repository.NewSessionRepository(db))
}

func TestPurgeInactiveSessionsJob(t *testing.T) {
	db, sessions := setupSessionService(t)

	session, err := sessions.Create("Amina")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := db.Exec("UPDATE sessions SET last_active = ? WHERE session_id = ?",
		"2020-01-01 00:00:00", session.SessionID); err != nil {
		t.Fatalf("failed to backdate session: %v", err)
	}

	s := New(sessions, 30)
	s.purgeInactiveSessions()

	if _, err := sessions.Get(session.SessionID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Get() after sweep error = %v, want ErrSessionNotFound", err)
	}
}

func TestStartWithoutRetention(t *testing.T) {
	s := New(nil, 0)
	s.Start()
	defer s.Stop()

	if n := s.scheduler.Len(); n != 0 {
		t.Errorf("scheduled jobs = %d, want 0", n)
	}
}

func TestStartSchedulesSweep(t *testing.T) {
	_, sessions := setupSessionService(t)

	s := New(sessions, 30)
	s.Start()
	defer s.Stop()

	if n := s.scheduler.Len(); n != 1 {
		t.Errorf("scheduled jobs = %d, want 1", n)
	}
}
