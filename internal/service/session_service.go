package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wordbuilder/internal/models"
	"wordbuilder/internal/repository"
	"wordbuilder/internal/security"
	"wordbuilder/internal/validation"
)

var (
	// ErrSessionNotFound signals a lookup for a session token that
	// doesn't exist
	ErrSessionNotFound = errors.New("session not found")
)

// tokenAttempts bounds the collision-checked token generation loop
const tokenAttempts = 5

// SessionService manages the learner session directory
type SessionService struct {
	sessionRepo *repository.SessionRepository
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo *repository.SessionRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo}
}

// Create validates the display name, allocates a unique session token
// and stores the new session
func (s *SessionService) Create(displayName string) (*models.Session, error) {
	if err := validation.ValidateDisplayName(displayName); err != nil {
		return nil, err
	}

	var token string
	for i := 0; i < tokenAttempts; i++ {
		candidate := security.GenerateSessionID()
		taken, err := s.sessionRepo.Exists(candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to check token: %w", err)
		}
		if !taken {
			token = candidate
			break
		}
	}
	if token == "" {
		return nil, errors.New("failed to allocate a unique session token")
	}

	session, err := s.sessionRepo.Create(token, strings.TrimSpace(displayName))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Get retrieves a session by token
func (s *SessionService) Get(sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// List returns recently active sessions with their progress roll-ups,
// plus the total session count for pagination
func (s *SessionService) List(limit, offset int) ([]models.SessionSummary, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	summaries, err := s.sessionRepo.ListWithSummary(limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	total, err := s.sessionRepo.Count()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return summaries, total, nil
}

// PurgeInactive deletes sessions idle for longer than retentionDays.
// Progress and attempt rows cascade with them.
func (s *SessionService) PurgeInactive(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	purged, err := s.sessionRepo.PurgeInactive(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge inactive sessions: %w", err)
	}
	return purged, nil
}
