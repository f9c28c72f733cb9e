package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"wordbuilder/internal/database"
	"wordbuilder/internal/models"
	"wordbuilder/internal/repository"
	"wordbuilder/internal/validation"
)

// maxLevel bounds the difficulty levels the API accepts. The built-in
// catalog seeds levels 1-3; the cap leaves room for new word packs
// without accepting arbitrary integers into progress rows.
const maxLevel = 10

// AttemptInput is the payload for recording one word-building attempt
type AttemptInput struct {
	SessionID    string `json:"session_id"`
	Word         string `json:"word"`
	Level        int    `json:"level"`
	Success      bool   `json:"success"`
	TimeTaken    int    `json:"time_taken"`
	ErrorPattern string `json:"error_pattern,omitempty"`
}

// ProgressService records attempts and maintains per-level progress
// counters. The attempt log row and the progress upsert commit in a
// single transaction so the two tables never disagree.
type ProgressService struct {
	db          *database.DB
	sessionRepo *repository.SessionRepository
}

// NewProgressService creates a new progress service
func NewProgressService(db *database.DB, sessionRepo *repository.SessionRepository) *ProgressService {
	return &ProgressService{db: db, sessionRepo: sessionRepo}
}

// RecordAttempt validates and stores one attempt, upserts the matching
// (session, level) progress row and touches the session, all in one
// transaction. Returns the updated progress row.
func (s *ProgressService) RecordAttempt(input AttemptInput) (*models.Progress, error) {
	pattern, err := validateAttempt(&input)
	if err != nil {
		return nil, err
	}

	exists, err := s.sessionRepo.Exists(input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !exists {
		return nil, ErrSessionNotFound
	}

	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	attempt := &models.WordAttempt{
		SessionID:    input.SessionID,
		Word:         input.Word,
		Level:        input.Level,
		Success:      input.Success,
		TimeTaken:    input.TimeTaken,
		ErrorPattern: pattern,
		CreatedAt:    now,
	}
	if err := repository.NewAttemptRepository(tx).Insert(attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	progressRepo := repository.NewProgressRepository(tx)
	progress, err := progressRepo.GetBySessionLevel(input.SessionID, input.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	fresh := progress == nil
	if fresh {
		progress = &models.Progress{SessionID: input.SessionID, Level: input.Level}
	}

	applyAttempt(progress, input.Success, input.TimeTaken, now)

	if fresh {
		err = progressRepo.Insert(progress)
	} else {
		err = progressRepo.Update(progress)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert progress: %w", err)
	}

	if err := repository.NewSessionRepository(tx).Touch(input.SessionID); err != nil {
		return nil, fmt.Errorf("failed to touch session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit attempt: %w", err)
	}

	return progress, nil
}

// GetBySession returns all progress rows for a session ordered by level
func (s *ProgressService) GetBySession(sessionID string) ([]models.Progress, error) {
	exists, err := s.sessionRepo.Exists(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !exists {
		return nil, ErrSessionNotFound
	}
	rows, err := repository.NewProgressRepository(s.db).GetBySession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return rows, nil
}

// GetBySessionLevel returns the progress row for one (session, level)
// pair, or an unplayed zero row when the level has no attempts yet
func (s *ProgressService) GetBySessionLevel(sessionID string, level int) (*models.Progress, error) {
	if level < 1 || level > maxLevel {
		return nil, validation.ValidationError{Field: "level", Message: fmt.Sprintf("level must be between 1 and %d", maxLevel)}
	}
	exists, err := s.sessionRepo.Exists(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !exists {
		return nil, ErrSessionNotFound
	}
	progress, err := repository.NewProgressRepository(s.db).GetBySessionLevel(sessionID, level)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	if progress == nil {
		return &models.Progress{SessionID: sessionID, Level: level}, nil
	}
	return progress, nil
}

// applyAttempt folds one attempt into a progress row. Streaks count
// consecutive successes per (session, level): a success extends the
// current streak and may raise the best streak, a failure resets the
// current streak to zero and never lowers the best.
func applyAttempt(p *models.Progress, success bool, timeTaken int, now time.Time) {
	p.TotalAttempts++
	if success {
		p.CorrectAttempts++
		p.WordsCompleted++
		p.CurrentStreak++
		if p.CurrentStreak > p.BestStreak {
			p.BestStreak = p.CurrentStreak
		}
	} else {
		p.CurrentStreak = 0
	}
	p.TimeSpentSeconds += timeTaken
	p.LastPlayed = now
}

// validateAttempt normalizes the input in place and returns the typed
// error pattern to store, nil for successes and unclassified failures
func validateAttempt(input *AttemptInput) (*models.ErrorPattern, error) {
	if strings.TrimSpace(input.SessionID) == "" {
		return nil, validation.ValidationError{Field: "session_id", Message: "session_id is required"}
	}

	input.Word = strings.ToLower(strings.TrimSpace(input.Word))
	if input.Word == "" {
		return nil, validation.ValidationError{Field: "word", Message: "word is required"}
	}
	if utf8.RuneCountInString(input.Word) > 100 {
		return nil, validation.ValidationError{Field: "word", Message: "word must be at most 100 characters"}
	}

	if input.Level < 1 || input.Level > maxLevel {
		return nil, validation.ValidationError{Field: "level", Message: fmt.Sprintf("level must be between 1 and %d", maxLevel)}
	}

	if input.TimeTaken < 0 {
		return nil, validation.ValidationError{Field: "time_taken", Message: "time_taken must not be negative"}
	}

	raw := strings.TrimSpace(input.ErrorPattern)
	if input.Success {
		if raw != "" {
			return nil, validation.ValidationError{Field: "error_pattern", Message: "error_pattern is not allowed on a successful attempt"}
		}
		return nil, nil
	}
	if raw == "" {
		return nil, nil
	}
	pattern := models.ErrorPattern(raw)
	if !pattern.IsValid() {
		return nil, validation.ValidationError{Field: "error_pattern", Message: fmt.Sprintf("unknown error_pattern %q", raw)}
	}
	return &pattern, nil
}
