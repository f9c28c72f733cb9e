package repository

import (
	"database/sql"
	"fmt"
	"time"

	"wordbuilder/internal/database"
	"wordbuilder/internal/models"
)

// SessionRepository handles learner session database operations
type SessionRepository struct {
	db database.DBTX
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new learner session
func (r *SessionRepository) Create(sessionID, displayName string) (*models.Session, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO sessions (session_id, display_name, created_at, last_active)
		VALUES (?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, sessionID, displayName, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.Session{
		ID:          id,
		SessionID:   sessionID,
		DisplayName: displayName,
		CreatedAt:   now,
		LastActive:  now,
	}, nil
}

// GetBySessionID retrieves a session by its opaque token. Returns
// (nil, nil) when the session does not exist.
func (r *SessionRepository) GetBySessionID(sessionID string) (*models.Session, error) {
	query := `
		SELECT id, session_id, display_name, created_at, last_active
		FROM sessions
		WHERE session_id = ?
	`

	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.SessionID,
		&session.DisplayName,
		&session.CreatedAt,
		&session.LastActive,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// Exists reports whether a session token is already taken
func (r *SessionRepository) Exists(sessionID string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM sessions WHERE session_id = ?"
	if err := r.db.QueryRow(query, sessionID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return count > 0, nil
}

// Touch updates a session's last_active timestamp
func (r *SessionRepository) Touch(sessionID string) error {
	query := "UPDATE sessions SET last_active = ? WHERE session_id = ?"
	if _, err := r.db.Exec(query, time.Now().UTC(), sessionID); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// ListWithSummary returns sessions ordered by recent activity, each
// with progress roll-ups for the dashboard list
func (r *SessionRepository) ListWithSummary(limit, offset int) ([]models.SessionSummary, error) {
	query := `
		SELECT s.id, s.session_id, s.display_name, s.created_at, s.last_active,
		       COALESCE(SUM(p.total_attempts), 0),
		       COALESCE(SUM(p.correct_attempts), 0),
		       COALESCE(SUM(p.words_completed), 0),
		       COALESCE(MAX(p.level), 0)
		FROM sessions s
		LEFT JOIN progress p ON p.session_id = s.session_id
		GROUP BY s.id, s.session_id, s.display_name, s.created_at, s.last_active
		ORDER BY s.last_active DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var summaries []models.SessionSummary
	for rows.Next() {
		var s models.SessionSummary
		if err := rows.Scan(
			&s.ID,
			&s.SessionID,
			&s.DisplayName,
			&s.CreatedAt,
			&s.LastActive,
			&s.TotalAttempts,
			&s.CorrectAttempts,
			&s.WordsCompleted,
			&s.HighestLevel,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session summary: %w", err)
		}
		if s.TotalAttempts > 0 {
			s.Accuracy = float64(s.CorrectAttempts) / float64(s.TotalAttempts)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// Count returns the total number of sessions
func (r *SessionRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// PurgeInactive deletes sessions whose last activity is older than the
// cutoff. Progress and attempt rows go with them via cascade.
func (r *SessionRepository) PurgeInactive(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec("DELETE FROM sessions WHERE last_active < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return result.RowsAffected()
}
