package repository

import (
	"database/sql"
	"fmt"

	"wordbuilder/internal/database"
	"wordbuilder/internal/models"
)

// ProgressRepository handles per-level progress database operations
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetBySessionLevel retrieves the progress row for one (session, level)
// pair. Returns (nil, nil) when no row exists yet.
func (r *ProgressRepository) GetBySessionLevel(sessionID string, level int) (*models.Progress, error) {
	query := `
		SELECT id, session_id, level, words_completed, total_attempts,
		       correct_attempts, current_streak, best_streak,
		       time_spent_seconds, last_played
		FROM progress
		WHERE session_id = ? AND level = ?
	`

	p := &models.Progress{}
	err := r.db.QueryRow(query, sessionID, level).Scan(
		&p.ID,
		&p.SessionID,
		&p.Level,
		&p.WordsCompleted,
		&p.TotalAttempts,
		&p.CorrectAttempts,
		&p.CurrentStreak,
		&p.BestStreak,
		&p.TimeSpentSeconds,
		&p.LastPlayed,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return p, nil
}

// GetBySession retrieves all progress rows for a session ordered by level
func (r *ProgressRepository) GetBySession(sessionID string) ([]models.Progress, error) {
	query := `
		SELECT id, session_id, level, words_completed, total_attempts,
		       correct_attempts, current_streak, best_streak,
		       time_spent_seconds, last_played
		FROM progress
		WHERE session_id = ?
		ORDER BY level ASC
	`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	var records []models.Progress
	for rows.Next() {
		var p models.Progress
		if err := rows.Scan(
			&p.ID,
			&p.SessionID,
			&p.Level,
			&p.WordsCompleted,
			&p.TotalAttempts,
			&p.CorrectAttempts,
			&p.CurrentStreak,
			&p.BestStreak,
			&p.TimeSpentSeconds,
			&p.LastPlayed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		records = append(records, p)
	}

	return records, rows.Err()
}

// Insert creates the first progress row for a (session, level) pair
func (r *ProgressRepository) Insert(p *models.Progress) error {
	query := `
		INSERT INTO progress (session_id, level, words_completed, total_attempts,
		                      correct_attempts, current_streak, best_streak,
		                      time_spent_seconds, last_played)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		p.SessionID,
		p.Level,
		p.WordsCompleted,
		p.TotalAttempts,
		p.CorrectAttempts,
		p.CurrentStreak,
		p.BestStreak,
		p.TimeSpentSeconds,
		p.LastPlayed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert progress: %w", err)
	}

	p.ID = id
	return nil
}

// Update rewrites the counters for an existing (session, level) row
func (r *ProgressRepository) Update(p *models.Progress) error {
	query := `
		UPDATE progress
		SET words_completed = ?, total_attempts = ?, correct_attempts = ?,
		    current_streak = ?, best_streak = ?, time_spent_seconds = ?,
		    last_played = ?
		WHERE session_id = ? AND level = ?
	`

	_, err := r.db.Exec(query,
		p.WordsCompleted,
		p.TotalAttempts,
		p.CorrectAttempts,
		p.CurrentStreak,
		p.BestStreak,
		p.TimeSpentSeconds,
		p.LastPlayed,
		p.SessionID,
		p.Level,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}
