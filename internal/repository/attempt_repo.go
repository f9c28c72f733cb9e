package repository

import (
	"database/sql"
	"fmt"
	"time"

	"wordbuilder/internal/database"
	"wordbuilder/internal/models"
)

// AttemptRepository handles the append-only word attempt log
type AttemptRepository struct {
	db database.DBTX
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db database.DBTX) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Insert appends one attempt to the log. Rows are never updated after
// this.
func (r *AttemptRepository) Insert(a *models.WordAttempt) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	var pattern interface{}
	if a.ErrorPattern != nil && *a.ErrorPattern != "" {
		pattern = string(*a.ErrorPattern)
	}

	query := `
		INSERT INTO word_attempts (session_id, word, level, success, time_taken, error_pattern, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		a.SessionID,
		a.Word,
		a.Level,
		a.Success,
		a.TimeTaken,
		pattern,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}

	a.ID = id
	return nil
}

// AttemptFilter narrows an attempt-log read. Nil fields are ignored, so
// the zero value reads the whole log.
type AttemptFilter struct {
	Level   *int
	Success *bool
}

// GetBySession retrieves a session's attempts in chronological order,
// narrowed to the filter's set fields
func (r *AttemptRepository) GetBySession(sessionID string, filter AttemptFilter) ([]models.WordAttempt, error) {
	query := `
		SELECT id, session_id, word, level, success, time_taken, error_pattern, created_at
		FROM word_attempts
		WHERE session_id = ?
	`
	args := []interface{}{sessionID}
	if filter.Level != nil {
		query += " AND level = ?"
		args = append(args, *filter.Level)
	}
	if filter.Success != nil {
		query += " AND success = ?"
		args = append(args, *filter.Success)
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.WordAttempt
	for rows.Next() {
		var a models.WordAttempt
		var pattern sql.NullString
		if err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.Word,
			&a.Level,
			&a.Success,
			&a.TimeTaken,
			&pattern,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		if pattern.Valid {
			p := models.ErrorPattern(pattern.String)
			a.ErrorPattern = &p
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// GetDailyActivity returns day-bucketed aggregates for a session's
// attempts since the given time, oldest day first. Days without
// activity produce no row; gap filling happens in the service layer.
func (r *AttemptRepository) GetDailyActivity(sessionID string, since time.Time) ([]models.DailyActivity, error) {
	day := r.db.GetDialect().DateString("created_at")
	query := fmt.Sprintf(`
		SELECT %s AS day,
		       COUNT(*),
		       SUM(CASE WHEN success THEN 1 ELSE 0 END),
		       COALESCE(AVG(time_taken), 0),
		       COUNT(DISTINCT word)
		FROM word_attempts
		WHERE session_id = ? AND created_at >= ?
		GROUP BY day
		ORDER BY day ASC
	`, day)

	rows, err := r.db.Query(query, sessionID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily activity: %w", err)
	}
	defer rows.Close()

	var days []models.DailyActivity
	for rows.Next() {
		var d models.DailyActivity
		if err := rows.Scan(
			&d.Date,
			&d.TotalAttempts,
			&d.SuccessfulAttempts,
			&d.AvgTime,
			&d.UniqueWords,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily activity: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}
