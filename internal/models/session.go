package models

import "time"

// Session represents one learner's continuous play record, identified
// by an opaque token the frontend stores between visits
type Session struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	LastActive  time.Time `json:"last_active"`
}

// SessionSummary pairs a session with roll-up stats for the dashboard
// session list
type SessionSummary struct {
	Session
	TotalAttempts   int     `json:"total_attempts"`
	CorrectAttempts int     `json:"correct_attempts"`
	WordsCompleted  int     `json:"words_completed"`
	HighestLevel    int     `json:"highest_level"`
	Accuracy        float64 `json:"accuracy"`
}
