package models

import "time"

// Progress holds per-level counters for a session. One row exists per
// (session, level) pair, upserted after each attempt.
type Progress struct {
	ID               int64     `json:"id"`
	SessionID        string    `json:"session_id"`
	Level            int       `json:"level"`
	WordsCompleted   int       `json:"words_completed"`
	TotalAttempts    int       `json:"total_attempts"`
	CorrectAttempts  int       `json:"correct_attempts"`
	CurrentStreak    int       `json:"current_streak"`
	BestStreak       int       `json:"best_streak"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	LastPlayed       time.Time `json:"last_played"`
}

// Accuracy returns correct/total in [0,1], or 0 when nothing has been
// attempted yet
func (p *Progress) Accuracy() float64 {
	if p.TotalAttempts == 0 {
		return 0
	}
	return float64(p.CorrectAttempts) / float64(p.TotalAttempts)
}

// ProgressSummary rolls a session's progress rows up across levels
type ProgressSummary struct {
	LevelsPlayed     int     `json:"levels_played"`
	HighestLevel     int     `json:"highest_level"`
	WordsCompleted   int     `json:"words_completed"`
	TotalAttempts    int     `json:"total_attempts"`
	CorrectAttempts  int     `json:"correct_attempts"`
	Accuracy         float64 `json:"accuracy"`
	BestStreak       int     `json:"best_streak"`
	TimeSpentSeconds int     `json:"time_spent_seconds"`
}

// Summarize folds per-level progress rows into a single summary
func Summarize(rows []Progress) ProgressSummary {
	var s ProgressSummary
	s.LevelsPlayed = len(rows)
	for _, p := range rows {
		if p.Level > s.HighestLevel {
			s.HighestLevel = p.Level
		}
		s.WordsCompleted += p.WordsCompleted
		s.TotalAttempts += p.TotalAttempts
		s.CorrectAttempts += p.CorrectAttempts
		if p.BestStreak > s.BestStreak {
			s.BestStreak = p.BestStreak
		}
		s.TimeSpentSeconds += p.TimeSpentSeconds
	}
	if s.TotalAttempts > 0 {
		s.Accuracy = float64(s.CorrectAttempts) / float64(s.TotalAttempts)
	}
	return s
}
