package models

import "time"

// Trend classifications for a session's attempt history. Accuracy
// trends use improving/declining/stable; speed trends use
// faster/slower/stable.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
	TrendFaster    = "faster"
	TrendSlower    = "slower"
)

// SessionAnalytics summarizes a session's attempt history for the
// teacher dashboard
type SessionAnalytics struct {
	TotalAttempts      int                `json:"total_attempts"`
	SuccessfulAttempts int                `json:"successful_attempts"`
	FailedAttempts     int                `json:"failed_attempts"`
	AccuracyTrend      string             `json:"accuracy_trend"`
	SpeedTrend         string             `json:"speed_trend"`
	LearningIndicators LearningIndicators `json:"learning_indicators"`
}

// LearningIndicators carries the half-split measurements behind the
// trend classifications so the dashboard can show its working
type LearningIndicators struct {
	EarlyAccuracy  float64 `json:"early_accuracy"`
	RecentAccuracy float64 `json:"recent_accuracy"`
	AccuracyChange float64 `json:"accuracy_change"`
	EarlyAvgTime   float64 `json:"early_avg_time"`
	RecentAvgTime  float64 `json:"recent_avg_time"`
}

// ErrorPatternSummary groups the failed attempts sharing one error
// pattern
type ErrorPatternSummary struct {
	Type          ErrorPattern `json:"type"`
	Frequency     int          `json:"frequency"`
	AffectedWords []string     `json:"affected_words"`
	AvgTime       float64      `json:"avg_time"`
	Description   string       `json:"description"`
}

// Recommendation is a priority-ranked teaching suggestion derived from
// one error pattern
type Recommendation struct {
	ErrorType  ErrorPattern `json:"error_type"`
	Priority   int          `json:"priority"`
	Strategy   string       `json:"strategy"`
	Activities []string     `json:"activities"`
}

// DailyActivity is one day bucket in the activity timeline. Date is a
// YYYY-MM-DD string.
type DailyActivity struct {
	Date               string  `json:"date"`
	TotalAttempts      int     `json:"total_attempts"`
	SuccessfulAttempts int     `json:"successful_attempts"`
	AvgTime            float64 `json:"avg_time"`
	UniqueWords        int     `json:"unique_words"`
}

// SessionReport is the full dashboard report for one session
type SessionReport struct {
	SessionID       string                `json:"session_id"`
	DisplayName     string                `json:"display_name"`
	GeneratedAt     time.Time             `json:"generated_at"`
	Progress        []Progress            `json:"progress"`
	Summary         ProgressSummary       `json:"summary"`
	Analytics       SessionAnalytics      `json:"analytics"`
	ErrorPatterns   []ErrorPatternSummary `json:"error_patterns"`
	Recommendations []Recommendation      `json:"recommendations"`
	Timeline        []DailyActivity       `json:"timeline"`
}
