package models

import "time"

// ErrorPattern classifies why a word-building attempt failed
type ErrorPattern string

const (
	ErrorVowelConfusion     ErrorPattern = "vowel_confusion"
	ErrorConsonantConfusion ErrorPattern = "consonant_confusion"
	ErrorLetterOrder        ErrorPattern = "letter_order"
	ErrorLengthMismatch     ErrorPattern = "length_mismatch"
	ErrorPhoneticConfusion  ErrorPattern = "phonetic_confusion"
	ErrorVisualConfusion    ErrorPattern = "visual_confusion"
	ErrorOther              ErrorPattern = "other"
)

// ErrorPatterns is the fixed taxonomy of failure classifications
var ErrorPatterns = []ErrorPattern{
	ErrorVowelConfusion,
	ErrorConsonantConfusion,
	ErrorLetterOrder,
	ErrorLengthMismatch,
	ErrorPhoneticConfusion,
	ErrorVisualConfusion,
	ErrorOther,
}

// IsValid reports whether p belongs to the fixed taxonomy
func (p ErrorPattern) IsValid() bool {
	for _, known := range ErrorPatterns {
		if p == known {
			return true
		}
	}
	return false
}

// WordAttempt is one append-only log row recording a single
// word-building attempt. Rows are never mutated after insert.
// ErrorPattern is nil for successful attempts.
type WordAttempt struct {
	ID           int64         `json:"id"`
	SessionID    string        `json:"session_id"`
	Word         string        `json:"word"`
	Level        int           `json:"level"`
	Success      bool          `json:"success"`
	TimeTaken    int           `json:"time_taken"`
	ErrorPattern *ErrorPattern `json:"error_pattern,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Pattern returns the recorded error pattern, bucketing failed
// attempts without one as ErrorOther
func (a *WordAttempt) Pattern() ErrorPattern {
	if a.ErrorPattern == nil || *a.ErrorPattern == "" {
		return ErrorOther
	}
	return *a.ErrorPattern
}
