package models

import (
	"testing"
)

func TestProgressAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		progress Progress
		want     float64
	}{
		{
			name: "perfect accuracy",
			progress: Progress{
				TotalAttempts:   10,
				CorrectAttempts: 10,
			},
			want: 1.0,
		},
		{
			name: "half correct",
			progress: Progress{
				TotalAttempts:   10,
				CorrectAttempts: 5,
			},
			want: 0.5,
		},
		{
			name: "no attempts",
			progress: Progress{
				TotalAttempts:   0,
				CorrectAttempts: 0,
			},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.progress.Accuracy()
			if result != tt.want {
				t.Errorf("Progress.Accuracy() = %.2f, want %.2f", result, tt.want)
			}
		})
	}
}

func TestErrorPatternIsValid(t *testing.T) {
	tests := []struct {
		name    string
		pattern ErrorPattern
		want    bool
	}{
		{
			name:    "vowel confusion",
			pattern: ErrorVowelConfusion,
			want:    true,
		},
		{
			name:    "other",
			pattern: ErrorOther,
			want:    true,
		},
		{
			name:    "unknown pattern",
			pattern: ErrorPattern("keyboard_mash"),
			want:    false,
		},
		{
			name:    "empty pattern",
			pattern: ErrorPattern(""),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.pattern.IsValid()
			if result != tt.want {
				t.Errorf("ErrorPattern.IsValid() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestWordAttemptPattern(t *testing.T) {
	vowel := ErrorVowelConfusion
	empty := ErrorPattern("")

	tests := []struct {
		name    string
		attempt WordAttempt
		want    ErrorPattern
	}{
		{
			name:    "recorded pattern",
			attempt: WordAttempt{Success: false, ErrorPattern: &vowel},
			want:    ErrorVowelConfusion,
		},
		{
			name:    "missing pattern buckets as other",
			attempt: WordAttempt{Success: false, ErrorPattern: nil},
			want:    ErrorOther,
		},
		{
			name:    "empty pattern buckets as other",
			attempt: WordAttempt{Success: false, ErrorPattern: &empty},
			want:    ErrorOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.attempt.Pattern()
			if result != tt.want {
				t.Errorf("WordAttempt.Pattern() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	rows := []Progress{
		{Level: 1, WordsCompleted: 10, TotalAttempts: 20, CorrectAttempts: 15, BestStreak: 5, TimeSpentSeconds: 300},
		{Level: 2, WordsCompleted: 4, TotalAttempts: 10, CorrectAttempts: 5, BestStreak: 8, TimeSpentSeconds: 200},
	}

	summary := Summarize(rows)

	if summary.LevelsPlayed != 2 {
		t.Errorf("LevelsPlayed = %d, want 2", summary.LevelsPlayed)
	}
	if summary.HighestLevel != 2 {
		t.Errorf("HighestLevel = %d, want 2", summary.HighestLevel)
	}
	if summary.WordsCompleted != 14 {
		t.Errorf("WordsCompleted = %d, want 14", summary.WordsCompleted)
	}
	if summary.TotalAttempts != 30 {
		t.Errorf("TotalAttempts = %d, want 30", summary.TotalAttempts)
	}
	if summary.CorrectAttempts != 20 {
		t.Errorf("CorrectAttempts = %d, want 20", summary.CorrectAttempts)
	}
	if summary.BestStreak != 8 {
		t.Errorf("BestStreak = %d, want 8", summary.BestStreak)
	}
	if summary.TimeSpentSeconds != 500 {
		t.Errorf("TimeSpentSeconds = %d, want 500", summary.TimeSpentSeconds)
	}
	want := 20.0 / 30.0
	if summary.Accuracy != want {
		t.Errorf("Accuracy = %.4f, want %.4f", summary.Accuracy, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	if summary.LevelsPlayed != 0 {
		t.Errorf("LevelsPlayed = %d, want 0", summary.LevelsPlayed)
	}
	if summary.Accuracy != 0 {
		t.Errorf("Accuracy = %.2f, want 0", summary.Accuracy)
	}
}
