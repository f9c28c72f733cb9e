package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"wordbuilder/internal/models"
	"wordbuilder/internal/repository"
)

const (
	// minTrendSample is the attempt count below which trends default
	// to stable rather than classifying noise
	minTrendSample = 6

	// accuracyTrendDelta is the half-to-half accuracy change that
	// counts as a real trend
	accuracyTrendDelta = 0.1

	// speedTrendDelta is the half-to-half mean time change, in
	// seconds, that counts as a real trend
	speedTrendDelta = 5.0

	// maxPriorityBase caps how much raw frequency contributes to a
	// recommendation priority
	maxPriorityBase = 10

	// criticalBonus is added to the priority of patterns that respond
	// best to early intervention
	criticalBonus = 3

	defaultTimelineDays = 7
	maxTimelineDays     = 90
)

// patternInfo is the fixed teaching guidance attached to one error
// pattern type
type patternInfo struct {
	description string
	strategy    string
	activities  []string
}

var patternCatalog = map[models.ErrorPattern]patternInfo{
	models.ErrorVowelConfusion: {
		description: "Difficulty distinguishing vowel sounds",
		strategy:    "Practice minimal pairs that contrast the confused vowels",
		activities:  []string{"Vowel sound sorting", "Minimal pair listening games", "Say-and-build vowel drills"},
	},
	models.ErrorConsonantConfusion: {
		description: "Difficulty distinguishing consonant sounds",
		strategy:    "Isolate the confused consonants and practice their mouth positions",
		activities:  []string{"Consonant sound matching", "Tongue twister practice", "Initial sound bingo"},
	},
	models.ErrorLetterOrder: {
		description: "Letters placed in the wrong order",
		strategy:    "Slow down and segment each word sound by sound before building",
		activities:  []string{"Sound boxes", "Letter tile sequencing", "Finger-tap segmenting"},
	},
	models.ErrorLengthMismatch: {
		description: "Built word has too few or too many letters",
		strategy:    "Count the sounds in the word before choosing letters",
		activities:  []string{"Phoneme counting with counters", "Clap the sounds", "Stretch-the-word practice"},
	},
	models.ErrorPhoneticConfusion: {
		description: "Word spelled the way it sounds rather than the way it is written",
		strategy:    "Contrast the phonetic guess with the conventional spelling pattern",
		activities:  []string{"Spelling pattern sorts", "Look, say, cover, write, check", "Tricky word wall"},
	},
	models.ErrorVisualConfusion: {
		description: "Visually similar letters swapped, such as b/d or p/q",
		strategy:    "Rebuild letter orientation with multisensory formation practice",
		activities:  []string{"Letter formation tracing", "b/d discrimination cards", "Air writing"},
	},
	models.ErrorOther: {
		description: "Errors that do not match a known pattern",
		strategy:    "Review the affected words one-to-one to find what is going wrong",
		activities:  []string{"Guided word review", "Repeat practice with support"},
	},
}

// criticalPatterns mark the error types whose recommendations get a
// priority bonus
var criticalPatterns = map[models.ErrorPattern]bool{
	models.ErrorVowelConfusion:    true,
	models.ErrorPhoneticConfusion: true,
}

const (
	unknownPatternDescription = "Unknown error pattern"
	fallbackStrategy          = "Review the affected words with the learner"
)

var fallbackActivities = []string{"Guided word review", "Repeat practice with support"}

// TeacherService computes the dashboard analytics: trends, error
// pattern summaries, recommendations and the activity timeline
type TeacherService struct {
	sessionRepo  *repository.SessionRepository
	progressRepo *repository.ProgressRepository
	attemptRepo  *repository.AttemptRepository
}

// NewTeacherService creates a new teacher service
func NewTeacherService(sessionRepo *repository.SessionRepository, progressRepo *repository.ProgressRepository, attemptRepo *repository.AttemptRepository) *TeacherService {
	return &TeacherService{
		sessionRepo:  sessionRepo,
		progressRepo: progressRepo,
		attemptRepo:  attemptRepo,
	}
}

// SessionAnalytics classifies accuracy and speed trends over a
// chronologically ordered attempt sequence. Sequences shorter than
// minTrendSample stay "stable": too few attempts to call a trend.
// Longer sequences are split at the midpoint and the halves compared.
func (s *TeacherService) SessionAnalytics(attempts []models.WordAttempt) models.SessionAnalytics {
	analytics := models.SessionAnalytics{
		TotalAttempts: len(attempts),
		AccuracyTrend: models.TrendStable,
		SpeedTrend:    models.TrendStable,
	}
	for _, a := range attempts {
		if a.Success {
			analytics.SuccessfulAttempts++
		}
	}
	analytics.FailedAttempts = analytics.TotalAttempts - analytics.SuccessfulAttempts

	if len(attempts) < minTrendSample {
		return analytics
	}

	mid := len(attempts) / 2
	earlyAccuracy, earlyAvgTime := halfStats(attempts[:mid])
	recentAccuracy, recentAvgTime := halfStats(attempts[mid:])

	switch {
	case recentAccuracy-earlyAccuracy > accuracyTrendDelta:
		analytics.AccuracyTrend = models.TrendImproving
	case earlyAccuracy-recentAccuracy > accuracyTrendDelta:
		analytics.AccuracyTrend = models.TrendDeclining
	}

	switch {
	case earlyAvgTime-recentAvgTime > speedTrendDelta:
		analytics.SpeedTrend = models.TrendFaster
	case recentAvgTime-earlyAvgTime > speedTrendDelta:
		analytics.SpeedTrend = models.TrendSlower
	}

	analytics.LearningIndicators = models.LearningIndicators{
		EarlyAccuracy:  earlyAccuracy,
		RecentAccuracy: recentAccuracy,
		AccuracyChange: recentAccuracy - earlyAccuracy,
		EarlyAvgTime:   earlyAvgTime,
		RecentAvgTime:  recentAvgTime,
	}

	return analytics
}

// halfStats returns the accuracy and mean time for one half of an
// attempt sequence
func halfStats(attempts []models.WordAttempt) (accuracy, avgTime float64) {
	if len(attempts) == 0 {
		return 0, 0
	}
	var successes, totalTime int
	for _, a := range attempts {
		if a.Success {
			successes++
		}
		totalTime += a.TimeTaken
	}
	n := float64(len(attempts))
	return float64(successes) / n, float64(totalTime) / n
}

// AnalyzeErrorPatterns groups failed attempts by error pattern and
// returns the groups sorted by frequency, most common first. Groups
// with equal frequency keep the order the patterns first appeared in.
// Failures recorded without a pattern are bucketed under "other".
func (s *TeacherService) AnalyzeErrorPatterns(failed []models.WordAttempt) []models.ErrorPatternSummary {
	type group struct {
		summary   models.ErrorPatternSummary
		totalTime int
		seenWords map[string]bool
	}

	groups := make(map[models.ErrorPattern]*group)
	var order []models.ErrorPattern

	for _, a := range failed {
		pattern := a.Pattern()
		g, ok := groups[pattern]
		if !ok {
			g = &group{
				summary: models.ErrorPatternSummary{
					Type:          pattern,
					AffectedWords: []string{},
					Description:   describePattern(pattern),
				},
				seenWords: make(map[string]bool),
			}
			groups[pattern] = g
			order = append(order, pattern)
		}
		g.summary.Frequency++
		g.totalTime += a.TimeTaken
		if !g.seenWords[a.Word] {
			g.seenWords[a.Word] = true
			g.summary.AffectedWords = append(g.summary.AffectedWords, a.Word)
		}
	}

	summaries := make([]models.ErrorPatternSummary, 0, len(order))
	for _, pattern := range order {
		g := groups[pattern]
		g.summary.AvgTime = float64(g.totalTime) / float64(g.summary.Frequency)
		summaries = append(summaries, g.summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Frequency > summaries[j].Frequency
	})

	return summaries
}

// Recommendations turns error pattern summaries into priority-ranked
// teaching suggestions. Priority is the pattern frequency capped at
// maxPriorityBase, plus criticalBonus for the critical patterns.
func (s *TeacherService) Recommendations(patterns []models.ErrorPatternSummary) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, len(patterns))

	for _, p := range patterns {
		priority := p.Frequency
		if priority > maxPriorityBase {
			priority = maxPriorityBase
		}
		if criticalPatterns[p.Type] {
			priority += criticalBonus
		}

		strategy := fallbackStrategy
		activities := fallbackActivities
		if info, ok := patternCatalog[p.Type]; ok {
			strategy = info.strategy
			activities = info.activities
		}

		recommendations = append(recommendations, models.Recommendation{
			ErrorType:  p.Type,
			Priority:   priority,
			Strategy:   strategy,
			Activities: activities,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Priority > recommendations[j].Priority
	})

	return recommendations
}

// describePattern looks up the human-readable description for a
// pattern type
func describePattern(pattern models.ErrorPattern) string {
	if info, ok := patternCatalog[pattern]; ok {
		return info.description
	}
	return unknownPatternDescription
}

// FillTimelineGaps expands aggregated daily rows into a contiguous
// timeline covering the last `days` calendar days, oldest first. Days
// with no recorded activity get a zero placeholder.
func (s *TeacherService) FillTimelineGaps(rows []models.DailyActivity, days int) []models.DailyActivity {
	return fillTimelineGaps(rows, days, time.Now().UTC())
}

func fillTimelineGaps(rows []models.DailyActivity, days int, now time.Time) []models.DailyActivity {
	if days <= 0 {
		return []models.DailyActivity{}
	}

	byDate := make(map[string]models.DailyActivity, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}

	timeline := make([]models.DailyActivity, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		if row, ok := byDate[date]; ok {
			timeline = append(timeline, row)
		} else {
			timeline = append(timeline, models.DailyActivity{Date: date})
		}
	}

	return timeline
}

// SessionTimeline returns the gap-filled activity timeline for a
// session. days defaults to a week and is capped at 90.
func (s *TeacherService) SessionTimeline(sessionID string, days int) ([]models.DailyActivity, error) {
	if days <= 0 {
		days = defaultTimelineDays
	}
	if days > maxTimelineDays {
		days = maxTimelineDays
	}

	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	return s.timeline(sessionID, days, time.Now().UTC()), nil
}

// SessionAttempts returns a session's attempt log in chronological
// order, narrowed to one level or to successes/failures when the
// filter sets those fields. The dashboard uses it to show the raw
// attempts behind a report.
func (s *TeacherService) SessionAttempts(sessionID string, filter repository.AttemptFilter) ([]models.WordAttempt, error) {
	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	attempts, err := s.attemptRepo.GetBySession(sessionID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}
	if attempts == nil {
		attempts = []models.WordAttempt{}
	}
	return attempts, nil
}

// timeline loads and gap-fills the daily activity rows. Read errors
// are logged and replaced with an all-placeholder timeline so a report
// still renders.
func (s *TeacherService) timeline(sessionID string, days int, now time.Time) []models.DailyActivity {
	start := now.AddDate(0, 0, -(days - 1))
	since := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := s.attemptRepo.GetDailyActivity(sessionID, since)
	if err != nil {
		log.Printf("Timeline for session %s: %v", sessionID, err)
		rows = nil
	}

	return fillTimelineGaps(rows, days, now)
}

// SessionReport assembles the full dashboard report for one session.
// The session itself must exist; every aggregate section degrades to
// its empty default on a read error, with the cause logged, so the
// dashboard still renders on partial data.
func (s *TeacherService) SessionReport(sessionID string) (*models.SessionReport, error) {
	session, err := s.sessionRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	now := time.Now().UTC()
	report := &models.SessionReport{
		SessionID:       session.SessionID,
		DisplayName:     session.DisplayName,
		GeneratedAt:     now,
		Progress:        []models.Progress{},
		Analytics:       emptyAnalytics(),
		ErrorPatterns:   []models.ErrorPatternSummary{},
		Recommendations: []models.Recommendation{},
	}

	progress, err := s.progressRepo.GetBySession(sessionID)
	if err != nil {
		log.Printf("Report for session %s: failed to load progress: %v", sessionID, err)
	} else {
		report.Progress = progress
	}
	report.Summary = models.Summarize(report.Progress)

	attempts, err := s.attemptRepo.GetBySession(sessionID, repository.AttemptFilter{})
	if err != nil {
		log.Printf("Report for session %s: failed to load attempts: %v", sessionID, err)
	} else {
		report.Analytics = s.SessionAnalytics(attempts)
		failed := make([]models.WordAttempt, 0, len(attempts))
		for _, a := range attempts {
			if !a.Success {
				failed = append(failed, a)
			}
		}
		report.ErrorPatterns = s.AnalyzeErrorPatterns(failed)
		report.Recommendations = s.Recommendations(report.ErrorPatterns)
	}

	report.Timeline = s.timeline(sessionID, defaultTimelineDays, now)

	return report, nil
}

// emptyAnalytics is the documented default returned when the attempt
// history cannot be read
func emptyAnalytics() models.SessionAnalytics {
	return models.SessionAnalytics{
		AccuracyTrend: models.TrendStable,
		SpeedTrend:    models.TrendStable,
	}
}
