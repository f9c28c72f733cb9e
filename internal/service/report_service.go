package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"wordbuilder/internal/models"
)

// ReportService renders session reports as spreadsheet workbooks for
// download from the dashboard
type ReportService struct {
	teacherService *TeacherService
}

// NewReportService creates a new report service
func NewReportService(teacherService *TeacherService) *ReportService {
	return &ReportService{teacherService: teacherService}
}

// WriteWorkbook builds the full report for a session and writes it to
// w as an xlsx workbook
func (s *ReportService) WriteWorkbook(sessionID string, w io.Writer) error {
	report, err := s.teacherService.SessionReport(sessionID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, report); err != nil {
		return fmt.Errorf("failed to build summary sheet: %w", err)
	}
	if err := writeProgressSheet(f, report); err != nil {
		return fmt.Errorf("failed to build progress sheet: %w", err)
	}
	if err := writeErrorPatternSheet(f, report); err != nil {
		return fmt.Errorf("failed to build error pattern sheet: %w", err)
	}
	if err := writeRecommendationSheet(f, report); err != nil {
		return fmt.Errorf("failed to build recommendation sheet: %w", err)
	}
	if err := writeTimelineSheet(f, report); err != nil {
		return fmt.Errorf("failed to build timeline sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report *models.SessionReport) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Learner", report.DisplayName},
		{"Session ID", report.SessionID},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05") + " UTC"},
		{},
		{"Total attempts", report.Summary.TotalAttempts},
		{"Correct attempts", report.Summary.CorrectAttempts},
		{"Accuracy", formatAccuracy(report.Summary.Accuracy)},
		{"Words completed", report.Summary.WordsCompleted},
		{"Levels played", report.Summary.LevelsPlayed},
		{"Highest level", report.Summary.HighestLevel},
		{"Best streak", report.Summary.BestStreak},
		{"Time played", formatPlayTime(report.Summary.TimeSpentSeconds)},
		{},
		{"Accuracy trend", report.Analytics.AccuracyTrend},
		{"Speed trend", report.Analytics.SpeedTrend},
		{"Early accuracy", formatAccuracy(report.Analytics.LearningIndicators.EarlyAccuracy)},
		{"Recent accuracy", formatAccuracy(report.Analytics.LearningIndicators.RecentAccuracy)},
		{"Early avg time (s)", report.Analytics.LearningIndicators.EarlyAvgTime},
		{"Recent avg time (s)", report.Analytics.LearningIndicators.RecentAvgTime},
	}

	return writeRows(f, sheet, rows)
}

func writeProgressSheet(f *excelize.File, report *models.SessionReport) error {
	const sheet = "Progress"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "H", 18); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Level", "Words completed", "Total attempts", "Correct attempts", "Accuracy", "Current streak", "Best streak", "Time spent (s)"},
	}
	for i := range report.Progress {
		p := &report.Progress[i]
		rows = append(rows, []interface{}{
			p.Level, p.WordsCompleted, p.TotalAttempts, p.CorrectAttempts,
			formatAccuracy(p.Accuracy()), p.CurrentStreak, p.BestStreak, p.TimeSpentSeconds,
		})
	}

	return writeRows(f, sheet, rows)
}

func writeErrorPatternSheet(f *excelize.File, report *models.SessionReport) error {
	const sheet = "Error Patterns"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "E", 28); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Pattern", "Frequency", "Avg time (s)", "Affected words", "Description"},
	}
	for _, p := range report.ErrorPatterns {
		rows = append(rows, []interface{}{
			string(p.Type), p.Frequency, p.AvgTime,
			strings.Join(p.AffectedWords, ", "), p.Description,
		})
	}

	return writeRows(f, sheet, rows)
}

func writeRecommendationSheet(f *excelize.File, report *models.SessionReport) error {
	const sheet = "Recommendations"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "D", 32); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Error type", "Priority", "Strategy", "Suggested activities"},
	}
	for _, rec := range report.Recommendations {
		rows = append(rows, []interface{}{
			string(rec.ErrorType), rec.Priority, rec.Strategy,
			strings.Join(rec.Activities, ", "),
		})
	}

	return writeRows(f, sheet, rows)
}

func writeTimelineSheet(f *excelize.File, report *models.SessionReport) error {
	const sheet = "Timeline"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "E", 18); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Date", "Attempts", "Successful", "Avg time (s)", "Unique words"},
	}
	for _, day := range report.Timeline {
		rows = append(rows, []interface{}{
			day.Date, day.TotalAttempts, day.SuccessfulAttempts, day.AvgTime, day.UniqueWords,
		})
	}

	return writeRows(f, sheet, rows)
}

// writeRows fills a sheet from the top-left corner, one slice per row
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
