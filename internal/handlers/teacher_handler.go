package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"wordbuilder/internal/models"
	"wordbuilder/internal/repository"
	"wordbuilder/internal/service"
	"wordbuilder/internal/validation"
)

// TeacherHandler serves the teacher dashboard API
type TeacherHandler struct {
	sessionService *service.SessionService
	teacherService *service.TeacherService
	reportService  *service.ReportService
	emailService   *service.EmailService
}

// NewTeacherHandler creates a new teacher dashboard handler
func NewTeacherHandler(sessionService *service.SessionService, teacherService *service.TeacherService, reportService *service.ReportService, emailService *service.EmailService) *TeacherHandler {
	return &TeacherHandler{
		sessionService: sessionService,
		teacherService: teacherService,
		reportService:  reportService,
		emailService:   emailService,
	}
}

// sessionList is the paginated session directory response
type sessionList struct {
	Sessions []models.SessionSummary `json:"sessions"`
	Total    int                     `json:"total"`
}

// ListSessions handles GET /api/teacher/sessions?limit=&offset=
func (h *TeacherHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	sessions, total, err := h.sessionService.List(limit, offset)
	if err != nil {
		respondServiceError(w, err, "Failed to list sessions")
		return
	}

	respondJSON(w, http.StatusOK, sessionList{Sessions: sessions, Total: total})
}

// SessionReport handles GET /api/teacher/sessions/{sessionID}/report
func (h *TeacherHandler) SessionReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.teacherService.SessionReport(r.PathValue("sessionID"))
	if err != nil {
		respondServiceError(w, err, "Failed to build session report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// SessionTimeline handles GET /api/teacher/sessions/{sessionID}/timeline?days=
func (h *TeacherHandler) SessionTimeline(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	timeline, err := h.teacherService.SessionTimeline(r.PathValue("sessionID"), days)
	if err != nil {
		respondServiceError(w, err, "Failed to build session timeline")
		return
	}

	respondJSON(w, http.StatusOK, timeline)
}

// SessionAttempts handles GET /api/teacher/sessions/{sessionID}/attempts?level=&success=.
// Both query parameters are optional; omitting them returns the full
// attempt log in chronological order.
func (h *TeacherHandler) SessionAttempts(w http.ResponseWriter, r *http.Request) {
	var filter repository.AttemptFilter

	if levelParam := r.URL.Query().Get("level"); levelParam != "" {
		level, err := strconv.Atoi(levelParam)
		if err != nil {
			respondError(w, http.StatusBadRequest, "level must be a number")
			return
		}
		filter.Level = &level
	}
	if successParam := r.URL.Query().Get("success"); successParam != "" {
		success, err := strconv.ParseBool(successParam)
		if err != nil {
			respondError(w, http.StatusBadRequest, "success must be true or false")
			return
		}
		filter.Success = &success
	}

	attempts, err := h.teacherService.SessionAttempts(r.PathValue("sessionID"), filter)
	if err != nil {
		respondServiceError(w, err, "Failed to load attempts")
		return
	}

	respondJSON(w, http.StatusOK, attempts)
}

// ExportReport handles GET /api/teacher/sessions/{sessionID}/export.
// The workbook is built into a buffer first so a missing session still
// answers with a JSON 404 instead of a broken download.
func (h *TeacherHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	var buf bytes.Buffer
	if err := h.reportService.WriteWorkbook(sessionID, &buf); err != nil {
		respondServiceError(w, err, "Failed to build report workbook")
		return
	}

	filename := fmt.Sprintf("wordbuilder_report_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Failed to send report workbook: %v", err)
	}
}

// EmailReport handles POST /api/teacher/sessions/{sessionID}/email-report.
// When outbound email is not configured the send is skipped and the
// response says so via sent=false.
func (h *TeacherHandler) EmailReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		respondServiceError(w, err, "Invalid recipient email")
		return
	}

	report, err := h.teacherService.SessionReport(r.PathValue("sessionID"))
	if err != nil {
		respondServiceError(w, err, "Failed to build session report")
		return
	}

	sent := h.emailService.IsEnabled()
	if err := h.emailService.SendProgressReport(r.Context(), req.Email, report); err != nil {
		log.Printf("Failed to send progress report email: %v", err)
		respondError(w, http.StatusBadGateway, "failed to send email")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"sent": sent})
}
