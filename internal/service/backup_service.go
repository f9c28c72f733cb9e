package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"wordbuilder/internal/database"
)

// BackupData is the portable JSON snapshot of the whole database. The
// same file restores into any supported dialect.
type BackupData struct {
	Version      string           `json:"version"`
	ExportedAt   time.Time        `json:"exported_at"`
	DatabaseType string           `json:"database_type"`
	Teachers     []TeacherBackup  `json:"teachers"`
	Words        []WordBackup     `json:"words"`
	Sessions     []SessionBackup  `json:"sessions"`
	Progress     []ProgressBackup `json:"progress"`
	Attempts     []AttemptBackup  `json:"attempts"`
}

// TeacherBackup is a teachers row. Unlike the API model it carries the
// password hash, since a restore must preserve credentials.
type TeacherBackup struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// WordBackup is a word catalog row
type WordBackup struct {
	ID       int64  `json:"id"`
	Word     string `json:"word"`
	Level    int    `json:"level"`
	Category string `json:"category"`
	Hint     string `json:"hint"`
}

// SessionBackup is a learner session row
type SessionBackup struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	LastActive  time.Time `json:"last_active"`
}

// ProgressBackup is a per-level progress row
type ProgressBackup struct {
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

// AttemptBackup is a word attempt log row
type AttemptBackup struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"session_id"`
	Word         string    `json:"word"`
	Level        int       `json:"level"`
	Success      bool      `json:"success"`
	TimeTaken    int       `json:"time_taken"`
	ErrorPattern *string   `json:"error_pattern"`
	CreatedAt    time.Time `json:"created_at"`
}

// BackupService exports and restores the database as a JSON snapshot
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported to %s", outputPath)
	return nil
}

// ExportToWriter writes a complete backup of the database to w
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now().UTC(),
		DatabaseType: "universal",
	}

	if err := s.exportTeachers(backup); err != nil {
		return fmt.Errorf("failed to export teachers: %w", err)
	}
	if err := s.exportWords(backup); err != nil {
		return fmt.Errorf("failed to export words: %w", err)
	}
	if err := s.exportSessions(backup); err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}
	if err := s.exportProgress(backup); err != nil {
		return fmt.Errorf("failed to export progress: %w", err)
	}
	if err := s.exportAttempts(backup); err != nil {
		return fmt.Errorf("failed to export attempts: %w", err)
	}

	log.Printf("Exported: %d teachers, %d words, %d sessions, %d progress rows, %d attempts",
		len(backup.Teachers), len(backup.Words), len(backup.Sessions),
		len(backup.Progress), len(backup.Attempts))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Import restores a backup file into the database. Rows are inserted
// with their original IDs, parents before children.
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a backup from r into the database
func (s *BackupService) ImportFromReader(r io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Importing backup version %s exported at %s", backup.Version, backup.ExportedAt)

	if err := s.importTeachers(backup.Teachers); err != nil {
		return fmt.Errorf("failed to import teachers: %w", err)
	}
	if err := s.importWords(backup.Words); err != nil {
		return fmt.Errorf("failed to import words: %w", err)
	}
	if err := s.importSessions(backup.Sessions); err != nil {
		return fmt.Errorf("failed to import sessions: %w", err)
	}
	if err := s.importProgress(backup.Progress); err != nil {
		return fmt.Errorf("failed to import progress: %w", err)
	}
	if err := s.importAttempts(backup.Attempts); err != nil {
		return fmt.Errorf("failed to import attempts: %w", err)
	}

	log.Println("Database import completed")
	return nil
}

// Clear deletes all rows, children before parents. Used by the backup
// tool's -clear flag before a full restore.
func (s *BackupService) Clear() error {
	tables := []string{
		"word_attempts",
		"progress",
		"sessions",
		"words",
		"teachers",
	}
	for _, table := range tables {
		if _, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
		log.Printf("Cleared table: %s", table)
	}
	return nil
}

func (s *BackupService) exportTeachers(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, email, password_hash, name, created_at FROM teachers ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t TeacherBackup
		if err := rows.Scan(&t.ID, &t.Email, &t.PasswordHash, &t.Name, &t.CreatedAt); err != nil {
			return err
		}
		backup.Teachers = append(backup.Teachers, t)
	}
	return rows.Err()
}

func (s *BackupService) exportWords(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, word, level, category, hint FROM words ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var w WordBackup
		if err := rows.Scan(&w.ID, &w.Word, &w.Level, &w.Category, &w.Hint); err != nil {
			return err
		}
		backup.Words = append(backup.Words, w)
	}
	return rows.Err()
}

func (s *BackupService) exportSessions(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, session_id, display_name, created_at, last_active FROM sessions ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sess SessionBackup
		if err := rows.Scan(&sess.ID, &sess.SessionID, &sess.DisplayName, &sess.CreatedAt, &sess.LastActive); err != nil {
			return err
		}
		backup.Sessions = append(backup.Sessions, sess)
	}
	return rows.Err()
}

func (s *BackupService) exportProgress(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT id, session_id, level, words_completed, total_attempts, correct_attempts,
		current_streak, best_streak, time_spent_seconds, last_played FROM progress ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProgressBackup
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Level, &p.WordsCompleted, &p.TotalAttempts,
			&p.CorrectAttempts, &p.CurrentStreak, &p.BestStreak, &p.TimeSpentSeconds, &p.LastPlayed); err != nil {
			return err
		}
		backup.Progress = append(backup.Progress, p)
	}
	return rows.Err()
}

func (s *BackupService) exportAttempts(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, session_id, word, level, success, time_taken, error_pattern, created_at FROM word_attempts ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AttemptBackup
		var pattern sql.NullString
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Word, &a.Level, &a.Success, &a.TimeTaken, &pattern, &a.CreatedAt); err != nil {
			return err
		}
		if pattern.Valid {
			a.ErrorPattern = &pattern.String
		}
		backup.Attempts = append(backup.Attempts, a)
	}
	return rows.Err()
}

func (s *BackupService) importTeachers(teachers []TeacherBackup) error {
	log.Printf("Importing %d teachers...", len(teachers))
	for _, t := range teachers {
		_, err := s.db.Exec("INSERT INTO teachers (id, email, password_hash, name, created_at) VALUES (?, ?, ?, ?, ?)",
			t.ID, t.Email, t.PasswordHash, t.Name, t.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import teacher %d: %w", t.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importWords(words []WordBackup) error {
	log.Printf("Importing %d words...", len(words))
	for _, w := range words {
		_, err := s.db.Exec("INSERT INTO words (id, word, level, category, hint) VALUES (?, ?, ?, ?, ?)",
			w.ID, w.Word, w.Level, w.Category, w.Hint)
		if err != nil {
			return fmt.Errorf("failed to import word %d: %w", w.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importSessions(sessions []SessionBackup) error {
	log.Printf("Importing %d sessions...", len(sessions))
	for _, sess := range sessions {
		_, err := s.db.Exec("INSERT INTO sessions (id, session_id, display_name, created_at, last_active) VALUES (?, ?, ?, ?, ?)",
			sess.ID, sess.SessionID, sess.DisplayName, sess.CreatedAt, sess.LastActive)
		if err != nil {
			return fmt.Errorf("failed to import session %d: %w", sess.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importProgress(progress []ProgressBackup) error {
	log.Printf("Importing %d progress rows...", len(progress))
	for _, p := range progress {
		_, err := s.db.Exec(`INSERT INTO progress (id, session_id, level, words_completed, total_attempts,
			correct_attempts, current_streak, best_streak, time_spent_seconds, last_played)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.SessionID, p.Level, p.WordsCompleted, p.TotalAttempts,
			p.CorrectAttempts, p.CurrentStreak, p.BestStreak, p.TimeSpentSeconds, p.LastPlayed)
		if err != nil {
			return fmt.Errorf("failed to import progress %d: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importAttempts(attempts []AttemptBackup) error {
	log.Printf("Importing %d attempts...", len(attempts))
	for _, a := range attempts {
		var pattern interface{}
		if a.ErrorPattern != nil {
			pattern = *a.ErrorPattern
		}
		_, err := s.db.Exec("INSERT INTO word_attempts (id, session_id, word, level, success, time_taken, error_pattern, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			a.ID, a.SessionID, a.Word, a.Level, a.Success, a.TimeTaken, pattern, a.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import attempt %d: %w", a.ID, err)
		}
	}
	return nil
}
