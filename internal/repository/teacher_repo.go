package repository

import (
	"database/sql"
	"fmt"
	"time"

	"wordbuilder/internal/database"
	"wordbuilder/internal/models"
)

// TeacherRepository handles dashboard account database operations
type TeacherRepository struct {
	db database.DBTX
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db database.DBTX) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Create inserts a new teacher account
func (r *TeacherRepository) Create(email, passwordHash, name string) (*models.Teacher, error) {
	now := time.Now().UTC()
	query := "INSERT INTO teachers (email, password_hash, name, created_at) VALUES (?, ?, ?, ?)"

	id, err := r.db.ExecReturningID(query, email, passwordHash, name, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	return &models.Teacher{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
	}, nil
}

// GetByEmail retrieves a teacher by email. Returns (nil, nil) when no
// account exists.
func (r *TeacherRepository) GetByEmail(email string) (*models.Teacher, error) {
	query := "SELECT id, email, password_hash, name, created_at FROM teachers WHERE email = ?"

	t := &models.Teacher{}
	err := r.db.QueryRow(query, email).Scan(
		&t.ID,
		&t.Email,
		&t.PasswordHash,
		&t.Name,
		&t.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	return t, nil
}

// GetByID retrieves a teacher by ID. Returns (nil, nil) when no account
// exists.
func (r *TeacherRepository) GetByID(id int64) (*models.Teacher, error) {
	query := "SELECT id, email, password_hash, name, created_at FROM teachers WHERE id = ?"

	t := &models.Teacher{}
	err := r.db.QueryRow(query, id).Scan(
		&t.ID,
		&t.Email,
		&t.PasswordHash,
		&t.Name,
		&t.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	return t, nil
}
