package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"wordbuilder/internal/models"
	"wordbuilder/internal/repository"
	"wordbuilder/internal/security"
	"wordbuilder/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSetupCode   = errors.New("invalid setup code")
)

// AuthService handles teacher dashboard authentication
type AuthService struct {
	teacherRepo *repository.TeacherRepository
	tokens      *security.TokenService

	// setupCode, when non-empty, is required to register. Keeps a
	// public deployment from accepting arbitrary dashboard signups.
	setupCode string
}

// NewAuthService creates a new auth service
func NewAuthService(teacherRepo *repository.TeacherRepository, tokens *security.TokenService, setupCode string) *AuthService {
	return &AuthService{
		teacherRepo: teacherRepo,
		tokens:      tokens,
		setupCode:   setupCode,
	}
}

// Register creates a new teacher account
func (s *AuthService) Register(email, password, name, setupCode string) (*models.Teacher, error) {
	if s.setupCode != "" {
		if subtle.ConstantTimeCompare([]byte(setupCode), []byte(s.setupCode)) != 1 {
			return nil, ErrInvalidSetupCode
		}
	}

	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))

	// Check if email already exists
	existing, err := s.teacherRepo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing teacher: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	teacher, err := s.teacherRepo.Create(email, passwordHash, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	return teacher, nil
}

// Login authenticates a teacher and issues a bearer token
func (s *AuthService) Login(email, password string) (string, time.Time, *models.Teacher, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	teacher, err := s.teacherRepo.GetByEmail(email)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, teacher.PasswordHash) {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(teacher.ID)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, expiresAt, teacher, nil
}

// Authenticate resolves a bearer token to the teacher it was issued to
func (s *AuthService) Authenticate(tokenString string) (*models.Teacher, error) {
	teacherID, err := s.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.GetByID(teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return nil, security.ErrInvalidToken
	}

	return teacher, nil
}
