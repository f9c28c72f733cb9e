package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers expired, malformed and badly signed tokens
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and validates the dashboard's bearer tokens
type TokenService struct {
	secretKey []byte
	issuer    string
	duration  time.Duration
}

// NewTokenService creates a token service signing with the given secret
func NewTokenService(secret string, duration time.Duration) *TokenService {
	return &TokenService{
		secretKey: []byte(secret),
		issuer:    "wordbuilder",
		duration:  duration,
	}
}

// Generate signs an HS256 token for the given teacher ID
func (s *TokenService) Generate(teacherID int64) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.duration)

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(teacherID, 10),
		"iss": s.issuer,
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Validate parses a token and returns the teacher ID it was issued for
func (s *TokenService) Validate(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}

	teacherID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return teacherID, nil
}
