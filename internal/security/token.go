package security

import "github.com/google/uuid"

// GenerateSessionID creates a new opaque learner session token. The
// frontend stores it and sends it with every game request; it carries
// no embedded meaning.
func GenerateSessionID() string {
	return uuid.New().String()
}
