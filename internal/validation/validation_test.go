package validation

import (
	"strings"
	"testing"
)

func TestValidateDisplayName(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		wantErr     bool
	}{
		{
			name:        "valid name",
			displayName: "Amira",
			wantErr:     false,
		},
		{
			name:        "two characters",
			displayName: "Jo",
			wantErr:     false,
		},
		{
			name:        "non-ascii name counted in runes",
			displayName: "Zoë",
			wantErr:     false,
		},
		{
			name:        "valid after trimming",
			displayName: "  Bilal  ",
			wantErr:     false,
		},
		{
			name:        "empty",
			displayName: "",
			wantErr:     true,
		},
		{
			name:        "whitespace only",
			displayName: "   ",
			wantErr:     true,
		},
		{
			name:        "single character",
			displayName: "A",
			wantErr:     true,
		},
		{
			name:        "exactly fifty characters",
			displayName: strings.Repeat("a", 50),
			wantErr:     false,
		},
		{
			name:        "fifty one characters",
			displayName: strings.Repeat("a", 51),
			wantErr:     true,
		},
		{
			name:        "fifty non-ascii characters",
			displayName: strings.Repeat("é", 50),
			wantErr:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDisplayName(tt.displayName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDisplayName(%q) error = %v, wantErr %v", tt.displayName, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "teacher@school.org",
			wantErr: false,
		},
		{
			name:    "valid with plus",
			email:   "teacher+class@school.org",
			wantErr: false,
		},
		{
			name:    "empty",
			email:   "",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "teacher@",
			wantErr: true,
		},
		{
			name:    "missing at sign",
			email:   "teacher.school.org",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "correct-horse",
			wantErr:  false,
		},
		{
			name:     "exactly eight characters",
			password: "12345678",
			wantErr:  false,
		},
		{
			name:     "too short",
			password: "1234567",
			wantErr:  true,
		},
		{
			name:     "empty",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "display_name", Message: "display name is required"}
	want := "display_name: display name is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
