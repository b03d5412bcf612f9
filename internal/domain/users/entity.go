package users

import (
	"errors"
	"time"
)

// Languages a user can pick for the dashboard.
var AllowedLanguages = []string{"English", "Hindi", "Spanish", "French", "German"}

// ValidLanguage reports whether pref is one of AllowedLanguages.
func ValidLanguage(pref string) bool {
	for _, l := range AllowedLanguages {
		if l == pref {
			return true
		}
	}
	return false
}

// User aggregate. PublicID is the stable external identifier; ID is the
// database key referenced by analysis history rows.
type User struct {
	ID                 int64      `json:"id"`
	PublicID           string     `json:"user_id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	HashedPassword     string     `json:"-"`
	LanguagePreference string     `json:"language_preference"`
	IsActive           bool       `json:"is_active"`
	IsVerified         bool       `json:"is_verified"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)
