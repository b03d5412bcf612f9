package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkkalpana/text-morph/internal/application"
	"github.com/mkkalpana/text-morph/internal/domain/users"
	"github.com/mkkalpana/text-morph/internal/infra/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is deactivated")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordUnchanged  = errors.New("new password must be different from current password")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidName        = errors.New("name must be between 2 and 100 characters")
	ErrInvalidLanguage    = errors.New("language must be one of: English, Hindi, Spanish, French, German")
)

// WeakPasswordError carries which policy rule failed.
type WeakPasswordError struct{ Reason string }

func (e *WeakPasswordError) Error() string { return e.Reason }

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service implements registration, login and credential management.
type Service struct {
	Users  users.Repository
	Tokens *token.Manager
	Clock  application.Clock
}

type RegisterCommand struct {
	Name               string
	Email              string
	Password           string
	LanguagePreference string
}

// Payload is the token envelope returned on register/login.
type Payload struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        *users.User `json:"user"`
}

// Register creates a user and returns a fresh bearer token.
func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Payload, error) {
	name := strings.TrimSpace(cmd.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return nil, ErrInvalidName
	}
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	lang := cmd.LanguagePreference
	if lang == "" {
		lang = "English"
	}
	if !users.ValidLanguage(lang) {
		return nil, ErrInvalidLanguage
	}
	if err := ValidatePasswordStrength(cmd.Password); err != nil {
		return nil, err
	}

	if existing, err := s.Users.GetByEmail(ctx, email); err != nil && !errors.Is(err, users.ErrNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	} else if existing != nil {
		return nil, users.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &users.User{
		PublicID:           uuid.New().String(),
		Name:               name,
		Email:              email,
		HashedPassword:     string(hashed),
		LanguagePreference: lang,
		IsActive:           true,
		CreatedAt:          s.Clock.Now(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login verifies credentials and returns a bearer token. The same error is
// returned for an unknown email and a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*Payload, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, u *users.User, current, next string) error {
	if bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(current)) != nil {
		return ErrWrongPassword
	}
	if err := ValidatePasswordStrength(next); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(next)) == nil {
		return ErrPasswordUnchanged
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.Users.UpdatePassword(ctx, u.ID, string(hashed))
}

func (s *Service) issue(u *users.User) (*Payload, error) {
	tok, err := s.Tokens.Issue(u.Email, s.Clock.Now())
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &Payload{
		AccessToken: tok,
		TokenType:   "bearer",
		ExpiresIn:   int(s.Tokens.TTL().Seconds()),
		User:        u,
	}, nil
}

// ValidatePasswordStrength enforces the registration password policy.
func ValidatePasswordStrength(password string) error {
	switch {
	case len(password) < 8:
		return &WeakPasswordError{"password must be at least 8 characters long"}
	case len(password) > 128:
		return &WeakPasswordError{"password must be no more than 128 characters long"}
	case !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"):
		return &WeakPasswordError{"password must contain at least one uppercase letter (A-Z)"}
	case !strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz"):
		return &WeakPasswordError{"password must contain at least one lowercase letter (a-z)"}
	case !strings.ContainsAny(password, "0123456789"):
		return &WeakPasswordError{"password must contain at least one digit (0-9)"}
	case !strings.ContainsAny(password, `!@#$%^&*()_+-=[]{};':"\|,.<>/?`):
		return &WeakPasswordError{"password must contain at least one special character (!@#$%^&*() etc.)"}
	}
	return nil
}
