// Package auth logs the single admin user in and guards the API with
// signed session tokens.
package auth

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAuthDisabled       = errors.New("authentication is not configured")
)

const minPasswordLength = 6

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Service checks credentials against one configured admin account.
type Service struct {
	admin        User
	passwordHash []byte
	tokens       *JWTService
}

// NewService hashes password once so logins compare against a bcrypt hash.
func NewService(email, password string, tokens *JWTService) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Service{
		admin: User{
			ID:    "1",
			Email: strings.TrimSpace(email),
			Name:  "Admin",
		},
		passwordHash: hash,
		tokens:       tokens,
	}, nil
}

// Login returns a session token for valid credentials. Every rejection,
// malformed input included, is ErrInvalidCredentials.
func (s *Service) Login(email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return "", ErrInvalidCredentials
	}
	if !strings.EqualFold(email, s.admin.Email) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	admin := s.admin
	return s.tokens.Generate(&admin)
}

// Authenticate validates a session token.
func (s *Service) Authenticate(token string) (*User, error) {
	return s.tokens.Validate(token)
}
