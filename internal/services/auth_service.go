// Package services – AuthService
//
// This file implements the AuthService, which owns account registration,
// login, and opaque-token resolution. Passwords are stored as bcrypt hashes;
// tokens are random UUID strings persisted with a TTL so that every endpoint
// can resolve a presented token back to its user.
//
// Service-level errors (ErrInvalidEmail, ErrEmailTaken, ErrInvalidCredentials,
// ErrInvalidToken) are returned for predictable cases so handlers can map them
// to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/repo"
)

// emailRE is a pragmatic (not RFC-complete) address check, enough to reject
// obviously malformed logins before they reach the database.
var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService provides registration, login, and token resolution.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// TokenTTL is how long an issued access token stays valid.
	TokenTTL time.Duration

	// BcryptCost overrides the hashing cost; zero means bcrypt.DefaultCost.
	BcryptCost int
}

// NewAuthService constructs an AuthService with a sane default token TTL.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db, TokenTTL: 24 * time.Hour}
}

// Register creates an account and returns a fresh access token.
//
// Validation: name and password must be non-blank, the login must look like an
// email address. Birth is accepted as an ISO date string and stored verbatim.
func (s *AuthService) Register(ctx context.Context, name, birth, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || strings.TrimSpace(password) == "" {
		return "", ErrEmptyField
	}
	if !emailRE.MatchString(email) {
		return "", ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return "", err
	}

	if _, err := repo.CreateUser(ctx, s.DB, email, name, strings.TrimSpace(birth), string(hash)); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	tok, err := repo.CreateToken(ctx, s.DB, email, s.ttl())
	if err != nil {
		return "", err
	}
	return tok.Token, nil
}

// Login verifies credentials and returns a fresh access token.
// Missing accounts and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRE.MatchString(email) {
		return "", ErrInvalidEmail
	}

	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	tok, err := repo.CreateToken(ctx, s.DB, email, s.ttl())
	if err != nil {
		return "", err
	}
	return tok.Token, nil
}

// Resolve maps a presented token to the owning user email.
// Unknown and expired tokens both yield ErrInvalidToken.
func (s *AuthService) Resolve(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	rec, err := repo.ResolveToken(ctx, s.DB, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return rec.UserEmail, nil
}

// MarkOnboardingShown records that the user completed the onboarding flow.
func (s *AuthService) MarkOnboardingShown(ctx context.Context, userEmail string) error {
	if err := repo.SetOnboardingShown(ctx, s.DB, userEmail, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

func (s *AuthService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return 24 * time.Hour
}

func (s *AuthService) cost() int {
	if s.BcryptCost > 0 {
		return s.BcryptCost
	}
	return bcrypt.DefaultCost
}
