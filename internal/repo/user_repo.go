// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User and
// AuthToken models.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a row is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates a unique-constraint violation on insert.
var ErrDuplicate = errors.New("duplicate")

// CreateUser inserts a new User row. The user ID is a randomly generated UUID
// and CreatedAt is set to UTC. A unique-constraint violation on the email
// column is mapped to ErrDuplicate.
func CreateUser(ctx context.Context, db *gorm.DB, email, name, birth, passwordHash string) (*domain.User, error) {
	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Birth:        birth,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

// GetUserByEmail fetches a user by email, or ErrNotFound if missing.
func GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetOnboardingShown flips the onboarding flag for a user. Returns ErrNotFound
// when no row was affected.
func SetOnboardingShown(ctx context.Context, db *gorm.DB, email string, shown bool) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Update("onboarding_shown", shown)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateToken issues a fresh opaque token for userEmail with the given TTL.
func CreateToken(ctx context.Context, db *gorm.DB, userEmail string, ttl time.Duration) (*domain.AuthToken, error) {
	now := time.Now().UTC()
	t := &domain.AuthToken{
		ID:        uuid.NewString(),
		Token:     uuid.NewString(),
		UserEmail: userEmail,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// ResolveToken returns the non-expired token row for the presented token
// string, or ErrNotFound when the token is unknown or expired.
func ResolveToken(ctx context.Context, db *gorm.DB, token string, now time.Time) (*domain.AuthToken, error) {
	var t domain.AuthToken
	err := db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, now).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteExpiredTokens removes tokens past their expiry. Returns the number of
// rows deleted.
func DeleteExpiredTokens(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&domain.AuthToken{})
	return res.RowsAffected, res.Error
}

// isUniqueViolation detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
