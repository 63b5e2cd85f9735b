// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the ChatSession
// model that backs the daily chat quota.
//
// Functions:
//
//   - GetSession(ctx, db, userEmail, dateKey) -> *domain.ChatSession, error
//     Fetches the quota row for one user on one calendar date, or ErrNotFound.
//
//   - CreateSession(ctx, db, userEmail, dateKey, maxSessions) -> *domain.ChatSession, error
//     Inserts the first-of-the-day row with SessionsUsed=1.
//
//   - IncrementSession(ctx, db, userEmail, dateKey) -> error
//     Adds one to SessionsUsed, guarded by sessions_used < max_sessions so the
//     cap cannot be exceeded even under concurrent callers. ErrNotFound when
//     no row qualified (missing or already at the cap).
//
//   - SetSessionTopic(ctx, db, userEmail, dateKey, topic) -> error
//     Stores a short topic label on the day's row (best effort).
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
)

// GetSession fetches the quota row for (userEmail, dateKey) or ErrNotFound.
func GetSession(ctx context.Context, db *gorm.DB, userEmail, dateKey string) (*domain.ChatSession, error) {
	var s domain.ChatSession
	err := db.WithContext(ctx).
		Where("id = ?", domain.SessionKey(userEmail, dateKey)).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSession inserts the first session row of the day with SessionsUsed=1.
// A unique violation (two concurrent first-starts) is mapped to ErrDuplicate.
func CreateSession(ctx context.Context, db *gorm.DB, userEmail, dateKey string, maxSessions int) (*domain.ChatSession, error) {
	if maxSessions <= 0 {
		maxSessions = domain.DefaultMaxSessions
	}
	s := &domain.ChatSession{
		ID:           domain.SessionKey(userEmail, dateKey),
		UserEmail:    userEmail,
		SessionDate:  dateKey,
		SessionsUsed: 1,
		MaxSessions:  maxSessions,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return s, nil
}

// IncrementSession bumps SessionsUsed by one while it is still below the cap.
// Returns ErrNotFound when the row is missing or already exhausted, keeping
// the SessionsUsed <= MaxSessions invariant even with concurrent writers.
func IncrementSession(ctx context.Context, db *gorm.DB, userEmail, dateKey string) error {
	res := db.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Where("id = ? AND sessions_used < max_sessions", domain.SessionKey(userEmail, dateKey)).
		Update("sessions_used", gorm.Expr("sessions_used + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetSessionTopic stores a short topic label on the day's quota row.
func SetSessionTopic(ctx context.Context, db *gorm.DB, userEmail, dateKey, topic string) error {
	return db.WithContext(ctx).
		Model(&domain.ChatSession{}).
		Where("id = ?", domain.SessionKey(userEmail, dateKey)).
		Update("last_topic", topic).Error
}
