// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the
// BookingIdempotency model used to implement safe-retry semantics for
// PUT /book_appointment.
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

// GetBookingIdempotency returns a non-expired record or ErrNotFound.
func GetBookingIdempotency(ctx context.Context, db *gorm.DB, userEmail, doctorEmail, key string, now time.Time) (*domain.BookingIdempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.BookingIdempotency
	err := db.WithContext(ctx).
		Where("user_email = ? AND doctor_email = ? AND key = ? AND expires_at > ?", userEmail, doctorEmail, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}

// CreateBookingIdempotency inserts a record and returns ErrDuplicate on a
// unique violation.
func CreateBookingIdempotency(ctx context.Context, db *gorm.DB, userEmail, doctorEmail, key, recordID string, status int, ttl time.Duration) (*domain.BookingIdempotency, error) {
	now := time.Now().UTC()
	rec := &domain.BookingIdempotency{
		ID:          uuid.NewString(),
		UserEmail:   userEmail,
		DoctorEmail: doctorEmail,
		Key:         key,
		RecordID:    recordID,
		Status:      status,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
