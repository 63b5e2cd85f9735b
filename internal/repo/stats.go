// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
)

// RecordsStats returns aggregate metadata for a user's appointment rows: the
// total number of rows and the maximum UpdatedAt timestamp among them.
//
// When the user has no records, the returned count is 0 and maxUpdatedAt is
// nil.
func RecordsStats(ctx context.Context, db *gorm.DB, userEmail string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Record{}).Where("user_email = ?", userEmail)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// FavoritesStats returns the favorite count and newest CreatedAt for a user,
// mirroring RecordsStats for the favorites listing.
func FavoritesStats(ctx context.Context, db *gorm.DB, userEmail string) (count int64, maxCreatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.FavoriteDoctor{}).Where("user_email = ?", userEmail)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
