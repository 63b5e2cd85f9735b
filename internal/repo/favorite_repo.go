// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// FavoriteDoctor model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
)

// UpsertFavorite inserts or replaces the favorite row keyed by
// (userEmail, favoriteKey). Toggling an already-favorited doctor refreshes
// the stored denormalized fields rather than failing.
func UpsertFavorite(ctx context.Context, db *gorm.DB, fav *domain.FavoriteDoctor) error {
	fav.ID = domain.FavoriteID(fav.UserEmail, fav.FavoriteKey)
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"doctor_email", "name", "surname", "specialty", "rating", "photo_url", "clinic",
			}),
		}).
		Create(fav).Error
}

// DeleteFavorite removes the favorite keyed by (userEmail, favoriteKey).
// Deleting a non-existent key is a no-op: no rows affected, no error.
func DeleteFavorite(ctx context.Context, db *gorm.DB, userEmail, favoriteKey string) error {
	return db.WithContext(ctx).
		Where("id = ?", domain.FavoriteID(userEmail, favoriteKey)).
		Delete(&domain.FavoriteDoctor{}).Error
}

// ListFavorites returns all favorites of a user, most recent first.
func ListFavorites(ctx context.Context, db *gorm.DB, userEmail string) ([]domain.FavoriteDoctor, error) {
	var out []domain.FavoriteDoctor
	err := db.WithContext(ctx).
		Where("user_email = ?", userEmail).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// IsFavorite reports whether (userEmail, favoriteKey) is currently favorited.
func IsFavorite(ctx context.Context, db *gorm.DB, userEmail, favoriteKey string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.FavoriteDoctor{}).
		Where("id = ?", domain.FavoriteID(userEmail, favoriteKey)).
		Count(&n).Error
	return n > 0, err
}
