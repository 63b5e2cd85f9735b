// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Doctor model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
)

// UpsertDoctors bulk-inserts doctor rows, ignoring rows whose email already
// exists. Missing IDs are filled with fresh UUIDs. Returns the number of rows
// actually inserted.
func UpsertDoctors(ctx context.Context, db *gorm.DB, doctors []domain.Doctor) (int64, error) {
	if len(doctors) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	for i := range doctors {
		if doctors[i].ID == "" {
			doctors[i].ID = uuid.NewString()
		}
		if doctors[i].CreatedAt.IsZero() {
			doctors[i].CreatedAt = now
		}
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(&doctors)
	return res.RowsAffected, res.Error
}

// ListDoctorsByClinic returns all doctors attached to the named clinic,
// ordered by rating descending then surname ascending for a stable listing.
func ListDoctorsByClinic(ctx context.Context, db *gorm.DB, clinic string) ([]domain.Doctor, error) {
	var out []domain.Doctor
	err := db.WithContext(ctx).
		Where("clinic = ?", clinic).
		Order("rating desc, surname asc").
		Find(&out).Error
	return out, err
}

// GetDoctorByEmail fetches a doctor by email, or ErrNotFound if missing.
func GetDoctorByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Doctor, error) {
	var d domain.Doctor
	err := db.WithContext(ctx).Where("email = ?", email).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}
