// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Record
// (appointment) model, including the bulk snapshot insert and the cancellation
// reconciliation pass.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
)

// CreateRecord inserts a single appointment row.
func CreateRecord(ctx context.Context, db *gorm.DB, rec *domain.Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(rec).Error
}

// InsertRecordsIgnoreConflicts bulk-inserts appointment rows from a server
// snapshot, skipping ids that already exist locally. Existing rows are left
// untouched (cancellation state in particular survives re-syncs).
func InsertRecordsIgnoreConflicts(ctx context.Context, db *gorm.DB, recs []domain.Record) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	for i := range recs {
		if recs[i].CreatedAt.IsZero() {
			recs[i].CreatedAt = now
		}
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&recs)
	return res.RowsAffected, res.Error
}

// ListRecords returns all appointment rows of a user, newest first.
func ListRecords(ctx context.Context, db *gorm.DB, userEmail string) ([]domain.Record, error) {
	var out []domain.Record
	err := db.WithContext(ctx).
		Where("user_email = ?", userEmail).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetRecord fetches a single appointment row by id and owner, or ErrNotFound.
func GetRecord(ctx context.Context, db *gorm.DB, id, userEmail string) (*domain.Record, error) {
	var r domain.Record
	err := db.WithContext(ctx).
		Where("id = ? AND user_email = ?", id, userEmail).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListActiveRecordIDs returns the ids of the user's not-yet-cancelled rows.
func ListActiveRecordIDs(ctx context.Context, db *gorm.DB, userEmail string) ([]string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&domain.Record{}).
		Where("user_email = ? AND is_cancelled = ?", userEmail, false).
		Pluck("id", &ids).Error
	return ids, err
}

// CancelRecords marks the given ids cancelled for the user. The transition is
// one-way: rows already cancelled are simply not matched again, which also
// makes the call idempotent. Returns the number of rows flipped.
func CancelRecords(ctx context.Context, db *gorm.DB, userEmail string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Model(&domain.Record{}).
		Where("user_email = ? AND is_cancelled = ? AND id IN ?", userEmail, false, ids).
		Update("is_cancelled", true)
	return res.RowsAffected, res.Error
}

// DeleteRecord removes a single appointment row owned by userEmail.
// Returns ErrNotFound when nothing matched.
func DeleteRecord(ctx context.Context, db *gorm.DB, id, userEmail string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_email = ?", id, userEmail).
		Delete(&domain.Record{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
