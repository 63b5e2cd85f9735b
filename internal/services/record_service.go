// Package services – RecordService
//
// This file implements the appointment-record cache operations: bulk snapshot
// sync (insert-ignore-on-conflict), the cancellation reconciliation pass, the
// listing, and the single-row delete.
//
// Reconciliation reads the active ids and then writes cancellations in two
// steps; a race with a concurrent write is possible but inconsequential —
// the cancelled flag is monotonic and a later pass converges.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RecordService owns the local appointment cache.
type RecordService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewRecordService constructs a RecordService.
func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{DB: db}
}

// Sync bulk-inserts a snapshot of appointment rows for the user, skipping ids
// already present. Rows are stamped with the owner before insertion so a
// client cannot write into another user's cache. Returns the inserted count.
func (s *RecordService) Sync(ctx context.Context, userEmail string, recs []domain.Record) (int64, error) {
	for i := range recs {
		recs[i].UserEmail = userEmail
	}
	return repo.InsertRecordsIgnoreConflicts(ctx, s.DB, recs)
}

// Reconcile marks every locally-active record of the user whose id is absent
// from activeIDs as cancelled. The transition is one-way and the call is
// idempotent: a second pass with the same set cancels nothing further.
// Nothing is inserted from this path.
func (s *RecordService) Reconcile(ctx context.Context, userEmail string, activeIDs []string) (int64, error) {
	tr := otel.Tracer("services/RecordService")
	ctx, span := tr.Start(ctx, "Reconcile",
		trace.WithAttributes(
			attribute.String("user.id", userEmail),
			attribute.Int("active.count", len(activeIDs)),
		),
	)
	defer span.End()

	local, err := repo.ListActiveRecordIDs(ctx, s.DB, userEmail)
	if err != nil {
		return 0, err
	}
	if len(local) == 0 {
		return 0, nil
	}

	active := make(map[string]struct{}, len(activeIDs))
	for _, id := range activeIDs {
		active[id] = struct{}{}
	}

	var stale []string
	for _, id := range local {
		if _, ok := active[id]; !ok {
			stale = append(stale, id)
		}
	}
	return repo.CancelRecords(ctx, s.DB, userEmail, stale)
}

// List returns the user's cached appointment rows, newest first.
func (s *RecordService) List(ctx context.Context, userEmail string) ([]domain.Record, error) {
	return repo.ListRecords(ctx, s.DB, userEmail)
}

// Delete removes one appointment row owned by the user.
func (s *RecordService) Delete(ctx context.Context, userEmail, id string) error {
	if err := repo.DeleteRecord(ctx, s.DB, id, userEmail); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	return nil
}
