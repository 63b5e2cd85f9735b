package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
)

func TestRecordSync_StampsOwnerAndSkipsExisting(t *testing.T) {
	db := newServicesDB(t, &domain.Record{})
	svc := NewRecordService(db)
	ctx := context.Background()

	n, err := svc.Sync(ctx, "a@x.com", []domain.Record{
		{ID: "r1", UserEmail: "attacker@x.com", DoctorName: "Dr. A", IsConfirmed: true},
		{ID: "r2", DoctorName: "Dr. B", IsConfirmed: true},
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted = %d, want 2", n)
	}

	recs, err := svc.List(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("listed %d rows, want 2", len(recs))
	}
	for _, r := range recs {
		if r.UserEmail != "a@x.com" {
			t.Fatalf("record %s owned by %q, want a@x.com", r.ID, r.UserEmail)
		}
	}

	// A second sync with an overlapping snapshot only inserts the new row.
	n, err = svc.Sync(ctx, "a@x.com", []domain.Record{
		{ID: "r2", DoctorName: "Dr. B renamed"},
		{ID: "r3", DoctorName: "Dr. C"},
	})
	if err != nil {
		t.Fatalf("Sync (overlap): %v", err)
	}
	if n != 1 {
		t.Fatalf("overlap inserted = %d, want 1", n)
	}
}

func TestRecordReconcile_CancelsStaleOnly(t *testing.T) {
	db := newServicesDB(t, &domain.Record{})
	svc := NewRecordService(db)
	ctx := context.Background()

	if _, err := svc.Sync(ctx, "a@x.com", []domain.Record{
		{ID: "r1", IsConfirmed: true},
		{ID: "r2", IsConfirmed: true},
		{ID: "r3", IsConfirmed: true},
	}); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	n, err := svc.Reconcile(ctx, "a@x.com", []string{"r1", "r3"})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if n != 1 {
		t.Fatalf("cancelled %d rows, want 1", n)
	}

	recs, err := svc.List(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	byID := map[string]domain.Record{}
	for _, r := range recs {
		byID[r.ID] = r
	}
	if byID["r1"].IsCancelled || byID["r3"].IsCancelled {
		t.Fatalf("active records were cancelled: %+v", byID)
	}
	if !byID["r2"].IsCancelled {
		t.Fatalf("stale record r2 not cancelled")
	}

	// Idempotent: the same set cancels nothing further.
	n, err = svc.Reconcile(ctx, "a@x.com", []string{"r1", "r3"})
	if err != nil {
		t.Fatalf("Reconcile (repeat): %v", err)
	}
	if n != 0 {
		t.Fatalf("repeat cancelled %d rows, want 0", n)
	}
}

func TestRecordReconcile_EmptyActiveSetCancelsAll(t *testing.T) {
	db := newServicesDB(t, &domain.Record{})
	svc := NewRecordService(db)
	ctx := context.Background()

	if _, err := svc.Sync(ctx, "a@x.com", []domain.Record{{ID: "r1"}, {ID: "r2"}}); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	n, err := svc.Reconcile(ctx, "a@x.com", nil)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if n != 2 {
		t.Fatalf("cancelled %d rows, want 2", n)
	}
}

func TestRecordReconcile_NeverRevives(t *testing.T) {
	db := newServicesDB(t, &domain.Record{})
	svc := NewRecordService(db)
	ctx := context.Background()

	if _, err := svc.Sync(ctx, "a@x.com", []domain.Record{{ID: "r1"}}); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if _, err := svc.Reconcile(ctx, "a@x.com", nil); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	// The id reappearing upstream does not flip the local row back.
	if _, err := svc.Reconcile(ctx, "a@x.com", []string{"r1"}); err != nil {
		t.Fatalf("Reconcile (revive attempt): %v", err)
	}
	recs, err := svc.List(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 || !recs[0].IsCancelled {
		t.Fatalf("cancellation did not stick: %+v", recs)
	}
}

func TestRecordDelete(t *testing.T) {
	db := newServicesDB(t, &domain.Record{})
	svc := NewRecordService(db)
	ctx := context.Background()

	if _, err := svc.Sync(ctx, "a@x.com", []domain.Record{{ID: "r1"}}); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if err := svc.Delete(ctx, "a@x.com", "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "a@x.com", "r1"); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("second delete: got %v, want ErrAppointmentNotFound", err)
	}
	if err := svc.Delete(ctx, "b@x.com", "r1"); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("foreign delete: got %v, want ErrAppointmentNotFound", err)
	}
}
