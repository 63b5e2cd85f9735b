// Package services – BookingService
//
// This file implements appointment booking. A booking validates the doctor
// and the requested slot against the fixed offer, then persists a confirmed
// Record. When the caller supplies an idempotency key, a replayed request
// returns the originally created record instead of booking twice.
//
// Observability: Book is OpenTelemetry-instrumented; spans include user and
// doctor identifiers.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BookingService creates confirmed appointment records.
type BookingService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// Schedule validates booking instants against the slot offer.
	Schedule *ScheduleService

	// IdempotencyTTL bounds how long a booking key can be replayed.
	IdempotencyTTL time.Duration
}

// NewBookingService constructs a BookingService with a 24h replay window.
func NewBookingService(db *gorm.DB, sched *ScheduleService) *BookingService {
	return &BookingService{DB: db, Schedule: sched, IdempotencyTTL: 24 * time.Hour}
}

// Book validates and persists an appointment with the given doctor at the
// given instant. The returned bool reports whether the result is a replay of
// an earlier booking with the same idempotency key (idemKey may be empty).
func (s *BookingService) Book(ctx context.Context, userEmail, doctorEmail string, at time.Time, idemKey string) (*domain.Record, bool, error) {
	tr := otel.Tracer("services/BookingService")
	ctx, span := tr.Start(ctx, "Book",
		trace.WithAttributes(
			attribute.String("user.id", userEmail),
			attribute.String("doctor.email", doctorEmail),
		),
	)
	defer span.End()

	// Replay short-circuit before any validation or side effects.
	if idemKey != "" {
		if prev, err := repo.GetBookingIdempotency(ctx, s.DB, userEmail, doctorEmail, idemKey, time.Now().UTC()); err == nil && prev != nil {
			rec, gerr := repo.GetRecord(ctx, s.DB, prev.RecordID, userEmail)
			if gerr == nil {
				return rec, true, nil
			}
		}
	}

	doc, err := repo.GetDoctorByEmail(ctx, s.DB, doctorEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrDoctorNotFound
		}
		return nil, false, err
	}
	if s.Schedule != nil && !s.Schedule.IsOfferedSlot(at) {
		return nil, false, ErrSlotUnavailable
	}

	rec := &domain.Record{
		ID:          uuid.NewString(),
		UserEmail:   userEmail,
		DoctorName:  doc.Name + " " + doc.Surname,
		Specialty:   doc.Specialty,
		Time:        at.Format(time.RFC3339),
		Address:     doc.Clinic,
		Clinic:      doc.Clinic,
		PhotoURL:    doc.PhotoURL,
		IsConfirmed: true,
	}

	// Record and idempotency marker commit together.
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateRecord(ctx, tx, rec); err != nil {
			return err
		}
		if idemKey != "" {
			// A concurrent retry may win the race here; the caller-side
			// ErrDuplicate handling below surfaces its record instead.
			if _, err := repo.CreateBookingIdempotency(ctx, tx, userEmail, doctorEmail, idemKey, rec.ID, 1, s.ttl()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) && idemKey != "" {
			if prev, gerr := repo.GetBookingIdempotency(ctx, s.DB, userEmail, doctorEmail, idemKey, time.Now().UTC()); gerr == nil && prev != nil {
				if rec2, rerr := repo.GetRecord(ctx, s.DB, prev.RecordID, userEmail); rerr == nil {
					return rec2, true, nil
				}
			}
		}
		return nil, false, err
	}
	return rec, false, nil
}

func (s *BookingService) ttl() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return 24 * time.Hour
}
