// Package services – QuotaService
//
// This file implements the daily chat-session quota: a per-user, per-day cap
// on how many AI-chat conversations may be started. The quota is backed by a
// single counter row keyed by (user, local calendar date); rollover needs no
// scheduled job because a new date simply yields an absent row.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the user identifier and the date key.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// QuotaService enforces the per-day chat-session cap.
type QuotaService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// MaxSessions caps sessions per user per day; zero means the default (2).
	MaxSessions int

	// Now supplies the current time; overridable in tests. The date key uses
	// the local calendar date of the returned instant.
	Now func() time.Time
}

// NewQuotaService constructs a QuotaService with the default daily cap.
func NewQuotaService(db *gorm.DB) *QuotaService {
	return &QuotaService{DB: db, MaxSessions: domain.DefaultMaxSessions}
}

// Remaining returns how many chat sessions the user may still start today.
// An absent row means the full cap; otherwise max(0, cap - used).
func (s *QuotaService) Remaining(ctx context.Context, userEmail string) (int, error) {
	tr := otel.Tracer("services/QuotaService")
	ctx, span := tr.Start(ctx, "Remaining",
		trace.WithAttributes(attribute.String("user.id", userEmail)),
	)
	defer span.End()

	row, err := repo.GetSession(ctx, s.DB, userEmail, s.dateKey())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.max(), nil
		}
		return 0, err
	}
	left := row.MaxSessions - row.SessionsUsed
	if left < 0 {
		left = 0
	}
	return left, nil
}

// Start attempts to start a chat session for the user today.
//
// Absent row: creates it with one session used and grants the start. Present
// row below the cap: increments and grants. At the cap: returns false without
// error — quota exhaustion is a normal terminal state, not a failure.
func (s *QuotaService) Start(ctx context.Context, userEmail string) (bool, error) {
	key := s.dateKey()

	tr := otel.Tracer("services/QuotaService")
	ctx, span := tr.Start(ctx, "Start",
		trace.WithAttributes(
			attribute.String("user.id", userEmail),
			attribute.String("session.date", key),
		),
	)
	defer span.End()

	_, err := repo.GetSession(ctx, s.DB, userEmail, key)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, cerr := repo.CreateSession(ctx, s.DB, userEmail, key, s.max()); cerr != nil {
			if errors.Is(cerr, repo.ErrDuplicate) {
				// Lost a first-start race; fall through to the guarded increment.
				return s.increment(ctx, userEmail, key)
			}
			return false, cerr
		}
		return true, nil
	case err != nil:
		return false, err
	default:
		return s.increment(ctx, userEmail, key)
	}
}

// increment performs the capped counter bump. A no-op update means the row was
// already at the cap, which is the "limit reached" outcome, not an error.
func (s *QuotaService) increment(ctx context.Context, userEmail, key string) (bool, error) {
	err := repo.IncrementSession(ctx, s.DB, userEmail, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// dateKey returns today's local calendar date formatted yyyy-MM-dd.
func (s *QuotaService) dateKey() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().Format(domain.DateKeyLayout)
}

func (s *QuotaService) max() int {
	if s.MaxSessions > 0 {
		return s.MaxSessions
	}
	return domain.DefaultMaxSessions
}
