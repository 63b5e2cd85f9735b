// Handler wiring.
//
// This file declares the service contracts the HTTP layer consumes and the
// Handlers aggregate that binds them. Handlers are transport-thin: they
// validate input, call application services, and translate results into HTTP
// responses. All contracts are context-aware; implementations must be safe
// for concurrent use and honor the context for cancellation.
package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/http/middleware"
	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

// AuthService defines registration, login, and token resolution.
type AuthService interface {
	// Register creates a user and returns a fresh access token.
	Register(ctx context.Context, name, birth, email, password string) (string, error)
	// Login verifies credentials and returns a fresh access token.
	Login(ctx context.Context, email, password string) (string, error)
	// Resolve maps an opaque token to the owning user's email.
	Resolve(ctx context.Context, token string) (string, error)
	// MarkOnboardingShown records that the user completed onboarding.
	MarkOnboardingShown(ctx context.Context, userEmail string) error
}

// DoctorService defines read access to the doctor directory.
type DoctorService interface {
	ListByClinic(ctx context.Context, clinic string) ([]domain.Doctor, error)
}

// QuotaService defines the daily chat-session quota operations.
type QuotaService interface {
	// Remaining reports how many sessions the user may still start today.
	Remaining(ctx context.Context, userEmail string) (int, error)
	// Start consumes one session; false means the quota is exhausted.
	Start(ctx context.Context, userEmail string) (bool, error)
}

// ScheduleService defines slot availability computations.
type ScheduleService interface {
	AvailableDates(year int, month time.Month) []string
	TimeSlotsForDate(dateKey string) []string
}

// BookingService defines appointment creation.
type BookingService interface {
	// Book creates (or replays, per idemKey) a confirmed appointment.
	Book(ctx context.Context, userEmail, doctorEmail string, at time.Time, idemKey string) (*domain.Record, bool, error)
}

// BotService defines the symptom-checker prompt operation.
type BotService interface {
	Answer(ctx context.Context, userEmail, prompt string) (string, bool, error)
}

// FavoriteService defines the favorite-doctor toggle and listing.
type FavoriteService interface {
	Add(ctx context.Context, userEmail string, in services.FavoriteInput) error
	Remove(ctx context.Context, userEmail, favoriteKey string) error
	List(ctx context.Context, userEmail string) ([]domain.FavoriteDoctor, error)
}

// RecordService defines the appointment-record cache operations.
type RecordService interface {
	Sync(ctx context.Context, userEmail string, recs []domain.Record) (int64, error)
	Reconcile(ctx context.Context, userEmail string, activeIDs []string) (int64, error)
	List(ctx context.Context, userEmail string) ([]domain.Record, error)
	Delete(ctx context.Context, userEmail, id string) error
}

// Handlers groups the HTTP endpoints and their service dependencies.
type Handlers struct {
	authSvc     AuthService
	doctorSvc   DoctorService
	quotaSvc    QuotaService
	scheduleSvc ScheduleService
	bookingSvc  BookingService
	botSvc      BotService
	favSvc      FavoriteService
	recordSvc   RecordService
}

// New constructs a Handlers instance bound to the given services.
func New(
	auth AuthService,
	doctors DoctorService,
	quota QuotaService,
	schedule ScheduleService,
	booking BookingService,
	bot BotService,
	favorites FavoriteService,
	records RecordService,
) *Handlers {
	return &Handlers{
		authSvc:     auth,
		doctorSvc:   doctors,
		quotaSvc:    quota,
		scheduleSvc: schedule,
		bookingSvc:  booking,
		botSvc:      bot,
		favSvc:      favorites,
		recordSvc:   records,
	}
}

// userEmail returns the authenticated identity from the Gin context, set
// either by the RequireAuth middleware or by a legacy body-token handler.
func userEmail(c *gin.Context) string {
	email, _ := middleware.UserEmail(c)
	return email
}

// authFromBodyToken resolves a legacy body-carried token and stashes the
// identity in the context. It writes the 401 itself and returns false when
// the token is missing or invalid.
func (h *Handlers) authFromBodyToken(c *gin.Context, token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		fail(c, 401, ErrCodeUnauthorized, "missing token")
		return false
	}
	email, err := h.authSvc.Resolve(c.Request.Context(), token)
	if err != nil || email == "" {
		fail(c, 401, ErrCodeUnauthorized, "invalid or expired token")
		return false
	}
	middleware.SetUserEmail(c, email)
	return true
}
