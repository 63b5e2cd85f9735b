// Test scaffolding shared by the handler tests: stub services with pluggable
// function fields and a router mirroring the production route layout.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/http/middleware"
	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

type stubAuth struct {
	registerFn func(ctx context.Context, name, birth, email, password string) (string, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	resolveFn  func(ctx context.Context, token string) (string, error)
	onboardFn  func(ctx context.Context, userEmail string) error
}

func (s *stubAuth) Register(ctx context.Context, name, birth, email, password string) (string, error) {
	return s.registerFn(ctx, name, birth, email, password)
}
func (s *stubAuth) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}
func (s *stubAuth) Resolve(ctx context.Context, token string) (string, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, token)
	}
	if token == "good-token" {
		return "a@x.com", nil
	}
	return "", errors.New("unknown token")
}
func (s *stubAuth) MarkOnboardingShown(ctx context.Context, userEmail string) error {
	return s.onboardFn(ctx, userEmail)
}

type stubDoctors struct {
	listFn func(ctx context.Context, clinic string) ([]domain.Doctor, error)
}

func (s *stubDoctors) ListByClinic(ctx context.Context, clinic string) ([]domain.Doctor, error) {
	return s.listFn(ctx, clinic)
}

type stubQuota struct {
	remainingFn func(ctx context.Context, userEmail string) (int, error)
	startFn     func(ctx context.Context, userEmail string) (bool, error)
}

func (s *stubQuota) Remaining(ctx context.Context, userEmail string) (int, error) {
	return s.remainingFn(ctx, userEmail)
}
func (s *stubQuota) Start(ctx context.Context, userEmail string) (bool, error) {
	return s.startFn(ctx, userEmail)
}

type stubSchedule struct {
	datesFn func(year int, month time.Month) []string
	slotsFn func(dateKey string) []string
}

func (s *stubSchedule) AvailableDates(year int, month time.Month) []string {
	return s.datesFn(year, month)
}
func (s *stubSchedule) TimeSlotsForDate(dateKey string) []string { return s.slotsFn(dateKey) }

type stubBooking struct {
	bookFn func(ctx context.Context, userEmail, doctorEmail string, at time.Time, idemKey string) (*domain.Record, bool, error)
}

func (s *stubBooking) Book(ctx context.Context, userEmail, doctorEmail string, at time.Time, idemKey string) (*domain.Record, bool, error) {
	return s.bookFn(ctx, userEmail, doctorEmail, at, idemKey)
}

type stubBot struct {
	answerFn func(ctx context.Context, userEmail, prompt string) (string, bool, error)
}

func (s *stubBot) Answer(ctx context.Context, userEmail, prompt string) (string, bool, error) {
	return s.answerFn(ctx, userEmail, prompt)
}

type stubFavorites struct {
	addFn    func(ctx context.Context, userEmail string, in services.FavoriteInput) error
	removeFn func(ctx context.Context, userEmail, favoriteKey string) error
	listFn   func(ctx context.Context, userEmail string) ([]domain.FavoriteDoctor, error)
}

func (s *stubFavorites) Add(ctx context.Context, userEmail string, in services.FavoriteInput) error {
	return s.addFn(ctx, userEmail, in)
}
func (s *stubFavorites) Remove(ctx context.Context, userEmail, favoriteKey string) error {
	return s.removeFn(ctx, userEmail, favoriteKey)
}
func (s *stubFavorites) List(ctx context.Context, userEmail string) ([]domain.FavoriteDoctor, error) {
	return s.listFn(ctx, userEmail)
}

type stubRecords struct {
	syncFn      func(ctx context.Context, userEmail string, recs []domain.Record) (int64, error)
	reconcileFn func(ctx context.Context, userEmail string, activeIDs []string) (int64, error)
	listFn      func(ctx context.Context, userEmail string) ([]domain.Record, error)
	deleteFn    func(ctx context.Context, userEmail, id string) error
}

func (s *stubRecords) Sync(ctx context.Context, userEmail string, recs []domain.Record) (int64, error) {
	return s.syncFn(ctx, userEmail, recs)
}
func (s *stubRecords) Reconcile(ctx context.Context, userEmail string, activeIDs []string) (int64, error) {
	return s.reconcileFn(ctx, userEmail, activeIDs)
}
func (s *stubRecords) List(ctx context.Context, userEmail string) ([]domain.Record, error) {
	return s.listFn(ctx, userEmail)
}
func (s *stubRecords) Delete(ctx context.Context, userEmail, id string) error {
	return s.deleteFn(ctx, userEmail, id)
}

// stubs bundles one of each stub so tests only fill in what they exercise.
type stubs struct {
	auth      *stubAuth
	doctors   *stubDoctors
	quota     *stubQuota
	schedule  *stubSchedule
	booking   *stubBooking
	bot       *stubBot
	favorites *stubFavorites
	records   *stubRecords
}

func newStubs() *stubs {
	return &stubs{
		auth:      &stubAuth{},
		doctors:   &stubDoctors{},
		quota:     &stubQuota{},
		schedule:  &stubSchedule{},
		booking:   &stubBooking{},
		bot:       &stubBot{},
		favorites: &stubFavorites{},
		records:   &stubRecords{},
	}
}

// newTestRouter mirrors the production route layout: legacy body-token routes
// at the root, bearer-authenticated routes under /api/v1.
func newTestRouter(s *stubs) *gin.Engine {
	h := New(s.auth, s.doctors, s.quota, s.schedule, s.booking, s.bot, s.favorites, s.records)
	return routerFor(h, s.auth.Resolve)
}

func routerFor(h *Handlers, resolve middleware.TokenResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/user/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/get_doctors_by_clinic_name", h.DoctorsByClinic)
	r.PUT("/book_appointment", h.BookAppointment)
	r.POST("/promt_bot", h.PromptBot)

	api := r.Group("/api/v1")
	api.Use(middleware.RequireAuth(resolve))
	api.GET("/chat/quota", h.ChatQuota)
	api.POST("/chat/sessions", h.StartChatSession)
	api.GET("/schedule/dates", h.AvailableDates)
	api.GET("/schedule/slots", h.TimeSlots)
	api.GET("/favorites", h.ListFavorites)
	api.PUT("/favorites", h.AddFavorite)
	api.DELETE("/favorites/:key", h.RemoveFavorite)
	api.GET("/records", h.ListRecords)
	api.POST("/records/sync", h.SyncRecords)
	api.POST("/records/reconcile", h.ReconcileRecords)
	api.DELETE("/records/:id", h.DeleteRecord)
	api.PUT("/profile/onboarding", h.MarkOnboarding)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func authed(extra map[string]string) map[string]string {
	h := map[string]string{"Authorization": "Bearer good-token"}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
