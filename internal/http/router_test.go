package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/config"
	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/repo"
	"github.com/mydoctor-app/go-booking-backend/internal/search"
)

// newTestServer wires a full engine against a temp SQLite database, the same
// way main does.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "router_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	idx := search.NewIndex([]string{
		"Fever: a temperature above 38C lasting more than three days needs a doctor visit.",
	}, search.WithMinFactRunes(10))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.BcryptCost = bcrypt.MinCost
	cfg.RateRPS = 1000
	cfg.RateBurst = 1000

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, db, idx, cfg)
	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r, _ := newTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/health = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics = %d", w.Code)
	}
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	r, _ := newTestServer(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown route = %d", w.Code)
	}

	// Wrong method on a known route.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method = %d", w.Code)
	}
}

func TestRouter_RegisterLoginBookFlow(t *testing.T) {
	r, db := newTestServer(t)
	ctx := context.Background()

	if _, err := repo.UpsertDoctors(ctx, db, []domain.Doctor{{
		Email: "dr@clinic.gr", Name: "Eleni", Surname: "Papadaki",
		Specialty: "Cardiology", Clinic: "Central Clinic", Rating: 4.9,
	}}); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}

	// Register.
	w := postJSON(t, r, http.MethodPost, "/register", map[string]string{
		"name": "Anna", "birth": "1990-05-01", "login": "anna@x.com", "password": "s3cret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register = %d: %s", w.Code, w.Body.String())
	}

	// Login.
	w = postJSON(t, r, http.MethodPost, "/user/login", map[string]string{
		"login": "anna@x.com", "password": "s3cret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", w.Code, w.Body.String())
	}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &tok); err != nil || tok.AccessToken == "" {
		t.Fatalf("token response %q: %v", w.Body.String(), err)
	}

	// List the clinic's doctors with the body token.
	w = postJSON(t, r, http.MethodPost, "/get_doctors_by_clinic_name", map[string]string{
		"token": tok.AccessToken, "clinic_name": "Central Clinic",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("doctors = %d: %s", w.Code, w.Body.String())
	}

	// Book an offered slot for tomorrow.
	at := time.Now().AddDate(0, 0, 1)
	dateTime := time.Date(at.Year(), at.Month(), at.Day(), 10, 0, 0, 0, time.UTC).Format(time.RFC3339)
	w = postJSON(t, r, http.MethodPut, "/book_appointment", map[string]string{
		"token": tok.AccessToken, "doctor_email": "dr@clinic.gr", "date_time": dateTime,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("book = %d: %s", w.Code, w.Body.String())
	}

	// The booking shows up in the bearer-authenticated records listing.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("records = %d: %s", w.Code, w.Body.String())
	}

	// Bearer routes refuse requests without a token.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated records = %d", w.Code)
	}
}
