package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

func TestLogin_Success(t *testing.T) {
	s := newStubs()
	s.auth.loginFn = func(_ context.Context, email, password string) (string, error) {
		if email != "a@x.com" || password != "pw" {
			t.Fatalf("login called with (%q, %q)", email, password)
		}
		return "tok-123", nil
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/user/login", LoginRequest{Login: "a@x.com", Password: "pw"}, nil)
	mustStatus(t, w, http.StatusOK)
	if resp := decode[TokenResponse](t, w); resp.AccessToken != "tok-123" {
		t.Fatalf("access_token = %q", resp.AccessToken)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newStubs()
	s.auth.loginFn = func(context.Context, string, string) (string, error) {
		return "", services.ErrInvalidCredentials
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/user/login", LoginRequest{Login: "a@x.com", Password: "nope"}, nil)
	mustStatus(t, w, http.StatusUnauthorized)
	if resp := decode[ErrorResponse](t, w); resp.Code != ErrCodeLoginFailed {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	s := newStubs()
	r := newTestRouter(s)

	// Missing required fields trips binding before the service is consulted.
	w := doJSON(t, r, http.MethodPost, "/user/login", map[string]string{"login": "a@x.com"}, nil)
	mustStatus(t, w, http.StatusBadRequest)
}

func TestLogin_NonEmailLogin(t *testing.T) {
	s := newStubs()
	s.auth.loginFn = func(context.Context, string, string) (string, error) {
		return "", services.ErrInvalidEmail
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/user/login", LoginRequest{Login: "not-an-email", Password: "pw"}, nil)
	mustStatus(t, w, http.StatusBadRequest)
}

func TestRegister_Success(t *testing.T) {
	s := newStubs()
	s.auth.registerFn = func(_ context.Context, name, birth, email, password string) (string, error) {
		if name != "Maria" || birth != "1990-04-12" || email != "m@x.com" {
			t.Fatalf("register called with (%q, %q, %q)", name, birth, email)
		}
		return "tok-new", nil
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/register", RegisterRequest{
		Name: "Maria", Birth: "1990-04-12", Login: "m@x.com", Password: "pw",
	}, nil)
	mustStatus(t, w, http.StatusCreated)
	if resp := decode[TokenResponse](t, w); resp.AccessToken != "tok-new" {
		t.Fatalf("access_token = %q", resp.AccessToken)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	s := newStubs()
	s.auth.registerFn = func(context.Context, string, string, string, string) (string, error) {
		return "", services.ErrEmailTaken
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/register", RegisterRequest{
		Name: "Maria", Login: "m@x.com", Password: "pw",
	}, nil)
	mustStatus(t, w, http.StatusConflict)
	if resp := decode[ErrorResponse](t, w); resp.Code != ErrCodeRegisterFailed {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestMarkOnboarding(t *testing.T) {
	s := newStubs()
	var marked string
	s.auth.onboardFn = func(_ context.Context, userEmail string) error {
		marked = userEmail
		return nil
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/api/v1/profile/onboarding", nil, authed(nil))
	mustStatus(t, w, http.StatusNoContent)
	if marked != "a@x.com" {
		t.Fatalf("marked %q, want the authenticated user", marked)
	}
}

func TestMarkOnboarding_RequiresAuth(t *testing.T) {
	s := newStubs()
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/api/v1/profile/onboarding", nil, nil)
	mustStatus(t, w, http.StatusUnauthorized)
	if !strings.Contains(w.Body.String(), "unauthorized") {
		t.Fatalf("body = %s", w.Body.String())
	}
}
