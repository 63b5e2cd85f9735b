package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

func TestListFavorites(t *testing.T) {
	s := newStubs()
	s.favorites.listFn = func(_ context.Context, userEmail string) ([]domain.FavoriteDoctor, error) {
		if userEmail != "a@x.com" {
			t.Fatalf("list called for %q", userEmail)
		}
		return []domain.FavoriteDoctor{{FavoriteKey: "k1", Name: "Eleni"}}, nil
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodGet, "/api/v1/favorites", nil, authed(nil))
	mustStatus(t, w, http.StatusOK)
	resp := decode[FavoritesResponse](t, w)
	if len(resp.Favorites) != 1 || resp.Favorites[0].FavoriteKey != "k1" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestListFavorites_EmptyIsArrayNotNull(t *testing.T) {
	s := newStubs()
	s.favorites.listFn = func(context.Context, string) ([]domain.FavoriteDoctor, error) {
		return nil, nil
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodGet, "/api/v1/favorites", nil, authed(nil))
	mustStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"favorites":[]`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestAddFavorite(t *testing.T) {
	s := newStubs()
	var got services.FavoriteInput
	s.favorites.addFn = func(_ context.Context, userEmail string, in services.FavoriteInput) error {
		if userEmail != "a@x.com" {
			t.Fatalf("add called for %q", userEmail)
		}
		got = in
		return nil
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/api/v1/favorites", FavoriteRequest{
		FavoriteKey: "dr@clinic.gr",
		DoctorEmail: "dr@clinic.gr",
		Name:        "Eleni",
		Rating:      4.8,
	}, authed(nil))
	mustStatus(t, w, http.StatusNoContent)
	if got.FavoriteKey != "dr@clinic.gr" || got.Name != "Eleni" || got.Rating != 4.8 {
		t.Fatalf("service saw %+v", got)
	}
}

func TestAddFavorite_MissingKey(t *testing.T) {
	s := newStubs()
	r := newTestRouter(s)

	// Binding rejects a payload without favorite_key.
	w := doJSON(t, r, http.MethodPut, "/api/v1/favorites", map[string]string{"name": "Eleni"}, authed(nil))
	mustStatus(t, w, http.StatusBadRequest)
}

func TestRemoveFavorite(t *testing.T) {
	s := newStubs()
	var removed string
	s.favorites.removeFn = func(_ context.Context, _, favoriteKey string) error {
		removed = favoriteKey
		return nil
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/favorites/dr@clinic.gr", nil, authed(nil))
	mustStatus(t, w, http.StatusNoContent)
	if removed != "dr@clinic.gr" {
		t.Fatalf("removed %q", removed)
	}
}

func TestRemoveFavorite_MissingKeyIsNoOp(t *testing.T) {
	s := newStubs()
	s.favorites.removeFn = func(context.Context, string, string) error { return nil }
	r := newTestRouter(s)

	// Removing a never-favorited key still answers 204.
	w := doJSON(t, r, http.MethodDelete, "/api/v1/favorites/never-added", nil, authed(nil))
	mustStatus(t, w, http.StatusNoContent)
}
