// Favorite-doctor HTTP handlers.
//
// This file exposes the favorites cache:
//   - GET    /api/v1/favorites        (list)
//   - PUT    /api/v1/favorites        (toggle on / refresh)
//   - DELETE /api/v1/favorites/:key   (toggle off)
//
// The toggle is idempotent both ways: re-favoriting refreshes the stored row
// and unfavoriting a missing key is a no-op.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

// FavoriteRequest is the JSON payload for PUT /api/v1/favorites.
type FavoriteRequest struct {
	// FavoriteKey deduplicates a doctor across clinics.
	FavoriteKey string  `json:"favorite_key" binding:"required" example:"dr.pap@clinic.gr"`
	DoctorEmail string  `json:"doctor_email" example:"dr.pap@clinic.gr"`
	Name        string  `json:"name"`
	Surname     string  `json:"surname"`
	Specialty   string  `json:"specialty"`
	Rating      float64 `json:"rating"`
	PhotoURL    string  `json:"photo_url"`
	Clinic      string  `json:"clinic"`
}

// FavoritesResponse wraps a favorites listing.
type FavoritesResponse struct {
	Favorites []domain.FavoriteDoctor `json:"favorites"`
}

// ListFavorites godoc
// @ID          listFavorites
// @Summary     List favorite doctors
// @Tags        Favorites
// @Produce     json
// @Success     200  {object}  handlers.FavoritesResponse
// @Router      /api/v1/favorites [get]
func (h *Handlers) ListFavorites(c *gin.Context) {
	favs, err := h.favSvc.List(c.Request.Context(), userEmail(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if favs == nil {
		favs = []domain.FavoriteDoctor{}
	}
	ok(c, http.StatusOK, FavoritesResponse{Favorites: favs})
}

// AddFavorite godoc
// @ID          addFavorite
// @Summary     Favorite a doctor
// @Description Upserts a favorite; toggling an already-favorited doctor refreshes its fields.
// @Tags        Favorites
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.FavoriteRequest  true  "Favorite payload"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /api/v1/favorites [put]
func (h *Handlers) AddFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	err := h.favSvc.Add(c.Request.Context(), userEmail(c), services.FavoriteInput{
		DoctorEmail: req.DoctorEmail,
		FavoriteKey: req.FavoriteKey,
		Name:        req.Name,
		Surname:     req.Surname,
		Specialty:   req.Specialty,
		Rating:      req.Rating,
		PhotoURL:    req.PhotoURL,
		Clinic:      req.Clinic,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyField) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "favorite_key required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// RemoveFavorite godoc
// @ID          removeFavorite
// @Summary     Unfavorite a doctor
// @Description Deletes the favorite by key; removing a key that was never favorited is a no-op.
// @Tags        Favorites
// @Produce     json
// @Param       key  path  string  true  "Favorite key"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /api/v1/favorites/{key} [delete]
func (h *Handlers) RemoveFavorite(c *gin.Context) {
	key := c.Param("key")
	if err := h.favSvc.Remove(c.Request.Context(), userEmail(c), key); err != nil {
		if errors.Is(err, services.ErrEmptyField) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "favorite key required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
