// Package services – DoctorService and FavoriteService
//
// DoctorService exposes clinic-scoped doctor listings; FavoriteService owns
// the favorite toggle, which is idempotent in both directions (re-favoriting
// refreshes the stored row, unfavoriting a missing key is a no-op).
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/repo"
)

// DoctorService provides read access to the doctor directory.
type DoctorService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewDoctorService constructs a DoctorService.
func NewDoctorService(db *gorm.DB) *DoctorService {
	return &DoctorService{DB: db}
}

// ListByClinic returns the doctors of the named clinic. A blank clinic name is
// a validation error surfaced as ErrEmptyField.
func (s *DoctorService) ListByClinic(ctx context.Context, clinic string) ([]domain.Doctor, error) {
	clinic = strings.TrimSpace(clinic)
	if clinic == "" {
		return nil, ErrEmptyField
	}
	return repo.ListDoctorsByClinic(ctx, s.DB, clinic)
}

// FavoriteInput carries the denormalized doctor fields stored on a favorite.
type FavoriteInput struct {
	DoctorEmail string
	FavoriteKey string
	Name        string
	Surname     string
	Specialty   string
	Rating      float64
	PhotoURL    string
	Clinic      string
}

// FavoriteService owns the favorite toggle and listing.
type FavoriteService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{DB: db}
}

// Add upserts a favorite for (userEmail, in.FavoriteKey). Toggling a doctor
// that is already favorited refreshes its stored fields.
func (s *FavoriteService) Add(ctx context.Context, userEmail string, in FavoriteInput) error {
	if strings.TrimSpace(in.FavoriteKey) == "" {
		return ErrEmptyField
	}
	fav := &domain.FavoriteDoctor{
		UserEmail:   userEmail,
		DoctorEmail: in.DoctorEmail,
		FavoriteKey: in.FavoriteKey,
		Name:        in.Name,
		Surname:     in.Surname,
		Specialty:   in.Specialty,
		Rating:      in.Rating,
		PhotoURL:    in.PhotoURL,
		Clinic:      in.Clinic,
	}
	return repo.UpsertFavorite(ctx, s.DB, fav)
}

// Remove deletes the favorite keyed by (userEmail, favoriteKey). Removing a
// key that was never favorited is a no-op.
func (s *FavoriteService) Remove(ctx context.Context, userEmail, favoriteKey string) error {
	if strings.TrimSpace(favoriteKey) == "" {
		return ErrEmptyField
	}
	return repo.DeleteFavorite(ctx, s.DB, userEmail, favoriteKey)
}

// List returns the user's favorites, most recent first.
func (s *FavoriteService) List(ctx context.Context, userEmail string) ([]domain.FavoriteDoctor, error) {
	return repo.ListFavorites(ctx, s.DB, userEmail)
}
