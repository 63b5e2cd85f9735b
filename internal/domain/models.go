// Package domain defines the persistence models for users, doctors, chat
// sessions, favorites, and appointment records. These types are mapped with
// GORM and form the core data layer of the booking backend.
package domain

import (
	"time"
)

// DateKeyLayout is the calendar-date format used to key daily chat sessions.
// The key uses the local calendar date, so quota rollover is implicit: a new
// day yields a fresh, absent row.
const DateKeyLayout = "2006-01-02"

// DefaultMaxSessions is the per-user, per-day cap on AI-chat sessions.
const DefaultMaxSessions = 2

// User represents a registered patient account.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email: login identifier; unique across accounts.
//   - Name: display name captured at registration.
//   - Birth: birth date in ISO form (yyyy-MM-dd), stored as text.
//   - PasswordHash: bcrypt hash of the account password.
//   - OnboardingShown: whether the intro flow has been acknowledged.
type User struct {
	ID              string    `json:"id"               gorm:"type:char(36);primaryKey"`
	Email           string    `json:"email"            gorm:"type:varchar(254);not null;uniqueIndex:ux_users_email"`
	Name            string    `json:"name"             gorm:"type:varchar(128);not null"`
	Birth           string    `json:"birth"            gorm:"type:varchar(10)"`
	PasswordHash    string    `json:"-"                gorm:"type:varchar(128);not null"`
	OnboardingShown bool      `json:"onboarding_shown" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// AuthToken is an opaque access token issued at login/registration. Every
// authenticated operation resolves the presented token to its user email.
// Expired tokens are treated as absent.
type AuthToken struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Token     string    `json:"token"      gorm:"type:char(36);not null;uniqueIndex:ux_tokens_token"`
	UserEmail string    `json:"user_email" gorm:"type:varchar(254);not null;index:idx_tokens_user"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for AuthToken.
func (AuthToken) TableName() string { return "auth_tokens" }

// Doctor is a bookable practitioner attached to a clinic.
//
// WorkingDays is carried as data but does not influence slot generation:
// every available date exposes the same fixed time-slot list.
type Doctor struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	Email       string    `json:"email"        gorm:"type:varchar(254);not null;uniqueIndex:ux_doctors_email"`
	Name        string    `json:"name"         gorm:"type:varchar(128);not null"`
	Surname     string    `json:"surname"      gorm:"type:varchar(128);not null"`
	Specialty   string    `json:"specialty"    gorm:"type:varchar(128);not null"`
	Rating      float64   `json:"rating"       gorm:"not null;default:0"`
	PhotoURL    string    `json:"photo_url"    gorm:"type:varchar(512)"`
	Clinic      string    `json:"clinic"       gorm:"type:varchar(128);not null;index:idx_doctors_clinic"`
	WorkingDays string    `json:"working_days" gorm:"type:varchar(64)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Doctor.
func (Doctor) TableName() string { return "doctors" }

// ChatSession tracks daily AI-chat usage for one user on one calendar date.
// Rows are created on the first chat start of the day, mutated by incrementing
// SessionsUsed (capped at MaxSessions), and never deleted.
//
// Invariant: SessionsUsed <= MaxSessions at all times.
type ChatSession struct {
	ID           string    `json:"id"            gorm:"type:varchar(300);primaryKey"`
	UserEmail    string    `json:"user_email"    gorm:"type:varchar(254);not null;index:idx_sessions_user"`
	SessionDate  string    `json:"session_date"  gorm:"type:varchar(10);not null"`
	SessionsUsed int       `json:"sessions_used" gorm:"not null;default:0"`
	MaxSessions  int       `json:"max_sessions"  gorm:"not null;default:2"`
	LastTopic    string    `json:"last_topic"    gorm:"type:varchar(64)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for ChatSession.
func (ChatSession) TableName() string { return "chat_sessions" }

// SessionKey builds the ChatSession primary key for a user and a date key.
func SessionKey(userEmail, dateKey string) string {
	return userEmail + "#" + dateKey
}

// FavoriteDoctor is a doctor pinned by a user. The favorite key deduplicates
// a doctor across clinics; uniqueness is enforced per (user, favorite key).
type FavoriteDoctor struct {
	ID          string    `json:"id"           gorm:"type:varchar(300);primaryKey"`
	UserEmail   string    `json:"user_email"   gorm:"type:varchar(254);not null;uniqueIndex:ux_fav_user_key,priority:1"`
	DoctorEmail string    `json:"doctor_email" gorm:"type:varchar(254);not null"`
	FavoriteKey string    `json:"favorite_key" gorm:"type:varchar(128);not null;uniqueIndex:ux_fav_user_key,priority:2"`
	Name        string    `json:"name"         gorm:"type:varchar(128)"`
	Surname     string    `json:"surname"      gorm:"type:varchar(128)"`
	Specialty   string    `json:"specialty"    gorm:"type:varchar(128)"`
	Rating      float64   `json:"rating"       gorm:"not null;default:0"`
	PhotoURL    string    `json:"photo_url"    gorm:"type:varchar(512)"`
	Clinic      string    `json:"clinic"       gorm:"type:varchar(128)"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for FavoriteDoctor.
func (FavoriteDoctor) TableName() string { return "favorite_doctors" }

// FavoriteID builds the FavoriteDoctor primary key for a user and favorite key.
func FavoriteID(userEmail, favoriteKey string) string {
	return userEmail + "#" + favoriteKey
}

// Record is a cached appointment row. IsCancelled only ever flips false→true:
// reconciliation marks rows cancelled when they disappear from the latest
// authoritative snapshot, and never reverts them.
type Record struct {
	ID          string    `json:"id"           gorm:"type:varchar(128);primaryKey"`
	UserEmail   string    `json:"user_email"   gorm:"type:varchar(254);not null;index:idx_records_user"`
	DoctorName  string    `json:"doctor_name"  gorm:"type:varchar(256)"`
	Specialty   string    `json:"specialty"    gorm:"type:varchar(128)"`
	Time        string    `json:"time"         gorm:"type:varchar(32)"`
	Address     string    `json:"address"      gorm:"type:varchar(256)"`
	Clinic      string    `json:"clinic"       gorm:"type:varchar(128)"`
	PhotoURL    string    `json:"photo_url"    gorm:"type:varchar(512)"`
	IsFavorite  bool      `json:"is_favorite"  gorm:"not null;default:false"`
	IsConfirmed bool      `json:"is_confirmed" gorm:"not null;default:false"`
	IsCancelled bool      `json:"is_cancelled" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Record.
func (Record) TableName() string { return "records" }
