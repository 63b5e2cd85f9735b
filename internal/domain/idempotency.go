// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// BookingIdempotency records the outcome of a previously processed booking,
// keyed by (user_email, doctor_email, key). It enables safe retries of
// PUT /book_appointment by returning the originally created record without
// booking a second appointment.
type BookingIdempotency struct {
	ID          string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserEmail   string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_doctor_key,priority:1"`
	DoctorEmail string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_doctor_key,priority:2"`
	Key         string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_doctor_key,priority:3"`
	RecordID    string    `gorm:"type:TEXT NOT NULL"`
	Status      int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt   time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt   time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (BookingIdempotency) TableName() string { return "booking_idempotency" }
