// Package services defines the business logic for accounts, doctors, bookings,
// favorites, records, the daily chat quota, and the symptom-checker bot. This
// file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer.
package services

import "errors"

// Account-related errors.
var (
	// ErrInvalidEmail is returned when a login identifier is not a plausible
	// email address.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrEmptyField is returned when a required registration field is blank.
	ErrEmptyField = errors.New("required field is empty")

	// ErrEmailTaken is returned when registering with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login fails. It deliberately does
	// not distinguish a missing account from a wrong password.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrInvalidToken is returned when an access token is unknown or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Booking-related errors.
var (
	// ErrDoctorNotFound indicates that the requested doctor does not exist.
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrSlotUnavailable is returned when a booking targets a past date or a
	// time of day outside the offered slot list.
	ErrSlotUnavailable = errors.New("requested slot is not available")

	// ErrAppointmentNotFound indicates that the requested appointment record
	// does not exist or is not accessible to the current user.
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Bot-related errors.
var (
	// ErrEmptyPrompt is returned when a bot request contains an empty prompt.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrTooLong is returned when a prompt exceeds the configured length limit.
	ErrTooLong = errors.New("prompt too long")
)
