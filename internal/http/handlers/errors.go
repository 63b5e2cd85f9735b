// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes the symbolic error code constants mapped to HTTP
// responses (via the fail() helper in this package). The codes give clients a
// stable, machine-readable taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase snake_case.
//   - Generic codes (bad_request, unauthorized, conflict, …) mirror common
//     HTTP status semantics.
//   - Domain-specific codes (booking_failed, quota_exhausted, …) are reserved
//     for business outcomes the status alone cannot convey.
//   - Every error response includes both an HTTP status and one of these codes.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeLoginFailed      = "login_failed"
	ErrCodeRegisterFailed   = "register_failed"
	ErrCodeBookingFailed    = "booking_failed"
	ErrCodeSlotUnavailable  = "slot_unavailable"
	ErrCodeQuotaExhausted   = "quota_exhausted"
	ErrCodeAnswerFailed     = "answer_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeSyncFailed       = "sync_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
