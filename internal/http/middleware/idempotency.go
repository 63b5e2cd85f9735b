// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for booking requests. It validates
// an Idempotency-Key request header, optionally performs a caller-supplied
// lookup to detect previously completed bookings, and annotates the request
// context so downstream code can:
//   - read the normalized key (GetIdempotencyKey)
//   - detect replayed requests (IsReplay)
//   - bypass rate limiting when a replay is served (checked by RateLimiter)
//
// Transport concerns (validation, context stashing) live here; persistence is
// decoupled behind the narrow BookingLookup function type.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header clients use to convey an
// idempotency key for unsafe operations. The value is expected to be stable
// for a given semantic booking so retries deduplicate safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// Context keys used internally to stash idempotency state; referenced via the
// accessor helpers only.
const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
	ctxKeyRateBypass = "rate.bypass"
)

// GetIdempotencyKey returns the validated idempotency key stored by
// IdempotencyValidator. Handlers should prefer this over reading the header.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the middleware detected that this request replays
// a previously completed booking with the same key.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures header validation for IdempotencyValidator.
// TTL enforcement belongs inside the provided lookup, not here.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative
	// RFC7230-like token pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
}

// BookingLookup answers whether a successful, still-valid booking exists for
// (userEmail, doctorEmail, key) at the given time. Implementations typically
// consult the booking_idempotency table with its TTL window.
//
// Return exists=true when the prior booking can be replayed; return an error
// only for lookup failures, which must not block normal processing.
type BookingLookup func(ctx context.Context, userEmail, doctorEmail, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header (if present),
// stashes it in the request context, and optionally checks for a prior
// completed booking via the supplied lookup. A detected replay marks the
// context for IsReplay and for rate-limit bypass.
//
// An absent header makes the middleware a no-op; a malformed header responds
// 400. The middleware never serves a cached payload itself; handlers stay in
// control of how replays are answered.
func IdempotencyValidator(opts IdempotencyOptions, lookup BookingLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_idempotency_key",
				"message": "invalid Idempotency-Key",
			})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			email, _ := UserEmail(c)
			doctor := c.Query("doctor_email")
			now := time.Now().UTC()

			if exists, _ := lookup(c.Request.Context(), email, doctor, key, now); exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}
