// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication. Tokens are opaque strings
// issued at login/registration and resolved to a user email through a narrow
// TokenResolver function, keeping the middleware decoupled from persistence.
//
// The resolved identity is stored in the Gin context under the "userID" key,
// which the logger, rate limiter, and handlers all read.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// userCtxKey is the Gin context key holding the authenticated user's email.
const userCtxKey = "userID"

// TokenResolver maps an opaque token to the owning user's email. It returns
// an error when the token is unknown or expired.
type TokenResolver func(ctx context.Context, token string) (userEmail string, err error)

// UserEmail returns the authenticated user's email from the Gin context. The
// second value reports whether authentication middleware set one.
func UserEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// SetUserEmail stores the authenticated identity in the Gin context. Exposed
// for handlers that authenticate from a request body rather than a header.
func SetUserEmail(c *gin.Context, email string) {
	c.Set(userCtxKey, email)
}

// RequireAuth returns a middleware that authenticates via the Authorization
// header ("Bearer <token>"; a bare token is also accepted) and aborts with a
// 401 JSON body when the token is missing or does not resolve.
func RequireAuth(resolve TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			unauthorized(c)
			return
		}
		email, err := resolve(c.Request.Context(), token)
		if err != nil || email == "" {
			unauthorized(c)
			return
		}
		c.Set(userCtxKey, email)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    "missing or invalid token",
	})
}

// bearerToken extracts the token from an Authorization header value. The
// "Bearer" scheme prefix is optional and matched case-insensitively.
func bearerToken(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}
