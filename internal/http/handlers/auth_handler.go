// Auth HTTP handlers.
//
// This file exposes the account endpoints:
//   - POST /user/login   (credentials → access token)
//   - POST /register     (new account → access token)
//   - PUT  /api/v1/profile/onboarding (mark onboarding shown)
//
// The login/register routes keep the legacy wire shape consumed by the mobile
// client: the login field carries the email address and tokens travel in the
// JSON body, not in headers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

// LoginRequest is the JSON payload for POST /user/login.
type LoginRequest struct {
	// Login is the account email address.
	Login    string `json:"login" binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON payload for POST /register.
type RegisterRequest struct {
	Name string `json:"name" binding:"required" example:"Maria"`
	// Birth is an ISO date string (yyyy-MM-dd).
	Birth    string `json:"birth" example:"1990-04-12"`
	Login    string `json:"login" binding:"required" example:"a@x.com"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies credentials and returns a fresh access token.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
// @Success     200  {object}  handlers.TokenResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Router      /user/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	token, err := h.authSvc.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "login must be an email address")
		case errors.Is(err, services.ErrInvalidCredentials):
			fail(c, http.StatusUnauthorized, ErrCodeLoginFailed, "invalid login or password")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, TokenResponse{AccessToken: token})
}

// Register godoc
// @ID          register
// @Summary     Register an account
// @Description Creates an account and returns a fresh access token.
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.RegisterRequest  true  "New account payload"
// @Success     201  {object}  handlers.TokenResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	token, err := h.authSvc.Register(c.Request.Context(), req.Name, req.Birth, req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyField), errors.Is(err, services.ErrInvalidEmail):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name, email login and password are required")
		case errors.Is(err, services.ErrEmailTaken):
			fail(c, http.StatusConflict, ErrCodeRegisterFailed, "email already registered")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, TokenResponse{AccessToken: token})
}

// MarkOnboarding godoc
// @ID          markOnboarding
// @Summary     Mark onboarding shown
// @Tags        Auth
// @Produce     json
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /api/v1/profile/onboarding [put]
func (h *Handlers) MarkOnboarding(c *gin.Context) {
	if err := h.authSvc.MarkOnboardingShown(c.Request.Context(), userEmail(c)); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unknown user")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
