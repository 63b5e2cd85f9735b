// Symptom-checker bot HTTP handlers.
//
// This file exposes:
//   - POST /promt_bot                 (legacy route name kept verbatim — the
//     mobile client ships with the typo)
//   - GET  /api/v1/chat/quota         (remaining sessions today)
//   - POST /api/v1/chat/sessions      (consume one session)
//
// Quota exhaustion is a normal terminal state: the session endpoint answers
// 200 with granted=false rather than an error. Storage failures fail closed
// (0 remaining).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mydoctor-app/go-booking-backend/internal/http/middleware"
)

// PromptBotRequest is the JSON payload for POST /promt_bot.
type PromptBotRequest struct {
	Token      string `json:"token" binding:"required"`
	PromptText string `json:"prompt_text" binding:"required" example:"I have a fever and a sore throat"`
}

// PromptBotResponse is the bot's reply envelope.
type PromptBotResponse struct {
	Text    string `json:"text"`
	FromBot bool   `json:"from_bot"`
}

// QuotaResponse reports the remaining chat sessions for today.
type QuotaResponse struct {
	Remaining int `json:"remaining"`
}

// StartSessionResponse reports the outcome of a session-start attempt.
type StartSessionResponse struct {
	Granted   bool `json:"granted"`
	Remaining int  `json:"remaining"`
}

// PromptBot godoc
// @ID          promptBot
// @Summary     Ask the symptom-checker bot
// @Description Answers a free-text symptom prompt; declines when confidence is low.
// @Tags        Bot
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.PromptBotRequest  true  "Prompt payload"
// @Success     200  {object}  handlers.PromptBotResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /promt_bot [post]
func (h *Handlers) PromptBot(c *gin.Context) {
	var req PromptBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if !h.authFromBodyToken(c, req.Token) {
		return
	}

	text, fromBot, err := h.botSvc.Answer(c.Request.Context(), userEmail(c), req.PromptText)
	if err != nil {
		middleware.CountBotPrompt("rejected")
		fail(c, http.StatusBadRequest, ErrCodeAnswerFailed, err.Error())
		return
	}
	middleware.CountBotPrompt("answered")
	ok(c, http.StatusOK, PromptBotResponse{Text: text, FromBot: fromBot})
}

// ChatQuota godoc
// @ID          chatQuota
// @Summary     Remaining chat sessions today
// @Tags        Bot
// @Produce     json
// @Success     200  {object}  handlers.QuotaResponse
// @Router      /api/v1/chat/quota [get]
func (h *Handlers) ChatQuota(c *gin.Context) {
	remaining, err := h.quotaSvc.Remaining(c.Request.Context(), userEmail(c))
	if err != nil {
		// Fail closed: report the limit as reached.
		middleware.LoggerFrom(c).Error().Err(err).Msg("quota lookup failed")
		ok(c, http.StatusOK, QuotaResponse{Remaining: 0})
		return
	}
	ok(c, http.StatusOK, QuotaResponse{Remaining: remaining})
}

// StartChatSession godoc
// @ID          startChatSession
// @Summary     Start a chat session
// @Description Consumes one of today's sessions; granted=false when the quota is exhausted.
// @Tags        Bot
// @Produce     json
// @Success     200  {object}  handlers.StartSessionResponse
// @Router      /api/v1/chat/sessions [post]
func (h *Handlers) StartChatSession(c *gin.Context) {
	ctx := c.Request.Context()
	email := userEmail(c)

	granted, err := h.quotaSvc.Start(ctx, email)
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("session start failed")
		ok(c, http.StatusOK, StartSessionResponse{Granted: false, Remaining: 0})
		return
	}
	if !granted {
		middleware.CountQuotaDenial()
	}

	remaining, err := h.quotaSvc.Remaining(ctx, email)
	if err != nil {
		remaining = 0
	}
	ok(c, http.StatusOK, StartSessionResponse{Granted: granted, Remaining: remaining})
}
