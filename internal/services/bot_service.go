// Package services – BotService
//
// This file implements the symptom-checker bot behind POST /promt_bot. It
// validates the prompt, retrieves the best-matching facts from the configured
// search.Index, and declines when confidence is below the threshold. As a side
// effect it derives a short topic label from the prompt and stores it on the
// user's quota row for the day (best effort, never fails the request).
//
// Observability: Answer is OpenTelemetry-instrumented.
package services

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/repo"
	"github.com/mydoctor-app/go-booking-backend/internal/search"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// declineReply is returned when retrieval finds nothing confident enough.
const declineReply = "I can't give advice on that. Please consult a doctor directly."

// BotService answers symptom prompts via retrieval over a fact index.
type BotService struct {
	// DB is the GORM handle used for topic persistence.
	DB *gorm.DB
	// Index is the symptom-fact retrieval index.
	Index search.Index
	// Threshold is the minimum retrieval score accepted as an answer [0,1].
	Threshold float64

	// MaxPromptRunes caps accepted prompts; zero disables the cap.
	MaxPromptRunes int

	// TopicMaxLen caps stored topic labels by rune length.
	TopicMaxLen int
	// TopicLocale selects the casing rules for topic labels.
	TopicLocale language.Tag

	// Now is used only for the topic's session-date key; overridable in tests.
	Now func() string
}

// Answer returns the bot reply for a prompt. The bool mirrors the wire
// contract's from_bot field and is always true for generated replies.
func (s *BotService) Answer(ctx context.Context, userEmail, prompt string) (string, bool, error) {
	tr := otel.Tracer("services/BotService")
	ctx, span := tr.Start(ctx, "Answer",
		trace.WithAttributes(attribute.String("user.id", userEmail)),
	)
	defer span.End()

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", false, ErrEmptyPrompt
	}
	if s.MaxPromptRunes > 0 && utf8.RuneCountInString(prompt) > s.MaxPromptRunes {
		return "", false, ErrTooLong
	}

	// Stash a topic on today's quota row; failures here never block a reply.
	if topic := s.topicFromPrompt(prompt); topic != "" && s.DB != nil {
		_ = repo.SetSessionTopic(ctx, s.DB, userEmail, s.dateKey(), topic)
	}

	if s.Index == nil {
		return declineReply, true, nil
	}
	results := s.Index.TopK(prompt, 3)
	if len(results) == 0 {
		return declineReply, true, nil
	}

	thr := s.Threshold
	if thr <= 0 {
		thr = 0.20
	}
	top := results[0]
	if top.Score < thr {
		return declineReply, true, nil
	}

	reply := top.Snippet
	// Append a close runner-up for a fuller answer, same as a two-snippet reply.
	if len(results) > 1 && results[1].Score >= top.Score*0.9 {
		reply = reply + "\n" + results[1].Snippet
	}
	return reply, true, nil
}

// topicWordRE extracts Unicode letters with optional trailing numbers.
var topicWordRE = regexp.MustCompile(`[\p{L}]+[\p{N}]*`)

// topicStopWords is a minimal English stop-word set for compact labels.
var topicStopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {}, "in": {},
	"is": {}, "are": {}, "for": {}, "on": {}, "with": {}, "by": {}, "from": {},
	"at": {}, "as": {}, "that": {}, "this": {}, "it": {}, "be": {}, "was": {}, "were": {},
	"i": {}, "my": {}, "have": {}, "has": {}, "feel": {}, "feeling": {},
}

// topicFromPrompt derives a concise title-cased label from the prompt.
func (s *BotService) topicFromPrompt(prompt string) string {
	toks := topicWordRE.FindAllString(strings.ToLower(prompt), -1)
	if len(toks) == 0 {
		return ""
	}

	caser := cases.Title(s.localeOrDefault())
	out := make([]string, 0, 4)
	for _, w := range toks {
		if _, skip := topicStopWords[w]; skip {
			continue
		}
		out = append(out, caser.String(w))
		if len(out) >= 4 {
			break
		}
	}
	if len(out) == 0 {
		return ""
	}
	label := strings.Join(out, " ")

	max := s.TopicMaxLen
	if max <= 0 {
		max = 64
	}
	if utf8.RuneCountInString(label) > max {
		label = string([]rune(label)[:max])
	}
	return label
}

// localeOrDefault returns the configured casing locale or English if unset.
func (s *BotService) localeOrDefault() language.Tag {
	if s.TopicLocale == language.Und {
		return language.English
	}
	return s.TopicLocale
}

func (s *BotService) dateKey() string {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().Format(domain.DateKeyLayout)
}
