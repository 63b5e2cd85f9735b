// Package search provides a deterministic, concurrency-safe in-memory index
// over short medical fact snippets. It is intentionally small and
// dependency-free:
//
//   - No logging in the library (callers decide how/what to log)
//   - Functional options for tuning (minimum fact length, stop words, caps)
//   - Unicode-aware tokenization
//   - Immutable, read-only index after construction (safe for concurrent use)
//   - Deterministic scoring and ordering (stable order for ties)
//
// Scoring uses Jaccard similarity between the query token set and each fact's
// token set: score = |Q ∩ F| / |Q ∪ F|. Facts are produced from a Markdown
// knowledge base by ExtractFacts (see facts.go), which keeps each fact
// prefixed with its section heading so that queries naming a symptom rank its
// section first.
package search

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Result is one ranked fact with its similarity score.
type Result struct {
	Snippet string
	Score   float64
}

// Index is the minimal retrieval interface consumed by callers.
type Index interface {
	TopK(query string, k int) []Result
}

// Option configures index construction.
type Option func(*settings)

type settings struct {
	minFactRunes int
	stopwords    map[string]struct{}
	maxFacts     int
}

func defaultSettings() settings {
	return settings{minFactRunes: 24}
}

// WithMinFactRunes drops facts shorter than n runes. Negative values are
// ignored; zero disables the filter.
func WithMinFactRunes(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.minFactRunes = n
		}
	}
}

// WithStopwords removes the given words from both facts and queries before
// scoring. Words are lowercased; blanks are ignored.
func WithStopwords(words []string) Option {
	return func(s *settings) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			s.stopwords = m
		}
	}
}

// WithMaxFacts caps how many facts the index retains.
func WithMaxFacts(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxFacts = n
		}
	}
}

type fact struct {
	text   string
	tokens map[string]struct{}
	tLen   int
}

type index struct {
	cfg   settings
	facts []fact
}

// NewIndex builds an Index from pre-extracted fact strings.
func NewIndex(facts []string, opts ...Option) Index {
	cfg := defaultSettings()
	for _, o := range opts {
		o(&cfg)
	}
	out := make([]fact, 0, len(facts))
	for _, raw := range facts {
		t := strings.TrimSpace(collapseSpaces(raw))
		if t == "" {
			continue
		}
		if cfg.minFactRunes > 0 && utf8.RuneCountInString(t) < cfg.minFactRunes {
			continue
		}
		toks := tokenize(t, cfg.stopwords)
		if len(toks) == 0 {
			continue
		}
		out = append(out, fact{text: t, tokens: toks, tLen: len(toks)})
		if cfg.maxFacts > 0 && len(out) >= cfg.maxFacts {
			break
		}
	}
	return &index{cfg: cfg, facts: out}
}

// NewIndexFromMarkdown extracts facts from the Markdown knowledge base at
// path and indexes them.
func NewIndexFromMarkdown(path string, opts ...Option) (Index, error) {
	facts, err := ExtractFactsFromFile(path)
	if err != nil {
		return &index{cfg: defaultSettings()}, err
	}
	return NewIndex(facts, opts...), nil
}

// TopK returns up to k best-matching facts, best first. Ties break toward the
// shorter fact, then lexicographically, so results are reproducible.
func (i *index) TopK(query string, k int) []Result {
	if len(i.facts) == 0 || strings.TrimSpace(query) == "" {
		return nil
	}
	if k <= 0 {
		k = 3
	}
	qTokens := tokenize(query, i.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}
	qLen := len(qTokens)

	type scored struct {
		text  string
		score float64
		runes int
	}
	buf := make([]scored, 0, len(i.facts))
	for _, f := range i.facts {
		over := overlap(qTokens, f.tokens)
		if over == 0 {
			continue
		}
		union := float64(qLen + f.tLen - over)
		if union <= 0 {
			continue
		}
		buf = append(buf, scored{
			text:  f.text,
			score: float64(over) / union,
			runes: utf8.RuneCountInString(f.text),
		})
	}
	if len(buf) == 0 {
		return nil
	}

	sort.SliceStable(buf, func(a, b int) bool {
		if buf[a].score != buf[b].score {
			return buf[a].score > buf[b].score
		}
		if buf[a].runes != buf[b].runes {
			return buf[a].runes < buf[b].runes
		}
		return buf[a].text < buf[b].text
	})

	if k > len(buf) {
		k = len(buf)
	}
	out := make([]Result, k)
	for n := 0; n < k; n++ {
		out[n] = Result{Snippet: buf[n].text, Score: buf[n].score}
	}
	return out
}

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*`)

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	words := wordRE.FindAllString(strings.ToLower(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if stop != nil {
			if _, skip := stop[w]; skip {
				continue
			}
		}
		out[w] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\n':
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
		default:
			prevSpace = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
