// Package suggest produces caption suggestions for a prompt.
//
// With an API key the hosted chat completion service is asked first. Without
// one, or when the request fails or returns nothing, captions come from a
// local keyword-matched table. A suggestion lookup never fails.
package suggest

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
)

// Source tells where suggestions came from.
type Source string

const (
	SourceAPI      Source = "api"
	SourceFallback Source = "fallback"
)

var errEmptySuggestions = errors.New("service returned no suggestions")

const noKeyFeedback = "Enable AI features with an API key for personalized design analysis."

// Result is the outcome of a suggestion lookup. Err is set only when the
// service was asked and failed; missing credentials leave it nil.
type Result struct {
	Suggestions []string
	Source      Source
	Err         error
}

// Service combines the API client with the local table.
type Service struct {
	client *Client
	table  *Table

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService creates a Service. A nil table uses DefaultTable; a nil client
// always falls back.
func NewService(client *Client, table *Table) *Service {
	if table == nil {
		table = DefaultTable()
	}
	return &Service{
		client: client,
		table:  table,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Suggest returns up to SampleSize captions for prompt.
func (s *Service) Suggest(ctx context.Context, prompt string) Result {
	if !s.client.HasKey() {
		return Result{Suggestions: s.fallback(prompt), Source: SourceFallback}
	}

	list, err := s.client.Suggestions(ctx, prompt)
	if err == nil && len(list) > 0 {
		return Result{Suggestions: list, Source: SourceAPI}
	}
	if err == nil {
		err = errEmptySuggestions
	}
	slog.Warn("suggestion request failed, using local table", "error", err)
	return Result{Suggestions: s.fallback(prompt), Source: SourceFallback, Err: err}
}

// Feedback returns a short design critique of prompt, or a fixed message
// when the service is unavailable.
func (s *Service) Feedback(ctx context.Context, prompt string) string {
	if !s.client.HasKey() {
		return noKeyFeedback
	}
	text, err := s.client.Feedback(ctx, prompt)
	if err != nil {
		slog.Warn("feedback request failed", "error", err)
		return "AI analysis unavailable. Error: " + err.Error()
	}
	return text
}

func (s *Service) fallback(prompt string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Lookup(prompt, s.rng)
}
