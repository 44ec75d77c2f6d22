// Package source normalizes external content providers behind one fetch
// contract. Adapters return RawContent batches; a provider that cannot be
// reached reports pipeline.ErrSourceUnavailable rather than a silent empty
// result, so an empty list always means "reachable, zero qualifying items".
package source

import (
	"context"
	"time"

	"threadjuice/internal/model"
)

// Config carries provider-specific filters for one fetch.
type Config struct {
	// Reddit
	Subreddit string
	Sort      string
	MinScore  int

	// Twitter / Nitter
	Query string

	// AI-generated
	Topic   string
	Persona string

	// Common
	Limit  int
	MaxAge time.Duration // drop items older than this when > 0
}

// Source is a content adapter for one provider.
type Source interface {
	Name() string
	Fetch(ctx context.Context, cfg Config) ([]model.RawContent, error)
}

// filterAge drops items older than maxAge. Zero maxAge keeps everything.
func filterAge(items []model.RawContent, maxAge time.Duration, now time.Time) []model.RawContent {
	if maxAge <= 0 {
		return items
	}
	out := items[:0]
	for _, it := range items {
		if now.Sub(it.CreatedAt) <= maxAge {
			out = append(out, it)
		}
	}
	return out
}
