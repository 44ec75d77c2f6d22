package source

import (
	"context"
	"fmt"
	"time"

	"threadjuice/internal/model"
	"threadjuice/internal/pipeline"
	"threadjuice/internal/reddit"
)

// RedditSource adapts the Reddit listing client to the Source contract.
type RedditSource struct {
	Client *reddit.Client
}

func (s *RedditSource) Name() string { return "reddit" }

// Fetch pulls a subreddit listing, enforces MinScore and MaxAge, and caps the
// result at cfg.Limit. Provider errors surface as ErrSourceUnavailable.
func (s *RedditSource) Fetch(ctx context.Context, cfg Config) ([]model.RawContent, error) {
	if cfg.Subreddit == "" {
		return nil, fmt.Errorf("reddit source: subreddit is required")
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 10
	}
	// Over-fetch so score/age filtering still fills the limit.
	items, err := s.Client.HotThreads(ctx, cfg.Subreddit, reddit.ListingOptions{Sort: cfg.Sort, Limit: limit * 3})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrSourceUnavailable, err)
	}
	items = filterAge(items, cfg.MaxAge, time.Now().UTC())
	out := make([]model.RawContent, 0, limit)
	for _, it := range items {
		if cfg.MinScore > 0 && it.Metrics.Score < cfg.MinScore {
			continue
		}
		out = append(out, it)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
