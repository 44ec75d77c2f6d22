package source

import (
	"context"
	"fmt"
	"time"

	"threadjuice/internal/model"
	"threadjuice/internal/nitter"
	"threadjuice/internal/pipeline"
)

// TwitterSource adapts the Nitter feed client to the Source contract. The
// default query tracks ongoing drama threads.
type TwitterSource struct {
	Client *nitter.Client
}

func (s *TwitterSource) Name() string { return "twitter" }

func (s *TwitterSource) Fetch(ctx context.Context, cfg Config) ([]model.RawContent, error) {
	query := cfg.Query
	if query == "" {
		query = `"the audacity" OR "i can't believe" OR ratio min_replies:50`
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 10
	}
	items, err := s.Client.SearchFeed(ctx, query, limit*2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrSourceUnavailable, err)
	}
	items = filterAge(items, cfg.MaxAge, time.Now().UTC())
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
