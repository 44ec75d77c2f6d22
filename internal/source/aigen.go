package source

import (
	"context"
	"fmt"
	"time"

	"threadjuice/internal/ai"
	"threadjuice/internal/model"
	"threadjuice/internal/pipeline"

	"github.com/google/uuid"
)

// AIGeneratedSource fabricates thread content through an ai.Generator. It
// stands in for live scraping in demos and low-volume categories.
type AIGeneratedSource struct {
	Generator ai.Generator
}

func (s *AIGeneratedSource) Name() string { return "ai-generated" }

func (s *AIGeneratedSource) Fetch(ctx context.Context, cfg Config) ([]model.RawContent, error) {
	gen := s.Generator
	if gen == nil {
		gen = ai.StubGenerator{}
	}
	topic := cfg.Topic
	if topic == "" {
		topic = "a neighborhood group chat meltdown"
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 1
	}
	out := make([]model.RawContent, 0, limit)
	for i := 0; i < limit; i++ {
		title, body, err := gen.GenerateThread(ctx, topic, cfg.Persona)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", pipeline.ErrSourceUnavailable, err)
		}
		now := time.Now().UTC()
		out = append(out, model.RawContent{
			SourceType: model.SourceAIGenerated,
			SourceID:   uuid.NewString(),
			Title:      title,
			Body:       body,
			Author:     "threadjuice-bot",
			Metrics:    model.SourceMetrics{},
			CreatedAt:  now,
			FetchedAt:  now,
		})
	}
	return out, nil
}
