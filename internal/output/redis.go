package output

import (
	"context"
	"fmt"

	"threadjuice/internal/model"
	"threadjuice/internal/storage"
)

// RedisSink persists stories through the Redis store and surfaces the
// assigned key.
type RedisSink struct {
	Store *storage.RedisStore
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Write(ctx context.Context, story *model.Story) (Result, error) {
	key, err := s.Store.SaveStory(ctx, story)
	if err != nil {
		return Result{}, fmt.Errorf("redis sink: %w", err)
	}
	return Result{ID: story.ID, Location: key}, nil
}
