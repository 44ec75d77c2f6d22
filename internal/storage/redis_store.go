package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"threadjuice/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists stories and job records. Stories are stored as JSON
// blobs with a slug index and per-category rankings ordered by trending
// score; jobs are JSON blobs on a recency list.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func storyKey(id string) string          { return "story:id:" + id }
func slugKey(slug string) string         { return "story:slug:" + slug }
func categoryKey(category string) string { return "stories:category:" + category }

const recentKey = "stories:recent"

func jobKey(id string) string { return "ingest:job:" + id }

const jobsListKey = "ingest:jobs"

// SaveStory writes a story and its indexes, returning the assigned key.
func (s *RedisStore) SaveStory(ctx context.Context, story *model.Story) (string, error) {
	b, err := json.Marshal(story)
	if err != nil {
		return "", err
	}
	key := storyKey(story.ID)
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key, b, 0)
	pipe.Set(ctx, slugKey(story.Slug), story.ID, 0)
	pipe.ZAdd(ctx, categoryKey(story.Category), redis.Z{Score: story.TrendingScore, Member: story.ID})
	pipe.ZAdd(ctx, recentKey, redis.Z{Score: float64(story.CreatedAt.Unix()), Member: story.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return key, nil
}

// GetStory loads a story by id.
func (s *RedisStore) GetStory(ctx context.Context, id string) (*model.Story, error) {
	b, err := s.rdb.Get(ctx, storyKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st model.Story
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetStoryBySlug resolves the slug index then loads the story.
func (s *RedisStore) GetStoryBySlug(ctx context.Context, slug string) (*model.Story, error) {
	id, err := s.rdb.Get(ctx, slugKey(slug)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.GetStory(ctx, id)
}

// SlugExists implements transform.SlugChecker over the slug index. It uses a
// short internal timeout because the checker contract has no context.
func (s *RedisStore) SlugExists(slug string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := s.rdb.Exists(ctx, slugKey(slug)).Result()
	return err == nil && n > 0
}

// RecentStories returns up to n stories, newest first, optionally scoped to
// one category (then ordered by trending score).
func (s *RedisStore) RecentStories(ctx context.Context, category string, n int) ([]model.Story, error) {
	if n <= 0 {
		n = 20
	}
	key := recentKey
	if category != "" {
		key = categoryKey(category)
	}
	ids, err := s.rdb.ZRevRange(ctx, key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Story, 0, len(ids))
	for _, id := range ids {
		st, err := s.GetStory(ctx, id)
		if err != nil {
			return nil, err
		}
		if st == nil {
			continue
		}
		out = append(out, *st)
	}
	return out, nil
}

// SaveJob upserts a job record and keeps it on the recency list for a month.
func (s *RedisStore) SaveJob(ctx context.Context, job *model.Job) error {
	b, err := json.Marshal(job)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, jobKey(job.ID), b, 30*24*time.Hour)
	pipe.ZAdd(ctx, jobsListKey, redis.Z{Score: float64(job.StartedAt.Unix()), Member: job.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storage: save job: %w", err)
	}
	return nil
}

// GetJob loads one job record, nil when unknown or expired.
func (s *RedisStore) GetJob(ctx context.Context, id string) (*model.Job, error) {
	b, err := s.rdb.Get(ctx, jobKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var j model.Job
	if err := json.Unmarshal(b, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// ListJobs returns job records, newest first.
func (s *RedisStore) ListJobs(ctx context.Context) ([]model.Job, error) {
	ids, err := s.rdb.ZRevRange(ctx, jobsListKey, 0, 99).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Job, 0, len(ids))
	for _, id := range ids {
		j, err := s.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if j == nil {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}
