package ingest

import (
	"context"
	"sort"
	"sync"

	"threadjuice/internal/model"
	"threadjuice/internal/storage"
)

// JobStore persists job records. The service depends only on this interface;
// MemoryStore backs tests and single-process runs, RedisJobStore survives
// restarts.
type JobStore interface {
	Save(ctx context.Context, job *model.Job) error
	Get(ctx context.Context, id string) (*model.Job, error)
	List(ctx context.Context) ([]model.Job, error)
}

// MemoryStore is an in-memory JobStore. Reads return copies so callers never
// share mutable state with running jobs.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]model.Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]model.Job)}
}

func (s *MemoryStore) Save(_ context.Context, job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *job
	cp.Logs = append([]string(nil), job.Logs...)
	s.jobs[job.ID] = cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := j
	cp.Logs = append([]string(nil), j.Logs...)
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context) ([]model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		cp := j
		cp.Logs = append([]string(nil), j.Logs...)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

// RedisJobStore is the durable JobStore.
type RedisJobStore struct {
	Store *storage.RedisStore
}

func (s *RedisJobStore) Save(ctx context.Context, job *model.Job) error {
	return s.Store.SaveJob(ctx, job)
}

func (s *RedisJobStore) Get(ctx context.Context, id string) (*model.Job, error) {
	return s.Store.GetJob(ctx, id)
}

func (s *RedisJobStore) List(ctx context.Context) ([]model.Job, error) {
	return s.Store.ListJobs(ctx)
}
