// Package ingest wraps pipeline execution in asynchronous, status-tracked
// jobs. Jobs move strictly forward through pending -> processing ->
// completed|failed; a terminal job is never re-queued, a new job is created
// instead.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"threadjuice/internal/model"
	"threadjuice/internal/pipeline"
	"threadjuice/internal/source"

	"github.com/google/uuid"
)

// Limits for job configuration, validated before a job is created.
const (
	maxLimitPerSubreddit = 10
	maxMinViralScore     = 10
	maxAgeHoursLimit     = 168
)

// DefaultItemDelay spaces per-item pipeline runs as rate-limit courtesy to
// external providers.
const DefaultItemDelay = 2 * time.Second

// JobConfig describes one ingestion run.
type JobConfig struct {
	Subreddits        []string `json:"subreddits"`
	LimitPerSubreddit int      `json:"limit_per_subreddit"`
	MinViralScore     float64  `json:"min_viral_score"`
	MaxAgeHours       int      `json:"max_age_hours"`
	AutoPublish       bool     `json:"auto_publish"`
}

// ValidationError rejects a malformed job configuration synchronously,
// before any job exists.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ingest: invalid config: %s %s", e.Field, e.Reason)
}

// Validate checks the configured ranges.
func (c *JobConfig) Validate() error {
	if len(c.Subreddits) == 0 {
		return &ValidationError{Field: "subreddits", Reason: "must name at least one subreddit"}
	}
	for _, s := range c.Subreddits {
		if strings.TrimSpace(s) == "" {
			return &ValidationError{Field: "subreddits", Reason: "must not contain empty names"}
		}
	}
	if c.LimitPerSubreddit < 1 || c.LimitPerSubreddit > maxLimitPerSubreddit {
		return &ValidationError{Field: "limit_per_subreddit", Reason: fmt.Sprintf("must be 1-%d", maxLimitPerSubreddit)}
	}
	if c.MinViralScore < 1 || c.MinViralScore > maxMinViralScore {
		return &ValidationError{Field: "min_viral_score", Reason: fmt.Sprintf("must be 1-%d", maxMinViralScore)}
	}
	if c.MaxAgeHours < 1 || c.MaxAgeHours > maxAgeHoursLimit {
		return &ValidationError{Field: "max_age_hours", Reason: fmt.Sprintf("must be 1-%d hours", maxAgeHoursLimit)}
	}
	return nil
}

// Service runs ingestion jobs against a registered source and the
// orchestrator's presets. Each job owns its own pipeline contexts; jobs
// share nothing mutable besides the stores, which guard themselves.
type Service struct {
	Source       source.Source
	Orchestrator *pipeline.Orchestrator
	Jobs         JobStore
	Preset       string
	ItemDelay    time.Duration
}

// NewService wires a service with the reddit-viral preset and the default
// courtesy delay.
func NewService(src source.Source, orch *pipeline.Orchestrator, jobs JobStore) *Service {
	return &Service{
		Source:       src,
		Orchestrator: orch,
		Jobs:         jobs,
		Preset:       PresetRedditViral,
		ItemDelay:    DefaultItemDelay,
	}
}

// StartIngestionJob validates the config, records a pending job, and runs it
// asynchronously. The returned job snapshot is already persisted.
func (s *Service) StartIngestionJob(ctx context.Context, cfg JobConfig) (*model.Job, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	job := &model.Job{
		ID:        uuid.NewString(),
		Status:    model.JobPending,
		Logs:      []string{fmt.Sprintf("job created for subreddits: %s", strings.Join(cfg.Subreddits, ", "))},
		StartedAt: time.Now().UTC(),
	}
	if err := s.Jobs.Save(ctx, job); err != nil {
		return nil, err
	}
	go s.run(context.WithoutCancel(ctx), job, cfg)
	snapshot := *job
	return &snapshot, nil
}

// GetJobStatus is a pure read of the best-known job state.
func (s *Service) GetJobStatus(ctx context.Context, id string) (*model.Job, error) {
	return s.Jobs.Get(ctx, id)
}

// GetAllJobs lists jobs for monitoring.
func (s *Service) GetAllJobs(ctx context.Context) ([]model.Job, error) {
	return s.Jobs.List(ctx)
}

// run drives one job to a terminal state. Item-level failures are logged and
// counted; an uncaught panic or a fully failed run fails this job only.
func (s *Service) run(ctx context.Context, job *model.Job, cfg JobConfig) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("ingest: job panicked", "job", job.ID, "panic", r)
			s.fail(ctx, job, fmt.Sprintf("internal error: %v", r))
		}
	}()

	s.transition(ctx, job, model.JobProcessing)

	sourcesFailed := 0
	for _, sub := range cfg.Subreddits {
		// Each adapter reads the field it understands; the job config's
		// feed names double as search query or generation topic.
		items, err := s.Source.Fetch(ctx, source.Config{
			Subreddit: sub,
			Query:     sub,
			Topic:     sub,
			Limit:     cfg.LimitPerSubreddit,
			MaxAge:    time.Duration(cfg.MaxAgeHours) * time.Hour,
		})
		if err != nil {
			sourcesFailed++
			s.log(ctx, job, fmt.Sprintf("source %s failed: %v", sub, err))
			slog.Warn("ingest: source fetch failed, continuing with remaining sources", "job", job.ID, "subreddit", sub, "error", err)
			continue
		}
		s.log(ctx, job, fmt.Sprintf("fetched %d items from r/%s", len(items), sub))

		for i, item := range items {
			if i > 0 && s.ItemDelay > 0 {
				time.Sleep(s.ItemDelay)
			}
			s.processItem(ctx, job, item, cfg)
		}
	}

	if sourcesFailed == len(cfg.Subreddits) {
		s.fail(ctx, job, "all sources unavailable")
		return
	}
	s.log(ctx, job, fmt.Sprintf("done: %d processed, %d created", job.PostsProcessed, job.PostsCreated))
	s.transition(ctx, job, model.JobCompleted)
}

func (s *Service) processItem(ctx context.Context, job *model.Job, item model.RawContent, cfg JobConfig) {
	pc := pipeline.NewContext(item)
	pc.Params = pipeline.Params{
		MinViralScore: cfg.MinViralScore,
		AutoPublish:   cfg.AutoPublish,
	}
	pc, err := s.Orchestrator.Execute(ctx, s.Preset, pc)

	job.PostsProcessed++
	switch {
	case err != nil:
		s.log(ctx, job, fmt.Sprintf("item %s failed: %v", item.SourceID, err))
	case pc.Skipped:
		s.log(ctx, job, fmt.Sprintf("item %s skipped: %s", item.SourceID, pc.SkipReason))
	case pc.Output.Story != nil:
		job.PostsCreated++
		s.log(ctx, job, fmt.Sprintf("created story %s (%s)", pc.Output.Story.Slug, pc.Output.Location))
	default:
		s.log(ctx, job, fmt.Sprintf("item %s produced no story", item.SourceID))
	}
}

// transition enforces the forward-only state machine and persists the change.
func (s *Service) transition(ctx context.Context, job *model.Job, next model.JobStatus) {
	if !job.Status.CanTransition(next) {
		slog.Error("ingest: illegal job transition dropped", "job", job.ID, "from", job.Status, "to", next)
		return
	}
	job.Status = next
	if next.Terminal() {
		now := time.Now().UTC()
		job.CompletedAt = &now
	}
	s.save(ctx, job)
}

func (s *Service) fail(ctx context.Context, job *model.Job, msg string) {
	if job.Status.Terminal() {
		return
	}
	// A job that dies before its first transition still walks the legal
	// path to a terminal state.
	if job.Status == model.JobPending {
		s.transition(ctx, job, model.JobProcessing)
	}
	job.ErrorMessage = msg
	s.log(ctx, job, "job failed: "+msg)
	s.transition(ctx, job, model.JobFailed)
}

func (s *Service) log(ctx context.Context, job *model.Job, line string) {
	job.Logs = append(job.Logs, fmt.Sprintf("[%s] %s", time.Now().UTC().Format("15:04:05"), line))
	s.save(ctx, job)
}

func (s *Service) save(ctx context.Context, job *model.Job) {
	if err := s.Jobs.Save(ctx, job); err != nil {
		slog.Error("ingest: persist job state failed", "job", job.ID, "error", err)
	}
}
