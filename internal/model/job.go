package model

import "time"

// JobStatus is the lifecycle state of an ingestion job. Transitions only
// move forward: pending -> processing -> completed | failed.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Terminal reports whether the status allows no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// rank orders statuses along the legal path.
func (s JobStatus) rank() int {
	switch s {
	case JobPending:
		return 0
	case JobProcessing:
		return 1
	case JobCompleted, JobFailed:
		return 2
	default:
		return -1
	}
}

// CanTransition reports whether moving from s to next is legal.
func (s JobStatus) CanTransition(next JobStatus) bool {
	return !s.Terminal() && next.rank() == s.rank()+1
}

// Job tracks one asynchronous ingestion run.
type Job struct {
	ID             string     `json:"id"`
	Status         JobStatus  `json:"status"`
	PostsProcessed int        `json:"posts_processed"`
	PostsCreated   int        `json:"posts_created"`
	Logs           []string   `json:"logs"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}
