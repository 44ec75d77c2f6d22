package worker

import "context"

// Worker is a long-running background task supervised by the Manager. Start
// blocks until the context is cancelled.
type Worker interface {
	Start(ctx context.Context) error
}
