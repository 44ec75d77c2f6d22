// Package output persists finished stories. Sinks are pluggable and
// composable; DualSink requires every wrapped sink to succeed and reports
// partial success explicitly instead of hiding it.
package output

import (
	"context"
	"fmt"
	"strings"

	"threadjuice/internal/model"
)

// Result identifies where a story landed.
type Result struct {
	ID       string
	Location string
}

// Sink writes one story to a destination.
type Sink interface {
	Name() string
	Write(ctx context.Context, story *model.Story) (Result, error)
}

// PartialWriteError reports which sinks of a composite write failed. The
// write as a whole is a failure, but the caller can see what did land.
type PartialWriteError struct {
	Succeeded []string
	Failed    map[string]error
}

func (e *PartialWriteError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for n, err := range e.Failed {
		names = append(names, fmt.Sprintf("%s: %v", n, err))
	}
	return fmt.Sprintf("output: partial write (ok: %s; failed: %s)",
		strings.Join(e.Succeeded, ","), strings.Join(names, "; "))
}
