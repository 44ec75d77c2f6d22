package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable signals a content provider was unreachable or
	// answered with a server error. An empty result list is not this error;
	// it only means the provider was reachable with zero qualifying items.
	ErrSourceUnavailable = errors.New("pipeline: source unavailable")

	// ErrEnrichmentTimeout signals a single media lookup exceeded its
	// bound. It is recovered locally by omitting the attachment and must
	// never propagate out of an enrichment stage.
	ErrEnrichmentTimeout = errors.New("pipeline: enrichment lookup timed out")

	// ErrTransformFailed signals the transform stage could not produce a
	// well-formed story from its inputs.
	ErrTransformFailed = errors.New("pipeline: transform failed")

	// ErrUnknownPipeline signals an orchestrator lookup for an unregistered
	// preset name.
	ErrUnknownPipeline = errors.New("pipeline: unknown pipeline")
)

// StageError records which stage failed during a run. With ContinueOnError
// set, stage errors are collected on the context instead of aborting.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
