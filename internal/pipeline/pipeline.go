package pipeline

import (
	"context"
	"log/slog"
	"time"

	"threadjuice/internal/model"
)

// Context is the accumulator threaded through every stage of one run.
// Each stage reads the slots produced by earlier stages and writes exactly
// its own slot, so pipelines stay composable and testable stage by stage.
type Context struct {
	Source      model.RawContent
	Analysis    *model.AnalysisResult
	Enrichments *model.EnrichmentBundle
	Output      Output

	// Params carry per-run settings from the job layer into stages.
	Params Params

	// Skipped is set by a filter stage to stop the run early without
	// counting it as a failure (e.g. viral score below threshold).
	Skipped    bool
	SkipReason string

	// Errors collects per-stage failures when the pipeline runs with
	// ContinueOnError.
	Errors []*StageError
}

// Skip marks the run as filtered out. Remaining stages do not execute.
func (c *Context) Skip(reason string) {
	c.Skipped = true
	c.SkipReason = reason
}

// Params are run-scoped settings stages may consult. Zero values defer to
// the preset's defaults.
type Params struct {
	MinViralScore   float64
	AutoPublish     bool
	PersonaOverride string
	Category        string
}

// Output is the terminal slot filled by an output stage.
type Output struct {
	Story    *model.Story
	Location string
}

// NewContext starts a run from one piece of raw content.
func NewContext(raw model.RawContent) *Context {
	return &Context{Source: raw}
}

// Stage is one step of a pipeline. Run reads from and writes to the context;
// a returned error is a stage failure.
type Stage interface {
	Name() string
	Run(ctx context.Context, pc *Context) error
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, pc *Context) error
}

func (s StageFunc) Name() string { return s.StageName }

func (s StageFunc) Run(ctx context.Context, pc *Context) error { return s.Fn(ctx, pc) }

// Options configure how a pipeline executes its stages.
type Options struct {
	// Debug enables verbose per-stage logging.
	Debug bool
	// ContinueOnError records a stage failure on the context and keeps
	// running the remaining stages instead of aborting. Used for
	// best-effort batch runs.
	ContinueOnError bool
}

// Pipeline is an ordered list of stages. Stages execute strictly in the
// order they were piped; there is no reordering or parallelism across stage
// boundaries within one run.
type Pipeline struct {
	name   string
	stages []Stage
	opts   Options
}

// New creates an empty named pipeline.
func New(name string, opts Options) *Pipeline {
	return &Pipeline{name: name, opts: opts}
}

// Name returns the pipeline's registered name.
func (p *Pipeline) Name() string { return p.name }

// Pipe appends a stage and returns the pipeline for fluent composition.
func (p *Pipeline) Pipe(s Stage) *Pipeline {
	p.stages = append(p.stages, s)
	return p
}

// Execute runs all stages in order, threading the context through, and
// returns the final context. Without ContinueOnError the first stage failure
// aborts the run and is returned; with it, failures are recorded on the
// context and the error result is nil.
func (p *Pipeline) Execute(ctx context.Context, pc *Context) (*Context, error) {
	for _, s := range p.stages {
		start := time.Now()
		if p.opts.Debug {
			slog.Debug("pipeline: stage starting", "pipeline", p.name, "stage", s.Name(), "source_id", pc.Source.SourceID)
		}
		err := s.Run(ctx, pc)
		if p.opts.Debug {
			slog.Debug("pipeline: stage finished", "pipeline", p.name, "stage", s.Name(), "elapsed", time.Since(start), "error", err)
		}
		if err != nil {
			se := &StageError{Stage: s.Name(), Err: err}
			if !p.opts.ContinueOnError {
				return pc, se
			}
			pc.Errors = append(pc.Errors, se)
			slog.Warn("pipeline: stage failed, continuing", "pipeline", p.name, "stage", s.Name(), "error", err)
		}
		if pc.Skipped {
			if p.opts.Debug {
				slog.Debug("pipeline: run skipped", "pipeline", p.name, "stage", s.Name(), "reason", pc.SkipReason)
			}
			break
		}
	}
	return pc, nil
}
