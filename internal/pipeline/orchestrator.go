package pipeline

import (
	"context"
	"fmt"
	"sync"
)

// Builder constructs a fresh pipeline for one run. Presets are registered as
// builders rather than shared instances so concurrent runs never share
// pipeline state.
type Builder func() *Pipeline

// PresetStats are the per-preset run counters.
type PresetStats struct {
	Runs      int `json:"runs"`
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// Stats aggregates orchestrator counters for observability.
type Stats struct {
	Runs      int                    `json:"runs"`
	Successes int                    `json:"successes"`
	Failures  int                    `json:"failures"`
	Presets   map[string]PresetStats `json:"presets"`
}

// Orchestrator holds named pipeline presets and aggregate run statistics.
type Orchestrator struct {
	mu       sync.Mutex
	builders map[string]Builder
	stats    Stats
}

// NewOrchestrator creates an empty orchestrator.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		builders: make(map[string]Builder),
		stats:    Stats{Presets: make(map[string]PresetStats)},
	}
}

// Register binds a preset name to a pipeline builder. Re-registering a name
// replaces the previous builder.
func (o *Orchestrator) Register(name string, b Builder) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.builders[name] = b
}

// Presets lists the registered preset names.
func (o *Orchestrator) Presets() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, 0, len(o.builders))
	for n := range o.builders {
		names = append(names, n)
	}
	return names
}

// Execute runs the named preset against the given context. A run counts as a
// failure when the pipeline aborts or when any stage error was recorded on
// the context.
func (o *Orchestrator) Execute(ctx context.Context, name string, pc *Context) (*Context, error) {
	o.mu.Lock()
	b, ok := o.builders[name]
	o.mu.Unlock()
	if !ok {
		return pc, fmt.Errorf("%w: %s", ErrUnknownPipeline, name)
	}

	out, err := b().Execute(ctx, pc)
	o.record(name, err == nil && len(out.Errors) == 0)
	return out, err
}

func (o *Orchestrator) record(name string, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	ps := o.stats.Presets[name]
	ps.Runs++
	o.stats.Runs++
	if ok {
		ps.Successes++
		o.stats.Successes++
	} else {
		ps.Failures++
		o.stats.Failures++
	}
	o.stats.Presets[name] = ps
}

// GetStats returns a copy of the aggregate counters.
func (o *Orchestrator) GetStats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := Stats{
		Runs:      o.stats.Runs,
		Successes: o.stats.Successes,
		Failures:  o.stats.Failures,
		Presets:   make(map[string]PresetStats, len(o.stats.Presets)),
	}
	for k, v := range o.stats.Presets {
		out.Presets[k] = v
	}
	return out
}
