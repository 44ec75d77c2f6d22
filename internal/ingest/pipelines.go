package ingest

import (
	"context"
	"fmt"

	"threadjuice/internal/analysis"
	"threadjuice/internal/enrich"
	"threadjuice/internal/output"
	"threadjuice/internal/pipeline"
	"threadjuice/internal/transform"
)

// Preset names registered on the orchestrator. Each preset is a per-item
// pipeline; source adapters feed items in at the job layer since a pipeline
// context carries exactly one RawContent.
const (
	PresetRedditViral   = "reddit-viral"
	PresetTwitterDrama  = "twitter-drama"
	PresetAIGenerated   = "ai-generated"
	PresetRedditMinimal = "reddit-minimal"
)

// PipelineDeps are the stage implementations presets are built from.
type PipelineDeps struct {
	Analyzer    *analysis.Analyzer
	Full        enrich.Enricher
	Minimal     enrich.Enricher
	Transformer *transform.Transformer
	Sink        output.Sink

	// MinViralScore filters items before enrichment when the run params do
	// not set their own threshold; zero disables.
	MinViralScore float64
	// TransformOpts are defaults; run params override persona, category,
	// and publish state per job.
	TransformOpts transform.Options
	Debug         bool
}

// RegisterPresets binds the standard presets onto an orchestrator.
func RegisterPresets(o *pipeline.Orchestrator, deps PipelineDeps) {
	o.Register(PresetRedditViral, func() *pipeline.Pipeline {
		return buildPipeline(PresetRedditViral, deps, deps.Full)
	})
	o.Register(PresetTwitterDrama, func() *pipeline.Pipeline {
		return buildPipeline(PresetTwitterDrama, deps, deps.Full)
	})
	o.Register(PresetAIGenerated, func() *pipeline.Pipeline {
		return buildPipeline(PresetAIGenerated, deps, deps.Full)
	})
	o.Register(PresetRedditMinimal, func() *pipeline.Pipeline {
		return buildPipeline(PresetRedditMinimal, deps, deps.Minimal)
	})
}

// buildPipeline composes the per-item stage order: analyze -> viral filter
// -> enrich -> transform -> output.
func buildPipeline(name string, deps PipelineDeps, enricher enrich.Enricher) *pipeline.Pipeline {
	p := pipeline.New(name, pipeline.Options{Debug: deps.Debug})

	p.Pipe(pipeline.StageFunc{StageName: "analyze", Fn: func(_ context.Context, pc *pipeline.Context) error {
		pc.Analysis = deps.Analyzer.Analyze(pc.Source, analysis.DefaultOptions())
		return nil
	}})

	p.Pipe(pipeline.StageFunc{StageName: "viral-filter", Fn: func(_ context.Context, pc *pipeline.Context) error {
		min := pc.Params.MinViralScore
		if min <= 0 {
			min = deps.MinViralScore
		}
		if min > 0 && pc.Analysis.ViralScore < min {
			pc.Skip(fmt.Sprintf("viral score %.2f below threshold %.2f", pc.Analysis.ViralScore, min))
		}
		return nil
	}})

	if enricher != nil {
		p.Pipe(pipeline.StageFunc{StageName: enricher.Name(), Fn: func(ctx context.Context, pc *pipeline.Context) error {
			pc.Enrichments = enricher.Enrich(ctx, pc.Analysis, pc.Source)
			return nil
		}})
	}

	p.Pipe(pipeline.StageFunc{StageName: "transform", Fn: func(ctx context.Context, pc *pipeline.Context) error {
		opts := deps.TransformOpts
		if pc.Params.AutoPublish {
			opts.AutoPublish = true
		}
		if pc.Params.PersonaOverride != "" {
			opts.PersonaOverride = pc.Params.PersonaOverride
		}
		if pc.Params.Category != "" {
			opts.Category = pc.Params.Category
		}
		story, err := deps.Transformer.Transform(ctx, pc.Source, pc.Analysis, pc.Enrichments, opts)
		if err != nil {
			return err
		}
		pc.Output.Story = story
		return nil
	}})

	if deps.Sink != nil {
		p.Pipe(pipeline.StageFunc{StageName: "output-" + deps.Sink.Name(), Fn: func(ctx context.Context, pc *pipeline.Context) error {
			res, err := deps.Sink.Write(ctx, pc.Output.Story)
			if err != nil {
				return err
			}
			pc.Output.Location = res.Location
			return nil
		}})
	}
	return p
}
