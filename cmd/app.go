package cmd

import (
	"fmt"
	"time"

	"threadjuice/internal/ai"
	"threadjuice/internal/analysis"
	"threadjuice/internal/config"
	"threadjuice/internal/enrich"
	"threadjuice/internal/giphy"
	"threadjuice/internal/ingest"
	"threadjuice/internal/nitter"
	"threadjuice/internal/output"
	"threadjuice/internal/pipeline"
	"threadjuice/internal/reddit"
	"threadjuice/internal/source"
	"threadjuice/internal/storage"
	"threadjuice/internal/transform"
	"threadjuice/internal/wikipedia"

	"github.com/redis/go-redis/v9"
)

// app bundles the wired components shared by the serve and ingest commands.
type app struct {
	store        *storage.RedisStore
	orchestrator *pipeline.Orchestrator
	service      *ingest.Service
	sources      map[string]source.Source
}

// useSource points the service at a named source adapter and its preset.
func (a *app) useSource(name string) error {
	src, ok := a.sources[name]
	if !ok {
		return fmt.Errorf("unknown source: %s", name)
	}
	a.service.Source = src
	switch name {
	case "twitter":
		a.service.Preset = ingest.PresetTwitterDrama
	case "ai":
		a.service.Preset = ingest.PresetAIGenerated
	default:
		a.service.Preset = ingest.PresetRedditViral
	}
	return nil
}

// buildApp wires sources, stages, sinks, and the job service from config.
// requireGiphy surfaces a missing GIF API key as a startup error (serve);
// one-shot commands run without GIF enrichment instead.
func buildApp(cfg config.Config, rdb *redis.Client, requireGiphy bool) (*app, error) {
	store := storage.NewRedisStore(rdb)

	// Enrichment collaborators
	var gifs giphy.Searcher
	if cfg.Giphy.APIKey != "" {
		gc, err := giphy.NewClient(cfg.Giphy.BaseURL, cfg.Giphy.APIKey)
		if err != nil {
			return nil, err
		}
		gifs = gc
	} else if requireGiphy {
		return nil, fmt.Errorf("giphy.api_key is required: set it in config.yaml")
	}
	images := wikipedia.NewClient(cfg.Wikipedia.BaseURL)

	lookupTimeout, err := time.ParseDuration(cfg.Enrichment.LookupTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid enrichment.lookup_timeout: %w", err)
	}
	cacheTTL, err := time.ParseDuration(cfg.Enrichment.GIFCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid enrichment.gif_cache_ttl: %w", err)
	}

	full := &enrich.Full{
		GIFs:          gifs,
		Images:        images,
		Cache:         enrich.NewMemoryCache(cacheTTL),
		LookupTimeout: lookupTimeout,
	}
	minimal := &enrich.Minimal{Images: images, LookupTimeout: lookupTimeout}

	// Transform; the same OpenAI client backs voice rewriting and the
	// ai-generated source when a key is configured.
	tr := transform.New(store)
	var generator ai.Generator
	if cfg.OpenAI.APIKey != "" {
		oc := ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
		tr.Voice = oc
		generator = oc
	}

	// Output sink
	var sink output.Sink
	switch cfg.Output.Mode {
	case "redis":
		sink = &output.RedisSink{Store: store}
	case "file":
		sink = &output.FileSink{Dir: cfg.Output.Dir}
	case "dual":
		sink = &output.DualSink{Sinks: []output.Sink{
			&output.RedisSink{Store: store},
			&output.FileSink{Dir: cfg.Output.Dir},
		}}
	default:
		return nil, fmt.Errorf("unknown output.mode: %s", cfg.Output.Mode)
	}

	orch := pipeline.NewOrchestrator()
	ingest.RegisterPresets(orch, ingest.PipelineDeps{
		Analyzer:      analysis.New(),
		Full:          full,
		Minimal:       minimal,
		Transformer:   tr,
		Sink:          sink,
		MinViralScore: cfg.Ingest.MinViralScore,
		TransformOpts: transform.Options{AutoPublish: cfg.Ingest.AutoPublish},
	})

	sources := map[string]source.Source{
		"reddit": &source.RedditSource{
			Client: reddit.NewClient(cfg.Sources.Reddit.BaseURL, cfg.Sources.Reddit.UserAgent),
		},
		"twitter": &source.TwitterSource{
			Client: nitter.NewClient(cfg.Sources.Nitter.BaseURL),
		},
		"ai": &source.AIGeneratedSource{Generator: generator},
	}
	svc := ingest.NewService(sources["reddit"], orch, &ingest.RedisJobStore{Store: store})
	if cfg.Enrichment.Mode == "minimal" {
		svc.Preset = ingest.PresetRedditMinimal
	}
	if cfg.Ingest.ItemDelay != "" {
		d, err := time.ParseDuration(cfg.Ingest.ItemDelay)
		if err != nil {
			return nil, fmt.Errorf("invalid ingest.item_delay: %w", err)
		}
		svc.ItemDelay = d
	}

	return &app{store: store, orchestrator: orch, service: svc, sources: sources}, nil
}
