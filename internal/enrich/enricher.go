// Package enrich attaches auxiliary media to analyzed content: reaction
// GIFs from sentiment, lead images for named entities, and embeddable media
// references found in the body. Every external lookup is bounded by a
// timeout and a miss simply omits the attachment; enrichment never fails a
// pipeline run.
package enrich

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"threadjuice/internal/giphy"
	"threadjuice/internal/model"
	"threadjuice/internal/wikipedia"
)

// DefaultLookupTimeout bounds one external media lookup.
const DefaultLookupTimeout = 3 * time.Second

// Entity confidence buckets for image search (cost control): entities at or
// above bucketHigh with a known encyclopedia title are searched by title,
// the mid band is searched by raw name, anything below bucketLow is skipped.
const (
	bucketHigh = 0.8
	bucketLow  = 0.6
)

// Enricher attaches media to one piece of analyzed content.
type Enricher interface {
	Name() string
	Enrich(ctx context.Context, res *model.AnalysisResult, raw model.RawContent) *model.EnrichmentBundle
}

// Full attempts GIFs, embeds, and entity images for every eligible entity.
type Full struct {
	GIFs          giphy.Searcher
	Images        wikipedia.ImageSearcher
	Cache         Cache
	LookupTimeout time.Duration
}

func (e *Full) Name() string { return "enrich-full" }

func (e *Full) Enrich(ctx context.Context, res *model.AnalysisResult, raw model.RawContent) *model.EnrichmentBundle {
	bundle := &model.EnrichmentBundle{}
	if res == nil {
		return bundle
	}
	if gif := e.lookupGIF(ctx, res.Sentiment.Emotion); gif != nil {
		gif.SectionIndex = 1
		bundle.GIFs = append(bundle.GIFs, *gif)
	}
	bundle.Embeds = detectEmbeds(raw.Body)
	for i, img := range e.lookupImages(ctx, res.Entities, 0) {
		img.SectionIndex = 2 + i
		bundle.Images = append(bundle.Images, img)
	}
	return bundle
}

// lookupGIF tries the emotion's search phrases in order. Hits are cached for
// the cache's lifetime; a cache hit is observable through CacheHit.
func (e *Full) lookupGIF(ctx context.Context, emotion model.Emotion) *model.GIFAttachment {
	if e.GIFs == nil {
		return nil
	}
	var tried []string
	for _, term := range gifSearchTerms[emotion] {
		tried = append(tried, term)
		key := string(emotion) + "|" + term

		if e.Cache != nil {
			if g, ok := e.Cache.Get(key); ok {
				return &model.GIFAttachment{
					Emotion:         emotion,
					SearchTermsUsed: tried,
					GIFURL:          g.URL,
					Title:           g.Title,
					CacheHit:        true,
				}
			}
		}

		lctx, cancel := context.WithTimeout(ctx, e.timeout())
		g, err := e.GIFs.Search(lctx, term)
		cancel()
		if err != nil {
			slog.Warn("enrich: gif lookup failed, trying next term", "emotion", emotion, "term", term, "error", err)
			continue
		}
		if g == nil {
			continue
		}
		if e.Cache != nil {
			e.Cache.Set(key, g)
		}
		return &model.GIFAttachment{
			Emotion:         emotion,
			SearchTermsUsed: tried,
			GIFURL:          g.URL,
			Title:           g.Title,
			CacheHit:        false,
		}
	}
	return nil
}

// lookupImages resolves lead images for entities in confidence order.
// maxImages of 0 means no cap. No result for an entity is a valid outcome.
func (e *Full) lookupImages(ctx context.Context, entities []model.Entity, maxImages int) []model.EntityImage {
	if e.Images == nil || len(entities) == 0 {
		return nil
	}
	sorted := make([]model.Entity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Confidence > sorted[j].Confidence })

	var out []model.EntityImage
	for _, ent := range sorted {
		if maxImages > 0 && len(out) >= maxImages {
			break
		}
		title, ok := imageQuery(ent)
		if !ok {
			continue
		}
		lctx, cancel := context.WithTimeout(ctx, e.timeout())
		url, err := e.Images.LeadImage(lctx, title)
		cancel()
		if err != nil {
			slog.Warn("enrich: entity image lookup failed, omitting", "entity", ent.Name, "error", err)
			continue
		}
		if url == "" {
			continue
		}
		out = append(out, model.EntityImage{
			EntityName: ent.Name,
			ImageURL:   url,
			Source:     "wikipedia",
		})
	}
	return out
}

func (e *Full) timeout() time.Duration {
	if e.LookupTimeout > 0 {
		return e.LookupTimeout
	}
	return DefaultLookupTimeout
}

// imageQuery applies the confidence buckets and returns the search title.
func imageQuery(ent model.Entity) (string, bool) {
	switch {
	case ent.Confidence >= bucketHigh && ent.WikipediaTitle != "":
		return ent.WikipediaTitle, true
	case ent.Confidence >= bucketLow:
		return ent.Name, true
	default:
		return "", false
	}
}

// Minimal is the low-latency variant: it resolves only the single
// highest-confidence entity image and skips GIF and embed lookups.
type Minimal struct {
	Images        wikipedia.ImageSearcher
	LookupTimeout time.Duration
}

func (e *Minimal) Name() string { return "enrich-minimal" }

func (e *Minimal) Enrich(ctx context.Context, res *model.AnalysisResult, _ model.RawContent) *model.EnrichmentBundle {
	bundle := &model.EnrichmentBundle{}
	if res == nil {
		return bundle
	}
	full := &Full{Images: e.Images, LookupTimeout: e.LookupTimeout}
	for _, img := range full.lookupImages(ctx, res.Entities, 1) {
		img.SectionIndex = 1
		bundle.Images = append(bundle.Images, img)
	}
	return bundle
}

var embedRe = regexp.MustCompile(`https?://(?:www\.)?(twitter\.com|x\.com|youtube\.com|youtu\.be|tiktok\.com)/\S+`)

// detectEmbeds finds embeddable media URLs in the body text.
func detectEmbeds(body string) []model.Embed {
	var out []model.Embed
	for i, m := range embedRe.FindAllStringSubmatch(body, -1) {
		platform := "twitter"
		switch m[1] {
		case "youtube.com", "youtu.be":
			platform = "youtube"
		case "tiktok.com":
			platform = "tiktok"
		}
		out = append(out, model.Embed{
			Platform:     platform,
			EmbedURL:     m[0],
			SectionIndex: 2 + i,
		})
	}
	return out
}
