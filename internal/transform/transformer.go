// Package transform assembles analyzed and enriched content into the
// canonical Story document: persona, category, slug, ordered sections, and
// synthetic cold-start engagement numbers.
package transform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"threadjuice/internal/ai"
	"threadjuice/internal/model"
	"threadjuice/internal/pipeline"

	"github.com/google/uuid"
)

// subredditCategories maps source subreddits onto site categories.
var subredditCategories = map[string]string{
	"tifu":             "fails",
	"amitheasshole":    "drama",
	"aita":             "drama",
	"relationships":    "relationships",
	"relationship_advice": "relationships",
	"maliciouscompliance": "workplace",
	"antiwork":         "workplace",
	"choosingbeggars":  "entitled",
	"publicfreakout":   "chaos",
}

const defaultCategory = "viral"

// Options tune one transform invocation.
type Options struct {
	// PersonaOverride skips round-robin assignment when it names a roster
	// persona.
	PersonaOverride string
	// Category wins over the subreddit mapping when set (used by the
	// ai-generated pipeline).
	Category string
	// AutoPublish marks the story published instead of draft.
	AutoPublish bool
}

// Transformer builds stories. Slugs is consulted for collision resolution
// and Voice, when present, rewrites the opening paragraph in the persona's
// voice (best effort; template prose on failure).
type Transformer struct {
	Slugs  SlugChecker
	Voice  ai.VoiceWriter
	picker personaPicker
}

func New(slugs SlugChecker) *Transformer {
	return &Transformer{Slugs: slugs}
}

// Transform produces a well-formed Story. An empty or missing enrichment
// bundle yields a story with zero media sections; enrichment is strictly
// additive. A missing title is a transform failure for this item.
func (t *Transformer) Transform(ctx context.Context, raw model.RawContent, res *model.AnalysisResult, bundle *model.EnrichmentBundle, opts Options) (*model.Story, error) {
	if strings.TrimSpace(raw.Title) == "" {
		return nil, fmt.Errorf("%w: raw content has no title", pipeline.ErrTransformFailed)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: missing analysis result", pipeline.ErrTransformFailed)
	}

	persona := t.picker.pick()
	if opts.PersonaOverride != "" {
		if p, ok := personaByName(opts.PersonaOverride); ok {
			persona = p
		} else {
			slog.Warn("transform: unknown persona override, using rotation", "persona", opts.PersonaOverride)
		}
	}

	sections := t.narrativeSections(ctx, persona, raw)
	sections = weaveAttachments(sections, bundle)

	status := model.StatusDraft
	if opts.AutoPublish {
		status = model.StatusPublished
	}

	story := &model.Story{
		ID:         uuid.NewString(),
		Slug:       UniqueSlug(raw.Title, t.Slugs),
		Title:      raw.Title,
		Excerpt:    excerpt(raw.Body, raw.Title),
		Category:   category(raw, opts),
		Persona:    persona.Name,
		Status:     status,
		Content:    model.StoryContent{Sections: sections},
		SourceType: raw.SourceType,
		SourceID:   raw.SourceID,
		SourceURL:  raw.URL,
		ViralScore: res.ViralScore,
		CreatedAt:  time.Now().UTC(),
	}
	seedEngagement(story, res.ViralScore)
	return story, nil
}

// narrativeSections builds the prose skeleton: a persona-voiced opener, the
// body paragraphs, and a pull quote when the body carries quoted dialogue.
func (t *Transformer) narrativeSections(ctx context.Context, persona Persona, raw model.RawContent) []model.Section {
	opener := fmt.Sprintf("Settle in, because this one delivers. %s", firstSentence(raw.Body, raw.Title))
	if t.Voice != nil {
		if rewritten, err := t.Voice.RewriteParagraph(ctx, persona.Voice, opener); err == nil && rewritten != "" {
			opener = rewritten
		} else if err != nil {
			slog.Warn("transform: voice rewrite failed, using template prose", "persona", persona.Name, "error", err)
		}
	}

	sections := []model.Section{{Type: model.SectionParagraph, Content: opener}}
	for _, para := range splitParagraphs(raw.Body) {
		sections = append(sections, model.Section{Type: model.SectionParagraph, Content: para})
	}
	if q := pullQuote(raw.Body); q != "" {
		sections = append(sections, model.Section{
			Type:     model.SectionQuote,
			Content:  q,
			Metadata: map[string]string{"attribution": raw.Author},
		})
	}
	return sections
}

// weaveAttachments inserts enrichment media at the section indices recorded
// in the bundle, clamped into the narrative's range.
func weaveAttachments(sections []model.Section, bundle *model.EnrichmentBundle) []model.Section {
	if bundle.Empty() {
		return sections
	}
	type placed struct {
		idx     int
		section model.Section
	}
	var attachments []placed
	for _, g := range bundle.GIFs {
		attachments = append(attachments, placed{g.SectionIndex, model.Section{
			Type:    model.SectionGIF,
			Content: g.Title,
			Metadata: map[string]string{
				"url":     g.GIFURL,
				"emotion": string(g.Emotion),
			},
		}})
	}
	for _, img := range bundle.Images {
		attachments = append(attachments, placed{img.SectionIndex, model.Section{
			Type:    model.SectionImage,
			Content: img.EntityName,
			Metadata: map[string]string{
				"url":    img.ImageURL,
				"source": img.Source,
			},
		}})
	}
	for _, em := range bundle.Embeds {
		attachments = append(attachments, placed{em.SectionIndex, model.Section{
			Type:    model.SectionMediaEmbed,
			Content: em.EmbedURL,
			Metadata: map[string]string{
				"platform": em.Platform,
			},
		}})
	}
	for _, a := range attachments {
		at := a.idx
		if at < 1 {
			at = 1
		}
		if at > len(sections) {
			at = len(sections)
		}
		sections = append(sections[:at], append([]model.Section{a.section}, sections[at:]...)...)
	}
	return sections
}

func category(raw model.RawContent, opts Options) string {
	if opts.Category != "" {
		return opts.Category
	}
	if raw.SourceType == model.SourceReddit {
		if c, ok := subredditCategories[strings.ToLower(raw.Subreddit)]; ok {
			return c
		}
	}
	if raw.SourceType == model.SourceTwitter {
		return "drama"
	}
	return defaultCategory
}

// seedEngagement fills synthetic cold-start counters derived from the viral
// score. These are formulaic placeholders, not telemetry.
func seedEngagement(s *model.Story, viral float64) {
	s.ViewCount = 100 + int(viral*120)
	s.UpvoteCount = s.ViewCount / 12
	s.ShareCount = s.ViewCount / 25
	s.BookmarkCount = s.ViewCount / 40
	s.TrendingScore = viral
}

func splitParagraphs(body string) []string {
	var out []string
	for _, p := range strings.Split(body, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) >= 6 {
			break
		}
	}
	return out
}

func firstSentence(body, fallback string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return fallback
	}
	if i := strings.IndexAny(body, ".!?"); i >= 0 && i < 240 {
		return body[:i+1]
	}
	if len(body) > 240 {
		return body[:240]
	}
	return body
}

// pullQuote extracts the first quoted span of dialogue worth highlighting.
func pullQuote(body string) string {
	start := strings.Index(body, `"`)
	if start < 0 {
		return ""
	}
	rest := body[start+1:]
	end := strings.Index(rest, `"`)
	if end < 8 || end > 200 {
		return ""
	}
	return rest[:end]
}

func excerpt(body, title string) string {
	src := strings.TrimSpace(body)
	if src == "" {
		src = title
	}
	src = strings.Join(strings.Fields(src), " ")
	if len(src) <= 160 {
		return src
	}
	cut := src[:160]
	if i := strings.LastIndex(cut, " "); i > 100 {
		cut = cut[:i]
	}
	return cut + "…"
}
