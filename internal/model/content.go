package model

import "time"

// SourceType identifies the provider a piece of raw content came from.
type SourceType string

const (
	SourceReddit      SourceType = "reddit"
	SourceTwitter     SourceType = "twitter"
	SourceAIGenerated SourceType = "ai-generated"
)

// SourceMetrics carries the numeric engagement signals a provider exposes.
// Fields are provider-dependent; absent signals are zero.
type SourceMetrics struct {
	Score    int `json:"score,omitempty"`
	Comments int `json:"comments,omitempty"`
	Retweets int `json:"retweets,omitempty"`
	Likes    int `json:"likes,omitempty"`
}

// RawContent is the provider-agnostic envelope for scraped input.
// SourceID is unique per SourceType; re-fetching the same id yields the same
// content (live metrics may drift).
type RawContent struct {
	SourceType SourceType    `json:"source_type"`
	SourceID   string        `json:"source_id"`
	Title      string        `json:"title"`
	Body       string        `json:"body"`
	Author     string        `json:"author,omitempty"`
	URL        string        `json:"url,omitempty"`
	Subreddit  string        `json:"subreddit,omitempty"`
	Metrics    SourceMetrics `json:"metrics"`
	CreatedAt  time.Time     `json:"created_at"`
	FetchedAt  time.Time     `json:"fetched_at"`
}

// Emotion is one label from the fixed sentiment vocabulary.
type Emotion string

const (
	EmotionOpeningTension      Emotion = "opening_tension"
	EmotionEscalatingDrama     Emotion = "escalating_drama"
	EmotionPeakChaos           Emotion = "peak_chaos"
	EmotionShockedRealization  Emotion = "shocked_realization"
	EmotionSatisfiedResolution Emotion = "satisfied_resolution"
)

// Emotions lists the vocabulary in narrative order.
var Emotions = []Emotion{
	EmotionOpeningTension,
	EmotionEscalatingDrama,
	EmotionPeakChaos,
	EmotionShockedRealization,
	EmotionSatisfiedResolution,
}

// Sentiment is the classified emotional register of a piece of content.
type Sentiment struct {
	Emotion    Emotion `json:"emotion"`
	Intensity  float64 `json:"intensity"`  // [0,1]
	Confidence float64 `json:"confidence"` // [0,1]
}

// Entity is a named entity extracted from content.
type Entity struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"` // person, place, organization, other
	Confidence     float64 `json:"confidence"`
	WikipediaTitle string  `json:"wikipedia_title,omitempty"`
}

// AnalysisResult holds the derived signals for one RawContent.
// Immutable once computed.
type AnalysisResult struct {
	Sentiment  Sentiment `json:"sentiment"`
	Keywords   []string  `json:"keywords"`  // insertion order = relevance order
	Metaphors  []string  `json:"metaphors,omitempty"` // omitted when extraction fails
	ViralScore float64   `json:"viral_score"`
	Entities   []Entity  `json:"entities,omitempty"`
}

// GIFAttachment is one reaction GIF resolved from a sentiment lookup.
type GIFAttachment struct {
	Emotion         Emotion  `json:"emotion"`
	SearchTermsUsed []string `json:"search_terms_used"`
	GIFURL          string   `json:"gif_url"`
	Title           string   `json:"title"`
	SectionIndex    int      `json:"section_index"`
	CacheHit        bool     `json:"cache_hit"`
}

// Embed is an embeddable media reference found in content.
type Embed struct {
	Platform     string `json:"platform"` // twitter, tiktok, youtube
	EmbedURL     string `json:"embed_url"`
	SectionIndex int    `json:"section_index"`
}

// EntityImage is an image resolved for a named entity.
type EntityImage struct {
	EntityName   string `json:"entity_name"`
	ImageURL     string `json:"image_url"`
	Source       string `json:"source"` // wikipedia, unsplash, local-fallback
	SectionIndex int    `json:"section_index"`
}

// EnrichmentBundle collects optional media attachments keyed by the section
// index they should appear at. Every field may be empty; enrichment is
// strictly additive.
type EnrichmentBundle struct {
	GIFs   []GIFAttachment `json:"gifs,omitempty"`
	Embeds []Embed         `json:"embeds,omitempty"`
	Images []EntityImage   `json:"images,omitempty"`
}

// Empty reports whether the bundle carries no attachments at all.
func (b *EnrichmentBundle) Empty() bool {
	if b == nil {
		return true
	}
	return len(b.GIFs) == 0 && len(b.Embeds) == 0 && len(b.Images) == 0
}
