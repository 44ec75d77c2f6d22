package model

import "time"

// StoryStatus is the publication state of a story.
type StoryStatus string

const (
	StatusDraft     StoryStatus = "draft"
	StatusPublished StoryStatus = "published"
)

// SectionType tags one unit of a story's content body.
type SectionType string

const (
	SectionParagraph  SectionType = "paragraph"
	SectionQuote      SectionType = "quote"
	SectionImage      SectionType = "image"
	SectionMediaEmbed SectionType = "media_embed"
	SectionGIF        SectionType = "gif"

	// SectionQuiz survives in historical data only; it is decoded and
	// tolerated but never produced.
	SectionQuiz SectionType = "quiz"
)

// Section is one ordered unit of a story body.
type Section struct {
	Type     SectionType       `json:"type"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// StoryContent wraps the ordered section list.
type StoryContent struct {
	Sections []Section `json:"sections"`
}

// Story is the canonical output document of the ingestion pipeline.
// The pipeline never mutates a Story after handoff to an output sink.
type Story struct {
	ID       string       `json:"id"`
	Slug     string       `json:"slug"`
	Title    string       `json:"title"`
	Excerpt  string       `json:"excerpt"`
	Category string       `json:"category"`
	Persona  string       `json:"persona"`
	Status   StoryStatus  `json:"status"`
	Content  StoryContent `json:"content"`

	// Engagement counters. Seed values are synthetic cold-start numbers
	// derived from the viral score, not real telemetry; they only ever
	// grow afterwards, except TrendingScore which decays over time.
	ViewCount     int     `json:"view_count"`
	UpvoteCount   int     `json:"upvote_count"`
	ShareCount    int     `json:"share_count"`
	BookmarkCount int     `json:"bookmark_count"`
	TrendingScore float64 `json:"trending_score"`

	SourceType SourceType `json:"source_type"`
	SourceID   string     `json:"source_id"`
	SourceURL  string     `json:"source_url,omitempty"`
	ViralScore float64    `json:"viral_score"`

	CreatedAt time.Time `json:"created_at"`
}
