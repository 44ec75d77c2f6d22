package analysis

import (
	"testing"

	"threadjuice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySentiment(t *testing.T) {
	cases := []struct {
		name string
		text string
		want model.Emotion
	}{
		{
			name: "opening tension",
			text: "So this happened last week. Some backstory first, bear with me, it all seemed fine at the start.",
			want: model.EmotionOpeningTension,
		},
		{
			name: "escalating drama",
			text: "Then she doubled down. And then it got heated, things escalated and suddenly everything was worse.",
			want: model.EmotionEscalatingDrama,
		},
		{
			name: "peak chaos",
			text: "Absolute chaos. Everyone was screaming, she lost it, the police showed up, total meltdown!!",
			want: model.EmotionPeakChaos,
		},
		{
			name: "shocked realization",
			text: "Turns out he knew the whole time. I couldn't believe it, a real plot twist, never expected that.",
			want: model.EmotionShockedRealization,
		},
		{
			name: "satisfied resolution",
			text: "In the end we finally resolved it. He apologized, lesson learned, and everyone moved on. Closure.",
			want: model.EmotionSatisfiedResolution,
		},
		{
			name: "no cues defaults to opening tension",
			text: "Completely neutral sentence without cue phrases.",
			want: model.EmotionOpeningTension,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifySentiment(tc.text)
			assert.Equal(t, tc.want, got.Emotion)
			assert.GreaterOrEqual(t, got.Intensity, 0.0)
			assert.LessOrEqual(t, got.Intensity, 1.0)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		})
	}
}

func TestClassifySentimentEmptyText(t *testing.T) {
	got := classifySentiment("")
	assert.Equal(t, model.EmotionOpeningTension, got.Emotion)
	assert.Zero(t, got.Intensity)
}

func TestViralScore(t *testing.T) {
	// Zero everything scores zero.
	assert.Zero(t, ViralScore(model.SourceMetrics{}, 0))

	// score=999 contributes 0.5*log10(1000)=1.5, comments=99 contribute
	// 0.3*log10(100)=0.6, intensity=0.5 contributes 1.0.
	got := ViralScore(model.SourceMetrics{Score: 999, Comments: 99}, 0.5)
	assert.InDelta(t, 3.1, got, 0.001)

	// Twitter metrics count toward engagement.
	withLikes := ViralScore(model.SourceMetrics{Retweets: 50, Likes: 49}, 0)
	assert.InDelta(t, 0.6, withLikes, 0.001)

	// Clamped to 10 no matter how extreme the inputs.
	extreme := ViralScore(model.SourceMetrics{Score: 1 << 40, Comments: 1 << 40}, 1)
	assert.Equal(t, 10.0, extreme)

	// Negative provider scores never go below zero.
	assert.GreaterOrEqual(t, ViralScore(model.SourceMetrics{Score: -500}, 0), 0.0)
}

func TestExtractKeywordsOrdering(t *testing.T) {
	text := "wedding wedding wedding cake cake venue"
	got := extractKeywords(text, 10)
	require.Equal(t, []string{"wedding", "cake", "venue"}, got)
}

func TestExtractKeywordsTieBreaksOnFirstOccurrence(t *testing.T) {
	got := extractKeywords("zebra apple zebra apple", 10)
	require.Equal(t, []string{"zebra", "apple"}, got)
}

func TestExtractKeywordsSkipsStopwordsAndShortWords(t *testing.T) {
	got := extractKeywords("the and it is ok go", 10)
	assert.Empty(t, got)
}

func TestExtractKeywordsRespectsMax(t *testing.T) {
	got := extractKeywords("alpha beta gamma delta epsilon", 3)
	assert.Len(t, got, 3)
}

func TestExtractEntities(t *testing.T) {
	text := "I told my coworker about it. Sarah Miller from Acme Corp laughed at the whole thing."
	got := extractEntities(text, 5)
	require.NotEmpty(t, got)

	names := map[string]model.Entity{}
	for _, e := range got {
		names[e.Name] = e
	}
	sarah, ok := names["Sarah Miller"]
	require.True(t, ok, "expected Sarah Miller in %v", got)
	assert.Equal(t, "person", sarah.Type)
	assert.Equal(t, "Sarah_Miller", sarah.WikipediaTitle)
	assert.InDelta(t, 0.8, sarah.Confidence, 0.001)

	acme, ok := names["Acme Corp"]
	require.True(t, ok)
	assert.Equal(t, "organization", acme.Type)
}

func TestExtractEntitiesSkipsSentenceInitialSingles(t *testing.T) {
	got := extractEntities("Yesterday was rough. Honestly nothing worked.", 5)
	assert.Empty(t, got)
}

func TestAnalyzeOptionalPasses(t *testing.T) {
	a := New()
	raw := model.RawContent{
		SourceID: "t1",
		Title:    "My sister ruined the wedding",
		Body:     "It felt like a dumpster fire. Then everyone was screaming, absolute chaos!",
		Metrics:  model.SourceMetrics{Score: 500, Comments: 120},
	}

	full := a.Analyze(raw, DefaultOptions())
	assert.NotEmpty(t, full.Keywords)
	assert.NotEmpty(t, full.Metaphors)
	assert.Greater(t, full.ViralScore, 0.0)

	bare := a.Analyze(raw, Options{})
	assert.Empty(t, bare.Keywords)
	assert.Empty(t, bare.Metaphors)
	assert.Equal(t, model.EmotionOpeningTension, bare.Sentiment.Emotion)
	// Viral score is always computed; without the sentiment pass the
	// intensity term is zero.
	assert.Greater(t, bare.ViralScore, 0.0)
	assert.Less(t, bare.ViralScore, full.ViralScore)
}

func TestExtractMetaphors(t *testing.T) {
	ms, err := extractMetaphors("The meeting was a dumpster fire from the first minute.")
	require.NoError(t, err)
	require.NotEmpty(t, ms)
	assert.Contains(t, ms[0], "dumpster fire")
}
