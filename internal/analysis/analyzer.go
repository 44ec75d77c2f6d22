// Package analysis derives lightweight signals from raw content: sentiment
// on a fixed emotion vocabulary, ordered keywords, named entities, metaphor
// phrases, and a viral score. Everything here is deterministic so filtering
// and ranking stay reproducible across runs.
package analysis

import (
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"threadjuice/internal/model"
)

// Viral score weights. The score is a weighted sum of log-scaled source
// metrics (log10 dampens outlier threads) and sentiment intensity, clamped
// to [0,10]. Stable constants; tests and the ingest filter depend on them.
const (
	weightScore     = 0.5
	weightEngage    = 0.3
	weightIntensity = 2.0
	viralScoreMax   = 10
)

// Options toggle the analyzer's optional passes.
type Options struct {
	AnalyzeSentiment bool
	GenerateKeywords bool
	ExtractMetaphors bool
}

// DefaultOptions enables every pass.
func DefaultOptions() Options {
	return Options{AnalyzeSentiment: true, GenerateKeywords: true, ExtractMetaphors: true}
}

// Analyzer computes an AnalysisResult for one RawContent.
type Analyzer struct {
	MaxKeywords int
	MaxEntities int
}

func New() *Analyzer {
	return &Analyzer{MaxKeywords: 10, MaxEntities: 5}
}

// Analyze derives signals from raw content. Optional passes degrade
// gracefully: a metaphor-extraction failure drops the field, never the stage.
func (a *Analyzer) Analyze(raw model.RawContent, opts Options) *model.AnalysisResult {
	text := raw.Title + "\n" + raw.Body
	res := &model.AnalysisResult{
		Sentiment: model.Sentiment{Emotion: model.EmotionOpeningTension},
	}

	if opts.AnalyzeSentiment {
		res.Sentiment = classifySentiment(text)
	}
	if opts.GenerateKeywords {
		res.Keywords = extractKeywords(text, a.MaxKeywords)
	}
	if opts.ExtractMetaphors {
		ms, err := extractMetaphors(text)
		if err != nil {
			slog.Warn("analysis: metaphor extraction failed, omitting", "source_id", raw.SourceID, "error", err)
		} else {
			res.Metaphors = ms
		}
	}
	res.Entities = extractEntities(text, a.MaxEntities)
	res.ViralScore = ViralScore(raw.Metrics, res.Sentiment.Intensity)
	return res
}

// ViralScore combines log-scaled engagement metrics with sentiment intensity.
func ViralScore(m model.SourceMetrics, intensity float64) float64 {
	engage := float64(m.Comments + m.Retweets + m.Likes)
	score := weightScore*math.Log10(1+math.Max(0, float64(m.Score))) +
		weightEngage*math.Log10(1+math.Max(0, engage)) +
		weightIntensity*intensity
	return clamp(score, 0, viralScoreMax)
}

// classifySentiment votes each emotion by cue hits plus structural cues,
// picks the densest, and normalizes intensity by content length. Ties break
// toward the emotion with more cue hits, then narrative order.
func classifySentiment(text string) model.Sentiment {
	lower := strings.ToLower(text)
	words := len(strings.Fields(lower))
	if words == 0 {
		return model.Sentiment{Emotion: model.EmotionOpeningTension}
	}

	counts := map[model.Emotion]int{}
	total := 0
	for emo, cues := range emotionCues {
		for _, cue := range cues {
			n := strings.Count(lower, cue)
			counts[emo] += n
			total += n
		}
	}
	// Structural cues: exclamations and shouted words vote for peak_chaos,
	// quoted dialogue for escalating_drama.
	exclaims := strings.Count(text, "!")
	counts[model.EmotionPeakChaos] += exclaims / 2
	total += exclaims / 2
	quotes := strings.Count(text, `"`) / 2
	counts[model.EmotionEscalatingDrama] += quotes
	total += quotes

	best := model.EmotionOpeningTension
	bestCount := 0
	for _, emo := range model.Emotions {
		if counts[emo] > bestCount {
			best = emo
			bestCount = counts[emo]
		}
	}

	intensity := clamp(float64(total)/float64(words)*8, 0, 1)
	confidence := 0.5
	if total > 0 {
		confidence = clamp(float64(bestCount)/float64(total), 0, 1)
	}
	return model.Sentiment{Emotion: best, Intensity: intensity, Confidence: confidence}
}

var wordRe = regexp.MustCompile(`[a-zA-Z][a-zA-Z'-]{2,}`)

// extractKeywords returns deduplicated terms ordered by descending frequency,
// then by first occurrence.
func extractKeywords(text string, max int) []string {
	type stat struct {
		count int
		first int
	}
	stats := map[string]*stat{}
	for i, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if s, ok := stats[w]; ok {
			s.count++
		} else {
			stats[w] = &stat{count: 1, first: i}
		}
	}
	terms := make([]string, 0, len(stats))
	for w := range stats {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		a, b := stats[terms[i]], stats[terms[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.first < b.first
	})
	if len(terms) > max {
		terms = terms[:max]
	}
	return terms
}

// extractMetaphors finds simile markers and stock figurative phrases.
func extractMetaphors(text string) ([]string, error) {
	lower := strings.ToLower(text)
	var out []string
	seen := map[string]struct{}{}
	for _, marker := range metaphorMarkers {
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}
		end := idx + len(marker) + 40
		if end > len(lower) {
			end = len(lower)
		}
		phrase := strings.TrimSpace(snipAtBoundary(lower[idx:end]))
		if _, dup := seen[phrase]; dup || phrase == "" {
			continue
		}
		seen[phrase] = struct{}{}
		out = append(out, phrase)
	}
	return out, nil
}

// snipAtBoundary cuts a phrase at the first sentence break, else at the last
// whole word.
func snipAtBoundary(s string) string {
	if i := strings.IndexAny(s, ".!?\n"); i >= 0 {
		return s[:i]
	}
	if i := strings.LastIndex(s, " "); i > 0 {
		return s[:i]
	}
	return s
}

var entityRe = regexp.MustCompile(`(?:[A-Z][a-z]+)(?:\s+[A-Z][a-z]+){0,3}`)

// extractEntities pulls capitalized runs as candidate named entities.
// Confidence grows with the run length; multi-word entities get a Wikipedia
// title guess so image enrichment can search the encyclopedia directly.
func extractEntities(text string, max int) []model.Entity {
	seen := map[string]struct{}{}
	var out []model.Entity
	for _, loc := range entityRe.FindAllStringIndex(text, -1) {
		name := text[loc[0]:loc[1]]
		// Skip sentence-initial single words; too many false positives.
		wordCount := len(strings.Fields(name))
		if wordCount == 1 && (loc[0] == 0 || isSentenceStart(text, loc[0])) {
			continue
		}
		if _, stop := stopwords[strings.ToLower(name)]; stop {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		conf := 0.5 + 0.15*float64(wordCount)
		e := model.Entity{
			Name:       name,
			Type:       guessEntityType(name),
			Confidence: clamp(conf, 0, 0.95),
		}
		if wordCount >= 2 {
			e.WikipediaTitle = strings.ReplaceAll(name, " ", "_")
		}
		out = append(out, e)
		if len(out) >= max {
			break
		}
	}
	return out
}

func isSentenceStart(text string, idx int) bool {
	for i := idx - 1; i >= 0; i-- {
		r := rune(text[i])
		if unicode.IsSpace(r) {
			continue
		}
		return r == '.' || r == '!' || r == '?' || r == '\n'
	}
	return true
}

func guessEntityType(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	for _, f := range fields {
		if t, ok := entityTypeHints[strings.Trim(f, ".,")]; ok {
			return t
		}
	}
	if len(fields) == 2 {
		return "person"
	}
	return "other"
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
