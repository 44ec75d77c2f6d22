package analysis

import "threadjuice/internal/model"

// emotionCues maps each emotion in the vocabulary to the lexical cues that
// vote for it. Matching is case-insensitive on word boundaries.
var emotionCues = map[model.Emotion][]string{
	model.EmotionOpeningTension: {
		"so this happened", "backstory", "context", "bear with me",
		"long story", "little did i know", "it started", "at first",
		"seemed fine", "red flag",
	},
	model.EmotionEscalatingDrama: {
		"then", "suddenly", "escalated", "worse", "and then", "on top of",
		"to make matters", "started yelling", "doubled down", "blew up",
		"got heated", "spiraled",
	},
	model.EmotionPeakChaos: {
		"chaos", "unhinged", "insane", "lost it", "screaming", "meltdown",
		"absolute", "everyone", "police", "fired", "divorce", "disaster",
		"went nuclear",
	},
	model.EmotionShockedRealization: {
		"turns out", "realized", "discovered", "found out", "the whole time",
		"i was wrong", "plot twist", "never expected", "couldn't believe",
		"it hit me",
	},
	model.EmotionSatisfiedResolution: {
		"in the end", "finally", "resolved", "apologized", "made up",
		"lesson learned", "closure", "moved on", "update:", "happy ending",
		"worked out",
	},
}

// stopwords excluded from keyword extraction.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "an": {},
	"and": {}, "any": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"because": {}, "been": {}, "but": {}, "by": {}, "can": {}, "could": {},
	"did": {}, "do": {}, "does": {}, "for": {}, "from": {}, "get": {},
	"got": {}, "had": {}, "has": {}, "have": {}, "he": {}, "her": {},
	"him": {}, "his": {}, "how": {}, "i": {}, "if": {}, "in": {},
	"into": {}, "is": {}, "it": {}, "its": {}, "just": {}, "like": {},
	"me": {}, "my": {}, "no": {}, "not": {}, "of": {}, "on": {},
	"one": {}, "or": {}, "our": {}, "out": {}, "she": {}, "so": {},
	"some": {}, "than": {}, "that": {}, "the": {}, "their": {}, "them": {},
	"then": {}, "there": {}, "they": {}, "this": {}, "to": {}, "up": {},
	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "which": {},
	"who": {}, "will": {}, "with": {}, "would": {}, "you": {}, "your": {},
}

// metaphorMarkers introduce similes and common figurative frames.
var metaphorMarkers = []string{
	"like a", "like an", "as if", "as though", "felt like",
	"a trainwreck", "dumpster fire", "house of cards", "tip of the iceberg",
	"powder keg", "snowballed",
}

// entityTypeHints guess an entity type from trailing words of a name.
var entityTypeHints = map[string]string{
	"inc": "organization", "corp": "organization", "university": "organization",
	"school": "organization", "company": "organization", "church": "organization",
	"city": "place", "park": "place", "street": "place", "county": "place",
}
