package enrich

import "threadjuice/internal/model"

// gifSearchTerms maps each emotion to an ordered list of candidate search
// phrases. Phrases are tried in order until the provider returns a result or
// the list is exhausted.
var gifSearchTerms = map[model.Emotion][]string{
	model.EmotionOpeningTension: {
		"nervous anticipation", "here we go", "grabbing popcorn",
	},
	model.EmotionEscalatingDrama: {
		"oh no it's getting worse", "drama escalating", "things heating up",
	},
	model.EmotionPeakChaos: {
		"absolute chaos", "everything on fire", "this is fine fire",
	},
	model.EmotionShockedRealization: {
		"shocked face", "plot twist", "jaw drop",
	},
	model.EmotionSatisfiedResolution: {
		"satisfied nod", "justice served", "chef's kiss",
	},
}
