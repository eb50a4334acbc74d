package nlu

import (
	"regexp"
	"strings"

	"github.com/vhelp/assistflow/internal/models"
)

// Fixed sentiment lexicons. Scoring counts distinct lexicon words present in
// the message, so repeated words do not inflate the score.
var positiveWords = map[string]bool{
	"great": true, "awesome": true, "perfect": true, "excellent": true,
	"wonderful": true, "fantastic": true, "love": true, "amazing": true,
	"good": true, "nice": true, "thanks": true, "thank": true,
	"appreciate": true, "happy": true,
}

var negativeWords = map[string]bool{
	"bad": true, "terrible": true, "horrible": true, "worst": true,
	"hate": true, "awful": true, "poor": true, "frustrated": true,
	"angry": true, "upset": true, "disappointed": true, "useless": true,
	"waste": true, "annoying": true,
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// AnalyzeSentiment scores a message on the five-point sentiment scale by
// intersecting its word set with the positive and negative lexicons. The
// decision table is evaluated in order; a margin greater than one separates
// the strong tiers from the mild ones.
func AnalyzeSentiment(message string) models.SentimentScore {
	words := wordPattern.FindAllString(strings.ToLower(message), -1)
	seen := make(map[string]bool, len(words))

	positive, negative := 0, 0
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		if positiveWords[w] {
			positive++
		}
		if negativeWords[w] {
			negative++
		}
	}

	switch {
	case negative > positive+1:
		if negative >= 3 {
			return models.SentimentVeryNegative
		}
		return models.SentimentNegative
	case positive > negative+1:
		if positive >= 3 {
			return models.SentimentVeryPositive
		}
		return models.SentimentPositive
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
