package flow

import (
	"regexp"
	"strings"

	"github.com/vhelp/assistflow/internal/models"
)

// Empathy prefixes keyed by sentiment tier. Neutral adds nothing.
var empathyPrefixes = map[models.SentimentScore]string{
	models.SentimentVeryNegative: "I understand your frustration. ",
	models.SentimentNegative:     "I hear you. ",
	models.SentimentPositive:     "Great! ",
	models.SentimentVeryPositive: "I'm so glad to hear that! ",
}

var fillerPattern = regexp.MustCompile(`(Great!|Perfect!|Awesome!)\s*`)

// personalize post-processes a handler reply: an empathy prefix for negative
// sentiment first, then the style rewrite. Order matters; the style pass must
// see the empathy prefix so "concise" can strip it again if it is filler.
func personalize(reply string, sentiment models.SentimentScore, style models.ResponseStyle) string {
	if sentiment < 0 {
		if prefix, ok := empathyPrefixes[sentiment]; ok {
			reply = prefix + reply
		}
	}
	return applyStyle(reply, style)
}

// applyStyle rewrites a reply for the user's preferred response style.
// Professional is the default and leaves the text untouched.
func applyStyle(reply string, style models.ResponseStyle) string {
	switch style {
	case models.StyleCasual:
		reply = strings.ReplaceAll(reply, "Please", "")
		reply = strings.ReplaceAll(reply, "Thank you", "Thanks")
		return strings.TrimSpace(reply)
	case models.StyleConcise:
		return fillerPattern.ReplaceAllString(reply, "")
	default:
		return reply
	}
}
