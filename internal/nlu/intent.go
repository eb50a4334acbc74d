// Package nlu provides the lexical analyzers for AssistFlow: intent
// classification, sentiment scoring, and entity extraction. All analyzers are
// pure functions over the message text; classification is optionally
// context-aware. Match order is an explicit priority list so that the
// classifier stays deterministic and auditable.
package nlu

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/vhelp/assistflow/internal/models"
)

// intentRule pairs an intent with its trigger patterns. Rules are evaluated
// in slice order; the first intent with any matching pattern wins.
type intentRule struct {
	intent   models.Intent
	patterns []*regexp.Regexp
}

var intentRules = []intentRule{
	{models.IntentGreeting, compileAll(
		`\b(hi|hello|hey|good morning|good afternoon|good evening|yo|sup)\b`,
	)},
	{models.IntentRestart, compileAll(
		`\b(restart|reset|start over|clear|begin again|new session)\b`,
	)},
	{models.IntentConfirmation, compileAll(
		`\b(yes|yep|yeah|sure|ok|okay|correct|right|confirm|proceed|continue|absolutely|definitely)\b`,
	)},
	{models.IntentRejection, compileAll(
		`\b(no|nope|not now|later|cancel|back|nevermind|nah|negative|wrong)\b`,
	)},
	{models.IntentHumanRequest, compileAll(
		`\b(speak to|talk to|human|person|agent|representative|real person|someone|help me)\b`,
		`\b(customer service|support|assistance)\b`,
	)},
	{models.IntentHelp, compileAll(
		`\b(help|assist|guide|how do|how to|what can you|confused)\b`,
	)},
	{models.IntentFaq, compileAll(
		`\b(pricing|price|cost|availability|how long|location|contact)\b`,
	)},
	{models.IntentComplaint, compileAll(
		`\b(terrible|horrible|bad|worst|disappointed|frustrated|angry|upset|useless)\b`,
	)},
}

var digitPattern = regexp.MustCompile(`\d+`)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// ClassifyIntent determines the intent of a message. The message is
// lower-cased and trimmed before matching. When no pattern rule matches, a
// context fallback applies: a substantial reply following a recent Rejection
// is treated as a correction attempt, and any message carrying digits is
// treated as a likely hours or budget answer.
func ClassifyIntent(message string, ctx *models.ConversationContext) models.Intent {
	msg := strings.ToLower(strings.TrimSpace(message))

	for _, rule := range intentRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(msg) {
				slog.Debug("nlu.ClassifyIntent: pattern matched", "intent", rule.intent, "pattern", pattern.String())
				return rule.intent
			}
		}
	}

	if ctx != nil {
		for _, recent := range ctx.RecentIntents(2) {
			if recent == models.IntentRejection && len(strings.Fields(msg)) > 2 {
				slog.Debug("nlu.ClassifyIntent: correction after rejection", "intent", models.IntentServiceInquiry)
				return models.IntentServiceInquiry
			}
		}
	}

	if digitPattern.MatchString(msg) {
		return models.IntentServiceInquiry
	}

	return models.IntentUnknown
}
