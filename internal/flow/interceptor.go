package flow

import (
	"log/slog"
	"strings"

	"github.com/vhelp/assistflow/internal/catalog"
	"github.com/vhelp/assistflow/internal/models"
)

const thanksReply = "You're very welcome! 😊\n\n" +
	"Need anything else? Type *MENU* to see options."

const frustrationReply = "I sense you might be frustrated. I'm here to help! 🤝\n\n" +
	"Would you like to:\n" +
	"• Speak with a team member? (Reply *HUMAN*)\n" +
	"• Start fresh? (Reply *RESTART*)\n" +
	"• See the menu again? (Reply *MENU*)"

// intercept handles state-independent commands before state dispatch. It
// returns the reply and true when it short-circuits the state machine, in
// this fixed order: greeting, menu request, thanks, FAQ lookup, frustration.
func (e *Engine) intercept(s *models.UserSession, message string, intent models.Intent) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(message))

	if intent == models.IntentGreeting {
		return e.menuFromScratch(s), true
	}

	if strings.Contains(lower, "menu") || strings.Contains(lower, "services") {
		return e.menuFromScratch(s), true
	}

	if strings.Contains(lower, "thank") {
		return thanksReply, true
	}

	if answer, ok := e.faqs.AnswerFor(lower); ok {
		slog.Debug("flow.intercept: FAQ matched", "userID", s.UserID)
		s.Context.ReclassifyLastIntent(models.IntentFaq)
		return answer, true
	}

	if strings.Contains(lower, "recommend") || strings.Contains(lower, "suggest") {
		recs := e.catalog.Recommend(s.BusinessType, s.HoursPerWeek)
		slog.Debug("flow.intercept: recommendations requested", "userID", s.UserID, "count", len(recs))
		return catalog.FormatRecommendations(recs, s.BusinessType), true
	}

	if s.Context.IsFrustrated() {
		slog.Info("flow.intercept: frustration detected", "userID", s.UserID,
			"clarificationAttempts", s.Context.ClarificationAttempts)
		return frustrationReply, true
	}

	return "", false
}

// menuFromScratch shows the service menu and forces service selection. A
// completed session is fully reset first so slots from the finished booking
// never leak into the next one.
func (e *Engine) menuFromScratch(s *models.UserSession) string {
	if s.State == models.StateCompleted {
		s.Reset(true)
	}
	s.State = models.StateServiceSelection
	return catalog.FormatMenu(e.catalog)
}
