// Package flow implements the conversation orchestration engine: the global
// command interceptor, the per-state handler table, response personalization,
// and the top-level message entry point.
package flow

import (
	"fmt"
	"log/slog"

	"github.com/vhelp/assistflow/internal/catalog"
	"github.com/vhelp/assistflow/internal/models"
	"github.com/vhelp/assistflow/internal/nlu"
)

// handlerFunc processes one message for a specific conversation state and
// returns the reply together with the next state. Handlers mutate only the
// session they are handed and never retain it.
type handlerFunc func(s *models.UserSession, message string, intent models.Intent) (string, models.ConversationState)

// buildHandlers constructs the closed dispatch table. Completed and
// HumanHandoff are deliberately absent: their cross-cutting restart semantics
// live in the orchestrator.
func (e *Engine) buildHandlers() map[models.ConversationState]handlerFunc {
	return map[models.ConversationState]handlerFunc{
		models.StateInitial:          e.handleServiceSelection,
		models.StateServiceSelection: e.handleServiceSelection,
		models.StateServiceDetail:    e.handleServiceDetail,
		models.StateHoursCollection:  e.handleHoursCollection,
		models.StateBusinessType:     e.handleBusinessType,
		models.StateBudgetCollection: e.handleBudgetCollection,
		models.StateConfirmation:     e.handleConfirmation,
	}
}

// humanHandoffReply is returned whenever a HumanRequest intent is seen,
// regardless of current state.
const humanHandoffReply = "🤝 I'll connect you with our team!\n\n" +
	"A team member will reach out to you shortly via this number.\n" +
	"Typical response time: 2-4 hours during business hours.\n\n" +
	"In the meantime, would you like me to continue helping you, " +
	"or would you prefer to wait for human assistance?"

func (e *Engine) handleServiceSelection(s *models.UserSession, message string, intent models.Intent) (string, models.ConversationState) {
	if intent == models.IntentRestart {
		s.Reset(true)
		return catalog.FormatMenu(e.catalog), models.StateServiceSelection
	}

	key, name, ok := nlu.ExtractService(message, e.catalog.Entries())
	if ok {
		s.Service = name
		s.ServiceKey = key
		s.Context.AddTopic(name)
		s.Context.ClarificationAttempts = 0
		slog.Info("flow.handleServiceSelection: service selected", "userID", s.UserID, "service", name)

		if svc, found := e.catalog.Get(key); found {
			return catalog.FormatDetail(svc), models.StateServiceDetail
		}
		return fmt.Sprintf("✅ You selected *%s*.\n\nReply *YES* to proceed or *NO* to choose another service.", name),
			models.StateServiceDetail
	}

	s.Context.ClarificationAttempts++
	switch {
	case s.Context.ClarificationAttempts == 1:
		return "⚠️ I didn't quite catch which service you'd like.\n\n" +
			"Type the *number* or *name* from the menu, like '1' or 'Admin Support'.", models.StateServiceSelection
	case s.Context.ClarificationAttempts == 2:
		return "Let me show you the menu again:\n\n" + catalog.FormatMenu(e.catalog) +
			"\n\nJust reply with the number (like 1, 2, or 3).", models.StateServiceSelection
	default:
		return "I'm having trouble understanding which service you need.\n\n" +
			"Would you like to speak with a team member? Reply *YES* for human help, " +
			"or try selecting a service number from the menu.", models.StateServiceSelection
	}
}

func (e *Engine) handleServiceDetail(s *models.UserSession, message string, intent models.Intent) (string, models.ConversationState) {
	switch intent {
	case models.IntentConfirmation:
		s.Context.ClarificationAttempts = 0
		return "Great choice! 🎯\n\n" +
			"How many *hours per week* would you like for this service?\n" +
			"(Please provide a number between 1-40 hours)", models.StateHoursCollection
	case models.IntentRejection:
		s.Service = ""
		s.ServiceKey = ""
		return "No problem! Let's choose a different service.\n\n" + catalog.FormatMenu(e.catalog),
			models.StateServiceSelection
	default:
		return "Please reply:\n" +
			"• *YES* to proceed with this service\n" +
			"• *NO* to choose a different service", models.StateServiceDetail
	}
}

func (e *Engine) handleHoursCollection(s *models.UserSession, message string, intent models.Intent) (string, models.ConversationState) {
	if hours, ok := nlu.ExtractHours(message); ok {
		s.HoursPerWeek = hours
		s.Context.ClarificationAttempts = 0
		slog.Info("flow.handleHoursCollection: hours collected", "userID", s.UserID, "hours", hours)
		return fmt.Sprintf("Perfect! %d hours per week noted. ✅\n\n"+
			"What *type of business* do you run?\n"+
			"(e.g., E-commerce, Coaching, SaaS, Local Business, Agency)", hours), models.StateBusinessType
	}

	s.Context.ClarificationAttempts++
	if s.Context.ClarificationAttempts > 2 {
		return "I'm having trouble understanding the hours you need.\n\n" +
			"Let me ask differently: Do you need:\n" +
			"• Part-time support (5-20 hours/week)?\n" +
			"• Full-time support (30-40 hours/week)?\n" +
			"• Just a few hours (1-10 hours/week)?", models.StateHoursCollection
	}
	return "⚠️ Please provide a valid number of hours.\n\n" +
		"Example: Type '10' for 10 hours per week\n" +
		"(Between 1-40 hours recommended)", models.StateHoursCollection
}

func (e *Engine) handleBusinessType(s *models.UserSession, message string, intent models.Intent) (string, models.ConversationState) {
	if len(message) < 2 {
		return "⚠️ Please tell me about your business.\n\n" +
			"Examples: E-commerce Store, Coaching Business, SaaS Company, Local Retail", models.StateBusinessType
	}

	s.BusinessType = message
	s.Context.ClarificationAttempts = 0
	slog.Info("flow.handleBusinessType: business type collected", "userID", s.UserID, "businessType", message)
	return fmt.Sprintf("Got it - %s! 💼\n\n"+
		"What is your *monthly budget* for this service?\n"+
		"(e.g., $500-$1000, $2000+, or just type an amount)", message), models.StateBudgetCollection
}

func (e *Engine) handleBudgetCollection(s *models.UserSession, message string, intent models.Intent) (string, models.ConversationState) {
	budget, ok := nlu.ExtractBudget(message)
	if !ok && len(message) >= 2 {
		// Free-form budget answers are accepted as opaque text.
		budget, ok = message, true
	}

	if !ok {
		return "⚠️ Please provide your budget range.\n\n" +
			"Examples:\n" +
			"• $500-$1000\n" +
			"• Around $2000/month\n" +
			"• Up to $5000", models.StateBudgetCollection
	}

	s.Budget = budget
	s.Context.ClarificationAttempts = 0
	slog.Info("flow.handleBudgetCollection: budget collected", "userID", s.UserID, "budget", budget)

	summary := "📋 *Booking Summary*\n" +
		"━━━━━━━━━━━━━━━━\n" +
		fmt.Sprintf("Service: *%s*\n", s.Service) +
		fmt.Sprintf("Hours/Week: *%d*\n", s.HoursPerWeek) +
		fmt.Sprintf("Business: *%s*\n", s.BusinessType) +
		fmt.Sprintf("Budget: *%s*\n", s.Budget) +
		"━━━━━━━━━━━━━━━━\n\n" +
		"Does everything look correct?\n" +
		"Reply *YES* to confirm and get your booking link."
	return summary, models.StateConfirmation
}

func (e *Engine) handleConfirmation(s *models.UserSession, message string, intent models.Intent) (string, models.ConversationState) {
	switch intent {
	case models.IntentConfirmation:
		slog.Info("flow.handleConfirmation: booking confirmed", "userID", s.UserID, "service", s.Service)
		e.archiveBooking(s)
		return "🎉 *Perfect! You're all set!*\n\n" +
			fmt.Sprintf("📅 Book your discovery call here:\n👉 %s\n\n", catalog.BookingLink) +
			"📱 *What happens next?*\n" +
			"1. Schedule your call using the link above\n" +
			"2. We'll discuss your needs in detail\n" +
			"3. Get a customized proposal\n\n" +
			"Need to speak with someone now? Just reply and our team will follow up!\n\n" +
			"Type *MENU* anytime to start over.", models.StateCompleted
	case models.IntentRejection:
		s.Reset(true)
		return "No worries! I've cleared your information. 🔄\n\n" + catalog.FormatMenu(e.catalog),
			models.StateServiceSelection
	default:
		return "Please reply:\n" +
			"• *YES* to confirm and receive booking link\n" +
			"• *NO* to start over", models.StateConfirmation
	}
}
