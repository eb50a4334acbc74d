package flow

import (
	"time"

	"github.com/vhelp/assistflow/internal/models"
)

// SessionSummary is the analytics snapshot of one session, served by the
// administrative API.
type SessionSummary struct {
	UserID            string                   `json:"user_id"`
	State             models.ConversationState `json:"state"`
	CompletionPercent int                      `json:"completion_percent"`
	MessageCount      int                      `json:"message_count"`
	ErrorCount        int                      `json:"error_count"`
	AverageSentiment  float64                  `json:"average_sentiment"`
	Frustrated        bool                     `json:"frustrated"`
	TopicsDiscussed   []string                 `json:"topics_discussed"`
	RecentIntents     []models.Intent          `json:"recent_intents"`
	SessionDuration   string                   `json:"session_duration"`
}

// completionByState maps each flow state to how far through the booking
// funnel it sits, in percent.
var completionByState = map[models.ConversationState]int{
	models.StateInitial:          0,
	models.StateServiceSelection: 20,
	models.StateServiceDetail:    40,
	models.StateHoursCollection:  60,
	models.StateBusinessType:     75,
	models.StateBudgetCollection: 85,
	models.StateConfirmation:     95,
	models.StateCompleted:        100,
}

// Summarize builds the analytics snapshot for a user's current session.
// It returns false when no session exists; summarizing never creates one.
func (e *Engine) Summarize(userID string) (SessionSummary, bool) {
	s, ok := e.sessions.Get(userID)
	if !ok {
		return SessionSummary{}, false
	}

	return SessionSummary{
		UserID:            s.UserID,
		State:             s.State,
		CompletionPercent: completionByState[s.State],
		MessageCount:      s.MessageCount,
		ErrorCount:        s.ErrorCount,
		AverageSentiment:  s.Context.AverageSentiment(),
		Frustrated:        s.Context.IsFrustrated(),
		TopicsDiscussed:   s.Context.Topics(),
		RecentIntents:     s.Context.RecentIntents(models.ContextIntentLimit),
		SessionDuration:   time.Since(s.CreatedAt).Round(time.Second).String(),
	}, true
}
