// Package models defines session state structures for AssistFlow conversations.
package models

import "time"

// Bounds for the per-session rolling context windows.
const (
	// ContextMessageLimit is the maximum number of messages retained in context.
	ContextMessageLimit = 10
	// ContextIntentLimit is the maximum number of classified intents retained.
	ContextIntentLimit = 5
)

// ContextMessage is a single message retained in the conversation context.
type ContextMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Intent    Intent    `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext tracks the rolling context of one session: a bounded
// window of recent messages and intents, the full sentiment history, topics
// mentioned, and the clarification-attempt counter. Eviction is oldest-first
// and the bounded windows never exceed their limits.
type ConversationContext struct {
	Messages              []ContextMessage `json:"messages"`
	Intents               []Intent         `json:"intents"`
	SentimentScores       []SentimentScore `json:"sentiment_scores"`
	TopicsDiscussed       map[string]bool  `json:"topics_discussed"`
	ClarificationAttempts int              `json:"clarification_attempts"`
}

// NewConversationContext creates an empty conversation context.
func NewConversationContext() *ConversationContext {
	return &ConversationContext{
		TopicsDiscussed: make(map[string]bool),
	}
}

// AddMessage appends a message to the context window, evicting the oldest
// entry once the window is full. A non-empty intent is also recorded in the
// bounded intent window.
func (c *ConversationContext) AddMessage(role, content string, intent Intent) {
	c.Messages = append(c.Messages, ContextMessage{
		Role:      role,
		Content:   content,
		Intent:    intent,
		Timestamp: time.Now(),
	})
	if len(c.Messages) > ContextMessageLimit {
		c.Messages = c.Messages[len(c.Messages)-ContextMessageLimit:]
	}
	if intent != "" {
		c.Intents = append(c.Intents, intent)
		if len(c.Intents) > ContextIntentLimit {
			c.Intents = c.Intents[len(c.Intents)-ContextIntentLimit:]
		}
	}
}

// ReclassifyLastIntent rewrites the intent of the most recent message when a
// later stage resolves it more specifically than the classifier did, keeping
// the bounded intent window in step.
func (c *ConversationContext) ReclassifyLastIntent(intent Intent) {
	if len(c.Messages) == 0 || intent == "" {
		return
	}
	last := &c.Messages[len(c.Messages)-1]
	if last.Intent != "" && len(c.Intents) > 0 {
		c.Intents[len(c.Intents)-1] = intent
	} else {
		c.Intents = append(c.Intents, intent)
		if len(c.Intents) > ContextIntentLimit {
			c.Intents = c.Intents[len(c.Intents)-ContextIntentLimit:]
		}
	}
	last.Intent = intent
}

// RecentIntents returns up to count of the most recently classified intents,
// oldest first.
func (c *ConversationContext) RecentIntents(count int) []Intent {
	if count <= 0 || len(c.Intents) == 0 {
		return nil
	}
	if count > len(c.Intents) {
		count = len(c.Intents)
	}
	return c.Intents[len(c.Intents)-count:]
}

// AddSentiment records a sentiment score. The sentiment history is append-only.
func (c *ConversationContext) AddSentiment(score SentimentScore) {
	c.SentimentScores = append(c.SentimentScores, score)
}

// LastSentiment returns the most recent sentiment score, or SentimentNeutral
// when no message has been scored yet.
func (c *ConversationContext) LastSentiment() SentimentScore {
	if len(c.SentimentScores) == 0 {
		return SentimentNeutral
	}
	return c.SentimentScores[len(c.SentimentScores)-1]
}

// AverageSentiment computes the mean of all recorded sentiment scores.
func (c *ConversationContext) AverageSentiment() float64 {
	if len(c.SentimentScores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range c.SentimentScores {
		sum += int(s)
	}
	return float64(sum) / float64(len(c.SentimentScores))
}

// AddTopic records a distinct topic (service name) mentioned by the user.
func (c *ConversationContext) AddTopic(topic string) {
	if c.TopicsDiscussed == nil {
		c.TopicsDiscussed = make(map[string]bool)
	}
	c.TopicsDiscussed[topic] = true
}

// Topics returns the distinct topics discussed so far.
func (c *ConversationContext) Topics() []string {
	topics := make([]string, 0, len(c.TopicsDiscussed))
	for t := range c.TopicsDiscussed {
		topics = append(topics, t)
	}
	return topics
}

// IsFrustrated reports whether the user shows signs of frustration: the last
// three sentiment scores all negative, or more than two failed clarification
// attempts.
func (c *ConversationContext) IsFrustrated() bool {
	if c.ClarificationAttempts > 2 {
		return true
	}
	if len(c.SentimentScores) < 3 {
		return false
	}
	for _, s := range c.SentimentScores[len(c.SentimentScores)-3:] {
		if s >= 0 {
			return false
		}
	}
	return true
}

// UserSession is the durable-within-process record of one user's progress
// through the booking flow. Handlers receive a mutable reference for the
// duration of one message and must not retain it afterward; the session
// manager owns the lifetime.
type UserSession struct {
	UserID      string            `json:"user_id"`
	State       ConversationState `json:"state"`
	CreatedAt   time.Time         `json:"created_at"`
	LastUpdated time.Time         `json:"last_updated"`

	// Collected flow slots, populated in canonical order.
	Service      string `json:"service,omitempty"`
	ServiceKey   string `json:"service_key,omitempty"`
	HoursPerWeek int    `json:"hours_per_week,omitempty"`
	BusinessType string `json:"business_type,omitempty"`
	Budget       string `json:"budget,omitempty"`

	MessageCount int                  `json:"message_count"`
	ErrorCount   int                  `json:"error_count"`
	Context      *ConversationContext `json:"context"`

	// Preferences, optionally retained across resets.
	ResponseStyle ResponseStyle `json:"response_style"`
	Timezone      string        `json:"timezone,omitempty"`
	Language      string        `json:"language"`
}

// NewUserSession creates a fresh session for the given user id.
func NewUserSession(userID string) *UserSession {
	now := time.Now()
	return &UserSession{
		UserID:        userID,
		State:         StateInitial,
		CreatedAt:     now,
		LastUpdated:   now,
		Context:       NewConversationContext(),
		ResponseStyle: StyleProfessional,
		Language:      "en",
	}
}

// Touch updates the last-activity timestamp and bumps the message counter.
func (s *UserSession) Touch() {
	s.LastUpdated = time.Now()
	s.MessageCount++
}

// IncrementError tracks failures for user experience monitoring.
func (s *UserSession) IncrementError() {
	s.ErrorCount++
}

// IsExpired reports whether the session has been idle longer than timeout.
func (s *UserSession) IsExpired(timeout time.Duration) bool {
	return time.Since(s.LastUpdated) > timeout
}

// ClearSlots removes all collected flow slots. Slots are only ever cleared
// together, by an explicit reset or an in-flow rejection.
func (s *UserSession) ClearSlots() {
	s.Service = ""
	s.ServiceKey = ""
	s.HoursPerWeek = 0
	s.BusinessType = ""
	s.Budget = ""
}

// Reset returns the session to the start of the flow, clearing slots and
// context. Style, timezone, and language preferences are retained when
// keepPreferences is true.
func (s *UserSession) Reset(keepPreferences bool) {
	oldStyle := s.ResponseStyle
	oldTZ := s.Timezone
	oldLang := s.Language

	s.State = StateServiceSelection
	s.ClearSlots()
	s.Context = NewConversationContext()

	if keepPreferences {
		s.ResponseStyle = oldStyle
		s.Timezone = oldTZ
		s.Language = oldLang
	} else {
		s.ResponseStyle = StyleProfessional
		s.Timezone = ""
		s.Language = "en"
	}
	s.LastUpdated = time.Now()
}
