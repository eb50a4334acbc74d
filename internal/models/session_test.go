package models

import (
	"testing"
	"time"
)

func TestConversationContext_MessageWindowBounded(t *testing.T) {
	ctx := NewConversationContext()
	for i := 0; i < ContextMessageLimit+5; i++ {
		ctx.AddMessage("user", "message", IntentUnknown)
	}
	if len(ctx.Messages) != ContextMessageLimit {
		t.Errorf("expected %d messages retained, got %d", ContextMessageLimit, len(ctx.Messages))
	}
}

func TestConversationContext_OldestMessageEvicted(t *testing.T) {
	ctx := NewConversationContext()
	ctx.AddMessage("user", "first", IntentGreeting)
	for i := 0; i < ContextMessageLimit; i++ {
		ctx.AddMessage("user", "later", IntentUnknown)
	}
	for _, m := range ctx.Messages {
		if m.Content == "first" {
			t.Error("expected oldest message to be evicted")
		}
	}
}

func TestConversationContext_IntentWindowBounded(t *testing.T) {
	ctx := NewConversationContext()
	for i := 0; i < ContextIntentLimit+3; i++ {
		ctx.AddMessage("user", "msg", IntentConfirmation)
	}
	if len(ctx.Intents) != ContextIntentLimit {
		t.Errorf("expected %d intents retained, got %d", ContextIntentLimit, len(ctx.Intents))
	}
}

func TestConversationContext_EmptyIntentNotRecorded(t *testing.T) {
	ctx := NewConversationContext()
	ctx.AddMessage("assistant", "reply", "")
	if len(ctx.Intents) != 0 {
		t.Errorf("expected no intents recorded for assistant reply, got %d", len(ctx.Intents))
	}
}

func TestConversationContext_ReclassifyLastIntent(t *testing.T) {
	ctx := NewConversationContext()
	ctx.AddMessage("user", "what tools do you use", IntentUnknown)

	ctx.ReclassifyLastIntent(IntentFaq)
	if got := ctx.Messages[len(ctx.Messages)-1].Intent; got != IntentFaq {
		t.Errorf("expected last message reclassified to faq, got %v", got)
	}
	if len(ctx.Intents) != 1 || ctx.Intents[0] != IntentFaq {
		t.Errorf("expected intent window rewritten to [faq], got %v", ctx.Intents)
	}
}

func TestConversationContext_ReclassifyLastIntent_Empty(t *testing.T) {
	ctx := NewConversationContext()
	ctx.ReclassifyLastIntent(IntentFaq)
	if len(ctx.Intents) != 0 {
		t.Errorf("expected no intent recorded without messages, got %v", ctx.Intents)
	}
}

func TestConversationContext_RecentIntents(t *testing.T) {
	ctx := NewConversationContext()
	ctx.AddMessage("user", "a", IntentGreeting)
	ctx.AddMessage("user", "b", IntentRejection)
	ctx.AddMessage("user", "c", IntentConfirmation)

	recent := ctx.RecentIntents(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent intents, got %d", len(recent))
	}
	if recent[0] != IntentRejection || recent[1] != IntentConfirmation {
		t.Errorf("unexpected recent intents: %v", recent)
	}
}

func TestConversationContext_SentimentHelpers(t *testing.T) {
	ctx := NewConversationContext()
	if ctx.LastSentiment() != SentimentNeutral {
		t.Error("expected neutral last sentiment for empty history")
	}
	if ctx.AverageSentiment() != 0 {
		t.Error("expected zero average sentiment for empty history")
	}

	ctx.AddSentiment(SentimentPositive)
	ctx.AddSentiment(SentimentVeryNegative)
	if ctx.LastSentiment() != SentimentVeryNegative {
		t.Errorf("expected last sentiment -2, got %d", ctx.LastSentiment())
	}
	if avg := ctx.AverageSentiment(); avg != -0.5 {
		t.Errorf("expected average -0.5, got %f", avg)
	}
}

func TestConversationContext_IsFrustrated(t *testing.T) {
	ctx := NewConversationContext()
	if ctx.IsFrustrated() {
		t.Error("fresh context should not be frustrated")
	}

	ctx.ClarificationAttempts = 3
	if !ctx.IsFrustrated() {
		t.Error("expected frustration after more than two clarification attempts")
	}

	ctx = NewConversationContext()
	ctx.AddSentiment(SentimentNegative)
	ctx.AddSentiment(SentimentNegative)
	if ctx.IsFrustrated() {
		t.Error("two negative scores should not yet count as frustration")
	}
	ctx.AddSentiment(SentimentVeryNegative)
	if !ctx.IsFrustrated() {
		t.Error("expected frustration after three negative scores")
	}
	ctx.AddSentiment(SentimentPositive)
	if ctx.IsFrustrated() {
		t.Error("a positive score in the last three should clear frustration")
	}
}

func TestUserSession_New(t *testing.T) {
	s := NewUserSession("user-1")
	if s.State != StateInitial {
		t.Errorf("expected initial state, got %v", s.State)
	}
	if s.ResponseStyle != StyleProfessional {
		t.Errorf("expected professional style default, got %v", s.ResponseStyle)
	}
	if s.Language != "en" {
		t.Errorf("expected language en, got %q", s.Language)
	}
	if s.Context == nil {
		t.Fatal("expected context to be initialized")
	}
}

func TestUserSession_TouchAndExpiry(t *testing.T) {
	s := NewUserSession("user-1")
	s.Touch()
	s.Touch()
	if s.MessageCount != 2 {
		t.Errorf("expected message count 2, got %d", s.MessageCount)
	}

	if s.IsExpired(time.Hour) {
		t.Error("fresh session should not be expired")
	}
	s.LastUpdated = time.Now().Add(-2 * time.Hour)
	if !s.IsExpired(time.Hour) {
		t.Error("idle session should be expired")
	}
}

func TestUserSession_ResetKeepsPreferences(t *testing.T) {
	s := NewUserSession("user-1")
	s.State = StateConfirmation
	s.Service = "Customer Support"
	s.HoursPerWeek = 10
	s.ResponseStyle = StyleCasual
	s.Timezone = "America/Toronto"
	s.Context.ClarificationAttempts = 2

	s.Reset(true)

	if s.State != StateServiceSelection {
		t.Errorf("expected reset to service selection, got %v", s.State)
	}
	if s.Service != "" || s.HoursPerWeek != 0 {
		t.Error("expected slots cleared on reset")
	}
	if s.Context.ClarificationAttempts != 0 {
		t.Error("expected fresh context on reset")
	}
	if s.ResponseStyle != StyleCasual || s.Timezone != "America/Toronto" {
		t.Error("expected preferences retained when keepPreferences is true")
	}
}

func TestUserSession_ResetDropsPreferences(t *testing.T) {
	s := NewUserSession("user-1")
	s.ResponseStyle = StyleConcise
	s.Timezone = "Europe/London"

	s.Reset(false)

	if s.ResponseStyle != StyleProfessional {
		t.Errorf("expected professional style after full reset, got %v", s.ResponseStyle)
	}
	if s.Timezone != "" {
		t.Errorf("expected timezone cleared after full reset, got %q", s.Timezone)
	}
}

func TestBooking_Validate(t *testing.T) {
	b := Booking{UserID: "u", ServiceName: "Customer Support"}
	if err := b.Validate(); err != nil {
		t.Errorf("expected valid booking, got %v", err)
	}
	b = Booking{UserID: "u"}
	if err := b.Validate(); err != ErrEmptyBooking {
		t.Errorf("expected ErrEmptyBooking, got %v", err)
	}
}
