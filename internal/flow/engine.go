package flow

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vhelp/assistflow/internal/catalog"
	"github.com/vhelp/assistflow/internal/models"
	"github.com/vhelp/assistflow/internal/nlu"
	"github.com/vhelp/assistflow/internal/session"
	"github.com/vhelp/assistflow/internal/store"
)

// FallbackClient is the generative-text collaborator invoked only when local
// classification and state handling cannot produce a reply.
type FallbackClient interface {
	Complete(ctx context.Context, userMessage string) (string, error)
}

// AgentCaller bridges a user to a human agent over a voice call.
type AgentCaller interface {
	PlaceAgentCall(ctx context.Context, userPhone string) error
}

const emptyMessageReply = "Please send a message to continue. Type *MENU* for options."

const safeApologyReply = "⚠️ I encountered an error. Please try again.\n" +
	"Type *MENU* to see options or reply *HUMAN* for assistance."

// fallbackTimeout bounds the generative fallback call; on timeout the fixed
// apology is returned instead.
const fallbackTimeout = 15 * time.Second

// agentCallTimeout bounds the asynchronous voice-bridge request.
const agentCallTimeout = 30 * time.Second

// Engine wires the lexical analyzers, session store, interceptor, state
// handlers, and personalizer into the single message entry point.
type Engine struct {
	sessions *session.Manager
	catalog  *catalog.Catalog
	faqs     *catalog.FAQTable
	handlers map[models.ConversationState]handlerFunc
	fallback FallbackClient // optional; nil disables the generative tier
	archive  store.Store    // optional; nil disables booking archival
	caller   AgentCaller    // optional; nil disables agent call bridging
}

// NewEngine creates the conversation engine. fallback and archive may be nil;
// the engine degrades to its fixed replies and skips archival respectively.
func NewEngine(sessions *session.Manager, cat *catalog.Catalog, faqs *catalog.FAQTable, fallback FallbackClient, archive store.Store) *Engine {
	e := &Engine{
		sessions: sessions,
		catalog:  cat,
		faqs:     faqs,
		fallback: fallback,
		archive:  archive,
	}
	e.handlers = e.buildHandlers()
	return e
}

// SetAgentCaller enables voice bridging on handoff confirmation. The caller
// must be set before the engine starts handling messages.
func (e *Engine) SetAgentCaller(caller AgentCaller) {
	e.caller = caller
}

// HandleMessage is the single public entry point: it maps one inbound user
// message to one reply. It is safe for concurrent use; messages for the same
// user id are serialized start-to-finish, distinct users run in parallel. The
// caller always receives a reply string, never an error.
func (e *Engine) HandleMessage(userID, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return emptyMessageReply
	}

	var reply string
	err := e.sessions.Do(userID, func(s *models.UserSession) {
		reply = e.process(s, text)
	})
	if err != nil {
		slog.Warn("flow.HandleMessage: rejected message", "error", err)
		return safeApologyReply
	}
	return reply
}

// process runs the full pipeline for one message under the user's session
// lock. Any panic below this point is converted into the fallback ladder so
// the caller still gets a string reply.
func (e *Engine) process(s *models.UserSession, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("flow.process: recovered from panic", "userID", s.UserID, "panic", r)
			reply = e.recoverReply(s, text)
		}
	}()

	s.Touch()

	intent := nlu.ClassifyIntent(text, s.Context)
	sentiment := nlu.AnalyzeSentiment(text)
	s.Context.AddSentiment(sentiment)
	s.Context.AddMessage("user", text, intent)

	slog.Info("flow.process: message analyzed",
		"userID", s.UserID, "state", s.State, "intent", intent, "sentiment", sentiment)

	// Global commands short-circuit the state machine, but never override an
	// active human handoff request.
	if s.State != models.StateHumanHandoff {
		if reply, ok := e.intercept(s, text, intent); ok {
			s.Context.AddMessage("assistant", reply, "")
			return reply
		}
	}

	// A human request transitions to handoff from any state.
	if intent == models.IntentHumanRequest && s.State != models.StateHumanHandoff {
		slog.Info("flow.process: human assistance requested", "userID", s.UserID, "state", s.State)
		s.State = models.StateHumanHandoff
		s.Context.AddMessage("assistant", humanHandoffReply, "")
		return humanHandoffReply
	}

	// Completed and HumanHandoff carry cross-cutting restart semantics and
	// are handled outside the dispatch table.
	switch s.State {
	case models.StateCompleted:
		reply = e.handleCompleted(s, text, intent)
		s.Context.AddMessage("assistant", reply, "")
		return reply
	case models.StateHumanHandoff:
		reply = e.handleHumanHandoff(s, text, intent)
		s.Context.AddMessage("assistant", reply, "")
		return reply
	}

	handler, ok := e.handlers[s.State]
	if !ok {
		// Unknown state: recover with a full reset, never fail the message.
		slog.Warn("flow.process: no handler for state, resetting session", "userID", s.UserID, "state", s.State)
		s.Reset(true)
		reply = "⚠️ Something went wrong. Let's start fresh.\n\n" + catalog.FormatMenu(e.catalog)
		s.Context.AddMessage("assistant", reply, "")
		return reply
	}

	reply, next := handler(s, text, intent)
	reply = personalize(reply, s.Context.LastSentiment(), s.ResponseStyle)
	s.State = next
	s.Context.AddMessage("assistant", reply, "")
	return reply
}

// handleCompleted repeats the booking link until the user restarts. Menu
// keywords never reach here; the interceptor resets and shows the menu first.
func (e *Engine) handleCompleted(s *models.UserSession, text string, intent models.Intent) string {
	if intent == models.IntentRestart {
		s.Reset(true)
		return catalog.FormatMenu(e.catalog)
	}
	return "Your booking is complete! ✅\n\n" +
		"Booking link: " + catalog.BookingLink + "\n\n" +
		"Type *MENU* to start a new request."
}

// handleHumanHandoff either confirms the pending handoff or resumes the bot.
// Confirmation triggers the voice bridge asynchronously so the reply is never
// held up by the telephony API.
func (e *Engine) handleHumanHandoff(s *models.UserSession, text string, intent models.Intent) string {
	if intent == models.IntentConfirmation {
		e.bridgeToAgent(s.UserID)
		return "Perfect! 👤\n\n" +
			"Our team has been notified and will reach out shortly.\n" +
			"You'll receive a message within 2-4 business hours.\n\n" +
			"Feel free to close this chat. We'll contact you soon!"
	}
	s.State = models.StateServiceSelection
	return "Great! Let me help you right now. 😊\n\n" + catalog.FormatMenu(e.catalog)
}

// bridgeToAgent starts an outbound call connecting the user to a human agent.
// Best-effort: failures are logged, never surfaced to the user.
func (e *Engine) bridgeToAgent(userPhone string) {
	if e.caller == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), agentCallTimeout)
		defer cancel()
		if err := e.caller.PlaceAgentCall(ctx, userPhone); err != nil {
			slog.Warn("flow.bridgeToAgent: agent call failed", "userPhone", userPhone, "error", err)
			return
		}
		slog.Info("flow.bridgeToAgent: agent call placed", "userPhone", userPhone)
	}()
}

// recoverReply is the second and third tier of the failure ladder: try the
// generative fallback with a hard timeout, then fall back to the fixed
// apology. The caller never sees an error.
func (e *Engine) recoverReply(s *models.UserSession, text string) string {
	s.IncrementError()

	if e.fallback == nil {
		return safeApologyReply
	}

	ctx, cancel := context.WithTimeout(context.Background(), fallbackTimeout)
	defer cancel()

	reply, err := e.fallback.Complete(ctx, text)
	if err != nil || strings.TrimSpace(reply) == "" {
		slog.Error("flow.recoverReply: fallback collaborator failed", "userID", s.UserID, "error", err)
		return safeApologyReply
	}

	s.Context.AddMessage("assistant", reply, models.IntentUnknown)
	return reply
}

// archiveBooking records a completed booking through the archive store.
// Archival is best-effort; a storage failure never blocks the reply.
func (e *Engine) archiveBooking(s *models.UserSession) {
	if e.archive == nil {
		return
	}
	booking := models.Booking{
		ID:           uuid.NewString(),
		UserID:       s.UserID,
		ServiceKey:   s.ServiceKey,
		ServiceName:  s.Service,
		HoursPerWeek: s.HoursPerWeek,
		BusinessType: s.BusinessType,
		Budget:       s.Budget,
		CreatedAt:    time.Now().Unix(),
	}
	if err := e.archive.AddBooking(booking); err != nil {
		slog.Warn("flow.archiveBooking: failed to archive booking", "userID", s.UserID, "error", err)
		return
	}
	slog.Info("flow.archiveBooking: booking archived", "userID", s.UserID, "bookingID", booking.ID)
}

// Sessions exposes the session manager for administrative API handlers.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}
