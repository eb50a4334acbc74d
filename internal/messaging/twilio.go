package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// agentCallTimeoutSeconds is how long Twilio lets the outbound call ring.
const agentCallTimeoutSeconds = 60

// Opts holds configuration options for the Twilio client.
type Opts struct {
	AccountSID   string
	AuthToken    string
	FromWhats    string // WhatsApp number in "whatsapp:+1234567890" format
	CallerNumber string // voice caller id for agent call bridging
	AgentNumber  string // agent/office phone to dial and bridge
}

// Option defines a configuration option for the Twilio client.
type Option func(*Opts)

// WithAccountSID sets the Twilio account SID.
func WithAccountSID(sid string) Option {
	return func(o *Opts) { o.AccountSID = sid }
}

// WithAuthToken sets the Twilio auth token.
func WithAuthToken(token string) Option {
	return func(o *Opts) { o.AuthToken = token }
}

// WithFromWhats sets the sending WhatsApp number.
func WithFromWhats(from string) Option {
	return func(o *Opts) { o.FromWhats = from }
}

// WithCallerNumber sets the voice caller id used for agent call bridging.
func WithCallerNumber(number string) Option {
	return func(o *Opts) { o.CallerNumber = number }
}

// WithAgentNumber sets the agent phone number calls are bridged to.
func WithAgentNumber(number string) Option {
	return func(o *Opts) { o.AgentNumber = number }
}

// Client wraps the Twilio REST API for WhatsApp delivery and call bridging.
type Client struct {
	client       *twilio.RestClient
	fromWhats    string
	callerNumber string
	agentNumber  string
}

// NewClient creates a Twilio client. Unset options fall back to the
// TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_FROM_NUMBER,
// TWILIO_CALLER_NUMBER, and AGENT_NUMBER environment variables.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.AccountSID == "" {
		cfg.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	}
	if cfg.AuthToken == "" {
		cfg.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	}
	if cfg.FromWhats == "" {
		cfg.FromWhats = os.Getenv("TWILIO_FROM_NUMBER")
	}
	if cfg.CallerNumber == "" {
		cfg.CallerNumber = os.Getenv("TWILIO_CALLER_NUMBER")
	}
	if cfg.AgentNumber == "" {
		cfg.AgentNumber = os.Getenv("AGENT_NUMBER")
	}
	slog.Debug("messaging.NewClient: Twilio config loaded",
		"AccountSID_set", cfg.AccountSID != "",
		"AuthToken_set", cfg.AuthToken != "",
		"FromWhats_set", cfg.FromWhats != "",
		"CallerNumber_set", cfg.CallerNumber != "",
		"AgentNumber_set", cfg.AgentNumber != "")

	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("account SID and auth token must be provided")
	}
	if cfg.FromWhats == "" {
		return nil, fmt.Errorf("fromWhats number must be provided")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &Client{
		client:       client,
		fromWhats:    cfg.FromWhats,
		callerNumber: cfg.CallerNumber,
		agentNumber:  cfg.AgentNumber,
	}, nil
}

// SendMessage sends a WhatsApp message using the Twilio API.
func (c *Client) SendMessage(ctx context.Context, to string, body string) error {
	canonical, err := ValidateAndCanonicalizeRecipient(to)
	if err != nil {
		slog.Error("messaging.SendMessage: invalid recipient", "to", to, "error", err)
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + canonical)
	params.SetFrom(c.fromWhats)
	params.SetBody(body)

	if _, err := c.client.Api.CreateMessage(params); err != nil {
		slog.Error("messaging.SendMessage: Twilio send failed", "to", canonical, "error", err)
		return fmt.Errorf("failed to send message to %s: %w", canonical, err)
	}

	slog.Debug("messaging.SendMessage: message sent", "to", canonical)
	return nil
}

// PlaceAgentCall places an outbound call to the user. When the user answers,
// the embedded TwiML dials the agent number and bridges both parties.
func (c *Client) PlaceAgentCall(ctx context.Context, userPhone string) error {
	if c.callerNumber == "" || c.agentNumber == "" {
		return fmt.Errorf("caller and agent numbers must be configured for call bridging")
	}

	canonical, err := ValidateAndCanonicalizeRecipient(userPhone)
	if err != nil {
		slog.Error("messaging.PlaceAgentCall: invalid recipient", "userPhone", userPhone, "error", err)
		return err
	}

	twiml := fmt.Sprintf(
		`<Response><Say voice="alice">Connecting you to an agent. Please hold.</Say><Dial>%s</Dial></Response>`,
		c.agentNumber)

	params := &twilioApi.CreateCallParams{}
	params.SetTo("+" + canonical)
	params.SetFrom(c.callerNumber)
	params.SetTwiml(twiml)
	params.SetTimeout(agentCallTimeoutSeconds)

	call, err := c.client.Api.CreateCall(params)
	if err != nil {
		slog.Error("messaging.PlaceAgentCall: failed to place call", "to", canonical, "error", err)
		return fmt.Errorf("failed to place call to %s: %w", canonical, err)
	}

	sid := "-"
	if call != nil && call.Sid != nil {
		sid = *call.Sid
	}
	slog.Info("messaging.PlaceAgentCall: call placed", "to", canonical, "sid", sid)
	return nil
}

// MockClient records outbound traffic for tests.
type MockClient struct {
	SentMessages []SentMessage
	PlacedCalls  []string
	SendErr      error
	CallErr      error
}

// SentMessage is one recorded outbound message.
type SentMessage struct {
	To   string
	Body string
}

// NewMockClient creates an empty recording mock.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// SendMessage records the message and returns the configured error.
func (m *MockClient) SendMessage(ctx context.Context, to string, body string) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.SentMessages = append(m.SentMessages, SentMessage{To: to, Body: body})
	return nil
}

// PlaceAgentCall records the call and returns the configured error.
func (m *MockClient) PlaceAgentCall(ctx context.Context, userPhone string) error {
	if m.CallErr != nil {
		return m.CallErr
	}
	m.PlacedCalls = append(m.PlacedCalls, userPhone)
	return nil
}
