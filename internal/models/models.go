// Package models defines the core data structures for AssistFlow.
//
// It includes the closed intent, sentiment, and conversation-state sets shared
// across the NLU, flow, and API modules.
package models

import "errors"

// Intent is the classified purpose of a single user message.
type Intent string

const (
	IntentGreeting       Intent = "greeting"
	IntentServiceInquiry Intent = "service_inquiry"
	IntentBooking        Intent = "booking"
	IntentFaq            Intent = "faq"
	IntentHelp           Intent = "help"
	IntentRestart        Intent = "restart"
	IntentConfirmation   Intent = "confirmation"
	IntentRejection      Intent = "rejection"
	IntentHumanRequest   Intent = "human_request"
	IntentSmallTalk      Intent = "small_talk"
	IntentComplaint      Intent = "complaint"
	IntentUnknown        Intent = "unknown"
)

// SentimentScore is an ordered integer sentiment scale.
type SentimentScore int

const (
	SentimentVeryNegative SentimentScore = -2
	SentimentNegative     SentimentScore = -1
	SentimentNeutral      SentimentScore = 0
	SentimentPositive     SentimentScore = 1
	SentimentVeryPositive SentimentScore = 2
)

// ConversationState identifies a position in the booking flow state machine.
type ConversationState string

const (
	StateInitial          ConversationState = "initial"
	StateServiceSelection ConversationState = "service"
	StateServiceDetail    ConversationState = "service_detail"
	StateHoursCollection  ConversationState = "hours"
	StateBusinessType     ConversationState = "business"
	StateBudgetCollection ConversationState = "budget"
	StateConfirmation     ConversationState = "confirm"
	StateCompleted        ConversationState = "booked"
	StateHumanHandoff     ConversationState = "human_handoff"
	StateError            ConversationState = "error"
)

// ResponseStyle selects how replies are rewritten by the personalizer.
type ResponseStyle string

const (
	StyleProfessional ResponseStyle = "professional"
	StyleCasual       ResponseStyle = "casual"
	StyleConcise      ResponseStyle = "concise"
)

// Error variables for better error handling and testability.
var (
	ErrEmptyUserID     = errors.New("user id cannot be empty")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyBooking    = errors.New("booking is missing required fields")
)

// Booking is the archived record of a completed flow.
type Booking struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	ServiceKey   string `json:"service_key"`
	ServiceName  string `json:"service_name"`
	HoursPerWeek int    `json:"hours_per_week"`
	BusinessType string `json:"business_type"`
	Budget       string `json:"budget"`
	CreatedAt    int64  `json:"created_at"`
}

// Validate checks that a booking carries the fields the archive requires.
func (b *Booking) Validate() error {
	if b.UserID == "" || b.ServiceName == "" {
		return ErrEmptyBooking
	}
	return nil
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Message: message, Result: result}
}

// Error creates an error API response with the given message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}
