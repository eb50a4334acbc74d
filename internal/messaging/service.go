// Package messaging wraps outbound WhatsApp delivery and the agent call
// bridge behind a pluggable sender abstraction.
package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
)

// Sender is the outbound delivery interface. The real implementation talks to
// Twilio; tests use MockClient.
type Sender interface {
	// SendMessage sends a WhatsApp message to a recipient.
	SendMessage(ctx context.Context, to string, body string) error

	// PlaceAgentCall places an outbound voice call to the user and bridges it
	// to the configured agent number.
	PlaceAgentCall(ctx context.Context, userPhone string) error
}

// phoneNumberRegex matches every character that is not a digit.
var phoneNumberRegex = regexp.MustCompile(`[^0-9]`)

// minPhoneDigits is the minimum digit count accepted for a recipient.
const minPhoneDigits = 6

// ValidateAndCanonicalizeRecipient strips a recipient down to its digits and
// validates the result. WhatsApp ids arrive in forms like
// "whatsapp:+15551234567"; the canonical form is digits only.
func ValidateAndCanonicalizeRecipient(recipient string) (string, error) {
	if recipient == "" {
		return "", fmt.Errorf("recipient cannot be empty")
	}

	canonical := phoneNumberRegex.ReplaceAllString(recipient, "")
	if canonical == "" {
		return "", fmt.Errorf("invalid phone number: no digits found in recipient %q", recipient)
	}
	if len(canonical) < minPhoneDigits {
		return "", fmt.Errorf("invalid phone number: %q is too short (minimum %d digits required)", canonical, minPhoneDigits)
	}

	if canonical != recipient {
		slog.Debug("messaging.ValidateAndCanonicalizeRecipient: canonicalized recipient",
			"original", recipient, "canonical", canonical)
	}
	return canonical, nil
}
