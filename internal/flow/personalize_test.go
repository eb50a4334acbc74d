package flow

import (
	"strings"
	"testing"

	"github.com/vhelp/assistflow/internal/models"
)

func TestPersonalize_EmpathyPrefixes(t *testing.T) {
	reply := "Here is the menu."

	got := personalize(reply, models.SentimentNegative, models.StyleProfessional)
	if !strings.HasPrefix(got, "I hear you. ") {
		t.Errorf("expected mild empathy prefix, got %q", got)
	}

	got = personalize(reply, models.SentimentVeryNegative, models.StyleProfessional)
	if !strings.HasPrefix(got, "I understand your frustration. ") {
		t.Errorf("expected strong empathy prefix, got %q", got)
	}
}

func TestPersonalize_NoPrefixForNonNegative(t *testing.T) {
	reply := "Here is the menu."

	for _, score := range []models.SentimentScore{
		models.SentimentNeutral,
		models.SentimentPositive,
		models.SentimentVeryPositive,
	} {
		if got := personalize(reply, score, models.StyleProfessional); got != reply {
			t.Errorf("sentiment %d: expected reply unchanged, got %q", score, got)
		}
	}
}

func TestApplyStyle_Casual(t *testing.T) {
	got := applyStyle("Please reply with a number. Thank you!", models.StyleCasual)
	if strings.Contains(got, "Please") {
		t.Errorf("casual style should strip 'Please', got %q", got)
	}
	if !strings.Contains(got, "Thanks") {
		t.Errorf("casual style should rewrite 'Thank you' to 'Thanks', got %q", got)
	}
}

func TestApplyStyle_Concise(t *testing.T) {
	got := applyStyle("Great! Here is your summary.", models.StyleConcise)
	if strings.Contains(got, "Great!") {
		t.Errorf("concise style should strip filler, got %q", got)
	}
	if !strings.Contains(got, "Here is your summary.") {
		t.Errorf("concise style dropped content: %q", got)
	}
}

func TestApplyStyle_ProfessionalIsIdentity(t *testing.T) {
	reply := "Great! Please reply with a number."
	if got := applyStyle(reply, models.StyleProfessional); got != reply {
		t.Errorf("professional style must not rewrite, got %q", got)
	}
}
