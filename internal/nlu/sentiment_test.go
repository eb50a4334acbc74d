package nlu

import (
	"testing"

	"github.com/vhelp/assistflow/internal/models"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected models.SentimentScore
	}{
		{"single positive word", "this is great", models.SentimentPositive},
		{"strong positive", "great awesome perfect", models.SentimentVeryPositive},
		{"single negative word", "bad service", models.SentimentNegative},
		{"strong negative", "terrible horrible useless", models.SentimentVeryNegative},
		{"neutral", "okay then", models.SentimentNeutral},
		{"balanced cancels out", "good but bad", models.SentimentNeutral},
		{"empty message", "", models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeSentiment(tt.message)
			if got != tt.expected {
				t.Errorf("AnalyzeSentiment(%q) = %v, want %v", tt.message, got, tt.expected)
			}
		})
	}
}

func TestAnalyzeSentiment_RepeatedWordsCountOnce(t *testing.T) {
	// Distinct-word counting keeps "great great great" at the mild tier.
	if got := AnalyzeSentiment("great great great"); got != models.SentimentPositive {
		t.Errorf("expected mild positive for repeated word, got %v", got)
	}
}
