package nlu

import (
	"testing"

	"github.com/vhelp/assistflow/internal/catalog"
)

func TestExtractHours(t *testing.T) {
	tests := []struct {
		name    string
		message string
		hours   int
		ok      bool
	}{
		{"explicit per week", "I need 10 hours a week", 10, true},
		{"hrs abbreviation", "20 hrs/week works", 20, true},
		{"bare number", "maybe 15", 15, true},
		{"need phrasing", "we require 25 hours", 25, true},
		{"out of range rejected", "500 hours", 0, false},
		{"zero rejected", "0 hours", 0, false},
		{"no number", "not sure yet", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, ok := ExtractHours(tt.message)
			if ok != tt.ok || hours != tt.hours {
				t.Errorf("ExtractHours(%q) = (%d, %v), want (%d, %v)", tt.message, hours, ok, tt.hours, tt.ok)
			}
		})
	}
}

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name    string
		message string
		budget  string
		ok      bool
	}{
		{"dollar amount", "$500", "$500", true},
		{"dollar range", "$500-$1000", "$500-$1000", true},
		{"currency word", "1500 dollars", "1500 dollars", true},
		{"approximation", "around 2000", "around 2000", true},
		{"no budget", "as cheap as possible", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget, ok := ExtractBudget(tt.message)
			if ok != tt.ok || budget != tt.budget {
				t.Errorf("ExtractBudget(%q) = (%q, %v), want (%q, %v)", tt.message, budget, ok, tt.budget, tt.ok)
			}
		})
	}
}

func TestExtractService(t *testing.T) {
	entries := catalog.Default().Entries()

	tests := []struct {
		name    string
		message string
		id      string
		ok      bool
	}{
		{"numeric id", "1", "1", true},
		{"exact name", "Customer Support", "3", true},
		{"synonym", "social media please", "2", true},
		{"virtual assistant synonym", "a virtual assistant", "8", true},
		{"name inside sentence", "I want bookkeeping & invoicing for my shop", "6", true},
		{"token overlap", "support for customer issues", "3", true},
		{"weak overlap is ambiguous", "support team please", "", false},
		{"no match", "lawn mowing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, name, ok := ExtractService(tt.message, entries)
			if ok != tt.ok || id != tt.id {
				t.Errorf("ExtractService(%q) = (%q, %q, %v), want id %q, ok %v", tt.message, id, name, ok, tt.id, tt.ok)
			}
		})
	}
}

func TestExtractService_SynonymOrderStable(t *testing.T) {
	entries := catalog.Default().Entries()

	// The message names two synonym families; the social family is listed
	// first and must win on every call.
	const message = "social media and content creation"
	for i := 0; i < 200; i++ {
		id, name, ok := ExtractService(message, entries)
		if !ok || id != "2" {
			t.Fatalf("call %d: ExtractService(%q) = (%q, %q, %v), want id 2", i, message, id, name, ok)
		}
	}
}
