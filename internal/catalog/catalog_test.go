package catalog

import (
	"strings"
	"testing"
)

func TestDefault_CatalogShape(t *testing.T) {
	c := Default()

	all := c.All()
	if len(all) != 8 {
		t.Fatalf("expected 8 services, got %d", len(all))
	}
	// All is sorted by id.
	for i := 1; i < len(all); i++ {
		if all[i-1].ID > all[i].ID {
			t.Errorf("services out of order: %s before %s", all[i-1].ID, all[i].ID)
		}
	}

	entries := c.Entries()
	if len(entries) != 8 {
		t.Errorf("expected 8 entries, got %d", len(entries))
	}
}

func TestCatalog_Get(t *testing.T) {
	c := Default()

	svc, ok := c.Get("1")
	if !ok {
		t.Fatal("expected service 1 to exist")
	}
	if svc.DisplayName != "Administrative Support" {
		t.Errorf("unexpected service 1 name: %q", svc.DisplayName)
	}

	if _, ok := c.Get("99"); ok {
		t.Error("expected no service for unknown id")
	}
}

func TestCatalog_GetByName(t *testing.T) {
	c := Default()

	svc, ok := c.GetByName("customer support")
	if !ok || svc.ID != "3" {
		t.Errorf("expected case-insensitive name lookup, got (%+v, %v)", svc, ok)
	}
}

func TestFormatMenu(t *testing.T) {
	menu := FormatMenu(Default())

	if !strings.Contains(menu, WelcomeMessage) {
		t.Error("menu missing welcome message")
	}
	for _, want := range []string{"1. *Administrative Support*", "8. *Custom Service Package*", "*MENU*"} {
		if !strings.Contains(menu, want) {
			t.Errorf("menu missing %q", want)
		}
	}
}

func TestFormatDetail(t *testing.T) {
	c := Default()
	svc, _ := c.Get("2")

	detail := FormatDetail(svc)
	if !strings.Contains(detail, "Social Media Management") {
		t.Error("detail missing service name")
	}
	if !strings.Contains(detail, "*YES*") || !strings.Contains(detail, "*NO*") {
		t.Error("detail missing confirmation prompt")
	}
	// Deliverables are capped at six lines.
	if n := strings.Count(detail, "• "); n > 6 {
		t.Errorf("expected at most 6 deliverables, got %d", n)
	}
}

func TestDefaultFAQs_AnswerFor(t *testing.T) {
	faqs := DefaultFAQs()

	tests := []struct {
		message  string
		contains string
		ok       bool
	}{
		{"how much does it cost", "Pricing", true},
		{"do you offer a trial", "Trial & Onboarding", true},
		{"WHAT TOOLS DO YOU USE", "Tools & Platforms", true},
		{"10", "", false},
		{"Ecommerce", "", false},
	}

	for _, tt := range tests {
		answer, ok := faqs.AnswerFor(tt.message)
		if ok != tt.ok {
			t.Errorf("AnswerFor(%q) ok = %v, want %v", tt.message, ok, tt.ok)
			continue
		}
		if ok && !strings.Contains(answer, tt.contains) {
			t.Errorf("AnswerFor(%q) = %q, want substring %q", tt.message, answer, tt.contains)
		}
	}
}

func TestDefaultFAQs_PriorityOrder(t *testing.T) {
	faqs := DefaultFAQs().All()
	for i := 1; i < len(faqs); i++ {
		if faqs[i-1].Priority < faqs[i].Priority {
			t.Errorf("FAQ %s out of priority order", faqs[i].ID)
		}
	}
}

func TestCatalog_Search(t *testing.T) {
	c := Default()
	results := c.Search("bookkeeping")
	if len(results) == 0 {
		t.Fatal("expected search results for bookkeeping")
	}
	if results[0].ID != "6" {
		t.Errorf("expected bookkeeping service first, got %s", results[0].ID)
	}
}
