package nlu

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/vhelp/assistflow/internal/catalog"
)

// Hours extraction cascade, most specific first. A match outside the valid
// range is rejected and the cascade continues with the next pattern.
var hoursPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:hours?|hrs?|h)\s*(?:per|/|a)?\s*(?:week|wk)`),
	regexp.MustCompile(`(?:need|want|require)\s*(\d+)\s*(?:hours?|hrs?)`),
	regexp.MustCompile(`(\d+)\s*(?:hours?|hrs?)`),
	regexp.MustCompile(`\b(\d+)\b`),
}

// MinHoursPerWeek and MaxHoursPerWeek bound acceptable hours values.
const (
	MinHoursPerWeek = 1
	MaxHoursPerWeek = 168
)

// ExtractHours pulls an hours-per-week figure out of a message. Values
// outside [MinHoursPerWeek, MaxHoursPerWeek] are rejected, never clamped.
func ExtractHours(message string) (int, bool) {
	msg := strings.ToLower(message)
	for _, pattern := range hoursPatterns {
		m := pattern.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		hours, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if hours >= MinHoursPerWeek && hours <= MaxHoursPerWeek {
			return hours, true
		}
	}
	return 0, false
}

// Budget extraction cascade: explicit currency amounts and ranges, amounts
// qualified by a currency word, then approximations.
var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*\d+(?:,\d{3})*(?:\.\d{2})?(?:\s*-\s*\$?\s*\d+(?:,\d{3})*(?:\.\d{2})?)?`),
	regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d{2})?\s*(?:dollars?|usd|\$)`),
	regexp.MustCompile(`(?:up to|around|about|approximately)\s*\$?\s*\d+(?:,\d{3})*`),
}

// ExtractBudget returns the raw matched budget substring. Downstream code
// treats budget as opaque text, so no numeric parsing happens here.
func ExtractBudget(message string) (string, bool) {
	msg := strings.ToLower(message)
	for _, pattern := range budgetPatterns {
		if m := pattern.FindString(msg); m != "" {
			return m, true
		}
	}
	return "", false
}

// serviceSynonyms maps service-family keywords to common user phrasings.
// Resolution walks this list in order so a message matching two families
// always resolves to the same one.
var serviceSynonyms = []struct {
	family   string
	synonyms []string
}{
	{"admin", []string{"administration", "administrative", "admin support"}},
	{"social", []string{"social media", "sm", "social marketing"}},
	{"content", []string{"content creation", "content writing", "copywriting"}},
	{"custom", []string{"va", "virtual assistant", "something else", "other"}},
}

// ExtractService resolves a message against the service catalog entries.
// Resolution order: exact id, exact case-insensitive name, synonym-to-family,
// substring containment either direction, then token-overlap scoring. The
// overlap winner needs at least two shared tokens and a strict maximum; ties
// resolve to no match.
func ExtractService(message string, entries []catalog.Entry) (string, string, bool) {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return "", "", false
	}

	// Exact id match.
	for _, e := range entries {
		if msg == e.ID {
			return e.ID, e.Name, true
		}
	}

	// Exact name match.
	for _, e := range entries {
		if msg == strings.ToLower(e.Name) {
			return e.ID, e.Name, true
		}
	}

	// Synonym match: a known phrasing maps back to the service family keyword,
	// which must be a whole segment of the catalog key. Matching on the key
	// keeps "custom" from landing on "customer_support".
	for _, group := range serviceSynonyms {
		for _, synonym := range group.synonyms {
			if !strings.Contains(msg, synonym) {
				continue
			}
			for _, e := range entries {
				if keyHasSegment(e.Key, group.family) {
					slog.Debug("nlu.ExtractService: synonym match", "synonym", synonym, "service", e.Name)
					return e.ID, e.Name, true
				}
			}
		}
	}

	// Substring containment either direction.
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		if strings.Contains(msg, name) || strings.Contains(name, msg) {
			return e.ID, e.Name, true
		}
	}

	// Token-overlap scoring with a strict maximum.
	msgTokens := tokenSet(msg)
	bestID, bestName := "", ""
	bestOverlap, secondOverlap := 0, 0
	for _, e := range entries {
		overlap := 0
		for token := range tokenSet(strings.ToLower(e.Name)) {
			if msgTokens[token] {
				overlap++
			}
		}
		if overlap > bestOverlap {
			secondOverlap = bestOverlap
			bestOverlap = overlap
			bestID, bestName = e.ID, e.Name
		} else if overlap > secondOverlap {
			secondOverlap = overlap
		}
	}
	if bestOverlap >= 2 && bestOverlap > secondOverlap {
		slog.Debug("nlu.ExtractService: token-overlap match", "service", bestName, "overlap", bestOverlap)
		return bestID, bestName, true
	}

	return "", "", false
}

// keyHasSegment reports whether a catalog key contains the given word as a
// whole underscore-delimited segment.
func keyHasSegment(key, segment string) bool {
	for _, part := range strings.Split(key, "_") {
		if part == segment {
			return true
		}
	}
	return false
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range wordPattern.FindAllString(s, -1) {
		set[token] = true
	}
	return set
}
