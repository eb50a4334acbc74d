package util

import (
	"testing"
	"time"
)

func TestParseBoolEnv(t *testing.T) {
	t.Setenv("TEST_BOOL", "yes")
	if !ParseBoolEnv("TEST_BOOL", false) {
		t.Error("expected true for 'yes'")
	}

	t.Setenv("TEST_BOOL", "off")
	if ParseBoolEnv("TEST_BOOL", true) {
		t.Error("expected false for 'off'")
	}

	t.Setenv("TEST_BOOL", "banana")
	if !ParseBoolEnv("TEST_BOOL", true) {
		t.Error("expected default for invalid value")
	}

	t.Setenv("TEST_BOOL", "")
	if ParseBoolEnv("TEST_BOOL", false) {
		t.Error("expected default for unset value")
	}
}

func TestParseDurationEnv(t *testing.T) {
	t.Setenv("TEST_DUR", "45m")
	if got := ParseDurationEnv("TEST_DUR", time.Minute); got != 45*time.Minute {
		t.Errorf("expected 45m, got %v", got)
	}

	t.Setenv("TEST_DUR", "soon")
	if got := ParseDurationEnv("TEST_DUR", time.Minute); got != time.Minute {
		t.Errorf("expected default 1m, got %v", got)
	}
}
