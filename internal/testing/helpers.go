package testing

import (
	"os"
	"testing"
)

// Unit returns true if running in unit test mode.
// Unit tests are fast and need no external services such as a NATS server.
// LOGGEN_UNIT_TESTS_ONLY=true forces unit mode; LOGGEN_RUN_INTEGRATION_TESTS
// selects explicitly; otherwise -short and the default both mean unit mode.
func Unit() bool {
	if os.Getenv("LOGGEN_UNIT_TESTS_ONLY") == "true" {
		return true
	}

	switch os.Getenv("LOGGEN_RUN_INTEGRATION_TESTS") {
	case "true":
		return false
	case "false":
		return true
	}

	return true
}

// Integration returns true if running in integration test mode.
func Integration() bool {
	return !Unit()
}

// SkipIfUnit skips the test if running in unit test mode.
func SkipIfUnit(t *testing.T, message ...string) {
	t.Helper()
	if Unit() {
		msg := "Skipping integration test in unit mode"
		if len(message) > 0 {
			msg = message[0]
		}
		t.Skip(msg)
	}
}

// SkipIfIntegration skips the test if running in integration test mode.
func SkipIfIntegration(t *testing.T, message ...string) {
	t.Helper()
	if Integration() {
		msg := "Skipping unit-only test in integration mode"
		if len(message) > 0 {
			msg = message[0]
		}
		t.Skip(msg)
	}
}

// Getenv returns the environment variable or def when unset.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
