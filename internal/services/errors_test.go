package services_test

import (
	"errors"
	"strings"
	"testing"

	"kindleshelf/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "authors", "lookup", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"authors", "lookup", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestHintAndRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		hint      string
		retryable bool
	}{
		{name: "nil", err: nil, hint: "", retryable: false},
		{name: "configuration", err: services.Wrap(services.ErrConfiguration, "authors", "lookup", "api key required", nil), hint: "llm.api_key", retryable: false},
		{name: "not found", err: services.Wrap(services.ErrNotFound, "authors", "lookup", "", errors.New("empty")), hint: "did not know", retryable: false},
		{name: "external", err: services.Wrap(services.ErrExternalTool, "authors", "lookup", "", errors.New("502")), hint: "llm.model", retryable: false},
		{name: "transient", err: services.Wrap(services.ErrExternalTool, "authors", "lookup", "", services.Wrap(services.ErrTransient, "llm", "request", "", errors.New("503"))), hint: "llm.model", retryable: true},
		{name: "timeout", err: services.Wrap(services.ErrTimeout, "authors", "lookup", "", nil), hint: "timeout_seconds", retryable: true},
		{name: "unmarked", err: errors.New("plain"), hint: "retry later", retryable: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := services.Hint(tt.err)
			if tt.hint == "" && hint != "" {
				t.Fatalf("expected no hint, got %q", hint)
			}
			if !strings.Contains(hint, tt.hint) {
				t.Fatalf("hint %q does not mention %q", hint, tt.hint)
			}
			if got := services.Retryable(tt.err); got != tt.retryable {
				t.Fatalf("Retryable = %v, want %v", got, tt.retryable)
			}
		})
	}
}
