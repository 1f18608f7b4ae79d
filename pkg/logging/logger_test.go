package logging

import "testing"

func TestNew(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error", "bogus", ""}
	for _, level := range levels {
		logger := New(level)
		if logger == nil {
			t.Fatalf("New(%q) returned nil", level)
		}
		if logger.Logger == nil {
			t.Fatalf("New(%q) returned logger with nil slog.Logger", level)
		}
	}
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
}

func TestWithComponent(t *testing.T) {
	child := Default().WithComponent("submit")
	if child == nil || child.Logger == nil {
		t.Fatal("WithComponent returned nil logger")
	}
}
