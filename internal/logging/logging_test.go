package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter("warn", &buf)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	l.Info("hidden")
	l.Warn("shown", zap.String("item", "a"))
	_ = l.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `"item"`) {
		t.Fatalf("expected warn line with field, got %q", out)
	}
}

func TestNewWriter_OffAndInvalid(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter("off", &buf)
	if err != nil {
		t.Fatalf("NewWriter(off): %v", err)
	}
	l.Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	if _, err := NewWriter("loud", &buf); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
