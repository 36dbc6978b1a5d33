package thicket

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "warn")
	if l.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", l.GetLevel())
	}
	l.Info("hidden")
	l.Warn("shown", "key", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "thicket") {
		t.Errorf("output = %q", out)
	}
}

func TestNewLoggerUnknownLevel(t *testing.T) {
	l := NewLogger(&bytes.Buffer{}, "loud")
	if l.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, want info", l.GetLevel())
	}
}
