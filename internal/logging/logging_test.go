package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"bogus", log.InfoLevel},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
		{"yaml", log.TextFormatter},
	}
	for _, tc := range tests {
		if got := ParseFormatter(tc.in); got != tc.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "logfmt")
	l.Info("hidden")
	l.Warn("shown", "id", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered; got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "id=3") {
		t.Fatalf("expected warn with fields; got %q", out)
	}
}

func TestOpen_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.log")
	l, c, err := Open(Options{Level: "debug", Format: "text", File: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l.Debug("hello")
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "hello") {
		t.Fatalf("expected log line; got %q", b)
	}
}

func TestOpen_EmptyFileDiscards(t *testing.T) {
	l, c, err := Open(Options{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l.Error("dropped")
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
