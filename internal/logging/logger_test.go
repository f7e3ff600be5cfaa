package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	NewComponentLogger(logger, "bridge").Info("session opened",
		String(FieldSession, "abc"),
		Int("count", 2))

	line := buf.String()
	if !strings.Contains(line, "[bridge]") {
		t.Fatalf("expected component marker in %q", line)
	}
	if !strings.Contains(line, "session opened") {
		t.Fatalf("expected message in %q", line)
	}
	if !strings.Contains(line, "session=abc") || !strings.Contains(line, "count=2") {
		t.Fatalf("expected attributes in %q", line)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("track changed", String(FieldTrack, "Violin 1"))

	if !strings.Contains(buf.String(), `track="Violin 1"`) {
		t.Fatalf("expected quoted value in %q", buf.String())
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, lvl))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info record to be suppressed, got %q", buf.String())
	}
	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn record, got %q", buf.String())
	}
}

func TestJSONHandlerRenamesTimeKey(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	logger := slog.New(newJSONHandler(&buf, lvl))

	logger.Info("hello")
	line := buf.String()
	if !strings.Contains(line, `"ts":`) || !strings.Contains(line, `"msg":"hello"`) {
		t.Fatalf("unexpected json record: %q", line)
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		" DEBUG ": slog.LevelDebug,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
