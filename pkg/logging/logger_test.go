package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func fixedClock(l *JSONLogger) {
	l.now = func() time.Time { return time.Date(2014, 7, 29, 10, 0, 0, 0, time.UTC) }
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %v, want %v", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{"debug", DebugLevel, true},
		{"INFO", InfoLevel, true},
		{" Warn ", WarnLevel, true},
		{"warning", WarnLevel, true},
		{"ERROR", ErrorLevel, true},
		{"loud", InfoLevel, false},
		{"", InfoLevel, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestFieldConstructors(t *testing.T) {
	tests := []struct {
		field Field
		key   string
		value any
	}{
		{RunID("6f1c"), "run_id", "6f1c"},
		{Mode("closure"), "mode", "closure"},
		{Builder("BuildClosure"), "builder", "BuildClosure"},
		{Root("FF:0000001"), "root", "FF:0000001"},
		{TermID("FF:0000102"), "term_id", "FF:0000102"},
		{Nodes(12), "nodes", 12},
		{Edges(11), "edges", 11},
		{Count(3), "count", 3},
		{Path("out.graphml"), "path", "out.graphml"},
		{Component("pipeline"), "component", "pipeline"},
		{Operation("annotate"), "operation", "annotate"},
		{Bool("inclusive", true), "inclusive", true},
		{Latency(1500 * time.Millisecond), "latency", "1.5s"},
		{Error(errors.New("boom")), "error", "boom"},
		{Error(nil), "error", nil},
	}

	for _, tt := range tests {
		if tt.field.Key != tt.key || tt.field.Value != tt.value {
			t.Errorf("got %+v, want {%s %v}", tt.field, tt.key, tt.value)
		}
	}

	ids := []string{"a", "b"}
	f := Strings("roots", ids)
	ids[0] = "changed"
	if got := f.Value.([]string); got[0] != "a" {
		t.Error("Strings must copy its input")
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	fixedClock(logger)

	logger.Info("build finished", Root("FF:0000001"), Nodes(4))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != "INFO" || e.Message != "build finished" {
		t.Errorf("Unexpected entry: %+v", e)
	}
	if e.Time != "2014-07-29T10:00:00Z" {
		t.Errorf("Unexpected time %q", e.Time)
	}
	if e.Fields["root"] != "FF:0000001" || e.Fields["nodes"] != float64(4) {
		t.Errorf("Unexpected fields: %v", e.Fields)
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("Unexpected levels: %s, %s", entries[0].Level, entries[1].Level)
	}

	buf.Reset()
	logger.SetLevel(DebugLevel)
	if logger.GetLevel() != DebugLevel {
		t.Errorf("Expected DEBUG, got %v", logger.GetLevel())
	}
	logger.Debug("now visible")
	if len(decodeLines(t, &buf)) != 1 {
		t.Error("Expected debug entry after SetLevel")
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(RunID("run-1"), Mode("closure"))
	child.Info("root done", Root("FF:10001-101A1"), Mode("override"))
	logger.Info("parent")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Fields["run_id"] != "run-1" || entries[0].Fields["mode"] != "override" {
		t.Errorf("Unexpected child fields: %v", entries[0].Fields)
	}
	if entries[1].Fields != nil {
		t.Errorf("Parent must not inherit child fields: %v", entries[1].Fields)
	}

	child.SetLevel(ErrorLevel)
	if logger.GetLevel() != InfoLevel {
		t.Error("Child level must not change the parent")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	if l := NewFromEnv(&bytes.Buffer{}, "error"); l.GetLevel() != DebugLevel {
		t.Errorf("Expected LOG_LEVEL to win, got %v", l.GetLevel())
	}

	t.Setenv("LOG_LEVEL", "")
	if l := NewFromEnv(&bytes.Buffer{}, "warn"); l.GetLevel() != WarnLevel {
		t.Errorf("Expected fallback level, got %v", l.GetLevel())
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "build root", Root("FF:0000001"))
	elapsed := timer.End(Nodes(7))
	if elapsed < 0 {
		t.Errorf("Expected non-negative duration, got %v", elapsed)
	}

	timer = StartTimer(logger, "build root", Root("FF:0000002"))
	timer.EndError(errors.New("cycle detected"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Fields["nodes"] != float64(7) || entries[0].Fields["latency"] == nil {
		t.Errorf("Unexpected success fields: %v", entries[0].Fields)
	}
	if entries[1].Level != "ERROR" || entries[1].Fields["error"] != "cycle detected" {
		t.Errorf("Unexpected error entry: %+v", entries[1])
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Info("ignored")
	if l.With(RunID("x")) == nil {
		t.Error("With must return a logger")
	}
}
