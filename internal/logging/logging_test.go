package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Debug("debug line")
	l.Info("info line")
	l.Warn("warn line")
	l.Error("error line")

	out := buf.String()
	if strings.Contains(out, "debug line") || strings.Contains(out, "info line") {
		t.Errorf("lines below the level leaked:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] warn line") {
		t.Errorf("warn line missing:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] error line") {
		t.Errorf("error line missing:\n%s", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelError)
	l.SetOutput(&buf)

	l.Info("dropped")
	l.SetLevel(LevelDebug)
	l.Info("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Error("line logged below the level")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("line missing after SetLevel")
	}
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	l.Named("almanac").Named("events").Info("searching")

	if !strings.Contains(buf.String(), "almanac.events: searching") {
		t.Errorf("dotted component name missing:\n%s", buf.String())
	}
}

func TestNamedSharesSink(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelDebug)
	child := root.Named("child")

	// Redirecting the root must redirect the children too.
	root.SetOutput(&buf)
	child.Info("hello")

	if !strings.Contains(buf.String(), "child: hello") {
		t.Errorf("child did not follow the root's output:\n%s", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	l.With("date", "2021-06-09", "timezone", 2).Info("computing")

	out := buf.String()
	if !strings.Contains(out, "computing date=2021-06-09 timezone=2") {
		t.Errorf("context fields missing:\n%s", out)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic, and must stay silent even for errors.
	l := Discard()
	l.Error("nobody hears this")
}

func TestTimed(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug)
	l.SetOutput(&buf)

	done := l.Timed("compute")
	done()

	if !strings.Contains(buf.String(), "compute took") {
		t.Errorf("timed line missing:\n%s", buf.String())
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
