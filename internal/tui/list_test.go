package tui

import (
	"strings"
	"testing"
	"time"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"test", 0, ""},
	}
	for _, tt := range tests {
		got := truncateStr(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m"},
		{now.Add(-3 * time.Hour), "3h"},
		{now.Add(-2 * 24 * time.Hour), "2d"},
	}
	for _, tt := range tests {
		got := relativeTime(tt.t)
		if got != tt.want {
			t.Errorf("relativeTime(%v ago) = %q, want %q", now.Sub(tt.t), got, tt.want)
		}
	}
}

func TestHighlightTerm(t *testing.T) {
	// Styling collapses to a no-op without a TTY, so assert the text and
	// casing survive rather than the escape codes.
	got := highlightTerm("Mars rover lands on mars", "mars")
	if !strings.Contains(got, "Mars rover") || !strings.Contains(got, "on mars") {
		t.Errorf("highlight should preserve original text and casing, got %q", got)
	}
}

func TestHighlightTermNoMatch(t *testing.T) {
	text := "Nothing relevant here"
	if got := highlightTerm(text, "mars"); got != text {
		t.Errorf("expected text unchanged, got %q", got)
	}
}

func TestHighlightTermBlank(t *testing.T) {
	text := "Some headline"
	if got := highlightTerm(text, "  "); got != text {
		t.Errorf("blank term should not alter text, got %q", got)
	}
	if got := highlightTerm("", "mars"); got != "" {
		t.Errorf("empty text should stay empty, got %q", got)
	}
}

func TestHighlightTermEscapesRegex(t *testing.T) {
	text := "Price is $5 (today)"
	if got := highlightTerm(text, "(today)"); !strings.Contains(got, "(today)") {
		t.Errorf("metacharacters in term must be treated literally, got %q", got)
	}
}
