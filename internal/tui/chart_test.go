package tui

import (
	"testing"
	"time"

	"github.com/the-grim-beeper/newstracker/internal/series"
)

func mkSeries(counts ...int) series.Series {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := make(series.Series, len(counts))
	for i, c := range counts {
		s[i] = series.Point{Time: t0.Add(time.Duration(i) * time.Minute), Count: c}
	}
	return s
}

func TestSparklineLength(t *testing.T) {
	s := mkSeries(0, 1, 2, 3)
	got := renderSparkline(s, 10, s.Max())
	if n := len([]rune(got)); n != 4 {
		t.Errorf("expected one rune per bucket, got %d", n)
	}
}

func TestSparklineTruncatesToWidth(t *testing.T) {
	s := mkSeries(1, 2, 3, 4, 5, 6)
	got := []rune(renderSparkline(s, 3, s.Max()))
	if len(got) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(got))
	}
	// Keeps the most recent buckets, so the last rune is the tallest.
	if got[2] != sparkRunes[len(sparkRunes)-1] {
		t.Errorf("expected full block for max bucket, got %q", got[2])
	}
}

func TestSparklineZerosAndPeaks(t *testing.T) {
	s := mkSeries(0, 5)
	got := []rune(renderSparkline(s, 10, s.Max()))
	if got[0] != sparkRunes[0] {
		t.Errorf("zero bucket should use the lowest rune, got %q", got[0])
	}
	if got[1] != sparkRunes[len(sparkRunes)-1] {
		t.Errorf("max bucket should use the tallest rune, got %q", got[1])
	}
}

func TestSparklineNonzeroIsVisible(t *testing.T) {
	// A count of 1 against a large max must still differ from zero.
	s := mkSeries(0, 1)
	got := []rune(renderSparkline(s, 10, 100))
	if got[1] == got[0] {
		t.Error("nonzero bucket should be visually distinct from empty")
	}
}

func TestSparklineEmpty(t *testing.T) {
	if got := renderSparkline(nil, 10, 1); got != "" {
		t.Errorf("expected empty string for empty series, got %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcd", 2); got != "abcd" {
		t.Errorf("padRight should not truncate, got %q", got)
	}
}
