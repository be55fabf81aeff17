package match

import (
	"testing"
	"time"

	"github.com/the-grim-beeper/newstracker/internal/feed"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMatchCaseInsensitive(t *testing.T) {
	item := feed.Item{Title: "mars rover update", Link: "https://a.com/1"}

	a, ok := Match(item, "Mars", now)
	if !ok {
		t.Fatal("expected case-insensitive title match")
	}
	if a.Term != "Mars" {
		t.Errorf("expected article tagged with original term, got %q", a.Term)
	}
	if !a.DiscoveredAt.Equal(now) {
		t.Errorf("expected DiscoveredAt = observation time, got %v", a.DiscoveredAt)
	}
}

func TestMatchInSummaryOnly(t *testing.T) {
	item := feed.Item{
		Title:   "Space agency briefing",
		Summary: "New findings about Mars were presented.",
		Link:    "https://a.com/2",
	}
	if _, ok := Match(item, "mars", now); !ok {
		t.Error("expected summary match")
	}
}

func TestNoMatch(t *testing.T) {
	item := feed.Item{Title: "Stock markets rally", Summary: "Earnings season.", Link: "https://a.com/3"}
	if _, ok := Match(item, "mars", now); ok {
		t.Error("term absent from both fields should not match")
	}
}

func TestEmptySummaryIsNotAnError(t *testing.T) {
	item := feed.Item{Title: "Nothing relevant", Link: "https://a.com/4"}
	if _, ok := Match(item, "mars", now); ok {
		t.Error("expected no match with empty summary")
	}
}

func TestSubstringMatchesInsideWords(t *testing.T) {
	// Known precision limitation: literal substring, not word-boundary.
	item := feed.Item{Title: "He said it plainly", Link: "https://a.com/5"}
	if _, ok := Match(item, "AI", now); !ok {
		t.Error("expected substring match inside a longer word")
	}
}

func TestEmptyTermNeverMatches(t *testing.T) {
	item := feed.Item{Title: "Anything", Link: "https://a.com/6"}
	if _, ok := Match(item, "", now); ok {
		t.Error("empty term must not match")
	}
}
