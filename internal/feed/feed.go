package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/the-grim-beeper/newstracker/internal/config"
)

// Item is one raw feed entry, before relevance matching. Published is the
// feed's own pubDate string; the engine records discovery time instead, so
// it is kept only for reference.
type Item struct {
	Title     string
	Link      string
	Summary   string
	Published string
}

// Source returns candidate entries for a term. A failing fetch for one term
// must not affect the others; callers treat errors as per-term diagnostics.
type Source interface {
	Fetch(ctx context.Context, term string) ([]Item, error)
}

// GoogleNews fetches the Google News RSS search feed for a term.
type GoogleNews struct {
	parser  *gofeed.Parser
	locale  config.Feed
	timeout time.Duration
}

func NewGoogleNews(locale config.Feed, timeout time.Duration) *GoogleNews {
	return &GoogleNews{
		parser:  gofeed.NewParser(),
		locale:  locale,
		timeout: timeout,
	}
}

func (g *GoogleNews) Fetch(ctx context.Context, term string) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	parsed, err := g.parser.ParseURLWithContext(searchURL(term, g.locale), ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching news for %q: %w", term, err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it.Link == "" {
			continue
		}
		summary := it.Description
		if summary == "" {
			summary = it.Content
		}
		items = append(items, Item{
			Title:     strings.TrimSpace(it.Title),
			Link:      strings.TrimSpace(it.Link),
			Summary:   stripHTML(summary),
			Published: it.Published,
		})
	}
	return items, nil
}

func searchURL(term string, loc config.Feed) string {
	return fmt.Sprintf(
		"https://news.google.com/rss/search?q=%s&hl=%s&gl=%s&ceid=%s",
		url.QueryEscape(term),
		url.QueryEscape(loc.Language),
		url.QueryEscape(loc.Country),
		url.QueryEscape(loc.Edition),
	)
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
