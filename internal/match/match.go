// Package match decides whether a raw feed entry mentions a tracked term.
//
// Matching is a case-insensitive literal substring test against the title
// and summary. It is deliberately not tokenized: a short term can match
// inside a longer word (e.g. "AI" inside "said"), which mirrors how the
// tracker has always behaved.
package match

import (
	"strings"
	"time"

	"github.com/the-grim-beeper/newstracker/internal/feed"
	"github.com/the-grim-beeper/newstracker/internal/store"
)

// Match normalizes item into an Article when the term occurs in its title
// or summary. The article's DiscoveredAt is the given observation time, not
// the feed's own publish date: feeds republish and their clocks disagree,
// so the engine measures when it first saw the mention.
func Match(item feed.Item, term string, now time.Time) (store.Article, bool) {
	needle := strings.ToLower(term)
	if needle == "" {
		return store.Article{}, false
	}

	if !strings.Contains(strings.ToLower(item.Title), needle) &&
		!strings.Contains(strings.ToLower(item.Summary), needle) {
		return store.Article{}, false
	}

	return store.Article{
		Term:         term,
		Title:        item.Title,
		Link:         item.Link,
		Summary:      item.Summary,
		DiscoveredAt: now,
	}, true
}
