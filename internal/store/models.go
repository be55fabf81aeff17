package store

import "time"

// Article is a normalized mention of a tracked term. Immutable once stored;
// each term keeps its own copy even when the same link matches several terms.
type Article struct {
	Term         string
	Title        string
	Link         string
	Summary      string
	DiscoveredAt time.Time
}
