package tui

import (
	"time"

	"github.com/the-grim-beeper/newstracker/internal/store"
	"github.com/the-grim-beeper/newstracker/internal/track"
)

// heartbeatMsg fires once a second to refresh the countdown and decide
// whether a poll is due.
type heartbeatMsg time.Time

type startedMsg struct {
	report track.Report
	err    error
}

type pollDoneMsg struct {
	report track.Report
}

// snapshot is the engine state the dashboard renders: recomputed after
// every tick rather than on every frame.
type snapshot struct {
	totals   map[string]int
	articles map[string][]store.Article
}

type snapshotMsg struct {
	snap snapshot
	err  error
}
