// Package track implements the tracking session: which terms are followed,
// when mentions were discovered, and the per-term time series derived from
// them. The session never schedules itself; the host decides when to call
// Tick and can ask UntilNextTick how long to wait.
package track

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/the-grim-beeper/newstracker/internal/config"
	"github.com/the-grim-beeper/newstracker/internal/feed"
	"github.com/the-grim-beeper/newstracker/internal/match"
	"github.com/the-grim-beeper/newstracker/internal/series"
	"github.com/the-grim-beeper/newstracker/internal/store"
)

var (
	ErrNoTerms      = errors.New("at least one term is required")
	ErrTooManyTerms = fmt.Errorf("at most %d terms can be tracked", config.MaxTerms)
)

// Report is the outcome of one polling cycle. Fetch failures are collected
// per term and never abort the remaining terms.
type Report struct {
	At     time.Time
	New    map[string]int
	Errors map[string]error
}

// NewTotal returns how many articles the tick discovered across all terms.
func (r Report) NewTotal() int {
	total := 0
	for _, n := range r.New {
		total += n
	}
	return total
}

// Session drives polling for a set of tracked terms. The clock and the feed
// source are injected so ticks are deterministic under test. Methods are
// safe for concurrent use; terms within a tick are processed sequentially.
type Session struct {
	source   feed.Source
	articles *store.Store
	now      func() time.Time
	interval time.Duration

	mu         sync.Mutex
	terms      []string
	tracking   bool
	startTime  time.Time
	lastUpdate time.Time
	events     map[string][]time.Time
	known      map[string]bool
}

type Option func(*Session)

// WithClock replaces the session's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithInterval sets the polling interval used for countdowns and for the
// time-series bucket width.
func WithInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.interval = d
		}
	}
}

func New(source feed.Source, articles *store.Store, opts ...Option) *Session {
	s := &Session{
		source:   source,
		articles: articles,
		now:      time.Now,
		interval: time.Minute,
		events:   make(map[string][]time.Time),
		known:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConfigureTerms replaces the tracked terms wholesale. Blank entries are
// dropped after trimming; the remaining count must be between 1 and the
// term limit or the previous configuration is left untouched. Articles
// already stored for terms no longer listed are retained but stop updating.
func (s *Session) ConfigureTerms(terms []string) error {
	trimmed := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t != "" {
			trimmed = append(trimmed, t)
		}
	}
	if len(trimmed) == 0 {
		return ErrNoTerms
	}
	if len(trimmed) > config.MaxTerms {
		return fmt.Errorf("%w, got %d", ErrTooManyTerms, len(trimmed))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = trimmed
	if s.tracking {
		for _, t := range trimmed {
			s.known[t] = true
		}
	}
	return nil
}

// Start begins a fresh tracking run: all previously accumulated articles
// and mention events are cleared, the clock marks the run's start, and one
// tick is performed immediately.
func (s *Session) Start(ctx context.Context) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.articles.Reset(); err != nil {
		return Report{}, fmt.Errorf("clearing previous run: %w", err)
	}
	s.events = make(map[string][]time.Time)
	s.known = make(map[string]bool)
	for _, t := range s.terms {
		s.known[t] = true
	}

	now := s.now()
	s.startTime = now
	s.lastUpdate = now
	s.tracking = true

	return s.tick(ctx), nil
}

// Stop halts polling. Accumulated data stays intact; only future ticks
// become no-ops.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracking = false
}

// Tick runs one polling cycle across all tracked terms. It is a no-op when
// the session is stopped or has no terms. It never fails as a whole: each
// term's fetch, match and append is isolated, and a failing term simply
// contributes nothing this cycle.
func (s *Session) Tick(ctx context.Context) Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick(ctx)
}

func (s *Session) tick(ctx context.Context) Report {
	r := Report{New: make(map[string]int), Errors: make(map[string]error)}
	if !s.tracking || len(s.terms) == 0 {
		return r
	}

	for _, term := range s.terms {
		items, err := s.source.Fetch(ctx, term)
		if err != nil {
			r.Errors[term] = err
			continue
		}
		for _, item := range items {
			seen, err := s.articles.Contains(term, item.Link)
			if err != nil {
				r.Errors[term] = err
				break
			}
			if seen {
				// Known link: never re-matched, never re-added.
				continue
			}
			article, ok := match.Match(item, term, s.now())
			if !ok {
				continue
			}
			inserted, err := s.articles.Append(article)
			if err != nil {
				r.Errors[term] = err
				break
			}
			if inserted {
				s.events[term] = append(s.events[term], article.DiscoveredAt)
				r.New[term]++
			}
		}
	}

	s.lastUpdate = s.now()
	r.At = s.lastUpdate
	return r
}

func (s *Session) IsTracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracking
}

func (s *Session) StartTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTime
}

func (s *Session) LastUpdate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdate
}

func (s *Session) Interval() time.Duration {
	return s.interval
}

// Terms returns a copy of the currently tracked terms in configuration
// order.
func (s *Session) Terms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.terms...)
}

// UntilNextTick reports how long the host should wait before calling Tick
// again, based on the polling interval and the last update time.
func (s *Session) UntilNextTick() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.interval - s.now().Sub(s.lastUpdate)
	if d < 0 {
		return 0
	}
	return d
}

// TotalMentions returns the number of distinct articles discovered for the
// term during this run.
func (s *Session) TotalMentions(term string) (int, error) {
	return s.articles.Count(term)
}

// Articles returns the term's discovered articles, most recent first.
func (s *Session) Articles(term string) ([]store.Article, error) {
	return s.articles.ByRecency(term)
}

// TimeSeries returns the term's mention counts bucketed from the run's
// start to now. A term tracked with zero mentions yields an all-zero series
// of full length; only a term that was never tracked this run yields an
// empty series, so callers can tell the two apart.
func (s *Session) TimeSeries(term string) series.Series {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.known[term] {
		return nil
	}
	return series.Build(s.events[term], s.startTime, s.now(), s.interval)
}
