package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store holds deduplicated articles keyed by (term, link). The default
// in-memory database lives and dies with the process: tracking history is
// per run, not persisted.
type Store struct {
	db *sql.DB
}

// InMemory is the DSN for a process-lifetime store.
const InMemory = ":memory:"

func Open(path string) (*Store, error) {
	if path != InMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	// A single connection keeps an in-memory database from vanishing
	// between queries and serializes writers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS articles (
			seq           INTEGER PRIMARY KEY AUTOINCREMENT,
			term          TEXT NOT NULL,
			link          TEXT NOT NULL,
			title         TEXT NOT NULL,
			summary       TEXT NOT NULL DEFAULT '',
			discovered_at DATETIME NOT NULL,
			UNIQUE(term, link)
		);
		CREATE INDEX IF NOT EXISTS idx_articles_term ON articles(term);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Contains reports whether an article with this link is already stored for
// the term.
func (s *Store) Contains(term, link string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM articles WHERE term = ? AND link = ?", term, link,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking link: %w", err)
	}
	return true, nil
}

// Append inserts the article unless its link is already present for the
// term. Returns true when a row was actually inserted.
func (s *Store) Append(a Article) (bool, error) {
	res, err := s.db.Exec(`
		INSERT OR IGNORE INTO articles (term, link, title, summary, discovered_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.Term, a.Link, a.Title, a.Summary, a.DiscoveredAt)
	if err != nil {
		return false, fmt.Errorf("appending article %s: %w", a.Link, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ByRecency returns the term's articles most-recently-discovered first.
// Articles discovered at the same instant keep their insertion order.
func (s *Store) ByRecency(term string) ([]Article, error) {
	rows, err := s.db.Query(`
		SELECT term, link, title, summary, discovered_at
		FROM articles
		WHERE term = ?
		ORDER BY discovered_at DESC, seq ASC
	`, term)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.Term, &a.Link, &a.Title, &a.Summary, &a.DiscoveredAt); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// Count returns the number of distinct articles stored for the term.
func (s *Store) Count(term string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM articles WHERE term = ?", term).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

// Reset drops all stored articles for all terms.
func (s *Store) Reset() error {
	_, err := s.db.Exec("DELETE FROM articles")
	if err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	return nil
}
