// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph stores the research graph (papers, authors, venues,
// citations and user interactions) in SQLite and answers the signal queries
// the recommendation engine consumes.
package graph

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// ErrPaperNotFound is returned when a paper ID is not in the graph.
var ErrPaperNotFound = errors.New("paper not found")

// Store manages the graph SQLite database.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the graph database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.GraphConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("graph database path is empty")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating graph directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening graph database %s: %w", cfg.Path, err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			title TEXT,
			year INTEGER,
			abstract TEXT,
			url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS authors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS wrote (
			author_id INTEGER NOT NULL REFERENCES authors(id),
			paper_id TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			position INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (author_id, paper_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wrote_paper ON wrote(paper_id)`,
		`CREATE TABLE IF NOT EXISTS venues (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS published_in (
			paper_id TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			venue_id INTEGER NOT NULL REFERENCES venues(id),
			PRIMARY KEY (paper_id, venue_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_published_in_venue ON published_in(venue_id)`,
		`CREATE TABLE IF NOT EXISTS cites (
			citing_id TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			cited_id TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			PRIMARY KEY (citing_id, cited_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cites_cited ON cites(cited_id)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			user_id INTEGER NOT NULL,
			paper_id TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			kind TEXT NOT NULL CHECK (kind IN ('liked', 'viewed')),
			created_at TEXT NOT NULL,
			PRIMARY KEY (user_id, paper_id, kind)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// paperRow is a papers row with nullable columns.
type paperRow struct {
	ID       string         `db:"id"`
	Title    sql.NullString `db:"title"`
	Year     sql.NullInt64  `db:"year"`
	Abstract sql.NullString `db:"abstract"`
	URL      sql.NullString `db:"url"`
}

// Paper returns the paper with its authors, venue and outgoing citations.
func (s *Store) Paper(ctx context.Context, id types.PaperID) (*types.Paper, error) {
	var row paperRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, title, year, abstract, url FROM papers WHERE id = ?`, string(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrPaperNotFound, id)
		}
		return nil, fmt.Errorf("looking up paper %s: %w", id, err)
	}

	p := &types.Paper{
		ID:       types.PaperID(row.ID),
		Title:    row.Title.String,
		Year:     int(row.Year.Int64),
		Abstract: row.Abstract.String,
		URL:      row.URL.String,
	}

	authors, err := s.paperAuthors(ctx, []types.PaperID{id}, 0)
	if err != nil {
		return nil, err
	}
	p.Authors = authors[id]

	venues, err := s.paperVenues(ctx, []types.PaperID{id})
	if err != nil {
		return nil, err
	}
	p.Venue = venues[id]

	var cites []string
	if err := s.db.SelectContext(ctx, &cites,
		`SELECT cited_id FROM cites WHERE citing_id = ? ORDER BY cited_id`, string(id)); err != nil {
		return nil, fmt.Errorf("listing citations of %s: %w", id, err)
	}
	for _, c := range cites {
		p.Cites = append(p.Cites, types.PaperID(c))
	}

	return p, nil
}

// paperAuthors returns author names per paper in authorship order. A
// positive limit keeps only the first limit authors of each paper.
func (s *Store) paperAuthors(ctx context.Context, ids []types.PaperID, limit int) (map[types.PaperID][]string, error) {
	out := make(map[types.PaperID][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(
		`SELECT w.paper_id, a.name
		 FROM wrote w JOIN authors a ON a.id = w.author_id
		 WHERE w.paper_id IN (?)
		 ORDER BY w.paper_id, w.position, a.name`, paperIDArgs(ids))
	if err != nil {
		return nil, fmt.Errorf("building author query: %w", err)
	}

	var rows []struct {
		PaperID string `db:"paper_id"`
		Name    string `db:"name"`
	}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("listing authors: %w", err)
	}

	for _, r := range rows {
		id := types.PaperID(r.PaperID)
		if limit > 0 && len(out[id]) >= limit {
			continue
		}
		out[id] = append(out[id], r.Name)
	}
	return out, nil
}

// paperVenues returns the first venue (by name) per paper.
func (s *Store) paperVenues(ctx context.Context, ids []types.PaperID) (map[types.PaperID]string, error) {
	out := make(map[types.PaperID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(
		`SELECT pi.paper_id, MIN(v.name) AS name
		 FROM published_in pi JOIN venues v ON v.id = pi.venue_id
		 WHERE pi.paper_id IN (?)
		 GROUP BY pi.paper_id`, paperIDArgs(ids))
	if err != nil {
		return nil, fmt.Errorf("building venue query: %w", err)
	}

	var rows []struct {
		PaperID string `db:"paper_id"`
		Name    string `db:"name"`
	}
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("listing venues: %w", err)
	}
	for _, r := range rows {
		out[types.PaperID(r.PaperID)] = r.Name
	}
	return out, nil
}

func paperIDArgs(ids []types.PaperID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// decodeNames parses a JSON array of names produced by json_group_array,
// sorts it, drops empties and keeps at most limit entries. Malformed input
// yields an empty list.
func decodeNames(raw sql.NullString, limit int) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw.String), &names); err != nil {
		return nil
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, n)
	}
	return out
}
