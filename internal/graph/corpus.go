// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// LoadSummary holds counts from a corpus load.
type LoadSummary struct {
	Loaded int
	Failed int
}

// Total returns the number of papers processed.
func (s LoadSummary) Total() int {
	return s.Loaded + s.Failed
}

// ReadCorpus parses a YAML corpus file.
func ReadCorpus(path string) (types.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Corpus{}, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	var corpus types.Corpus
	if err := yaml.Unmarshal(data, &corpus); err != nil {
		return types.Corpus{}, fmt.Errorf("parsing corpus %s: %w", path, err)
	}
	return corpus, nil
}

// LoadCorpus reads a YAML corpus file and upserts every paper into the
// graph. Progress lines go to w.
func (s *Store) LoadCorpus(ctx context.Context, path string, w io.Writer) (LoadSummary, error) {
	corpus, err := ReadCorpus(path)
	if err != nil {
		return LoadSummary{}, err
	}
	return s.Load(ctx, corpus, w)
}

// Load upserts the papers of corpus. Each paper is written in its own
// transaction so one invalid entry does not discard the rest. Cited papers
// missing from the graph are created as stub nodes.
func (s *Store) Load(ctx context.Context, corpus types.Corpus, w io.Writer) (LoadSummary, error) {
	var summary LoadSummary

	for _, p := range corpus.Papers {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if err := s.UpsertPaper(ctx, p); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", p.ID, err)
			summary.Failed++
			continue
		}
		fmt.Fprintf(w, "loaded  %s (%d authors, %d citations)\n", p.ID, len(p.Authors), len(p.Cites))
		summary.Loaded++
	}

	fmt.Fprintf(w, "\nloaded: %d, failed: %d\n", summary.Loaded, summary.Failed)
	return summary, nil
}

// UpsertPaper writes p and replaces its authorship, venue and outgoing
// citation edges.
func (s *Store) UpsertPaper(ctx context.Context, p types.Paper) error {
	id := strings.TrimSpace(string(p.ID))
	if id == "" {
		return fmt.Errorf("paper has no id")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var year sql.NullInt64
	if p.Year > 0 {
		year = sql.NullInt64{Int64: int64(p.Year), Valid: true}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO papers (id, title, year, abstract, url) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, year=excluded.year,
			abstract=excluded.abstract, url=excluded.url`,
		id, p.Title, year, p.Abstract, p.URL,
	); err != nil {
		return fmt.Errorf("upserting paper: %w", err)
	}

	for _, stmt := range []string{
		`DELETE FROM wrote WHERE paper_id = ?`,
		`DELETE FROM published_in WHERE paper_id = ?`,
		`DELETE FROM cites WHERE citing_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("clearing edges: %w", err)
		}
	}

	for pos, name := range p.Authors {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		authorID, err := upsertNamed(ctx, tx, "authors", name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO wrote (author_id, paper_id, position) VALUES (?, ?, ?)`,
			authorID, id, pos,
		); err != nil {
			return fmt.Errorf("linking author %s: %w", name, err)
		}
	}

	if venue := strings.TrimSpace(p.Venue); venue != "" {
		venueID, err := upsertNamed(ctx, tx, "venues", venue)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO published_in (paper_id, venue_id) VALUES (?, ?)`,
			id, venueID,
		); err != nil {
			return fmt.Errorf("linking venue %s: %w", venue, err)
		}
	}

	for _, cited := range p.Cites {
		citedID := strings.TrimSpace(string(cited))
		if citedID == "" || citedID == id {
			continue
		}
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO papers (id) VALUES (?)`, citedID); err != nil {
			return fmt.Errorf("inserting cited paper stub %s: %w", citedID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO cites (citing_id, cited_id) VALUES (?, ?)`, id, citedID,
		); err != nil {
			return fmt.Errorf("linking citation %s: %w", citedID, err)
		}
	}

	return tx.Commit()
}

// upsertNamed returns the id of the row with name in table (authors or
// venues), inserting it if needed.
func upsertNamed(ctx context.Context, tx *sqlx.Tx, table, name string) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO `+table+` (name) VALUES (?)`, name,
	); err != nil {
		return 0, fmt.Errorf("inserting %s %s: %w", table, name, err)
	}
	var id int64
	if err := tx.GetContext(ctx, &id, `SELECT id FROM `+table+` WHERE name = ?`, name); err != nil {
		return 0, fmt.Errorf("looking up %s %s: %w", table, name, err)
	}
	return id, nil
}
