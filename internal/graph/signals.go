// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pdiddy/paper-recommender/internal/recommend"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// Row limits per signal query.
const (
	personalLimit   = 15
	popularityLimit = 10
	trendingLimit   = 20
	maxNames        = 3
)

// seenCTE selects the papers a user liked or viewed. Candidates from the
// personalized queries exclude them.
const seenCTE = `WITH seen AS (
	SELECT DISTINCT paper_id FROM interactions WHERE user_id = ?
)`

const citationQuery = seenCTE + `
SELECT p.id AS paper_id, p.title, p.year, COUNT(DISTINCT c.citing_id) AS relevance
FROM seen s
JOIN cites c ON c.citing_id = s.paper_id
JOIN papers p ON p.id = c.cited_id
WHERE p.id NOT IN (SELECT paper_id FROM seen)
GROUP BY p.id
ORDER BY relevance DESC, p.id
LIMIT ?`

const authorQuery = seenCTE + `
SELECT p.id AS paper_id, p.title, p.year,
	COUNT(DISTINCT a.id) AS relevance,
	json_group_array(DISTINCT a.name) AS names
FROM seen s
JOIN wrote w1 ON w1.paper_id = s.paper_id
JOIN authors a ON a.id = w1.author_id
JOIN wrote w2 ON w2.author_id = a.id
JOIN papers p ON p.id = w2.paper_id
WHERE p.id NOT IN (SELECT paper_id FROM seen)
GROUP BY p.id
ORDER BY relevance DESC, p.id
LIMIT ?`

const venueQuery = seenCTE + `
SELECT p.id AS paper_id, p.title, p.year,
	COUNT(DISTINCT v.id) AS relevance,
	json_group_array(DISTINCT v.name) AS names
FROM seen s
JOIN published_in pi1 ON pi1.paper_id = s.paper_id
JOIN venues v ON v.id = pi1.venue_id
JOIN published_in pi2 ON pi2.venue_id = v.id
JOIN papers p ON p.id = pi2.paper_id
WHERE p.id NOT IN (SELECT paper_id FROM seen)
GROUP BY p.id
ORDER BY relevance DESC, p.id
LIMIT ?`

const popularityQuery = seenCTE + `
SELECT p.id AS paper_id, p.title, p.year, COUNT(c.citing_id) AS relevance
FROM papers p
JOIN cites c ON c.cited_id = p.id
WHERE EXISTS (SELECT 1 FROM seen)
	AND p.id NOT IN (SELECT paper_id FROM seen)
GROUP BY p.id
ORDER BY relevance DESC, p.id
LIMIT ?`

const trendingQuery = `
SELECT p.id AS paper_id, p.title, p.year, COUNT(c.citing_id) AS relevance
FROM papers p
JOIN cites c ON c.cited_id = p.id
GROUP BY p.id
ORDER BY relevance DESC, p.id
LIMIT ?`

// signalRow is one row of a signal query. Nullable columns default to
// their zero value when absent.
type signalRow struct {
	PaperID   string         `db:"paper_id"`
	Title     sql.NullString `db:"title"`
	Year      sql.NullInt64  `db:"year"`
	Relevance int            `db:"relevance"`
	Names     sql.NullString `db:"names"`
}

func (r signalRow) record() recommend.SignalRecord {
	rec := recommend.SignalRecord{
		PaperID:   types.PaperID(r.PaperID),
		Title:     r.Title.String,
		Relevance: r.Relevance,
	}
	if r.Year.Valid {
		y := int(r.Year.Int64)
		rec.Year = &y
	}
	return rec
}

func (s *Store) selectSignals(ctx context.Context, name, query string, args ...any) ([]signalRow, error) {
	var rows []signalRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s query: %w", name, err)
	}
	return rows, nil
}

// CitationSignals returns papers cited by papers the user liked or viewed,
// ranked by how many of those papers cite them.
func (s *Store) CitationSignals(ctx context.Context, userID int64) ([]recommend.SignalRecord, error) {
	rows, err := s.selectSignals(ctx, "citation", citationQuery, userID, personalLimit)
	if err != nil {
		return nil, err
	}
	out := make([]recommend.SignalRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
	}
	return out, nil
}

// AuthorSignals returns papers written by authors of the user's papers,
// with up to three shared author names.
func (s *Store) AuthorSignals(ctx context.Context, userID int64) ([]recommend.SignalRecord, error) {
	rows, err := s.selectSignals(ctx, "author", authorQuery, userID, personalLimit)
	if err != nil {
		return nil, err
	}
	out := make([]recommend.SignalRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
		out[i].CommonAuthors = decodeNames(r.Names, maxNames)
	}
	return out, nil
}

// VenueSignals returns papers published in venues of the user's papers,
// with up to three shared venue names.
func (s *Store) VenueSignals(ctx context.Context, userID int64) ([]recommend.SignalRecord, error) {
	rows, err := s.selectSignals(ctx, "venue", venueQuery, userID, personalLimit)
	if err != nil {
		return nil, err
	}
	out := make([]recommend.SignalRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
		out[i].Venues = decodeNames(r.Names, maxNames)
	}
	return out, nil
}

// PopularitySignals returns the most cited papers the user has not
// interacted with; Relevance is the raw incoming citation count. Users
// without history get no rows so the engine falls back to trending.
func (s *Store) PopularitySignals(ctx context.Context, userID int64) ([]recommend.SignalRecord, error) {
	rows, err := s.selectSignals(ctx, "popularity", popularityQuery, userID, popularityLimit)
	if err != nil {
		return nil, err
	}
	out := make([]recommend.SignalRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
	}
	return out, nil
}

// TrendingPapers returns the most cited papers overall with their first
// three authors and venue.
func (s *Store) TrendingPapers(ctx context.Context) ([]recommend.SignalRecord, error) {
	rows, err := s.selectSignals(ctx, "trending", trendingQuery, trendingLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]types.PaperID, len(rows))
	for i, r := range rows {
		ids[i] = types.PaperID(r.PaperID)
	}
	authors, err := s.paperAuthors(ctx, ids, maxNames)
	if err != nil {
		return nil, fmt.Errorf("trending query: %w", err)
	}
	venues, err := s.paperVenues(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("trending query: %w", err)
	}

	out := make([]recommend.SignalRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
		out[i].Authors = authors[ids[i]]
		out[i].Venue = venues[ids[i]]
	}
	return out, nil
}

var _ recommend.GraphSource = (*Store)(nil)
