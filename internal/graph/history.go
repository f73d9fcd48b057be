// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// Like records that userID liked paperID. It reports false when the paper
// was already liked. Unknown papers are created as stub nodes.
func (s *Store) Like(ctx context.Context, userID int64, paperID types.PaperID) (bool, error) {
	return s.record(ctx, userID, paperID, types.InteractionLiked, false)
}

// View records that userID viewed paperID, refreshing the timestamp of an
// earlier view. It reports whether this was the first view.
func (s *Store) View(ctx context.Context, userID int64, paperID types.PaperID) (bool, error) {
	return s.record(ctx, userID, paperID, types.InteractionViewed, true)
}

// Unlike removes a like. It reports whether a like existed.
func (s *Store) Unlike(ctx context.Context, userID int64, paperID types.PaperID) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM interactions WHERE user_id = ? AND paper_id = ? AND kind = ?`,
		userID, string(paperID), string(types.InteractionLiked))
	if err != nil {
		return false, fmt.Errorf("removing like: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("removing like: %w", err)
	}
	return n > 0, nil
}

func (s *Store) record(ctx context.Context, userID int64, paperID types.PaperID, kind types.InteractionKind, touch bool) (bool, error) {
	if paperID == "" {
		return false, fmt.Errorf("paper id is empty")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO papers (id) VALUES (?)`, string(paperID)); err != nil {
		return false, fmt.Errorf("inserting paper stub: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO interactions (user_id, paper_id, kind, created_at) VALUES (?, ?, ?, ?)`,
		userID, string(paperID), string(kind), now)
	if err != nil {
		return false, fmt.Errorf("recording %s: %w", kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("recording %s: %w", kind, err)
	}

	if n == 0 && touch {
		if _, err := tx.ExecContext(ctx,
			`UPDATE interactions SET created_at = ? WHERE user_id = ? AND paper_id = ? AND kind = ?`,
			now, userID, string(paperID), string(kind)); err != nil {
			return false, fmt.Errorf("refreshing %s: %w", kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing %s: %w", kind, err)
	}
	return n > 0, nil
}

// History returns the papers userID liked and viewed, most recent first.
func (s *Store) History(ctx context.Context, userID int64) (types.History, error) {
	var rows []struct {
		PaperID string `db:"paper_id"`
		Kind    string `db:"kind"`
	}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT paper_id, kind FROM interactions WHERE user_id = ?
		 ORDER BY created_at DESC, paper_id`, userID); err != nil {
		return types.History{}, fmt.Errorf("loading history for user %d: %w", userID, err)
	}

	h := types.History{Liked: []types.PaperID{}, Viewed: []types.PaperID{}}
	for _, r := range rows {
		switch types.InteractionKind(r.Kind) {
		case types.InteractionLiked:
			h.Liked = append(h.Liked, types.PaperID(r.PaperID))
		case types.InteractionViewed:
			h.Viewed = append(h.Viewed, types.PaperID(r.PaperID))
		}
	}
	return h, nil
}
