// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"sort"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// Rank scores every candidate in set, sorts descending by score and returns
// at most limit recommendations. Candidates with equal scores keep the order
// in which they were first seen during aggregation.
func Rank(set *CandidateSet, limit int) []types.Recommendation {
	if set == nil || limit <= 0 {
		return []types.Recommendation{}
	}

	candidates := set.Candidates()
	recs := make([]types.Recommendation, 0, len(candidates))
	for _, c := range candidates {
		recs = append(recs, toRecommendation(c))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func toRecommendation(c *types.Candidate) types.Recommendation {
	score, reasons := Score(*c)
	if reasons == nil {
		reasons = []types.Reason{}
	}
	return types.Recommendation{
		PaperID: c.ID,
		Title:   c.Title,
		Score:   score,
		Reason:  ReasonText(reasons),
		Reasons: reasons,
		Year:    c.Year,
		Authors: resolveAuthors(c),
		Venue:   resolveVenue(c),
		Sources: c.Sources.Sorted(),
	}
}

// resolveAuthors prefers explicit authors, then common authors.
func resolveAuthors(c *types.Candidate) []string {
	switch {
	case len(c.Authors) > 0:
		return c.Authors
	case len(c.CommonAuthors) > 0:
		return c.CommonAuthors
	default:
		return []string{}
	}
}

// resolveVenue prefers the explicit venue, then the first shared venue.
func resolveVenue(c *types.Candidate) *string {
	switch {
	case c.Venue != "":
		v := c.Venue
		return &v
	case len(c.SharedVenues) > 0:
		v := c.SharedVenues[0]
		return &v
	default:
		return nil
	}
}
