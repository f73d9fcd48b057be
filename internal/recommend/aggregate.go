// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"math"
	"slices"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// DefaultPopularityScale is the incoming-citation count at which popularity
// saturates. RecommendConfig.PopularityScale overrides it.
const DefaultPopularityScale = 100.0

// maxAuxiliary caps common-author and shared-venue lists.
const maxAuxiliary = 3

// SignalRecord is one row returned by a signal query. Fields a source does
// not produce are left at their zero value.
type SignalRecord struct {
	PaperID types.PaperID
	Title   string
	Year    *int

	// Relevance is the source-specific count: citing papers, shared
	// authors, shared venues or incoming citations.
	Relevance int

	CommonAuthors []string
	Venues        []string

	Authors []string
	Venue   string
}

// SignalResult is the outcome of one signal query. A non-nil Err marks the
// source as failed; its Records are ignored.
type SignalResult struct {
	Source  types.Source
	Records []SignalRecord
	Err     error
}

// Failed reports whether the query behind r failed.
func (r SignalResult) Failed() bool {
	return r.Err != nil
}

// SourceFailure records a signal source that was skipped during aggregation.
type SourceFailure struct {
	Source types.Source
	Err    error
}

// CandidateSet maps paper IDs to merged candidates and remembers the order
// in which papers were first seen.
type CandidateSet struct {
	byID  map[types.PaperID]*types.Candidate
	order []types.PaperID

	// Failures lists the sources skipped because their query failed.
	Failures []SourceFailure

	popularityScale float64
}

func newCandidateSet(scale float64) *CandidateSet {
	if scale <= 0 {
		scale = DefaultPopularityScale
	}
	return &CandidateSet{
		byID:            make(map[types.PaperID]*types.Candidate),
		popularityScale: scale,
	}
}

// Len returns the number of distinct candidates.
func (s *CandidateSet) Len() int {
	return len(s.byID)
}

// Get returns the candidate for id.
func (s *CandidateSet) Get(id types.PaperID) (*types.Candidate, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Candidates returns the candidates in first-seen order.
func (s *CandidateSet) Candidates() []*types.Candidate {
	out := make([]*types.Candidate, len(s.order))
	for i, id := range s.order {
		out[i] = s.byID[id]
	}
	return out
}

// Aggregate merges the results of the signal queries into one candidate set
// using the default popularity scale.
func Aggregate(results ...SignalResult) *CandidateSet {
	return AggregateScaled(DefaultPopularityScale, results...)
}

// AggregateScaled merges signal results, normalizing popularity counts by
// scale. Results are applied in the order given; a paper seen under several
// sources accumulates every flag and source tag. Failed results are recorded
// in Failures and contribute no candidates.
func AggregateScaled(scale float64, results ...SignalResult) *CandidateSet {
	set := newCandidateSet(scale)
	for _, r := range results {
		if r.Failed() {
			set.Failures = append(set.Failures, SourceFailure{Source: r.Source, Err: r.Err})
			continue
		}
		for _, rec := range r.Records {
			set.merge(r.Source, rec)
		}
	}
	return set
}

// AggregateFallback builds the trending candidate set used when a user has
// no interaction history. Every candidate carries only the trending tag and
// no personalization flags.
func AggregateFallback(scale float64, result SignalResult) *CandidateSet {
	result.Source = types.SourceTrending
	return AggregateScaled(scale, result)
}

// merge applies one record from src to the set.
func (s *CandidateSet) merge(src types.Source, rec SignalRecord) {
	if rec.PaperID == "" {
		return
	}

	c, ok := s.byID[rec.PaperID]
	if !ok {
		c = &types.Candidate{
			ID:      rec.PaperID,
			Title:   rec.Title,
			Year:    rec.Year,
			Sources: types.NewSourceSet(),
		}
		s.byID[rec.PaperID] = c
		s.order = append(s.order, rec.PaperID)
	} else {
		if c.Title == "" {
			c.Title = rec.Title
		}
		if c.Year == nil {
			c.Year = rec.Year
		}
	}

	c.Sources.Add(src)

	switch src {
	case types.SourceCitation:
		c.IsCited = true
	case types.SourceAuthor:
		c.SameAuthor = true
		c.CommonAuthors = unionCapped(c.CommonAuthors, rec.CommonAuthors, maxAuxiliary)
	case types.SourceVenue:
		c.SameVenue = true
		c.SharedVenues = unionCapped(c.SharedVenues, rec.Venues, maxAuxiliary)
	case types.SourcePopularity, types.SourceTrending:
		c.Popularity = math.Max(c.Popularity, NormalizePopularity(rec.Relevance, s.popularityScale))
	}

	if len(c.Authors) == 0 && len(rec.Authors) > 0 {
		c.Authors = rec.Authors
	}
	if c.Venue == "" && rec.Venue != "" {
		c.Venue = rec.Venue
	}
}

// NormalizePopularity maps a raw citation count to [0, 1] by dividing by
// scale and clamping; a count at or above scale saturates to 1.0.
func NormalizePopularity(count int, scale float64) float64 {
	if scale <= 0 {
		scale = DefaultPopularityScale
	}
	if count <= 0 {
		return 0
	}
	return math.Min(float64(count)/scale, 1.0)
}

// unionCapped appends the members of add missing from dst, keeping at most
// limit entries. Empty strings are skipped.
func unionCapped(dst, add []string, limit int) []string {
	for _, v := range add {
		if len(dst) >= limit {
			break
		}
		if v == "" || slices.Contains(dst, v) {
			continue
		}
		dst = append(dst, v)
	}
	return dst
}
