// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-recommender
// service: graph papers, ranking candidates, recommendations, interaction
// history and configuration.
package types

import (
	"fmt"
	"sort"
)

// PaperID is the stable identifier of a paper in the graph (e.g. "paper_001").
// It keys the candidate map within a single ranking pass.
type PaperID string

// Source tags the signal that proposed a candidate.
type Source string

const (
	SourceCitation   Source = "citation"
	SourceAuthor     Source = "author"
	SourceVenue      Source = "venue"
	SourcePopularity Source = "popularity"
	SourceTrending   Source = "trending"
)

// SourceSet is a set of signal sources. Membership matters, order does not.
type SourceSet map[Source]struct{}

// NewSourceSet returns a set holding the given sources.
func NewSourceSet(sources ...Source) SourceSet {
	s := make(SourceSet, len(sources))
	for _, src := range sources {
		s[src] = struct{}{}
	}
	return s
}

// Add inserts src into the set.
func (s SourceSet) Add(src Source) {
	s[src] = struct{}{}
}

// Has reports whether src is in the set.
func (s SourceSet) Has(src Source) bool {
	_, ok := s[src]
	return ok
}

// Sorted returns the members in lexical order.
func (s SourceSet) Sorted() []Source {
	out := make([]Source, 0, len(s))
	for src := range s {
		out = append(out, src)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Candidate is one paper under consideration during a ranking pass.
// Flags and sources accumulate across signal sources; they are never reset.
type Candidate struct {
	ID    PaperID
	Title string
	Year  *int

	IsCited    bool
	SameAuthor bool
	SameVenue  bool

	// Popularity is the normalized incoming-citation signal in [0,1].
	Popularity float64

	Sources SourceSet

	// CommonAuthors holds up to three authors shared with the user's papers.
	CommonAuthors []string

	// SharedVenues holds up to three venues shared with the user's papers.
	SharedVenues []string

	// Authors and Venue are explicit paper metadata (set by the trending source).
	Authors []string
	Venue   string
}

// Reason is a discrete justification produced by scoring.
type Reason int

const (
	ReasonCited Reason = iota
	ReasonSameAuthor
	ReasonSameVenue
)

// DefaultReason is displayed when no discrete reason applies.
const DefaultReason = "Trending in your field"

// Text returns the human-readable justification.
func (r Reason) Text() string {
	switch r {
	case ReasonCited:
		return "Cited by a paper you liked"
	case ReasonSameAuthor:
		return "Same author"
	case ReasonSameVenue:
		return "Same venue"
	default:
		return ""
	}
}

// String returns a short machine-friendly name.
func (r Reason) String() string {
	switch r {
	case ReasonCited:
		return "cited"
	case ReasonSameAuthor:
		return "same_author"
	case ReasonSameVenue:
		return "same_venue"
	default:
		return "unknown"
	}
}

// MarshalText encodes the reason by name so JSON output stays readable.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a reason name written by MarshalText.
func (r *Reason) UnmarshalText(text []byte) error {
	switch string(text) {
	case "cited":
		*r = ReasonCited
	case "same_author":
		*r = ReasonSameAuthor
	case "same_venue":
		*r = ReasonSameVenue
	default:
		return fmt.Errorf("unknown reason %q", text)
	}
	return nil
}

// Recommendation is a ranked paper returned to the caller.
type Recommendation struct {
	PaperID PaperID  `json:"paper_id" yaml:"paper_id"`
	Title   string   `json:"title" yaml:"title"`
	Score   float64  `json:"score" yaml:"score"`
	Reason  string   `json:"reason" yaml:"reason"`
	Reasons []Reason `json:"reasons" yaml:"reasons"`
	Year    *int     `json:"year" yaml:"year"`
	Authors []string `json:"authors" yaml:"authors"`
	Venue   *string  `json:"venue" yaml:"venue"`
	Sources []Source `json:"sources" yaml:"sources"`
}
