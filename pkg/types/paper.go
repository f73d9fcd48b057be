// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Paper is a paper node in the research graph together with its outgoing
// edges (authors, venue, cited papers).
type Paper struct {
	// ID is the stable paper identifier (e.g. "paper_001", an arXiv ID or a DOI).
	ID PaperID `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year; zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Abstract is the paper abstract.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// URL links to the paper landing page.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Venue is the journal or conference the paper was published in.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Cites lists the IDs of papers this paper cites.
	Cites []PaperID `json:"cites,omitempty" yaml:"cites,omitempty"`
}

// Corpus is the on-disk seed format for the research graph.
type Corpus struct {
	Papers []Paper `json:"papers" yaml:"papers"`
}

// InteractionKind distinguishes how a user engaged with a paper.
type InteractionKind string

const (
	InteractionLiked  InteractionKind = "liked"
	InteractionViewed InteractionKind = "viewed"
)

// Interaction records one user-paper edge.
type Interaction struct {
	UserID    int64           `json:"user_id" yaml:"user_id"`
	PaperID   PaperID         `json:"paper_id" yaml:"paper_id"`
	Kind      InteractionKind `json:"kind" yaml:"kind"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
}

// History holds the paper IDs a user liked and viewed, most recent first.
type History struct {
	Liked  []PaperID `json:"liked" yaml:"liked"`
	Viewed []PaperID `json:"viewed" yaml:"viewed"`
}

// IsEmpty reports whether the user has no interactions.
func (h History) IsEmpty() bool {
	return len(h.Liked) == 0 && len(h.Viewed) == 0
}
