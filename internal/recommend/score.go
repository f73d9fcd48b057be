// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"math"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// Signal weights. The three boolean weights plus the popularity weight sum to 1.
const (
	WeightCited      = 0.40
	WeightSameAuthor = 0.25
	WeightSameVenue  = 0.25
	WeightPopularity = 0.10
)

// Score computes the additive weighted score of c and the reasons that
// contributed to it, in the order cited, author, venue. Popularity adds to
// the score but never produces a reason. The score is rounded to two
// decimal places and lies in [0, 1].
func Score(c types.Candidate) (float64, []types.Reason) {
	var (
		score   float64
		reasons []types.Reason
	)

	if c.IsCited {
		score += WeightCited
		reasons = append(reasons, types.ReasonCited)
	}
	if c.SameAuthor {
		score += WeightSameAuthor
		reasons = append(reasons, types.ReasonSameAuthor)
	}
	if c.SameVenue {
		score += WeightSameVenue
		reasons = append(reasons, types.ReasonSameVenue)
	}

	score += WeightPopularity * clampUnit(c.Popularity)

	return round2(score), reasons
}

// ReasonText joins reason texts with "; ", or returns the trending message
// when there are none.
func ReasonText(reasons []types.Reason) string {
	if len(reasons) == 0 {
		return types.DefaultReason
	}
	text := reasons[0].Text()
	for _, r := range reasons[1:] {
		text += "; " + r.Text()
	}
	return text
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1.0)
}
