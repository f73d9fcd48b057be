// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"reflect"
	"testing"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		cand        types.Candidate
		wantScore   float64
		wantReasons []types.Reason
	}{
		{
			name:        "cited and same author",
			cand:        types.Candidate{IsCited: true, SameAuthor: true, Popularity: 0.8},
			wantScore:   0.73,
			wantReasons: []types.Reason{types.ReasonCited, types.ReasonSameAuthor},
		},
		{
			name:      "no signals",
			cand:      types.Candidate{},
			wantScore: 0.00,
		},
		{
			name:        "all signals saturate at one",
			cand:        types.Candidate{IsCited: true, SameAuthor: true, SameVenue: true, Popularity: 1.0},
			wantScore:   1.00,
			wantReasons: []types.Reason{types.ReasonCited, types.ReasonSameAuthor, types.ReasonSameVenue},
		},
		{
			name:        "author and venue",
			cand:        types.Candidate{SameAuthor: true, SameVenue: true, Popularity: 0.6},
			wantScore:   0.56,
			wantReasons: []types.Reason{types.ReasonSameAuthor, types.ReasonSameVenue},
		},
		{
			name:      "popularity only gives no reason",
			cand:      types.Candidate{Popularity: 1.0},
			wantScore: 0.10,
		},
		{
			name:        "venue only",
			cand:        types.Candidate{SameVenue: true},
			wantScore:   0.25,
			wantReasons: []types.Reason{types.ReasonSameVenue},
		},
		{
			name:      "popularity above one is clamped",
			cand:      types.Candidate{Popularity: 3.5},
			wantScore: 0.10,
		},
		{
			name:      "negative popularity is ignored",
			cand:      types.Candidate{Popularity: -2},
			wantScore: 0.00,
		},
		{
			name:      "rounded to two decimals",
			cand:      types.Candidate{Popularity: 0.456},
			wantScore: 0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, reasons := Score(tt.cand)
			if score != tt.wantScore {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
			if len(reasons) != len(tt.wantReasons) || (len(reasons) > 0 && !reflect.DeepEqual(reasons, tt.wantReasons)) {
				t.Errorf("reasons = %v, want %v", reasons, tt.wantReasons)
			}
			if score < 0 || score > 1 {
				t.Errorf("score %v outside [0, 1]", score)
			}
		})
	}
}

func TestScoreIdempotent(t *testing.T) {
	c := types.Candidate{IsCited: true, SameVenue: true, Popularity: 0.37}
	s1, r1 := Score(c)
	s2, r2 := Score(c)
	if s1 != s2 || !reflect.DeepEqual(r1, r2) {
		t.Errorf("Score not idempotent: (%v, %v) vs (%v, %v)", s1, r1, s2, r2)
	}
}

func TestScoreRangeAllFlagCombinations(t *testing.T) {
	for mask := 0; mask < 8; mask++ {
		for _, pop := range []float64{0, 0.25, 0.5, 0.99, 1} {
			c := types.Candidate{
				IsCited:    mask&1 != 0,
				SameAuthor: mask&2 != 0,
				SameVenue:  mask&4 != 0,
				Popularity: pop,
			}
			score, _ := Score(c)

			want := 0.0
			if c.IsCited {
				want += WeightCited
			}
			if c.SameAuthor {
				want += WeightSameAuthor
			}
			if c.SameVenue {
				want += WeightSameVenue
			}
			want += WeightPopularity * pop
			if score != round2(want) {
				t.Errorf("mask=%03b pop=%v: score = %v, want %v", mask, pop, score, round2(want))
			}
			if score < 0 || score > 1 {
				t.Errorf("mask=%03b pop=%v: score %v outside [0, 1]", mask, pop, score)
			}
		}
	}
}

func TestReasonText(t *testing.T) {
	tests := []struct {
		name    string
		reasons []types.Reason
		want    string
	}{
		{"none falls back to trending", nil, "Trending in your field"},
		{"single", []types.Reason{types.ReasonSameVenue}, "Same venue"},
		{"joined in order", []types.Reason{types.ReasonCited, types.ReasonSameAuthor}, "Cited by a paper you liked; Same author"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReasonText(tt.reasons); got != tt.want {
				t.Errorf("ReasonText() = %q, want %q", got, tt.want)
			}
		})
	}
}
