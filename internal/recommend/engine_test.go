// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// --- fake graph ---

type fakeGraph struct {
	citation, author, venue, popularity, trending []SignalRecord

	citationErr, authorErr, venueErr, popularityErr, trendingErr error

	// delay is applied to every signal query; blockVenue blocks the venue
	// query until its context is done.
	delay      time.Duration
	blockVenue bool
	panicOn    types.Source

	trendingCalls atomic.Int32
	lastUser      atomic.Int64
}

func (f *fakeGraph) wait(ctx context.Context) error {
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeGraph) CitationSignals(ctx context.Context, userID int64) ([]SignalRecord, error) {
	f.lastUser.Store(userID)
	if f.panicOn == types.SourceCitation {
		panic("driver bug")
	}
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.citation, f.citationErr
}

func (f *fakeGraph) AuthorSignals(ctx context.Context, _ int64) ([]SignalRecord, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.author, f.authorErr
}

func (f *fakeGraph) VenueSignals(ctx context.Context, _ int64) ([]SignalRecord, error) {
	if f.blockVenue {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.venue, f.venueErr
}

func (f *fakeGraph) PopularitySignals(ctx context.Context, _ int64) ([]SignalRecord, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.popularity, f.popularityErr
}

func (f *fakeGraph) TrendingPapers(_ context.Context) ([]SignalRecord, error) {
	f.trendingCalls.Add(1)
	return f.trending, f.trendingErr
}

func testEngine(g GraphSource, timeout time.Duration) (*Engine, *bytes.Buffer) {
	var logs bytes.Buffer
	cfg := types.RecommendConfig{DefaultLimit: 10, MaxLimit: 50, PopularityScale: 100}
	return NewEngine(g, cfg, timeout, zerolog.New(&logs)), &logs
}

// --- Recommend ---

func TestRecommendPersonalized(t *testing.T) {
	g := &fakeGraph{
		citation: []SignalRecord{{PaperID: "P101", Title: "Graph-Based Recommendation Systems", Relevance: 2}},
		author: []SignalRecord{
			{PaperID: "P101", Title: "Graph-Based Recommendation Systems", CommonAuthors: []string{"John Smith"}},
			{PaperID: "P202", Title: "Neo4j for Research Networks", CommonAuthors: []string{"Maria Garcia"}},
		},
		venue:      []SignalRecord{{PaperID: "P202", Venues: []string{"VLDB"}}},
		popularity: []SignalRecord{{PaperID: "P101", Relevance: 80}, {PaperID: "P303", Title: "Popular", Relevance: 250}},
	}
	e, _ := testEngine(g, 0)

	recs := e.Recommend(context.Background(), 7, 10)
	require.Len(t, recs, 3)
	assert.Equal(t, int64(7), g.lastUser.Load())
	assert.Zero(t, g.trendingCalls.Load())

	assert.Equal(t, types.PaperID("P101"), recs[0].PaperID)
	assert.Equal(t, 0.73, recs[0].Score)
	assert.Equal(t, []string{"John Smith"}, recs[0].Authors)

	assert.Equal(t, types.PaperID("P202"), recs[1].PaperID)
	assert.Equal(t, 0.5, recs[1].Score)
	require.NotNil(t, recs[1].Venue)
	assert.Equal(t, "VLDB", *recs[1].Venue)

	assert.Equal(t, types.PaperID("P303"), recs[2].PaperID)
	assert.Equal(t, 0.1, recs[2].Score)
	assert.Equal(t, types.DefaultReason, recs[2].Reason)
}

func TestRecommendToleratesSourceFailures(t *testing.T) {
	g := &fakeGraph{
		citationErr: errors.New("query timeout"),
		author:      []SignalRecord{{PaperID: "A1", Title: "Author match"}},
		venueErr:    errors.New("syntax error"),
		popularity:  []SignalRecord{{PaperID: "A1", Relevance: 50}},
	}
	e, logs := testEngine(g, 0)

	recs := e.Recommend(context.Background(), 1, 5)
	require.Len(t, recs, 1)
	assert.Equal(t, 0.3, recs[0].Score)
	assert.Contains(t, logs.String(), "query timeout")
	assert.Contains(t, logs.String(), `"source":"venue"`)
	assert.Zero(t, g.trendingCalls.Load())
}

func TestRecommendFallbackToTrending(t *testing.T) {
	g := &fakeGraph{
		trending: []SignalRecord{
			{PaperID: "T1", Title: "Attention Mechanisms", Relevance: 12, Authors: []string{"Alice Johnson"}, Venue: "NeurIPS 2023"},
			{PaperID: "T2", Title: "Transformer Architectures", Relevance: 250},
		},
	}
	e, _ := testEngine(g, 0)

	recs := e.Recommend(context.Background(), 99, 10)
	require.Len(t, recs, 2)
	assert.Equal(t, int32(1), g.trendingCalls.Load())

	for _, r := range recs {
		assert.Equal(t, []types.Source{types.SourceTrending}, r.Sources)
		assert.Empty(t, r.Reasons)
		assert.Equal(t, types.DefaultReason, r.Reason)
	}
	assert.Equal(t, types.PaperID("T2"), recs[0].PaperID)
	assert.Equal(t, 0.1, recs[0].Score)
	assert.Equal(t, []string{"Alice Johnson"}, recs[1].Authors)
}

func TestRecommendFallbackWhenAllSourcesFail(t *testing.T) {
	down := errors.New("graph unreachable")
	g := &fakeGraph{
		citationErr: down, authorErr: down, venueErr: down, popularityErr: down,
		trendingErr: down,
	}
	e, logs := testEngine(g, 0)

	recs := e.Recommend(context.Background(), 1, 10)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	assert.Equal(t, int32(1), g.trendingCalls.Load())
	assert.Contains(t, logs.String(), `"source":"trending"`)
}

func TestRecommendNilGraph(t *testing.T) {
	e, _ := testEngine(nil, 0)
	recs := e.Recommend(context.Background(), 1, 10)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommendRecoversFromPanickingSource(t *testing.T) {
	g := &fakeGraph{
		panicOn: types.SourceCitation,
		venue:   []SignalRecord{{PaperID: "V1"}},
	}
	e, logs := testEngine(g, 0)

	recs := e.Recommend(context.Background(), 1, 10)
	require.Len(t, recs, 1)
	assert.Equal(t, types.PaperID("V1"), recs[0].PaperID)
	assert.Contains(t, logs.String(), "panicked")
}

func TestRecommendQueryTimeoutSkipsSlowSource(t *testing.T) {
	g := &fakeGraph{
		blockVenue: true,
		citation:   []SignalRecord{{PaperID: "C1"}},
	}
	e, logs := testEngine(g, 20*time.Millisecond)

	done := make(chan []types.Recommendation, 1)
	go func() { done <- e.Recommend(context.Background(), 1, 10) }()

	select {
	case recs := <-done:
		require.Len(t, recs, 1)
		assert.Equal(t, types.PaperID("C1"), recs[0].PaperID)
		assert.Contains(t, logs.String(), "deadline exceeded")
	case <-time.After(5 * time.Second):
		t.Fatal("Recommend blocked on a slow source")
	}
}

func TestRecommendQueriesRunConcurrently(t *testing.T) {
	g := &fakeGraph{
		delay:    100 * time.Millisecond,
		citation: []SignalRecord{{PaperID: "C1"}},
	}
	e, _ := testEngine(g, 0)

	start := time.Now()
	recs := e.Recommend(context.Background(), 1, 10)
	elapsed := time.Since(start)

	require.Len(t, recs, 1)
	assert.Less(t, elapsed, 350*time.Millisecond, "four 100ms queries should overlap")
}

func TestRecommendCancelledContext(t *testing.T) {
	g := &fakeGraph{delay: time.Second, citation: []SignalRecord{{PaperID: "C1"}}}
	e, _ := testEngine(g, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recs := e.Recommend(ctx, 1, 10)
	assert.Empty(t, recs)
}

// --- Limit ---

func TestEngineLimit(t *testing.T) {
	e, _ := testEngine(&fakeGraph{}, 0)
	tests := []struct {
		requested, want int
	}{
		{0, 10},
		{-3, 0},
		{1, 1},
		{50, 50},
		{500, 50},
	}
	for _, tt := range tests {
		if got := e.Limit(tt.requested); got != tt.want {
			t.Errorf("Limit(%d) = %d, want %d", tt.requested, got, tt.want)
		}
	}
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(&fakeGraph{}, types.RecommendConfig{}, 0, zerolog.Nop())
	assert.Equal(t, 10, e.Limit(0))
	assert.Equal(t, 100, e.Limit(1000))
}

func TestRecommendNegativeLimit(t *testing.T) {
	g := &fakeGraph{citation: []SignalRecord{{PaperID: "C1"}}}
	e, _ := testEngine(g, 0)
	assert.Empty(t, e.Recommend(context.Background(), 1, -1))
}
