// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend ranks candidate papers for a user from graph-derived
// signals. Four independent signal queries (citation, author, venue,
// popularity) are issued concurrently, merged into one candidate per paper,
// scored with fixed additive weights and returned as a ranked top-K list.
// Users without history receive trending papers instead.
package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/paper-recommender/internal/metrics"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// GraphSource answers the signal queries for a user. Implementations are
// read-only and safe for concurrent use.
type GraphSource interface {
	CitationSignals(ctx context.Context, userID int64) ([]SignalRecord, error)
	AuthorSignals(ctx context.Context, userID int64) ([]SignalRecord, error)
	VenueSignals(ctx context.Context, userID int64) ([]SignalRecord, error)
	PopularitySignals(ctx context.Context, userID int64) ([]SignalRecord, error)

	// TrendingPapers returns globally popular papers for users without history.
	TrendingPapers(ctx context.Context) ([]SignalRecord, error)
}

// Engine produces recommendations from a GraphSource.
type Engine struct {
	graph        GraphSource
	cfg          types.RecommendConfig
	queryTimeout time.Duration
	logger       zerolog.Logger
}

// NewEngine creates an engine. Zero-valued config fields take the defaults
// from types.DefaultConfig. queryTimeout bounds each signal query; zero
// means no bound beyond ctx.
func NewEngine(graph GraphSource, cfg types.RecommendConfig, queryTimeout time.Duration, logger zerolog.Logger) *Engine {
	def := types.DefaultConfig().Recommend
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = def.MaxLimit
	}
	if cfg.PopularityScale <= 0 {
		cfg.PopularityScale = def.PopularityScale
	}
	return &Engine{
		graph:        graph,
		cfg:          cfg,
		queryTimeout: queryTimeout,
		logger:       logger.With().Str("component", "recommend").Logger(),
	}
}

// signalQuery binds a source tag to the graph method that answers it.
type signalQuery struct {
	source types.Source
	run    func(ctx context.Context, userID int64) ([]SignalRecord, error)
}

func (e *Engine) signalQueries() []signalQuery {
	return []signalQuery{
		{types.SourceCitation, e.graph.CitationSignals},
		{types.SourceAuthor, e.graph.AuthorSignals},
		{types.SourceVenue, e.graph.VenueSignals},
		{types.SourcePopularity, e.graph.PopularitySignals},
	}
}

// Limit resolves a requested limit: zero selects the default, values above
// the maximum are capped, negative values yield zero.
func (e *Engine) Limit(requested int) int {
	switch {
	case requested == 0:
		return e.cfg.DefaultLimit
	case requested < 0:
		return 0
	case requested > e.cfg.MaxLimit:
		return e.cfg.MaxLimit
	default:
		return requested
	}
}

// Recommend returns at most limit ranked recommendations for userID. It
// never fails: signal sources that error are logged and skipped, and an
// unreachable graph yields an empty list.
func (e *Engine) Recommend(ctx context.Context, userID int64, limit int) []types.Recommendation {
	start := time.Now()
	defer func() { metrics.RecommendDuration.Observe(time.Since(start).Seconds()) }()

	log := e.logger.With().
		Str("request_id", uuid.New().String()).
		Int64("user_id", userID).
		Logger()

	limit = e.Limit(limit)
	if e.graph == nil || limit == 0 {
		metrics.RecommendRequests.WithLabelValues("empty").Inc()
		return []types.Recommendation{}
	}

	results := e.collect(ctx, userID)
	set := AggregateScaled(e.cfg.PopularityScale, results...)
	e.reportFailures(log, set.Failures)

	outcome := "personalized"
	if set.Len() == 0 {
		set = e.fallback(ctx, log)
		outcome = "fallback"
		if set.Len() == 0 {
			outcome = "empty"
		}
	}

	metrics.RecommendCandidates.Observe(float64(set.Len()))
	metrics.RecommendRequests.WithLabelValues(outcome).Inc()

	recs := Rank(set, limit)
	log.Debug().
		Str("outcome", outcome).
		Int("candidates", set.Len()).
		Int("returned", len(recs)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation pass complete")
	return recs
}

// collect runs the four signal queries concurrently and waits for all of
// them. Results are returned in a fixed source order regardless of which
// query finished first.
func (e *Engine) collect(ctx context.Context, userID int64) []SignalResult {
	queries := e.signalQueries()
	results := make([]SignalResult, len(queries))

	// The group is only a join barrier. Failures travel in each
	// SignalResult so one source never cancels the others, and no
	// goroutine returns an error.
	var g errgroup.Group
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			results[i] = e.runSignal(ctx, q.source, func(ctx context.Context) ([]SignalRecord, error) {
				return q.run(ctx, userID)
			})
			return nil
		})
	}
	g.Wait() //nolint:errcheck // always nil, see above

	return results
}

// runSignal executes one query under the configured timeout. Errors and
// panics are captured in the result instead of propagating.
func (e *Engine) runSignal(ctx context.Context, source types.Source, run func(context.Context) ([]SignalRecord, error)) (result SignalResult) {
	result.Source = source

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result.Records = nil
			result.Err = fmt.Errorf("signal query panicked: %v", r)
		}
		metrics.SignalDuration.WithLabelValues(string(source)).Observe(time.Since(start).Seconds())
	}()

	if e.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.queryTimeout)
		defer cancel()
	}

	records, err := run(ctx)
	if err != nil {
		result.Err = err
		return result
	}
	result.Records = records
	return result
}

func (e *Engine) fallback(ctx context.Context, log zerolog.Logger) *CandidateSet {
	result := e.runSignal(ctx, types.SourceTrending, e.graph.TrendingPapers)
	set := AggregateFallback(e.cfg.PopularityScale, result)
	e.reportFailures(log, set.Failures)
	return set
}

func (e *Engine) reportFailures(log zerolog.Logger, failures []SourceFailure) {
	for _, f := range failures {
		metrics.SignalFailures.WithLabelValues(string(f.Source)).Inc()
		log.Warn().
			Err(f.Err).
			Str("source", string(f.Source)).
			Msg("signal query failed, continuing without it")
	}
}
