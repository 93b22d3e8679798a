package match

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"fernbot/errors"
)

// CandidateSource yields the full candidate set for one ranking pass.
// Implementations are read-only; iteration order is whatever the backing
// store returns and is not assumed stable across calls.
type CandidateSource interface {
	FetchAll(ctx context.Context) ([]Entry, error)
}

// Engine runs the full matching pipeline: fetch all candidates, score each
// one, track the best and keep a sorted list for suggestions. Dependencies
// are injected at construction and shared read-only, so one Engine serves
// concurrent requests.
type Engine struct {
	source CandidateSource
	scorer *Scorer
	accept float64
	sink   TraceSink
}

// NewEngine builds a ranking engine. accept is the acceptance threshold: a
// match is usable only when its score is STRICTLY greater. sink may be nil.
func NewEngine(source CandidateSource, scorer *Scorer, accept float64, sink TraceSink) *Engine {
	return &Engine{
		source: source,
		scorer: scorer,
		accept: accept,
		sink:   sink,
	}
}

// Rank fetches every candidate and scores it against the query. A fetch
// failure means no ranking is possible and surfaces as ErrStoreUnavailable;
// finding nothing acceptable is a normal outcome, not an error.
func (e *Engine) Rank(ctx context.Context, q Query) (Result, error) {
	start := time.Now()

	entries, err := e.source.FetchAll(ctx)
	if err != nil {
		return Result{}, errors.WrapError(errors.ErrStoreUnavailable, err.Error())
	}

	res := RankEntries(e.scorer, q, entries, e.accept)

	if e.sink != nil {
		t := Trace{
			RequestID: uuid.New().String(),
			Query:     q,
			Scanned:   res.Scanned,
			BestScore: math.Inf(-1),
			Accepted:  res.Best != nil,
			Elapsed:   time.Since(start),
		}
		if res.Best != nil {
			t.BestID = res.Best.Entry.ID
			t.BestScore = res.Best.Score
			t.Signals = res.Best.Signals
		} else if len(res.Ranked) > 0 {
			t.BestID = res.Ranked[0].Entry.ID
			t.BestScore = res.Ranked[0].Score
			t.Signals = res.Ranked[0].Signals
		}
		e.sink.Emit(t)
	}

	return res, nil
}

// RankEntries is the pure ranking pass, separated from fetching so it can
// be exercised directly. Every entry is scored exactly once. The best match
// is tracked with a strictly-greater comparison, so ties keep the first
// candidate seen in scan order. The ranked list is sorted descending by
// score with entry ID as the tie-break, giving a deterministic suggestion
// order regardless of store iteration order.
func RankEntries(s *Scorer, q Query, entries []Entry, accept float64) Result {
	res := Result{Scanned: len(entries)}

	bestIdx := -1
	bestScore := math.Inf(-1)
	res.Ranked = make([]Match, 0, len(entries))
	for _, entry := range entries {
		score, hits := s.Score(q, entry)
		res.Ranked = append(res.Ranked, Match{Entry: entry, Score: score, Signals: hits})
		if score > bestScore {
			bestScore = score
			bestIdx = len(res.Ranked) - 1
		}
	}

	if bestIdx >= 0 && bestScore > accept {
		m := res.Ranked[bestIdx]
		res.Best = &m
	}

	sort.SliceStable(res.Ranked, func(i, j int) bool {
		if res.Ranked[i].Score != res.Ranked[j].Score {
			return res.Ranked[i].Score > res.Ranked[j].Score
		}
		return res.Ranked[i].Entry.ID < res.Ranked[j].Entry.ID
	})

	return res
}
