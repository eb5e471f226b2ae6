package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
	"github.com/beacon-labs/beacon-cli/internal/logger"
)

// Ranking defaults.
const (
	// DefaultMaxResults bounds the ranked set after fusion.
	DefaultMaxResults = 20

	// neutralRecency is scored when no timestamp is known for a
	// candidate, so sources without freshness metadata are not
	// systematically penalised.
	neutralRecency = 0.5

	// DefaultRecencyHalfLife controls how fast the recency factor
	// decays with content age.
	DefaultRecencyHalfLife = 30 * 24 * time.Hour
)

// Ranker merges candidate sets from both retrieval modalities and
// orders them under a weighted fusion model.
type Ranker struct {
	weights    domain.RankingWeights
	freshness  driven.FreshnessStore
	maxResults int
	halfLife   time.Duration
	now        func() time.Time
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker)

// WithMaxResults overrides the post-ranking truncation bound.
func WithMaxResults(n int) RankerOption {
	return func(r *Ranker) {
		if n > 0 {
			r.maxResults = n
		}
	}
}

// WithFreshnessStore supplies timestamps for the recency signal.
func WithFreshnessStore(store driven.FreshnessStore) RankerOption {
	return func(r *Ranker) {
		r.freshness = store
	}
}

// WithRecencyHalfLife overrides the recency decay half-life.
func WithRecencyHalfLife(d time.Duration) RankerOption {
	return func(r *Ranker) {
		if d > 0 {
			r.halfLife = d
		}
	}
}

// withClock overrides the time source. Test hook.
func withClock(now func() time.Time) RankerOption {
	return func(r *Ranker) {
		r.now = now
	}
}

// NewRanker creates a fusion ranker with the given weights.
func NewRanker(weights domain.RankingWeights, opts ...RankerOption) *Ranker {
	r := &Ranker{
		weights:    weights,
		maxResults: DefaultMaxResults,
		halfLife:   DefaultRecencyHalfLife,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Weights returns the active weight configuration.
func (r *Ranker) Weights() domain.RankingWeights {
	return r.weights
}

// Merge combines vector and graph result sets into an unranked union
// keyed by candidate ID. Vector results are inserted first; a graph
// result with a matching ID contributes only its graph-side fields
// (graph score, relationship depth, related IDs) so the vector-origin
// content and semantic score survive the merge. Insertion order is
// preserved so repeated runs over identical inputs rank identically.
func (r *Ranker) Merge(vectorResults, graphResults []domain.Candidate) []domain.Candidate {
	merged := make([]domain.Candidate, 0, len(vectorResults)+len(graphResults))
	index := make(map[string]int, len(vectorResults)+len(graphResults))

	for _, c := range vectorResults {
		if i, ok := index[c.ID]; ok {
			// Duplicate within one backend's results: keep the first,
			// highest-similarity hit.
			merged[i].RelatedIDs = append(merged[i].RelatedIDs, c.RelatedIDs...)
			continue
		}
		index[c.ID] = len(merged)
		merged = append(merged, c)
	}

	for _, c := range graphResults {
		i, ok := index[c.ID]
		if !ok {
			index[c.ID] = len(merged)
			merged = append(merged, c)
			continue
		}
		merged[i].GraphScore = c.GraphScore
		merged[i].RelationshipDepth = c.RelationshipDepth
		merged[i].RelatedIDs = append(merged[i].RelatedIDs, c.RelatedIDs...)
		if merged[i].EntityID == "" {
			merged[i].EntityID = c.EntityID
		}
	}

	return merged
}

// Rank computes the composite score for every candidate and returns the
// set ordered by descending final score, truncated to the configured
// maximum. The sort is stable: equal scores keep their input order.
func (r *Ranker) Rank(ctx context.Context, candidates []domain.Candidate) []domain.Candidate {
	ranked := make([]domain.Candidate, len(candidates))
	copy(ranked, candidates)

	// Diversity counters are accumulated in one pass over the input
	// order, rewarding content types seen less often so far.
	typeCounts := make(map[string]int, len(ranked))

	for i := range ranked {
		c := &ranked[i]

		typeCounts[c.ContentType]++
		diversity := 1.0 / float64(typeCounts[c.ContentType])

		c.FinalScore = c.SemanticScore*r.weights.Semantic +
			c.GraphScore*r.weights.Graph +
			(1.0/float64(c.RelationshipDepth+1))*r.weights.Relationship +
			r.recencyFactor(ctx, c.ID)*r.weights.Recency +
			diversity*r.weights.Diversity
	}

	// NaN-safe descending order: an unorderable score sorts below
	// everything instead of corrupting the comparison.
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].FinalScore, ranked[j].FinalScore
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})

	if len(ranked) > r.maxResults {
		ranked = ranked[:r.maxResults]
	}

	return ranked
}

// recencyFactor maps content age to [0,1] with exponential decay.
// Missing timestamps and store errors score the neutral constant.
func (r *Ranker) recencyFactor(ctx context.Context, id string) float64 {
	if r.freshness == nil {
		return neutralRecency
	}

	modifiedAt, ok, err := r.freshness.ModifiedAt(ctx, id)
	if err != nil {
		logger.Warn("Freshness lookup failed for %s: %v", id, err)
		return neutralRecency
	}
	if !ok {
		return neutralRecency
	}

	age := r.now().Sub(modifiedAt)
	if age < 0 {
		age = 0
	}

	factor := math.Exp(-age.Hours() / r.halfLife.Hours())
	if factor > 1 {
		factor = 1
	}
	if factor < 0 {
		factor = 0
	}
	return factor
}
