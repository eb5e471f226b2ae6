package services

import (
	"context"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
	"github.com/beacon-labs/beacon-cli/internal/logger"
)

// Related-expansion defaults.
const (
	// DefaultRelatedSeeds bounds how many top-ranked candidates seed a
	// traversal. Bounded fan-out, not a full BFS across all candidates.
	DefaultRelatedSeeds = 5

	// DefaultRelatedScore is the fixed, deliberately suppressed
	// relevance assigned to expansion results. It sits below any
	// plausible directly-matched score so expansion augments but never
	// displaces primary matches.
	DefaultRelatedScore = 0.3
)

// RelatedExpander folds one extra hop of graph neighbours into a ranked
// result set.
type RelatedExpander struct {
	graph    driven.GraphSearchBackend
	maxSeeds int
	score    float64
}

// NewRelatedExpander creates a related-entity expander. The graph
// parameter is optional (can be nil); a nil backend yields no expansion.
func NewRelatedExpander(graph driven.GraphSearchBackend) *RelatedExpander {
	return &RelatedExpander{
		graph:    graph,
		maxSeeds: DefaultRelatedSeeds,
		score:    DefaultRelatedScore,
	}
}

// Expand traverses one hop set from the top-ranked candidates that
// carry an entity ID and returns the neighbours at a capped score tier.
// A traversal failure for one seed is skipped silently; partial results
// from the remaining seeds are still returned.
func (e *RelatedExpander) Expand(ctx context.Context, ranked []domain.Candidate, depth int) []domain.Candidate {
	if e.graph == nil || len(ranked) == 0 {
		return nil
	}

	seeds := make([]string, 0, e.maxSeeds)
	for _, c := range ranked {
		if c.EntityID == "" {
			continue
		}
		seeds = append(seeds, c.EntityID)
		if len(seeds) == e.maxSeeds {
			break
		}
	}
	if len(seeds) == 0 {
		return nil
	}

	// The result set must stay free of duplicate IDs, so neighbours
	// already present among the ranked candidates are dropped.
	seen := make(map[string]bool, len(ranked))
	for _, c := range ranked {
		seen[c.ID] = true
	}

	var related []domain.Candidate
	for _, seed := range seeds {
		neighbours, err := e.graph.Traverse(ctx, seed, depth)
		if err != nil {
			logger.Warn("Related expansion: traversal from %s failed: %v", seed, err)
			continue
		}

		for _, n := range neighbours {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true

			n.Source = domain.SourceGraphRelated
			n.FinalScore = e.score
			related = append(related, n)
		}
	}

	logger.Debug("Related expansion: %d seeds, %d neighbours", len(seeds), len(related))
	return related
}
