package domain

import "fmt"

// Weight profile names. Both profiles are configurations of the same
// weighted-fusion contract; "unified" mirrors the simpler split used
// when vector and graph results come from one backend.
const (
	ProfileFederated = "federated"
	ProfileUnified   = "unified"
)

// RankingWeights holds the five fusion coefficients. The coefficients
// are non-negative and need not sum to one, although the defaults do so
// that scores stay comparable across configurations.
type RankingWeights struct {
	// Semantic weighs the vector-similarity score.
	Semantic float64

	// Graph weighs the graph centrality/edge score.
	Graph float64

	// Relationship weighs proximity to a seed entity (1/(depth+1)).
	Relationship float64

	// Recency weighs content freshness.
	Recency float64

	// Diversity weighs the under-represented-content-type bonus.
	Diversity float64
}

// DefaultWeights returns the federated five-weight profile.
func DefaultWeights() RankingWeights {
	return RankingWeights{
		Semantic:     0.35,
		Graph:        0.25,
		Relationship: 0.20,
		Recency:      0.10,
		Diversity:    0.10,
	}
}

// UnifiedWeights returns the single-knob profile for deployments where
// vector and graph results originate from one unified backend.
func UnifiedWeights() RankingWeights {
	return RankingWeights{
		Semantic: 0.7,
		Graph:    0.3,
	}
}

// WeightsForProfile resolves a named weight profile. An empty name
// resolves to the federated default.
func WeightsForProfile(name string) (RankingWeights, error) {
	switch name {
	case "", ProfileFederated:
		return DefaultWeights(), nil
	case ProfileUnified:
		return UnifiedWeights(), nil
	default:
		return RankingWeights{}, fmt.Errorf("%w: unknown weight profile %q", ErrInvalidInput, name)
	}
}

// Validate checks that all coefficients are non-negative.
func (w RankingWeights) Validate() error {
	if w.Semantic < 0 || w.Graph < 0 || w.Relationship < 0 || w.Recency < 0 || w.Diversity < 0 {
		return fmt.Errorf("%w: ranking weights must be non-negative", ErrInvalidInput)
	}
	return nil
}
