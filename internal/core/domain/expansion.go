package domain

import "strings"

// ExpandedQuery is the result of enriching a raw query with related
// terms. It is built once per query, consumed immediately by the search
// stage, and never persisted.
type ExpandedQuery struct {
	// Original is the query as the caller supplied it.
	Original string

	// SemanticTerms are semantically similar terms discovered by the
	// expansion model.
	SemanticTerms []string

	// TechnicalConcepts are related technical concepts.
	TechnicalConcepts []string

	// PotentialNames are likely file/function/entity names. They are
	// exposed as client-directed hints and deliberately excluded from
	// Combined.
	PotentialNames []string

	// Combined is the original query joined with the discovered terms,
	// ready for backend consumption.
	Combined string
}

// IdentityExpansion returns the degenerate expansion that leaves the
// query untouched. Used whenever expansion fails or is disabled, so
// expansion stays a quality enhancement rather than a correctness
// dependency.
func IdentityExpansion(query string) ExpandedQuery {
	return ExpandedQuery{
		Original: query,
		Combined: query,
	}
}

// Combine joins the original query with semantic terms and technical
// concepts into a single search string. Potential names are not
// included.
func (e ExpandedQuery) Combine() string {
	terms := make([]string, 0, 1+len(e.SemanticTerms)+len(e.TechnicalConcepts))
	terms = append(terms, e.Original)
	terms = append(terms, e.SemanticTerms...)
	terms = append(terms, e.TechnicalConcepts...)
	return strings.Join(terms, " ")
}
