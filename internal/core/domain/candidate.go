package domain

// Candidate origin tags. Source records which retrieval modality
// produced a candidate.
const (
	// SourceVector marks a direct vector-similarity hit.
	SourceVector = "vector"

	// SourceGraph marks a direct graph-search hit.
	SourceGraph = "graph"

	// SourceGraphRelated marks a candidate discovered by expanding
	// a top-ranked hit one hop through the relationship graph.
	SourceGraphRelated = "graph_related"
)

// Candidate is the unit of ranking: a retrievable piece of content
// (code fragment, document section, chat message) with the scores
// accumulated across retrieval modalities.
//
// ID is the merge key. A candidate returned by both the vector and the
// graph backend is merged into a single record carrying the non-zero
// fields from each side.
type Candidate struct {
	// ID uniquely identifies the candidate within one query's result set.
	ID string

	// EntityID is the external graph identifier, if the candidate maps
	// to a node in the relationship graph. Empty for pure-vector hits.
	EntityID string

	// Title is the human-readable title.
	Title string

	// Content is the text body used for context assembly.
	Content string

	// Path is the source location (file path, URL), if known.
	Path string

	// Source is the origin tag (SourceVector, SourceGraph, SourceGraphRelated).
	Source string

	// ContentType is a free-form classification (code, doc, chat, ...).
	ContentType string

	// SemanticScore is the vector-similarity score. Zero when the
	// candidate was not produced by vector search.
	SemanticScore float64

	// GraphScore is the backend-native centrality or edge weight.
	// Zero when the candidate was not produced by graph search.
	GraphScore float64

	// RelationshipDepth is the hop count from a seed entity.
	// Zero for direct vector/graph hits.
	RelationshipDepth int

	// FinalScore is the composite relevance computed by the fusion
	// ranker. Undefined until ranking runs.
	FinalScore float64

	// RelatedIDs holds identifiers of graph neighbours, used to seed
	// further expansion.
	RelatedIDs []string
}
