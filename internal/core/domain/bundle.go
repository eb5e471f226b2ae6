package domain

// ContextBundle is the token-budgeted set of evidence assembled for
// downstream consumption by a language model.
//
// Invariant: TotalTokens never exceeds ContextWindow, and Items are a
// prefix of the ranked candidate order truncated at the first item that
// would breach the budget.
type ContextBundle struct {
	// Query is the original, pre-expansion query.
	Query string `json:"query"`

	// Items are the packed candidates in rank order.
	Items []ContextItem `json:"items"`

	// TotalTokens is the running sum of item token estimates.
	TotalTokens int `json:"total_tokens"`

	// ContextWindow is the budget ceiling the bundle was packed under.
	ContextWindow int `json:"context_window"`
}

// ContextItem is one packed candidate inside a ContextBundle.
type ContextItem struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	Path           string  `json:"path,omitempty"`
	ContentType    string  `json:"content_type"`
	RelevanceScore float64 `json:"relevance_score"`

	// Tokens is the estimated token cost of Content.
	Tokens int `json:"tokens"`
}
