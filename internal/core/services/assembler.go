package services

import (
	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/logger"
)

// DefaultTokensPerChar is the fixed character-to-token ratio used to
// estimate token costs. Exact tokenization is out of scope; the ratio
// is a rough average for English text and code.
const DefaultTokensPerChar = 0.25

// Assembler packs ranked candidates into a token-budgeted context
// bundle.
type Assembler struct {
	tokensPerChar float64
}

// NewAssembler creates a context assembler with the default
// character-to-token ratio.
func NewAssembler() *Assembler {
	return &Assembler{tokensPerChar: DefaultTokensPerChar}
}

// Assemble greedily packs candidates in rank order until the next item
// would breach the budget, then stops. No skip-and-continue: keeping a
// prefix of the ranked order matters more than bin-packing optimality.
// The returned bundle's TotalTokens never exceeds tokenBudget.
func (a *Assembler) Assemble(ranked []domain.Candidate, originalQuery string, tokenBudget int) domain.ContextBundle {
	bundle := domain.ContextBundle{
		Query:         originalQuery,
		Items:         []domain.ContextItem{},
		ContextWindow: tokenBudget,
	}

	for _, c := range ranked {
		tokens := a.EstimateTokens(c.Content)
		if bundle.TotalTokens+tokens > tokenBudget {
			break
		}

		bundle.Items = append(bundle.Items, domain.ContextItem{
			ID:             c.ID,
			Title:          c.Title,
			Content:        c.Content,
			Path:           c.Path,
			ContentType:    c.ContentType,
			RelevanceScore: c.FinalScore,
			Tokens:         tokens,
		})
		bundle.TotalTokens += tokens
	}

	logger.Debug("Context assembly: %d/%d candidates packed, %d/%d tokens",
		len(bundle.Items), len(ranked), bundle.TotalTokens, tokenBudget)

	return bundle
}

// EstimateTokens approximates the token cost of a text body.
func (a *Assembler) EstimateTokens(content string) int {
	return int(float64(len(content)) * a.tokensPerChar)
}
