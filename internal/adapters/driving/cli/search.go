package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
)

var (
	searchLimit     int
	searchWindow    int
	searchNoExpand  bool
	searchNoRelated bool
	searchJSON      bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Retrieve ranked context for a query",
	Long: `Runs the hybrid retrieval pipeline: the query is expanded, searched
against the vector and graph backends in parallel, fused under the
weighted ranking model and packed into a token-budgeted context bundle.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultLimit, "maximum number of results")
	searchCmd.Flags().IntVarP(&searchWindow, "window", "w", domain.DefaultContextWindow, "token budget for the context bundle")
	searchCmd.Flags().BoolVar(&searchNoExpand, "no-expand", false, "skip model-based query expansion")
	searchCmd.Flags().BoolVar(&searchNoRelated, "no-related", false, "skip related-entity expansion")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	opts := domain.QueryOptions{
		Limit:          searchLimit,
		ContextWindow:  searchWindow,
		ExpandQuery:    !searchNoExpand,
		IncludeRelated: !searchNoRelated,
	}

	resp, err := retrievalService.Retrieve(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if searchJSON {
		return outputResponseJSON(cmd, resp)
	}
	return outputResponseTable(cmd, resp)
}

func outputResponseJSON(cmd *cobra.Command, resp *domain.RetrievalResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResponseTable(cmd *cobra.Command, resp *domain.RetrievalResponse) error {
	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (%d total, vector=%d graph=%d):\n",
		resp.TotalResults, resp.VectorMatches, resp.GraphMatches)
	cmd.Println()
	for i := range resp.Results {
		r := &resp.Results[i]

		title := r.Title
		if title == "" {
			title = r.ID
		}

		cmd.Printf("  [%d] %s (%.2f, %s)\n", i+1, title, r.FinalScore, r.Source)
		if r.Path != "" {
			cmd.Printf("      %s\n", r.Path)
		}
		cmd.Println()
	}

	cmd.Printf("Bundle: %d items, %d/%d tokens\n",
		len(resp.Bundle.Items), resp.Bundle.TotalTokens, resp.Bundle.ContextWindow)

	return nil
}
