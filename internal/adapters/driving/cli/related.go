package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
)

var (
	relatedDepth int
	relatedJSON  bool
)

var relatedCmd = &cobra.Command{
	Use:   "related [entity-id]",
	Short: "List entities connected to an entity",
	Long: `Traverses the relationship graph outward from the given entity and
lists everything reachable within the requested number of hops.`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

func init() {
	relatedCmd.Flags().IntVarP(&relatedDepth, "depth", "d", domain.DefaultMaxDepth, "traversal depth in hops (max 3)")
	relatedCmd.Flags().BoolVar(&relatedJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(relatedCmd)
}

func runRelated(cmd *cobra.Command, args []string) error {
	entityID := args[0]

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	related, err := retrievalService.Related(cmd.Context(), entityID, relatedDepth)
	if err != nil {
		return fmt.Errorf("related lookup failed: %w", err)
	}

	if relatedJSON {
		data, err := json.MarshalIndent(related, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(related) == 0 {
		cmd.Println("No related entities found.")
		return nil
	}

	cmd.Printf("Related to %s:\n", entityID)
	cmd.Println()
	for i := range related {
		r := &related[i]

		title := r.Title
		if title == "" {
			title = r.EntityID
		}

		cmd.Printf("  [%d] %s (depth %d, weight %.2f)\n", i+1, title, r.RelationshipDepth, r.GraphScore)
	}
	return nil
}
