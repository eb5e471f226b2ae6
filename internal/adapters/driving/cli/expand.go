package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand [query]",
	Short: "Show how a query would be expanded",
	Long: `Enriches a query with semantically related terms, technical concepts
and likely identifier names. Useful for inspecting what the search
pipeline actually sends to the backends.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	expanded, err := retrievalService.Expand(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	cmd.Printf("Original:  %s\n", expanded.Original)
	if len(expanded.SemanticTerms) > 0 {
		cmd.Printf("Terms:     %s\n", strings.Join(expanded.SemanticTerms, ", "))
	}
	if len(expanded.TechnicalConcepts) > 0 {
		cmd.Printf("Concepts:  %s\n", strings.Join(expanded.TechnicalConcepts, ", "))
	}
	if len(expanded.PotentialNames) > 0 {
		cmd.Printf("Names:     %s\n", strings.Join(expanded.PotentialNames, ", "))
	}
	cmd.Printf("Combined:  %s\n", expanded.Combined)
	return nil
}
