package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity of the retrieval backends",
	Long: `Ping each configured backend (vector store, knowledge graph and
expansion model) and report per-component reachability. Search degrades
gracefully when a backend is down, so this is the way to tell which
modality a thin result set is missing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		statuses := retrievalService.Status(cmd.Context())

		down := 0
		for _, s := range statuses {
			if s.Healthy() {
				cmd.Printf("  %-10s ok\n", s.Component)
			} else {
				down++
				cmd.Printf("  %-10s %v\n", s.Component, s.Err)
			}
		}

		if down > 0 {
			return fmt.Errorf("%d of %d components unavailable", down, len(statuses))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
