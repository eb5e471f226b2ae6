// Command beacon is a hybrid retrieval CLI and MCP server. It answers
// natural-language questions about a codebase by combining semantic
// vector search with knowledge graph traversal.
package main

import (
	"os"

	"github.com/beacon-labs/beacon-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
