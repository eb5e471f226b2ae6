// Package services implements the hybrid retrieval pipeline: query
// expansion, parallel vector + graph search, score fusion,
// related-entity expansion and token-budgeted context assembly.
package services
